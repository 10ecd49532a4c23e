package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

// twoChar lists operators that must be written doubled.
var twoChar = map[byte]struct {
	kind tokenKind
	raw  string
}{
	'=': {tokenEq, "=="},
	'&': {tokenAnd, "&&"},
	'|': {tokenOr, "||"},
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case isSpace(ch):
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				i += 2
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
			i++
		case ch == '=' || ch == '&' || ch == '|':
			op := twoChar[ch]
			if i+1 >= len(input) || input[i+1] != ch {
				return nil, fmt.Errorf("visibility/expr: unexpected %q; use %q", ch, op.raw)
			}
			tokens = append(tokens, token{kind: op.kind, raw: op.raw})
			i += 2
		case ch == '"' || ch == '\'':
			value, next, err := readString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
			i = next
		default:
			start := i
			for i < len(input) && !isSpace(input[i]) && !strings.ContainsRune("()!=&|", rune(input[i])) {
				i++
			}
			tokens = append(tokens, wordToken(input[start:i]))
		}
	}
	return tokens, nil
}

// readString scans a quoted literal starting at input[start] and returns the
// unquoted value plus the index after the closing quote.
func readString(input string, start int) (string, int, error) {
	quote := input[start]
	escaped := false
	for i := start + 1; i < len(input); i++ {
		c := input[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == quote:
			body := input[start+1 : i]
			if quote == '\'' {
				body = strings.ReplaceAll(strings.ReplaceAll(body, `\'`, `'`), `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return "", 0, fmt.Errorf("visibility/expr: invalid string literal: %w", err)
			}
			return value, i + 1, nil
		}
	}
	return "", 0, errors.New("visibility/expr: unterminated string literal")
}

func wordToken(raw string) token {
	switch strings.ToLower(raw) {
	case "true", "false":
		return token{kind: tokenBool, raw: strings.ToLower(raw)}
	case "null", "nil":
		return token{kind: tokenNull, raw: "null"}
	}
	if looksNumeric(raw) {
		return token{kind: tokenNumber, raw: raw}
	}
	return token{kind: tokenIdentifier, raw: raw}
}

func looksNumeric(raw string) bool {
	if raw == "" {
		return false
	}
	if c := raw[0]; (c < '0' || c > '9') && c != '-' && c != '+' && c != '.' {
		return false
	}
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
