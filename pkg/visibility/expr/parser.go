package expr

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-studentservices/pkg/visibility"
)

// node is a compiled rule fragment.
type node interface {
	eval(ctx visibility.Context) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(ctx)
}

type andNode struct{ left, right node }

func (n andNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(ctx)
}

type notNode struct{ inner node }

func (n notNode) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.inner.eval(ctx)
	return !ok, err
}

type truthyNode struct{ identifier string }

func (n truthyNode) eval(ctx visibility.Context) (bool, error) {
	value, ok := lookup(ctx, n.identifier)
	return ok && truthy(value), nil
}

type compareNode struct {
	identifier string
	negate     bool
	literal    token
}

func (n compareNode) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.identifier)

	var equal bool
	switch n.literal.kind {
	case tokenNull:
		equal = value == nil || coerceString(value) == ""
	case tokenBool:
		got, _ := coerceBool(value)
		equal = got == (n.literal.raw == "true")
	case tokenNumber:
		want, err := strconv.ParseFloat(n.literal.raw, 64)
		if err != nil {
			return false, fmt.Errorf("visibility/expr: invalid number literal %q", n.literal.raw)
		}
		got, _ := coerceNumber(value)
		equal = got == want
	default:
		equal = coerceString(value) == n.literal.raw
	}
	return equal != n.negate, nil
}

type parser struct {
	tokens []token
	pos    int
}

func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	n, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", p.tokens[p.pos].raw)
	}
	return n, nil
}

func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(tokenOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(tokenAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.match(tokenNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	if p.match(tokenLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	if p.pos >= len(p.tokens) {
		return nil, errors.New("visibility/expr: empty expression")
	}
	ident := p.tokens[p.pos]
	if ident.kind != tokenIdentifier {
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", ident.raw)
	}
	p.pos++

	switch {
	case p.match(tokenEq):
		lit, err := p.literal()
		return compareNode{identifier: ident.raw, literal: lit}, err
	case p.match(tokenNeq):
		lit, err := p.literal()
		return compareNode{identifier: ident.raw, negate: true, literal: lit}, err
	default:
		return truthyNode{identifier: ident.raw}, nil
	}
}

func (p *parser) literal() (token, error) {
	if p.pos >= len(p.tokens) {
		return token{}, errors.New("visibility/expr: missing literal")
	}
	tok := p.tokens[p.pos]
	p.pos++
	switch tok.kind {
	case tokenString, tokenNumber, tokenBool, tokenNull:
		return tok, nil
	case tokenIdentifier:
		// bare words compare as strings: inquiryType == complaint
		return token{kind: tokenString, raw: tok.raw}, nil
	default:
		return token{}, fmt.Errorf("visibility/expr: expected literal, got %q", tok.raw)
	}
}

func (p *parser) match(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}
