package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-studentservices/internal/config"
	"github.com/goliatone/go-studentservices/pkg/request"
	"github.com/goliatone/go-studentservices/pkg/validation"
)

var errInvalidDraft = errors.New("draft is invalid")

func newSchema(cfg *config.Config) *validation.Schema {
	if cfg != nil && cfg.Form.RequireSubtypes {
		return validation.New(validation.WithConditionalSubtypes())
	}
	return validation.New()
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <draft.json|->",
		Short: "Validate a JSON draft and print its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var values map[string]any
			if err := json.Unmarshal(data, &values); err != nil {
				return fmt.Errorf("decode draft: %w", err)
			}
			draft, err := request.DraftFromValues(values)
			if err != nil {
				return err
			}

			result := newSchema(a.cfg).Validate(draft)
			out := cmd.OutOrStdout()
			if result.Valid() {
				_, err := fmt.Fprintln(out, "valid")
				return err
			}
			for _, field := range request.FieldNames() {
				if msg := result.Error(field); msg != "" {
					fmt.Fprintf(out, "%s: %s\n", field, msg)
				}
			}
			return errInvalidDraft
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
