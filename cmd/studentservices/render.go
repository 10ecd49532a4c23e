package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	studentservices "github.com/goliatone/go-studentservices"
	"github.com/goliatone/go-studentservices/pkg/orchestrator"
	"github.com/goliatone/go-studentservices/pkg/theming"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		out     string
		variant string
		values  map[string]string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the request form as a standalone HTML page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if variant == "" {
				variant = a.cfg.Form.Variant
			}
			html, err := studentservices.GenerateHTML(cmd.Context(),
				studentservices.RenderOptions{Values: values},
				orchestrator.WithThemeSelector(theming.Default(), a.cfg.Form.Theme, variant),
			)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(out, html, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&variant, "variant", "", "theme variant (light or dark)")
	cmd.Flags().StringToStringVar(&values, "set", nil, "prefill a field, e.g. --set inquiryType=complaint")
	return cmd
}
