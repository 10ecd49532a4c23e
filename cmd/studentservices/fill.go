package main

import (
	"fmt"

	"github.com/spf13/cobra"

	studentservices "github.com/goliatone/go-studentservices"
	"github.com/goliatone/go-studentservices/pkg/form"
	"github.com/goliatone/go-studentservices/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill in the request form interactively",
		PreRunE: func(*cobra.Command, []string) error {
			_, err := tui.ParseOutputFormat(output)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			fm, err := studentservices.NewOrchestrator().Build(ctx, studentservices.Request(studentservices.RenderOptions{}))
			if err != nil {
				return err
			}

			opts := []tui.Option{
				tui.WithOutputFormat(tui.OutputFormat(output)),
				tui.WithControllerOptions(
					form.WithSchema(newSchema(a.cfg)),
					form.WithLogger(a.log),
					form.WithHandler(form.LogHandler(a.log)),
				),
			}
			if a.prompts != nil {
				opts = append(opts, tui.WithPromptDriver(a.prompts))
			}
			renderer, err := tui.New(opts...)
			if err != nil {
				return err
			}

			out, err := renderer.Render(ctx, fm, studentservices.RenderOptions{})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatPrettyText), "submission output: json, form or pretty")
	return cmd
}
