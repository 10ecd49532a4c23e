package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	studentservices "github.com/goliatone/go-studentservices"
)

func newSchemaCmd(_ *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the form model or the OpenAPI document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				data []byte
				err  error
			)
			switch format {
			case "model":
				fm, buildErr := studentservices.NewOrchestrator().Build(ctx, studentservices.Request(studentservices.RenderOptions{}))
				if buildErr != nil {
					return buildErr
				}
				data, err = json.MarshalIndent(fm, "", "  ")
			case "openapi":
				data, err = studentservices.OpenAPIJSON(ctx)
			default:
				return fmt.Errorf("unknown format %q (want model or openapi)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "model", "what to print: model or openapi")
	return cmd
}
