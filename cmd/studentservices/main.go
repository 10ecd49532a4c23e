package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-studentservices/internal/config"
	"github.com/goliatone/go-studentservices/internal/logger"
	"github.com/goliatone/go-studentservices/pkg/renderers/tui"
)

// app carries state resolved once in PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *zap.Logger

	// prompts replaces the survey driver used by fill.
	prompts tui.PromptDriver
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&app{})
}

func newRootCmdWith(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "studentservices",
		Short: "Student Services request form",
		Long: `Serves, renders and fills the Student Services request form.

Configuration is read from defaults, an optional --config file and
STUDENTSERVICES_* environment variables, in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var opts []config.Option
			if a.configPath != "" {
				opts = append(opts, config.WithFile(a.configPath))
			}
			if cmd.Flags().Changed("log-level") {
				opts = append(opts, config.WithOverride("log.level", a.logLevel))
			}
			cfg, err := config.Load(opts...)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Init(cfg.LoggerOptions())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(a),
		newFillCmd(a),
		newRenderCmd(a),
		newSchemaCmd(a),
		newValidateCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalidDraft) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
