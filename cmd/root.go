// Package cmd implements the spicy CLI commands.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/spicy-go/bdd"
)

type loggerKey struct{}

// withLogger returns ctx carrying log.
func withLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// loggerFrom returns the logger carried by ctx, or a no-op logger.
func loggerFrom(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

// NewRootCmd creates the root spicy command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "spicy",
		Short:         "spicy - scaffold and inspect given/when/then scenario suites",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newCLILogger(debug)
			if err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), log))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = loggerFrom(cmd.Context()).Sync()
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output to stderr")

	specIO := newDefaultSpecIO()
	root.AddCommand(NewParseCmd(specIO))
	root.AddCommand(NewScaffoldCmd(specIO))
	root.AddCommand(NewNameCmd())
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// newCLILogger builds the logger from the environment configuration, with
// --debug forcing debug output.
func newCLILogger(debug bool) (*zap.Logger, error) {
	cfg, envErr := bdd.ConfigFromEnv()
	if debug {
		cfg.Debug = true
	}
	log, err := bdd.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if envErr != nil {
		log.Warn("ignoring environment configuration", zap.Error(envErr))
	}
	return log, nil
}
