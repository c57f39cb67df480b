package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Verdict/internal/config"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verdict",
		Short: "Verdict - rank alternatives with Simple Additive Weighting",
		Long: `Verdict ranks alternatives against weighted benefit and cost criteria
using Simple Additive Weighting.

Run it as an HTTP service with "verdict serve" or evaluate a matrix file
directly with "verdict compute".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newServeCommand(debugLogging))
	cmd.AddCommand(newComputeCommand())
	cmd.AddCommand(newPushCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "verdict %s\n", version)
			return err
		},
	}
}

// newLogger builds the process logger from the logging section. debug
// forces the debug level regardless of configuration.
func newLogger(cfg config.LoggingConfig, w io.Writer, debug bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
