package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "v0.1.0" // Overwritten at build time

	verbose bool
	logger  = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "compilercraft",
		Short: "Interactive, AI-powered compiler tutor",
		Long: `compilercraft walks a source snippet through the six classic compiler
phases (lexical analysis, syntax analysis, semantic analysis, intermediate
code generation, optimization and code generation) with a language model
explaining each step.

Run "compilercraft serve" for the browser UI, or use the analyze, inspect,
report and explain commands from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(os.Getenv("APP_ENV"), verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (debug) logging")

	rootCmd.AddCommand(
		newServeCmd(),
		newAnalyzeCmd(),
		newReportCmd(),
		newInspectCmd(),
		newExplainCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// newLogger builds the process logger: console output in development,
// JSON everywhere else.
func newLogger(env string, verbose bool) (*zap.Logger, error) {
	var config zap.Config
	if env == "" || env == "development" {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		config = zap.NewProductionConfig()
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "compilercraft version %s\n", version)
		},
	}
}
