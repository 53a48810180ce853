package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rahul4469/compiler-craft/internal/config"
	"github.com/rahul4469/compiler-craft/internal/models"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		output     string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Walk a source file through the compiler phases",
		Long: `Send FILE (or "-" for stdin) to the configured model and print the
phase-by-phase analysis. A valid analysis also writes the compiler report.

Use "-o json" to save an analysis for the inspect, report and explain commands.`,
		Example: `  compilercraft analyze main.c
  compilercraft analyze -o json main.c > analysis.json
  cat main.c | compilercraft analyze -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			code, err := readSourceFile(args[0], cfg.Limits.MaxSourceBytes)
			if err != nil {
				return err
			}

			tutor, err := newCLITutor(cmd.Context(), cfg, reportPath)
			if err != nil {
				return err
			}

			var analysis *models.StoredAnalysis
			err = withSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Analyzing with %s...", tutor.ModelName()), func() error {
				var err error
				analysis, err = tutor.Analyze(cmd.Context(), code)
				return err
			})
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			logger.Debug("Analysis complete",
				zap.String("digest", analysis.Digest),
				zap.Bool("valid", analysis.Result.IsValidCode),
				zap.Int("phases", len(analysis.Result.Phases)),
			)

			return printAnalysis(cmd.OutOrStdout(), format, analysis.Result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(OutputHuman), "Output format: human, json or yaml")
	cmd.Flags().StringVar(&reportPath, "report", "", "Where to write the compiler report (defaults to REPORT_PATH)")

	return cmd
}
