package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rahul4469/compiler-craft/internal/config"
	"github.com/rahul4469/compiler-craft/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		sourcePath   string
		analysisPath string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble the compiler report from a saved analysis",
		Long: `Build the plain-text compiler report from a source file and an analysis
saved with "analyze -o json". No model call is made.`,
		Example: `  compilercraft report --source main.c --analysis analysis.json
  compilercraft report --source main.c --analysis analysis.json --out compiler_report.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			code, err := readSourceFile(sourcePath, cfg.Limits.MaxSourceBytes)
			if err != nil {
				return err
			}
			result, err := readAnalysisFile(analysisPath)
			if err != nil {
				return err
			}
			if !result.IsValidCode {
				return errors.New("no report for invalid code")
			}

			text := report.Assemble(code, result)
			if outPath == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			printSuccess(cmd.ErrOrStderr(), "Report written to "+outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "Source file the analysis was produced from")
	cmd.Flags().StringVar(&analysisPath, "analysis", "", "Analysis JSON saved with analyze -o json")
	cmd.Flags().StringVar(&outPath, "out", "", "Write the report here instead of stdout")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("analysis")

	return cmd
}
