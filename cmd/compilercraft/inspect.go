package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var (
		analysisPath string
		phase        int
		output       string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Render a saved analysis in the terminal",
		Long: `Show a saved analysis phase by phase. Lexical analysis output is drawn as a
table and syntax analysis output as a tree when they parse.`,
		Example: `  compilercraft inspect --analysis analysis.json
  compilercraft inspect --analysis analysis.json --phase 2 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			result, err := readAnalysisFile(analysisPath)
			if err != nil {
				return err
			}

			if phase == 0 {
				return printAnalysis(cmd.OutOrStdout(), format, result)
			}
			if !result.IsValidCode {
				return errors.New("analysis is for invalid code and has no phases")
			}
			return printPhaseView(cmd.OutOrStdout(), format, result, phase-1)
		},
	}

	cmd.Flags().StringVar(&analysisPath, "analysis", "", "Analysis JSON saved with analyze -o json")
	cmd.Flags().IntVar(&phase, "phase", 0, "Show only this phase (1-based)")
	cmd.Flags().StringVarP(&output, "output", "o", string(OutputHuman), "Output format: human, json or yaml")
	_ = cmd.MarkFlagRequired("analysis")

	return cmd
}
