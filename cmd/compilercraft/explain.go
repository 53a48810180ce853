package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/rahul4469/compiler-craft/internal/config"
	"github.com/rahul4469/compiler-craft/internal/models"
)

func newExplainCmd() *cobra.Command {
	var (
		phaseName    string
		analysisPath string
		raw          bool
	)

	cmd := &cobra.Command{
		Use:   "explain FILE",
		Short: "Ask the model for a deeper explanation of one phase",
		Long: `Explain how one compiler phase applies to FILE. The phase summary from
--analysis is passed to the model as context; without it the file is
analyzed first.`,
		Example: `  compilercraft explain main.c --phase "Syntax Analysis"
  compilercraft explain main.c --phase Optimization --analysis analysis.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := models.PhaseName(phaseName)
			if !name.IsValid() {
				return fmt.Errorf("unknown phase %q (one of: %v)", phaseName, models.PhaseLabels())
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			code, err := readSourceFile(args[0], cfg.Limits.MaxSourceBytes)
			if err != nil {
				return err
			}
			tutor, err := newCLITutor(cmd.Context(), cfg, "")
			if err != nil {
				return err
			}

			var result *models.AnalysisResult
			if analysisPath != "" {
				if result, err = readAnalysisFile(analysisPath); err != nil {
					return err
				}
			} else {
				err = withSpinner(cmd.ErrOrStderr(), "Analyzing...", func() error {
					stored, err := tutor.Analyze(cmd.Context(), code)
					if err != nil {
						return err
					}
					result = stored.Result
					return nil
				})
				if err != nil {
					return fmt.Errorf("analysis failed: %w", err)
				}
			}

			phaseContext, err := phaseExplanation(result, name)
			if err != nil {
				return err
			}

			var explanation string
			err = withSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Explaining %s...", name), func() error {
				var err error
				explanation, err = tutor.ExplainPhase(cmd.Context(), code, string(name), phaseContext)
				return err
			})
			if err != nil {
				return fmt.Errorf("explanation failed: %w", err)
			}

			if raw {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), explanation)
				return err
			}
			return renderMarkdown(cmd, explanation)
		},
	}

	cmd.Flags().StringVar(&phaseName, "phase", "", "Phase to explain, e.g. \"Lexical Analysis\"")
	cmd.Flags().StringVar(&analysisPath, "analysis", "", "Analysis JSON saved with analyze -o json")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown without terminal styling")
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

// phaseExplanation returns the analysis's summary of the named phase.
func phaseExplanation(result *models.AnalysisResult, name models.PhaseName) (string, error) {
	if !result.IsValidCode {
		return "", fmt.Errorf("analysis is for invalid code and has no phases")
	}
	for _, p := range result.Phases {
		if p.Name == name {
			return p.Explanation, nil
		}
	}
	return "", fmt.Errorf("analysis has no %q phase", name)
}

func renderMarkdown(cmd *cobra.Command, text string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(text)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
