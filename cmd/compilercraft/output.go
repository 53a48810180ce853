package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/render"
)

// OutputFormat selects how command results are printed.
type OutputFormat string

const (
	OutputHuman OutputFormat = "human"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

func parseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case OutputHuman, OutputJSON, OutputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (supported: human, json, yaml)", s)
	}
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	okColor      = color.New(color.FgGreen, color.Bold)
)

// phaseView is the machine-readable form of one phase for inspect.
type phaseView struct {
	Index   int                `json:"index" yaml:"index"`
	Total   int                `json:"total" yaml:"total"`
	Phase   models.PhaseRecord `json:"phase" yaml:"phase"`
	Display render.PhaseOutput `json:"display" yaml:"display"`
}

// printStructured writes v as JSON or YAML.
func printStructured(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

// printAnalysis writes a whole analysis in the requested format.
func printAnalysis(w io.Writer, format OutputFormat, result *models.AnalysisResult) error {
	if format != OutputHuman {
		return printStructured(w, format, result)
	}

	if !result.IsValidCode {
		printInvalid(w, result.Error)
		return nil
	}

	okColor.Fprintln(w, "Code is valid.")
	for i, phase := range result.Phases {
		fmt.Fprintln(w)
		printPhase(w, i, len(result.Phases), phase)
	}
	return nil
}

// printPhaseView writes one phase in the requested format.
func printPhaseView(w io.Writer, format OutputFormat, result *models.AnalysisResult, index int) error {
	phase, ok := result.Phase(index)
	if !ok {
		return fmt.Errorf("phase %d out of range (analysis has %d phases)", index+1, len(result.Phases))
	}
	if format != OutputHuman {
		return printStructured(w, format, phaseView{
			Index:   index,
			Total:   len(result.Phases),
			Phase:   phase,
			Display: render.ClassifyPhase(phase),
		})
	}
	printPhase(w, index, len(result.Phases), phase)
	return nil
}

func printInvalid(w io.Writer, aerr *models.AnalysisError) {
	errorColor.Fprintln(w, "Code is invalid.")
	if aerr == nil {
		return
	}
	labelColor.Fprint(w, "Phase: ")
	fmt.Fprintln(w, aerr.Phase)
	labelColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, aerr.Message)
	labelColor.Fprint(w, "Suggestion: ")
	fmt.Fprintln(w, aerr.Suggestion)
}

func printPhase(w io.Writer, index, total int, phase models.PhaseRecord) {
	headingColor.Fprintf(w, "Phase %d of %d: %s\n", index+1, total, phase.Name)
	fmt.Fprintln(w, phase.Explanation)
	fmt.Fprintln(w)
	labelColor.Fprintln(w, "Input:")
	fmt.Fprintln(w, indentBlock(phase.InputDescription))
	labelColor.Fprintln(w, "Output:")

	out := render.ClassifyPhase(phase)
	switch out.Kind {
	case render.OutputTable:
		printTable(w, out.Table)
	case render.OutputTree, render.OutputEmptyTree:
		fmt.Fprint(w, indentBlock(strings.TrimSuffix(out.Outline, "\n")), "\n")
	default:
		fmt.Fprintln(w, indentBlock(out.Raw))
	}
}

func printTable(w io.Writer, table *render.Table) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  "+strings.Join(table.Header, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, "  "+strings.Join(row, "\t"))
	}
	tw.Flush()
}

func indentBlock(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

func printSuccess(w io.Writer, msg string) {
	okColor.Fprint(w, "✓ ")
	fmt.Fprintln(w, msg)
}
