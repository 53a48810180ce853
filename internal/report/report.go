// Package report assembles the plain-text compiler report shared by the
// on-disk copy and the browser download.
package report

import (
	"fmt"
	"strings"

	"github.com/rahul4469/compiler-craft/internal/models"
	"github.com/rahul4469/compiler-craft/internal/render"
)

// Filename is the name used for both the persisted and downloaded report.
const Filename = "compiler_report.txt"

const rawTextNote = "   Raw text phase: the compiler reads the source file as plain text.\n" +
	"   This includes preprocessor lines like #include and all comments/whitespace.\n" +
	"   If the file is empty or missing, the run aborts with a helpful message."

// Assemble renders the report for a valid analysis. The output depends only
// on its arguments, so the persisted file and any later download of the same
// analysis are byte-identical.
func Assemble(source string, result *models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(banner(1, "RAW TEXT"))
	b.WriteString(source)
	b.WriteString("\n\n")
	b.WriteString(rawTextNote)
	b.WriteString("\n\n")

	for i, phase := range result.Phases {
		b.WriteString(banner(i+2, strings.ToUpper(phase.Name.String())))
		b.WriteString(PhaseOutput(phase))
		b.WriteString("\n\n")
		b.WriteString(indent(phase.Explanation, "   "))
		b.WriteString("\n\n")
	}

	return b.String()
}

// PhaseOutput is the output description as written to reports and
// per-phase downloads: syntax trees are pretty-printed when they parse.
func PhaseOutput(phase models.PhaseRecord) string {
	if phase.Name == models.PhaseSyntaxAnalysis {
		return render.PrettyJSON(phase.OutputDescription)
	}
	return phase.OutputDescription
}

// PhaseFilename names the download for a single phase's output,
// e.g. "lexical_analysis_output.txt".
func PhaseFilename(name models.PhaseName) string {
	return strings.ReplaceAll(strings.ToLower(name.String()), " ", "_") + "_output.txt"
}

func banner(number int, title string) string {
	return fmt.Sprintf("============ PHASE %d — %s ============\n", number, title)
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
