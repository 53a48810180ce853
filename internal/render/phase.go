package render

import (
	"errors"

	"github.com/rahul4469/compiler-craft/internal/models"
)

// OutputKind says how a phase's output description should be displayed.
type OutputKind string

const (
	OutputText      OutputKind = "text"
	OutputTable     OutputKind = "table"
	OutputTree      OutputKind = "tree"
	OutputEmptyTree OutputKind = "empty-tree"
)

// PhaseOutput is the display form of one phase's output description.
// Raw always holds the original text.
type PhaseOutput struct {
	Kind    OutputKind `json:"kind" yaml:"kind"`
	Raw     string     `json:"raw" yaml:"raw"`
	Table   *Table     `json:"table,omitempty" yaml:"table,omitempty"`
	Tree    *TreeNode  `json:"tree,omitempty" yaml:"tree,omitempty"`
	Outline string     `json:"outline,omitempty" yaml:"outline,omitempty"`
}

// ClassifyPhase picks the richest display the output supports. Lexical
// analysis output is tried as a table and syntax analysis output as a tree;
// everything else, and anything that fails to parse, is plain text.
func ClassifyPhase(phase models.PhaseRecord) PhaseOutput {
	out := PhaseOutput{Kind: OutputText, Raw: phase.OutputDescription}

	switch phase.Name {
	case models.PhaseLexicalAnalysis:
		if table, err := ParseTable(phase.OutputDescription); err == nil {
			out.Kind = OutputTable
			out.Table = table
		}
	case models.PhaseSyntaxAnalysis:
		tree, err := ParseTree(phase.OutputDescription)
		switch {
		case err == nil:
			out.Kind = OutputTree
			out.Tree = tree
			out.Outline = tree.Outline()
		case errors.Is(err, ErrEmptyTree):
			out.Kind = OutputEmptyTree
			out.Outline = EmptyTreeMessage
		}
	}

	return out
}
