package models

// PhaseName is one of the six fixed stages of the notional compilation
// pipeline. The string values are the labels the model is asked to produce.
type PhaseName string

const (
	PhaseLexicalAnalysis            PhaseName = "Lexical Analysis"
	PhaseSyntaxAnalysis             PhaseName = "Syntax Analysis"
	PhaseSemanticAnalysis           PhaseName = "Semantic Analysis"
	PhaseIntermediateCodeGeneration PhaseName = "Intermediate Code Generation"
	PhaseOptimization               PhaseName = "Optimization"
	PhaseCodeGeneration             PhaseName = "Code Generation"
)

// CanonicalPhases lists every phase in pipeline order.
var CanonicalPhases = []PhaseName{
	PhaseLexicalAnalysis,
	PhaseSyntaxAnalysis,
	PhaseSemanticAnalysis,
	PhaseIntermediateCodeGeneration,
	PhaseOptimization,
	PhaseCodeGeneration,
}

// PhaseLabels returns the canonical labels as plain strings, in order.
// Used for enum restrictions in model response schemas.
func PhaseLabels() []string {
	labels := make([]string, len(CanonicalPhases))
	for i, p := range CanonicalPhases {
		labels[i] = string(p)
	}
	return labels
}

// IsValid reports whether p is one of the canonical labels.
func (p PhaseName) IsValid() bool {
	return p.Index() >= 0
}

// Index returns the position of p in the canonical order, or -1.
func (p PhaseName) Index() int {
	for i, c := range CanonicalPhases {
		if c == p {
			return i
		}
	}
	return -1
}

func (p PhaseName) String() string {
	return string(p)
}
