package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahul4469/compiler-craft/internal/models"
)

func TestClassifyPhase(t *testing.T) {
	tests := []struct {
		name  string
		phase models.PhaseRecord
		kind  OutputKind
	}{
		{
			name:  "lexical table",
			phase: models.PhaseRecord{Name: models.PhaseLexicalAnalysis, OutputDescription: "|Token|Type|\n|---|---|\n|int|Keyword|"},
			kind:  OutputTable,
		},
		{
			name:  "lexical prose falls back",
			phase: models.PhaseRecord{Name: models.PhaseLexicalAnalysis, OutputDescription: "int, main, (, )"},
			kind:  OutputText,
		},
		{
			name:  "syntax tree",
			phase: models.PhaseRecord{Name: models.PhaseSyntaxAnalysis, OutputDescription: `{"name":"Program"}`},
			kind:  OutputTree,
		},
		{
			name:  "syntax empty tree",
			phase: models.PhaseRecord{Name: models.PhaseSyntaxAnalysis, OutputDescription: `{"children":[]}`},
			kind:  OutputEmptyTree,
		},
		{
			name:  "syntax malformed falls back",
			phase: models.PhaseRecord{Name: models.PhaseSyntaxAnalysis, OutputDescription: "Program -> Stmt"},
			kind:  OutputText,
		},
		{
			name:  "table text in another phase stays text",
			phase: models.PhaseRecord{Name: models.PhaseOptimization, OutputDescription: "|A|\n|---|\n|x|"},
			kind:  OutputText,
		},
		{
			name:  "intermediate code",
			phase: models.PhaseRecord{Name: models.PhaseIntermediateCodeGeneration, OutputDescription: "t1 = a + b\nc = t1"},
			kind:  OutputText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ClassifyPhase(tt.phase)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.phase.OutputDescription, out.Raw)
		})
	}
}

func TestClassifyPhase_TreeOutline(t *testing.T) {
	out := ClassifyPhase(models.PhaseRecord{
		Name:              models.PhaseSyntaxAnalysis,
		OutputDescription: `{"name":"Program","children":[{"name":"Stmt1"},{"name":"Stmt2"}]}`,
	})
	require.NotNil(t, out.Tree)
	assert.Equal(t, "Program\n├── Stmt1\n└── Stmt2\n", out.Outline)

	empty := ClassifyPhase(models.PhaseRecord{Name: models.PhaseSyntaxAnalysis, OutputDescription: `{}`})
	assert.Equal(t, EmptyTreeMessage, empty.Outline)
	assert.Nil(t, empty.Tree)
}
