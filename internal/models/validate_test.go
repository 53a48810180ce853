package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAnalysis_MinimalInvalidCode(t *testing.T) {
	payload := `{"isValidCode":false,"error":{"phase":"Lexical Analysis","message":"m","suggestion":"s"},"phases":[]}`

	result, err := ValidateAnalysis([]byte(payload))
	require.NoError(t, err)

	want := &AnalysisResult{
		IsValidCode: false,
		Error:       &AnalysisError{Phase: PhaseLexicalAnalysis, Message: "m", Suggestion: "s"},
		Phases:      []PhaseRecord{},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("ValidateAnalysis() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateAnalysis_ValidCodeKeepsPhaseOrder(t *testing.T) {
	payload := `{
		"isValidCode": true,
		"error": null,
		"phases": [
			{"name":"Syntax Analysis","explanation":"e2","inputDescription":"i2","outputDescription":"o2"},
			{"name":"Lexical Analysis","explanation":"e1","inputDescription":"i1","outputDescription":"o1"},
			{"name":"Lexical Analysis","explanation":"e1","inputDescription":"i1","outputDescription":"o1"}
		]
	}`

	result, err := ValidateAnalysis([]byte(payload))
	require.NoError(t, err)
	assert.True(t, result.IsValidCode)
	assert.Nil(t, result.Error)
	require.Len(t, result.Phases, 3)
	assert.Equal(t, PhaseSyntaxAnalysis, result.Phases[0].Name)
	assert.Equal(t, PhaseLexicalAnalysis, result.Phases[1].Name)
}

func TestValidateAnalysis_ErrorFieldMayBeAbsent(t *testing.T) {
	result, err := ValidateAnalysis([]byte(`{"isValidCode":false,"phases":[]}`))
	require.NoError(t, err)
	assert.Nil(t, result.Error)
	assert.NotNil(t, result.Phases)
}

func TestValidateAnalysis_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{"not json", `{not json`, "payload"},
		{"null payload", `null`, "payload"},
		{"array payload", `[]`, "payload"},
		{"missing isValidCode", `{"phases":[]}`, "isValidCode"},
		{"isValidCode string", `{"isValidCode":"true","phases":[]}`, "isValidCode"},
		{"missing phases", `{"isValidCode":false,"error":null}`, "phases"},
		{"phases null", `{"isValidCode":false,"phases":null}`, "phases"},
		{"phases object", `{"isValidCode":false,"phases":{}}`, "phases"},
		{"error not object", `{"isValidCode":false,"error":"boom","phases":[]}`, "error"},
		{"error unknown phase", `{"isValidCode":false,"error":{"phase":"Linking","message":"m","suggestion":"s"},"phases":[]}`, "error.phase"},
		{"error missing suggestion", `{"isValidCode":false,"error":{"phase":"Optimization","message":"m"},"phases":[]}`, "error.suggestion"},
		{"error with valid code", `{"isValidCode":true,"error":{"phase":"Optimization","message":"m","suggestion":"s"},"phases":[]}`, "error"},
		{"phase not object", `{"isValidCode":true,"phases":[42]}`, "phases[0]"},
		{"phase missing explanation", `{"isValidCode":true,"phases":[{"name":"Optimization","inputDescription":"i","outputDescription":"o"}]}`, "phases[0].explanation"},
		{"phase unknown name", `{"isValidCode":true,"phases":[{"name":"Parsing","explanation":"e","inputDescription":"i","outputDescription":"o"}]}`, "phases[0].name"},
		{"phase output not string", `{"isValidCode":true,"phases":[{"name":"Syntax Analysis","explanation":"e","inputDescription":"i","outputDescription":{"name":"P"}}]}`, "phases[0].outputDescription"},
		{"second phase null input", `{"isValidCode":true,"phases":[
			{"name":"Lexical Analysis","explanation":"e","inputDescription":"i","outputDescription":"o"},
			{"name":"Syntax Analysis","explanation":"e","inputDescription":null,"outputDescription":"o"}]}`, "phases[1].inputDescription"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateAnalysis([]byte(tt.payload))
			require.Error(t, err)
			assert.Nil(t, result)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
