package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationError reports the first structural violation found in an
// analysis payload. Field is a path such as "phases[2].explanation".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid analysis payload: %s %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

type jsonObject map[string]json.RawMessage

// ValidateAnalysis checks the shape of a raw analysis payload and returns
// the typed result. Either the whole payload is accepted or an error of type
// *ValidationError is returned; partially valid data is never handed back.
//
// Phase order and duplicates are not checked: the canonical order is the
// producer's responsibility.
func ValidateAnalysis(payload []byte) (*AnalysisResult, error) {
	root, err := decodeObject(payload, "payload")
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{Phases: []PhaseRecord{}}

	if result.IsValidCode, err = requireBool(root, "isValidCode", "isValidCode"); err != nil {
		return nil, err
	}

	if raw, ok := root["error"]; ok && !isNull(raw) {
		if result.Error, err = validateError(raw); err != nil {
			return nil, err
		}
	}
	if result.IsValidCode && result.Error != nil {
		return nil, invalid("error", "must be null when isValidCode is true")
	}

	raw, ok := root["phases"]
	if !ok {
		return nil, invalid("phases", "is missing")
	}
	if isNull(raw) {
		return nil, invalid("phases", "must be an array, got null")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, invalid("phases", "must be an array")
	}
	for i, item := range items {
		phase, err := validatePhase(item, fmt.Sprintf("phases[%d]", i))
		if err != nil {
			return nil, err
		}
		result.Phases = append(result.Phases, phase)
	}

	return result, nil
}

func validateError(raw json.RawMessage) (*AnalysisError, error) {
	obj, err := decodeObject(raw, "error")
	if err != nil {
		return nil, err
	}

	phase, err := requirePhaseName(obj, "error.phase")
	if err != nil {
		return nil, err
	}
	message, err := requireString(obj, "message", "error.message")
	if err != nil {
		return nil, err
	}
	suggestion, err := requireString(obj, "suggestion", "error.suggestion")
	if err != nil {
		return nil, err
	}

	return &AnalysisError{Phase: phase, Message: message, Suggestion: suggestion}, nil
}

func validatePhase(raw json.RawMessage, path string) (PhaseRecord, error) {
	obj, err := decodeObject(raw, path)
	if err != nil {
		return PhaseRecord{}, err
	}

	var rec PhaseRecord
	if rec.Name, err = requirePhaseName(obj, path+".name"); err != nil {
		return PhaseRecord{}, err
	}
	if rec.Explanation, err = requireString(obj, "explanation", path+".explanation"); err != nil {
		return PhaseRecord{}, err
	}
	if rec.InputDescription, err = requireString(obj, "inputDescription", path+".inputDescription"); err != nil {
		return PhaseRecord{}, err
	}
	if rec.OutputDescription, err = requireString(obj, "outputDescription", path+".outputDescription"); err != nil {
		return PhaseRecord{}, err
	}
	return rec, nil
}

func decodeObject(raw []byte, path string) (jsonObject, error) {
	var obj jsonObject
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, invalid(path, "must be a JSON object")
	}
	return obj, nil
}

func requirePhaseName(obj jsonObject, path string) (PhaseName, error) {
	key := path[strings.LastIndex(path, ".")+1:]
	s, err := requireString(obj, key, path)
	if err != nil {
		return "", err
	}
	name := PhaseName(s)
	if !name.IsValid() {
		return "", invalid(path, "%q is not a known phase", s)
	}
	return name, nil
}

func requireString(obj jsonObject, key, path string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", invalid(path, "is missing")
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		return "", invalid(path, "must be a string")
	}
	return s, nil
}

func requireBool(obj jsonObject, key, path string) (bool, error) {
	raw, ok := obj[key]
	if !ok {
		return false, invalid(path, "is missing")
	}
	var b bool
	if isNull(raw) || json.Unmarshal(raw, &b) != nil {
		return false, invalid(path, "must be a boolean")
	}
	return b, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
