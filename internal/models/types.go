package models

// PhaseRecord is the model's description of one phase for a submitted
// snippet. Records are never modified after validation.
type PhaseRecord struct {
	Name              PhaseName `json:"name" yaml:"name"`
	Explanation       string    `json:"explanation" yaml:"explanation"`
	InputDescription  string    `json:"inputDescription" yaml:"inputDescription"`
	OutputDescription string    `json:"outputDescription" yaml:"outputDescription"`
}

// AnalysisError describes where and why the submitted code is invalid.
type AnalysisError struct {
	Phase      PhaseName `json:"phase" yaml:"phase"`
	Message    string    `json:"message" yaml:"message"`
	Suggestion string    `json:"suggestion" yaml:"suggestion"`
}

// AnalysisResult is the validated analysis payload for one snippet.
// Error is nil whenever IsValidCode is true. Phases is never nil so that it
// always serializes as a JSON array.
type AnalysisResult struct {
	IsValidCode bool           `json:"isValidCode" yaml:"isValidCode"`
	Error       *AnalysisError `json:"error" yaml:"error"`
	Phases      []PhaseRecord  `json:"phases" yaml:"phases"`
}

// Phase returns the record at index i, or false when i is out of range.
func (r *AnalysisResult) Phase(i int) (PhaseRecord, bool) {
	if r == nil || i < 0 || i >= len(r.Phases) {
		return PhaseRecord{}, false
	}
	return r.Phases[i], true
}

// ChatRole identifies who authored a chat turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the follow-up conversation. The history is
// append-only and owned by the client for the lifetime of one analysis.
type ChatMessage struct {
	Role    ChatRole `json:"role" yaml:"role"`
	Content string   `json:"content" yaml:"content"`
}

// IsValid reports whether the message carries a known role.
func (m ChatMessage) IsValid() bool {
	return m.Role == RoleUser || m.Role == RoleModel
}
