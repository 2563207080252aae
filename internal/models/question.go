package models

// InputKind is how a detailed-assessment question is answered.
type InputKind string

const (
	SingleSelect InputKind = "single-select"
	MultiSelect  InputKind = "multi-select"
	FreeText     InputKind = "free-text"
)

func (k InputKind) Valid() bool {
	return k == SingleSelect || k == MultiSelect || k == FreeText
}

// QuestionOption is a selectable choice of a select-kind question.
type QuestionOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// QuestionDefinition is one static entry of the detailed-assessment catalog.
type QuestionDefinition struct {
	Ordinal        int              `json:"ordinal"`
	Prompt         string           `json:"prompt"`
	InputKind      InputKind        `json:"inputKind"`
	CanonicalField *CanonicalField  `json:"canonicalField"`
	Options        []QuestionOption `json:"options,omitempty"`
}

// IsCanonical reports whether the question can be pre-filled from the quick quiz.
func (q QuestionDefinition) IsCanonical() bool {
	return q.CanonicalField != nil
}

// HasOption reports whether value is one of the question's option values.
func (q QuestionDefinition) HasOption(value string) bool {
	for _, option := range q.Options {
		if option.Value == value {
			return true
		}
	}
	return false
}
