package models

import "strings"

// AnswerOrigin records who supplied an answer.
type AnswerOrigin string

const (
	OriginPrefill AnswerOrigin = "prefill"
	OriginUser    AnswerOrigin = "user"
)

// AnswerValue holds either free text or one or more selected option values.
type AnswerValue struct {
	Text       string   `json:"text,omitempty"`
	Selections []string `json:"selections,omitempty"`
}

// TextAnswer builds a free-text answer value.
func TextAnswer(text string) AnswerValue {
	return AnswerValue{Text: text}
}

// SelectAnswer builds a select answer value.
func SelectAnswer(values ...string) AnswerValue {
	return AnswerValue{Selections: values}
}

// IsEmpty reports whether the value carries neither text nor a non-blank selection.
func (v AnswerValue) IsEmpty() bool {
	if strings.TrimSpace(v.Text) != "" {
		return false
	}
	for _, selection := range v.Selections {
		if strings.TrimSpace(selection) != "" {
			return false
		}
	}
	return true
}

// AnswerRecord is one answered question of a session.
type AnswerRecord struct {
	Ordinal int          `json:"ordinal"`
	Value   AnswerValue  `json:"value"`
	Origin  AnswerOrigin `json:"origin"`
}
