package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
)

// AnswerValidator checks a submitted value against a question's input kind.
type AnswerValidator struct{}

// NewAnswerValidator creates a new answer validator
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// Validate returns nil when value is an acceptable answer to question.
func (v *AnswerValidator) Validate(question models.QuestionDefinition, value models.AnswerValue) error {
	switch question.InputKind {
	case models.FreeText:
		return v.validateFreeText(value)
	case models.SingleSelect:
		return v.validateSingleSelect(question, value)
	case models.MultiSelect:
		return v.validateMultiSelect(question, value)
	default:
		return fmt.Errorf("unsupported input kind: %s", question.InputKind)
	}
}

// Normalize trims text and drops blank or repeated selections.
func (v *AnswerValidator) Normalize(value models.AnswerValue) models.AnswerValue {
	out := models.AnswerValue{Text: strings.TrimSpace(value.Text)}
	seen := make(map[string]bool, len(value.Selections))
	for _, selection := range value.Selections {
		selection = strings.TrimSpace(selection)
		if selection == "" || seen[selection] {
			continue
		}
		seen[selection] = true
		out.Selections = append(out.Selections, selection)
	}
	return out
}

func (v *AnswerValidator) validateFreeText(value models.AnswerValue) error {
	if strings.TrimSpace(value.Text) == "" {
		return fmt.Errorf("answer text cannot be empty")
	}
	return nil
}

func (v *AnswerValidator) validateSingleSelect(question models.QuestionDefinition, value models.AnswerValue) error {
	selections := v.Normalize(value).Selections
	if len(selections) == 0 {
		return fmt.Errorf("must select an option")
	}
	if len(selections) > 1 {
		return fmt.Errorf("only one option can be selected")
	}
	return v.validateOptions(question, selections)
}

func (v *AnswerValidator) validateMultiSelect(question models.QuestionDefinition, value models.AnswerValue) error {
	selections := v.Normalize(value).Selections
	if len(selections) == 0 {
		return fmt.Errorf("must select at least 1 option")
	}
	return v.validateOptions(question, selections)
}

func (v *AnswerValidator) validateOptions(question models.QuestionDefinition, selections []string) error {
	for _, selection := range selections {
		if !question.HasOption(selection) {
			return fmt.Errorf("selection '%s' does not match any option", selection)
		}
	}
	return nil
}
