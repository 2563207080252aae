package validator

import (
	"reflect"
	"strings"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator combines struct-tag validation of API requests with answer validation.
type Validator struct {
	structValidator *validator.Validate
	answerValidator *AnswerValidator
}

// New creates a validator with the quick-quiz enum validators registered.
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator: structValidator,
		answerValidator: NewAnswerValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates struct tags and converts failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Answer returns the answer validator
func (v *Validator) Answer() *AnswerValidator {
	return v.answerValidator
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("has_apis", validateHasApis)
	validate.RegisterValidation("data_access", validateDataAccess)
	validate.RegisterValidation("process_documentation", validateProcessDocumentation)
	validate.RegisterValidation("automation_experience", validateAutomationExperience)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateHasApis(fl validator.FieldLevel) bool {
	return models.ApiAvailability(fl.Field().String()).Valid()
}

func validateDataAccess(fl validator.FieldLevel) bool {
	return models.DataAccess(fl.Field().String()).Valid()
}

func validateProcessDocumentation(fl validator.FieldLevel) bool {
	return models.ProcessDocumentation(fl.Field().String()).Valid()
}

func validateAutomationExperience(fl validator.FieldLevel) bool {
	return models.AutomationExperience(fl.Field().String()).Valid()
}
