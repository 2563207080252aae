package models

// ApiAvailability answers "do your core systems expose APIs?"
type ApiAvailability string

const (
	ApisMost    ApiAvailability = "most"
	ApisSome    ApiAvailability = "some"
	ApisUnknown ApiAvailability = "unknown"
	ApisNone    ApiAvailability = "none"
)

// DataAccess answers "how fast can you get at your data?"
type DataAccess string

const (
	DataAccessInstant    DataAccess = "instant"
	DataAccessMinutes    DataAccess = "minutes"
	DataAccessDifficult  DataAccess = "difficult"
	DataAccessImpossible DataAccess = "impossible"
)

// ProcessDocumentation answers "how well are your processes written down?"
type ProcessDocumentation string

const (
	ProcessDocumented ProcessDocumentation = "documented"
	ProcessPartially  ProcessDocumentation = "partially"
	ProcessTribal     ProcessDocumentation = "tribal"
	ProcessChaos      ProcessDocumentation = "chaos"
)

// AutomationExperience answers "how much automation have you done already?"
type AutomationExperience string

const (
	AutomationAdvanced AutomationExperience = "advanced"
	AutomationBasic    AutomationExperience = "basic"
	AutomationTrying   AutomationExperience = "trying"
	AutomationNone     AutomationExperience = "none"
)

// MainBlocker is one of the fixed blocker phrases of the quick quiz.
type MainBlocker string

const (
	BlockerLegacySystems MainBlocker = "Legacy systemen zonder koppelingen"
	BlockerScatteredData MainBlocker = "Data verspreid over losse systemen"
	BlockerUndocumented  MainBlocker = "Processen niet vastgelegd"
	BlockerKnowledge     MainBlocker = "Gebrek aan technische kennis"
	BlockerResistance    MainBlocker = "Weerstand binnen de organisatie"
	BlockerBusinessCase  MainBlocker = "Onduidelijke business case"
	BlockerBudget        MainBlocker = "Budget/resources beperkt"
	BlockerOther         MainBlocker = "Anders"
)

var (
	ApiAvailabilityValues      = []ApiAvailability{ApisMost, ApisSome, ApisUnknown, ApisNone}
	DataAccessValues           = []DataAccess{DataAccessInstant, DataAccessMinutes, DataAccessDifficult, DataAccessImpossible}
	ProcessDocumentationValues = []ProcessDocumentation{ProcessDocumented, ProcessPartially, ProcessTribal, ProcessChaos}
	AutomationValues           = []AutomationExperience{AutomationAdvanced, AutomationBasic, AutomationTrying, AutomationNone}
	MainBlockerValues          = []MainBlocker{
		BlockerLegacySystems,
		BlockerScatteredData,
		BlockerUndocumented,
		BlockerKnowledge,
		BlockerResistance,
		BlockerBusinessCase,
		BlockerBudget,
		BlockerOther,
	}
)

func (v ApiAvailability) Valid() bool      { return contains(ApiAvailabilityValues, v) }
func (v DataAccess) Valid() bool           { return contains(DataAccessValues, v) }
func (v ProcessDocumentation) Valid() bool { return contains(ProcessDocumentationValues, v) }
func (v AutomationExperience) Valid() bool { return contains(AutomationValues, v) }
func (v MainBlocker) Valid() bool          { return contains(MainBlockerValues, v) }

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// CanonicalField names a quick-quiz field that pre-fills a detailed question.
type CanonicalField string

const (
	FieldHasApis              CanonicalField = "hasApis"
	FieldDataAccess           CanonicalField = "dataAccess"
	FieldProcessDocumentation CanonicalField = "processDocumentation"
	FieldAutomationExperience CanonicalField = "automationExperience"
	FieldMainBlocker          CanonicalField = "mainBlocker"
)

// CanonicalFields is the fixed order in which canonical fields map onto ordinals 1..5.
var CanonicalFields = []CanonicalField{
	FieldHasApis,
	FieldDataAccess,
	FieldProcessDocumentation,
	FieldAutomationExperience,
	FieldMainBlocker,
}

// QuickQuizAnswers are the five categorical answers the score is computed from.
type QuickQuizAnswers struct {
	HasApis              ApiAvailability      `json:"hasApis" validate:"required,has_apis"`
	DataAccess           DataAccess           `json:"dataAccess" validate:"required,data_access"`
	ProcessDocumentation ProcessDocumentation `json:"processDocumentation" validate:"required,process_documentation"`
	AutomationExperience AutomationExperience `json:"automationExperience" validate:"required,automation_experience"`
	MainBlocker          MainBlocker          `json:"mainBlocker" validate:"required,max=200"`
}

// QuickQuizSnapshot is the hand-off object written by the quick quiz.
// Every field is optional; an empty string means absent.
type QuickQuizSnapshot struct {
	HasApis              ApiAvailability      `json:"hasApis,omitempty"`
	DataAccess           DataAccess           `json:"dataAccess,omitempty"`
	ProcessDocumentation ProcessDocumentation `json:"processDocumentation,omitempty"`
	AutomationExperience AutomationExperience `json:"automationExperience,omitempty"`
	MainBlocker          MainBlocker          `json:"mainBlocker,omitempty"`
	QuickCheckScore      *int                 `json:"quickCheckScore,omitempty"`
	QuickCheckLevel      string               `json:"quickCheckLevel,omitempty"`
	Source               string               `json:"source,omitempty"`
	Timestamp            string               `json:"timestamp,omitempty"`
}

// Normalize returns a copy with every out-of-domain canonical value cleared.
func (s QuickQuizSnapshot) Normalize() QuickQuizSnapshot {
	if !s.HasApis.Valid() {
		s.HasApis = ""
	}
	if !s.DataAccess.Valid() {
		s.DataAccess = ""
	}
	if !s.ProcessDocumentation.Valid() {
		s.ProcessDocumentation = ""
	}
	if !s.AutomationExperience.Valid() {
		s.AutomationExperience = ""
	}
	if !s.MainBlocker.Valid() {
		s.MainBlocker = ""
	}
	if s.QuickCheckScore != nil && (*s.QuickCheckScore < 0 || *s.QuickCheckScore > 100) {
		s.QuickCheckScore = nil
	}
	return s
}

// Value returns the domain-valid value of a canonical field, or "" when absent.
func (s QuickQuizSnapshot) Value(field CanonicalField) string {
	switch field {
	case FieldHasApis:
		if s.HasApis.Valid() {
			return string(s.HasApis)
		}
	case FieldDataAccess:
		if s.DataAccess.Valid() {
			return string(s.DataAccess)
		}
	case FieldProcessDocumentation:
		if s.ProcessDocumentation.Valid() {
			return string(s.ProcessDocumentation)
		}
	case FieldAutomationExperience:
		if s.AutomationExperience.Valid() {
			return string(s.AutomationExperience)
		}
	case FieldMainBlocker:
		if s.MainBlocker.Valid() {
			return string(s.MainBlocker)
		}
	}
	return ""
}

// Answers projects the snapshot onto the score calculator input.
func (s QuickQuizSnapshot) Answers() QuickQuizAnswers {
	return QuickQuizAnswers{
		HasApis:              s.HasApis,
		DataAccess:           s.DataAccess,
		ProcessDocumentation: s.ProcessDocumentation,
		AutomationExperience: s.AutomationExperience,
		MainBlocker:          s.MainBlocker,
	}
}

// IsEmpty reports whether no canonical field is present.
func (s QuickQuizSnapshot) IsEmpty() bool {
	for _, field := range CanonicalFields {
		if s.Value(field) != "" {
			return false
		}
	}
	return true
}
