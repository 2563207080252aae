package engine

import (
	"fmt"

	"github.com/SAP-F-2025/readiness-assessment/internal/models"
)

const (
	// TotalQuestions is the fixed length of the detailed assessment.
	TotalQuestions = 15
	// CanonicalCount is the number of leading ordinals that can be pre-filled.
	CanonicalCount = 5
)

// Catalog is the ordered, read-only list of detailed-assessment questions.
type Catalog struct {
	questions []models.QuestionDefinition
}

// NewCatalog validates questions and wraps them in a Catalog.
func NewCatalog(questions []models.QuestionDefinition) (*Catalog, error) {
	if len(questions) != TotalQuestions {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", ErrInvalidCatalog, TotalQuestions, len(questions))
	}

	for i, q := range questions {
		ordinal := i + 1
		if q.Ordinal != ordinal {
			return nil, fmt.Errorf("%w: position %d carries ordinal %d", ErrInvalidCatalog, ordinal, q.Ordinal)
		}
		if q.Prompt == "" {
			return nil, fmt.Errorf("%w: question %d has no prompt", ErrInvalidCatalog, ordinal)
		}
		if !q.InputKind.Valid() {
			return nil, fmt.Errorf("%w: question %d has input kind %q", ErrInvalidCatalog, ordinal, q.InputKind)
		}
		if q.InputKind != models.FreeText && len(q.Options) == 0 {
			return nil, fmt.Errorf("%w: select question %d has no options", ErrInvalidCatalog, ordinal)
		}

		if ordinal <= CanonicalCount {
			want := models.CanonicalFields[i]
			if q.CanonicalField == nil || *q.CanonicalField != want {
				return nil, fmt.Errorf("%w: question %d must map to %s", ErrInvalidCatalog, ordinal, want)
			}
		} else if q.CanonicalField != nil {
			return nil, fmt.Errorf("%w: question %d cannot be canonical", ErrInvalidCatalog, ordinal)
		}
	}

	copied := make([]models.QuestionDefinition, len(questions))
	copy(copied, questions)
	return &Catalog{questions: copied}, nil
}

// Total returns the number of questions.
func (c *Catalog) Total() int {
	return len(c.questions)
}

// Question looks up a question by ordinal.
func (c *Catalog) Question(ordinal int) (models.QuestionDefinition, error) {
	if ordinal < 1 || ordinal > len(c.questions) {
		return models.QuestionDefinition{}, fmt.Errorf("%w: %d", ErrOrdinalOutOfRange, ordinal)
	}
	return c.questions[ordinal-1], nil
}

// MustQuestion is Question for ordinals the caller has already bounded; it panics otherwise.
func (c *Catalog) MustQuestion(ordinal int) models.QuestionDefinition {
	q, err := c.Question(ordinal)
	if err != nil {
		panic(err)
	}
	return q
}

// Questions returns a copy of every question in ordinal order.
func (c *Catalog) Questions() []models.QuestionDefinition {
	out := make([]models.QuestionDefinition, len(c.questions))
	copy(out, c.questions)
	return out
}

// CanonicalOrdinals maps each pre-fillable ordinal to its quick-quiz field.
func (c *Catalog) CanonicalOrdinals() map[int]models.CanonicalField {
	out := make(map[int]models.CanonicalField, CanonicalCount)
	for _, q := range c.questions {
		if q.CanonicalField != nil {
			out[q.Ordinal] = *q.CanonicalField
		}
	}
	return out
}

var defaultCatalog = mustCatalog(defaultQuestions())

// DefaultCatalog returns the built-in detailed assessment.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func mustCatalog(questions []models.QuestionDefinition) *Catalog {
	c, err := NewCatalog(questions)
	if err != nil {
		panic(err)
	}
	return c
}

func canonical(field models.CanonicalField) *models.CanonicalField {
	return &field
}

func options(pairs ...string) []models.QuestionOption {
	out := make([]models.QuestionOption, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.QuestionOption{Value: pairs[i], Label: pairs[i+1]})
	}
	return out
}

func blockerOptions() []models.QuestionOption {
	out := make([]models.QuestionOption, 0, len(models.MainBlockerValues))
	for _, b := range models.MainBlockerValues {
		out = append(out, models.QuestionOption{Value: string(b), Label: string(b)})
	}
	return out
}

func defaultQuestions() []models.QuestionDefinition {
	return []models.QuestionDefinition{
		{
			Ordinal:        1,
			Prompt:         "Hebben jullie belangrijkste systemen een API?",
			InputKind:      models.SingleSelect,
			CanonicalField: canonical(models.FieldHasApis),
			Options: options(
				string(models.ApisMost), "Ja, de meeste systemen",
				string(models.ApisSome), "Sommige systemen",
				string(models.ApisUnknown), "Weet ik niet",
				string(models.ApisNone), "Nee",
			),
		},
		{
			Ordinal:        2,
			Prompt:         "Hoe snel kun je bij de data die je nodig hebt?",
			InputKind:      models.SingleSelect,
			CanonicalField: canonical(models.FieldDataAccess),
			Options: options(
				string(models.DataAccessInstant), "Direct",
				string(models.DataAccessMinutes), "Binnen een paar minuten",
				string(models.DataAccessDifficult), "Lastig, kost veel tijd",
				string(models.DataAccessImpossible), "Vrijwel onmogelijk",
			),
		},
		{
			Ordinal:        3,
			Prompt:         "Hoe goed zijn jullie processen gedocumenteerd?",
			InputKind:      models.SingleSelect,
			CanonicalField: canonical(models.FieldProcessDocumentation),
			Options: options(
				string(models.ProcessDocumented), "Volledig gedocumenteerd",
				string(models.ProcessPartially), "Gedeeltelijk",
				string(models.ProcessTribal), "Zit in de hoofden van mensen",
				string(models.ProcessChaos), "Iedereen doet het anders",
			),
		},
		{
			Ordinal:        4,
			Prompt:         "Hoeveel ervaring hebben jullie met automatisering?",
			InputKind:      models.SingleSelect,
			CanonicalField: canonical(models.FieldAutomationExperience),
			Options: options(
				string(models.AutomationAdvanced), "Veel, we automatiseren structureel",
				string(models.AutomationBasic), "Basis, een paar koppelingen",
				string(models.AutomationTrying), "We zijn aan het experimenteren",
				string(models.AutomationNone), "Nog geen",
			),
		},
		{
			Ordinal:        5,
			Prompt:         "Wat is op dit moment de grootste blokkade?",
			InputKind:      models.SingleSelect,
			CanonicalField: canonical(models.FieldMainBlocker),
			Options:        blockerOptions(),
		},
		{
			Ordinal:   6,
			Prompt:    "Welke systemen gebruiken jullie dagelijks?",
			InputKind: models.MultiSelect,
			Options: options(
				"erp", "ERP",
				"crm", "CRM",
				"accounting", "Boekhoudpakket",
				"hr", "HR-systeem",
				"custom", "Maatwerkapplicatie",
				"spreadsheets", "Spreadsheets",
			),
		},
		{
			Ordinal:   7,
			Prompt:    "Hoeveel medewerkers werken met deze systemen?",
			InputKind: models.SingleSelect,
			Options: options(
				"1-10", "1 tot 10",
				"11-50", "11 tot 50",
				"51-250", "51 tot 250",
				"250+", "Meer dan 250",
			),
		},
		{
			Ordinal:   8,
			Prompt:    "Welke processen kosten de meeste handmatige tijd?",
			InputKind: models.MultiSelect,
			Options: options(
				"invoicing", "Facturatie",
				"orders", "Orderverwerking",
				"reporting", "Rapportages",
				"support", "Klantenservice",
				"planning", "Planning",
				"administration", "Administratie",
			),
		},
		{
			Ordinal:   9,
			Prompt:    "Hoeveel uur per week gaat op aan repetitief werk?",
			InputKind: models.SingleSelect,
			Options: options(
				"lt5", "Minder dan 5 uur",
				"5-20", "5 tot 20 uur",
				"20-40", "20 tot 40 uur",
				"gt40", "Meer dan 40 uur",
			),
		},
		{
			Ordinal:   10,
			Prompt:    "Waar staat jullie data opgeslagen?",
			InputKind: models.MultiSelect,
			Options: options(
				"cloud", "In de cloud",
				"on-premise", "Op eigen servers",
				"spreadsheets", "In spreadsheets",
				"paper", "Op papier",
			),
		},
		{
			Ordinal:   11,
			Prompt:    "Hoe beoordeel je de kwaliteit van jullie data?",
			InputKind: models.SingleSelect,
			Options: options(
				"high", "Hoog",
				"reasonable", "Redelijk",
				"mixed", "Wisselend",
				"low", "Laag",
			),
		},
		{
			Ordinal:   12,
			Prompt:    "Welke IT-capaciteit is intern beschikbaar?",
			InputKind: models.SingleSelect,
			Options: options(
				"team", "Een eigen IT-team",
				"single", "Eén persoon",
				"external", "We besteden IT uit",
				"none", "Geen",
			),
		},
		{
			Ordinal:   13,
			Prompt:    "Welk budget is er dit jaar voor automatisering?",
			InputKind: models.SingleSelect,
			Options: options(
				"lt10k", "Minder dan 10.000 euro",
				"10k-50k", "10.000 tot 50.000 euro",
				"50k-150k", "50.000 tot 150.000 euro",
				"gt150k", "Meer dan 150.000 euro",
				"unknown", "Nog niet bekend",
			),
		},
		{
			Ordinal:   14,
			Prompt:    "Binnen welke termijn wil je resultaat zien?",
			InputKind: models.SingleSelect,
			Options: options(
				"3m", "Binnen 3 maanden",
				"6m", "Binnen 6 maanden",
				"12m", "Binnen een jaar",
				"none", "Geen haast",
			),
		},
		{
			Ordinal:   15,
			Prompt:    "Wat zou voor jullie het grootste succes van automatisering zijn?",
			InputKind: models.FreeText,
		},
	}
}
