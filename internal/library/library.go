// Package library holds the static catalog of action types (A01..A14) that
// journeys are assembled from. The catalog is consulted when an action is
// added to a journey to seed its event type, completion mode, and guidance
// defaults; the engine never re-reads it at evaluation time.
package library

import (
	"sort"

	"github.com/gymstack/journey-api/internal/models"
)

type Item struct {
	ID                     string                `json:"id"`
	Title                  string                `json:"title"`
	EventType              string                `json:"event_type"`
	CompletionMode         models.CompletionMode `json:"completion_mode"`
	SupportedProducts      []models.Product      `json:"supported_products"`
	SupportsGuidance       bool                  `json:"supports_guidance"`
	DefaultGuidanceEnabled bool                  `json:"default_guidance_enabled"`
}

// SupportsProduct reports whether the action type can be configured for the
// given product.
func (it Item) SupportsProduct(p models.Product) bool {
	for _, sp := range it.SupportedProducts {
		if sp == p {
			return true
		}
	}
	return false
}

var items = map[string]Item{
	"A01": {
		ID: "A01", Title: "Account created", EventType: "ACCOUNT_CREATED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductMemberApp, models.ProductFitnessHub, models.ProductTrainerApp, models.ProductSmartStrength, models.ProductUnknown},
		SupportsGuidance:  true, DefaultGuidanceEnabled: true,
	},
	"A02": {
		ID: "A02", Title: "Check-in done", EventType: "CHECKIN_DONE",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductUnknown},
	},
	"A03": {
		ID: "A03", Title: "Strength test done", EventType: "STRENGTH_TEST_DONE",
		CompletionMode:    models.CompletionCounter,
		SupportedProducts: []models.Product{models.ProductSmartStrength, models.ProductTrainerApp, models.ProductMemberApp},
		SupportsGuidance:  true,
	},
	"A04": {
		ID: "A04", Title: "Flexibility test done", EventType: "FLEXIBILITY_TEST_DONE",
		CompletionMode:    models.CompletionCounter,
		SupportedProducts: []models.Product{models.ProductFitnessHub, models.ProductTrainerApp, models.ProductMemberApp},
		SupportsGuidance:  true,
	},
	"A05": {
		ID: "A05", Title: "Training plan created", EventType: "TRAINING_PLAN_CREATED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductMemberApp, models.ProductTrainerApp},
		SupportsGuidance:  true, DefaultGuidanceEnabled: true,
	},
	"A06": {
		ID: "A06", Title: "Training plan expired", EventType: "TRAINING_PLAN_EXPIRED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductMemberApp, models.ProductTrainerApp},
	},
	"A07": {
		ID: "A07", Title: "BioAge calculated", EventType: "BIOAGE_CALCULATED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductFitnessHub, models.ProductMemberApp, models.ProductTrainerApp},
		SupportsGuidance:  true,
	},
	"A08": {
		ID: "A08", Title: "Trial started", EventType: "TRIAL_STARTED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductTrainerApp, models.ProductSmartStrength, models.ProductFitnessHub, models.ProductMemberApp},
	},
	"A09": {
		ID: "A09", Title: "Trial ended", EventType: "TRIAL_ENDED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductMemberApp, models.ProductTrainerApp},
	},
	"A10": {
		ID: "A10", Title: "RFID linked", EventType: "RFID_LINKED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductFitnessHub, models.ProductTrainerApp, models.ProductMemberApp, models.ProductSmartStrength},
		SupportsGuidance:  true, DefaultGuidanceEnabled: true,
	},
	"A11": {
		ID: "A11", Title: "NFC created", EventType: "NFC_CREATED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductMemberApp, models.ProductTrainerApp},
		SupportsGuidance:  true,
	},
	"A12": {
		ID: "A12", Title: "Fitness goals defined", EventType: "FITNESS_GOALS_DEFINED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductMemberApp, models.ProductFitnessHub, models.ProductTrainerApp},
		SupportsGuidance:  true, DefaultGuidanceEnabled: true,
	},
	"A13": {
		ID: "A13", Title: "Workout tracked", EventType: "WORKOUT_TRACKED",
		CompletionMode:    models.CompletionCounter,
		SupportedProducts: []models.Product{models.ProductSmartStrength, models.ProductMemberApp, models.ProductTrainerApp},
	},
	"A14": {
		ID: "A14", Title: "Machine settings created", EventType: "MACHINE_SETTINGS_CREATED",
		CompletionMode:    models.CompletionOccurrence,
		SupportedProducts: []models.Product{models.ProductSmartStrength, models.ProductTrainerApp},
		SupportsGuidance:  true,
	},
}

// Get looks up an action type by id.
func Get(id string) (Item, bool) {
	it, ok := items[id]
	return it, ok
}

// Title returns the display title for an action type, falling back to the
// id itself when the type is unknown.
func Title(id string) string {
	if it, ok := items[id]; ok {
		return it.Title
	}
	return id
}

// All returns every catalog item sorted by id.
func All() []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type Category string

const (
	CategoryOnboarding   Category = "Onboarding"
	CategoryAssessments  Category = "Assessments"
	CategoryTrainingPlan Category = "Training Plan"
	CategoryOther        Category = "Other"
)

var categories = map[string]Category{
	"A01": CategoryOnboarding,
	"A10": CategoryOnboarding,
	"A11": CategoryOnboarding,
	"A14": CategoryOnboarding,
	"A03": CategoryAssessments,
	"A04": CategoryAssessments,
	"A07": CategoryAssessments,
	"A05": CategoryTrainingPlan,
	"A06": CategoryTrainingPlan,
	"A12": CategoryTrainingPlan,
	"A13": CategoryTrainingPlan,
	"A02": CategoryOther,
	"A08": CategoryOther,
	"A09": CategoryOther,
}

// CategoryOf returns the builder category for an action type.
func CategoryOf(id string) Category {
	if c, ok := categories[id]; ok {
		return c
	}
	return CategoryOther
}

// ByCategory groups every catalog item under its category, items sorted by id.
func ByCategory() map[Category][]Item {
	out := map[Category][]Item{
		CategoryOnboarding:   {},
		CategoryAssessments:  {},
		CategoryTrainingPlan: {},
		CategoryOther:        {},
	}
	for _, it := range All() {
		c := CategoryOf(it.ID)
		out[c] = append(out[c], it)
	}
	return out
}
