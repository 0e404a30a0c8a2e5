// internal/models/intent.go
package models

// IntentType classifies what the user is trying to accomplish.
type IntentType string

const (
	IntentDiscovery      IntentType = "discovery"
	IntentComparison     IntentType = "comparison"
	IntentProductDetail  IntentType = "product-detail"
	IntentUseCase        IntentType = "use-case"
	IntentSpecs          IntentType = "specs"
	IntentReviews        IntentType = "reviews"
	IntentPrice          IntentType = "price"
	IntentRecommendation IntentType = "recommendation"
	IntentSupport        IntentType = "support"
	IntentPartnership    IntentType = "partnership"
	IntentGift           IntentType = "gift"
	IntentMedical        IntentType = "medical"
	IntentAccessibility  IntentType = "accessibility"
)

// JourneyStage is the coarse position in the purchase funnel.
type JourneyStage string

const (
	StageExploring JourneyStage = "exploring"
	StageComparing JourneyStage = "comparing"
	StageDeciding  JourneyStage = "deciding"
)

// IntentEntities are the entities extracted from the query.
type IntentEntities struct {
	Products   []string `json:"products"`
	UseCases   []string `json:"useCases"`
	Features   []string `json:"features"`
	PriceRange string   `json:"priceRange,omitempty"`
}

// IntentClassification is the structured intent produced once per run.
type IntentClassification struct {
	IntentType   IntentType     `json:"intentType"`
	Confidence   float64        `json:"confidence"`
	Entities     IntentEntities `json:"entities"`
	JourneyStage JourneyStage   `json:"journeyStage"`
}

// FallbackClassification is returned whenever classification fails or the
// model response does not parse. It is a fixed value, never an error.
func FallbackClassification() *IntentClassification {
	return &IntentClassification{
		IntentType:   IntentDiscovery,
		Confidence:   0.5,
		Entities:     IntentEntities{Products: []string{}, UseCases: []string{}, Features: []string{}},
		JourneyStage: StageExploring,
	}
}

// ValidIntentType reports whether s is a known intent type.
func ValidIntentType(s string) bool {
	switch IntentType(s) {
	case IntentDiscovery, IntentComparison, IntentProductDetail, IntentUseCase,
		IntentSpecs, IntentReviews, IntentPrice, IntentRecommendation,
		IntentSupport, IntentPartnership, IntentGift, IntentMedical, IntentAccessibility:
		return true
	}
	return false
}

// ValidJourneyStage reports whether s is a known journey stage.
func ValidJourneyStage(s string) bool {
	switch JourneyStage(s) {
	case StageExploring, StageComparing, StageDeciding:
		return true
	}
	return false
}
