// internal/models/reasoning.go
package models

// ReasoningTrace is the structured explanation a run produces for its
// block choices.
type ReasoningTrace struct {
	IntentAnalysis         string   `json:"intentAnalysis"`
	NeedsAssessment        string   `json:"needsAssessment"`
	AlternativesConsidered []string `json:"alternativesConsidered"`
	FinalDecision          string   `json:"finalDecision"`
}

// Steps flattens the trace into the ordered list streamed as reasoning-step
// events.
func (t ReasoningTrace) Steps() []string {
	steps := make([]string, 0, 3+len(t.AlternativesConsidered))
	if t.IntentAnalysis != "" {
		steps = append(steps, t.IntentAnalysis)
	}
	if t.NeedsAssessment != "" {
		steps = append(steps, t.NeedsAssessment)
	}
	steps = append(steps, t.AlternativesConsidered...)
	if t.FinalDecision != "" {
		steps = append(steps, t.FinalDecision)
	}
	return steps
}

// UserJourneyPlan is the navigation plan attached to a reasoning result.
type UserJourneyPlan struct {
	CurrentStage JourneyStage `json:"currentStage"`
	NextAction   string       `json:"nextAction"`
	FollowUps    []string     `json:"followUps"`
}

// ReasoningConfidence reports two separate confidences: how well the query
// is understood, and how confidently a single product stands out. High
// intent confidence alone is never license to recommend a specific product.
type ReasoningConfidence struct {
	Intent       float64 `json:"intent"`
	ProductMatch float64 `json:"productMatch"`
}

// ProductSelection is a pointer plus provenance, not a copy of the product.
// Resolved against the catalog before use.
type ProductSelection struct {
	ID          string `json:"id"`
	Rationale   string `json:"rationale"`
	IsPrimary   bool   `json:"isPrimary"`
	ContextType string `json:"contextType"`
}

// ReasoningResult is produced exactly once per run.
type ReasoningResult struct {
	SelectedBlocks            []BlockSelection    `json:"selectedBlocks"`
	Reasoning                 ReasoningTrace      `json:"reasoning"`
	UserJourneyPlan           UserJourneyPlan     `json:"userJourneyPlan"`
	Confidence                ReasoningConfidence `json:"confidence"`
	SelectedProducts          []ProductSelection  `json:"selectedProducts,omitempty"`
	ProductSelectionRationale string              `json:"productSelectionRationale,omitempty"`
}
