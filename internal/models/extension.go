// internal/models/extension.go
package models

import "time"

// Signal is one captured browsing event (page view, search, click).
type Signal struct {
	Type      string    `json:"type"`
	URL       string    `json:"url,omitempty"`
	Title     string    `json:"title,omitempty"`
	Query     string    `json:"query,omitempty"`
	Product   string    `json:"product,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UserProfile is the rule-based profile computed by the browser extension.
// Consumed read-only by the pipeline.
type UserProfile struct {
	Segment            string   `json:"segment,omitempty"`
	ConsideredProducts []string `json:"consideredProducts,omitempty"`
	Interests          []string `json:"interests,omitempty"`
	PurchaseReadiness  float64  `json:"purchaseReadiness,omitempty"`
	DietaryConcerns    []string `json:"dietaryConcerns,omitempty"`
}

// ExtensionContext is the bundle of captured browsing behavior written once
// by a prior request and read by one generation run.
type ExtensionContext struct {
	Signals         []Signal     `json:"signals,omitempty"`
	Query           string       `json:"query,omitempty"`
	PreviousQueries []string     `json:"previousQueries,omitempty"`
	Profile         *UserProfile `json:"profile,omitempty"`
	Timestamp       time.Time    `json:"timestamp"`
}

// Empty reports whether the bundle carries none of signals, query, or
// previous-query history.
func (c *ExtensionContext) Empty() bool {
	return len(c.Signals) == 0 && c.Query == "" && len(c.PreviousQueries) == 0
}

// ContentGuidance shapes block selection and hero tone when a signal
// interpretation is available.
type ContentGuidance struct {
	PreferredBlocks []BlockType `json:"preferredBlocks,omitempty"`
	AvoidedBlocks   []BlockType `json:"avoidedBlocks,omitempty"`
	HeroTone        string      `json:"heroTone,omitempty"`
}

// SignalInterpretation is the richer, direct reading of browsing signals.
// When present its Classification supersedes the query classifier's output
// for the run; it never merges with it.
type SignalInterpretation struct {
	PrimaryIntent    string                `json:"primaryIntent"`
	SpecificNeeds    []string              `json:"specificNeeds"`
	EmotionalContext string                `json:"emotionalContext"`
	JourneyStage     JourneyStage          `json:"journeyStage"`
	Classification   *IntentClassification `json:"classification"`
	Guidance         ContentGuidance       `json:"guidance"`
}
