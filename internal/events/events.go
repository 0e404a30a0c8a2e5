// internal/events/events.go

// Package events defines the typed stream protocol between the pipeline
// stages and the transport. Stages emit through a Sender and never see the
// HTTP layer.
package events

import (
	"encoding/json"
	"time"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// Type discriminates stream events.
type Type string

const (
	TypeGenerationStart       Type = "generation-start"
	TypeReasoningStart        Type = "reasoning-start"
	TypeReasoningStep         Type = "reasoning-step"
	TypeReasoningComplete     Type = "reasoning-complete"
	TypeBlockStart            Type = "block-start"
	TypeBlockContent          Type = "block-content"
	TypeBlockRationale        Type = "block-rationale"
	TypeImageReady            Type = "image-ready"
	TypeSuggestionEnhancement Type = "suggestion-enhancement"
	TypeGenerationComplete    Type = "generation-complete"
	TypeError                 Type = "error"
)

// Event is one stream frame: a type tag plus its JSON payload.
type Event struct {
	Type    Type
	Payload interface{}
}

// MarshalPayload serializes the payload for the wire.
func (e Event) MarshalPayload() ([]byte, error) {
	return json.Marshal(e.Payload)
}

// --- payload constructors; one per stream event type ---

// GenerationStart opens the stream. The block count is an estimate; the
// real plan does not exist until reasoning completes.
func GenerationStart(query, slug string, estimatedBlocks int) Event {
	return Event{Type: TypeGenerationStart, Payload: map[string]interface{}{
		"query":               query,
		"slug":                slug,
		"estimatedBlockCount": estimatedBlocks,
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	}}
}

func ReasoningStart(message string) Event {
	return Event{Type: TypeReasoningStart, Payload: map[string]interface{}{
		"message": message,
	}}
}

func ReasoningStep(index int, text string) Event {
	return Event{Type: TypeReasoningStep, Payload: map[string]interface{}{
		"index": index,
		"text":  text,
	}}
}

func ReasoningComplete(blockTypes []models.BlockType, confidence models.ReasoningConfidence, elapsed time.Duration) Event {
	types := make([]string, len(blockTypes))
	for i, t := range blockTypes {
		types[i] = string(t)
	}
	return Event{Type: TypeReasoningComplete, Payload: map[string]interface{}{
		"selectedBlocks": types,
		"confidence":     confidence,
		"elapsed":        elapsed.Milliseconds(),
	}}
}

func BlockStart(index int, blockType models.BlockType, fastPath bool) Event {
	payload := map[string]interface{}{
		"index": index,
		"type":  string(blockType),
	}
	if fastPath {
		payload["fastPath"] = true
	}
	return Event{Type: TypeBlockStart, Payload: payload}
}

func BlockContent(index int, block *models.GeneratedBlock) Event {
	payload := map[string]interface{}{
		"index": index,
		"type":  string(block.Type),
		"html":  block.HTML,
	}
	if block.SectionStyle != "" {
		payload["sectionStyle"] = block.SectionStyle
	}
	if block.HeroComposition != nil {
		payload["heroComposition"] = block.HeroComposition
	}
	return Event{Type: TypeBlockContent, Payload: payload}
}

func BlockRationale(index int, blockType models.BlockType, rationale string) Event {
	return Event{Type: TypeBlockRationale, Payload: map[string]interface{}{
		"index":     index,
		"type":      string(blockType),
		"rationale": rationale,
	}}
}

func ImageReady(img *models.HeroImage) Event {
	return Event{Type: TypeImageReady, Payload: map[string]interface{}{
		"image": img,
	}}
}

func SuggestionEnhancement(suggestions []string) Event {
	return Event{Type: TypeSuggestionEnhancement, Payload: map[string]interface{}{
		"suggestions": suggestions,
	}}
}

// Recommendations summarizes what the page actually rendered: the generated
// block types in stream order (hero first when it rendered) and the catalog
// entries the content mentions.
type Recommendations struct {
	BlockTypes []string `json:"blockTypes"`
	Mentions   []string `json:"mentions"`
}

// CompletePayload is the generation-complete summary.
type CompletePayload struct {
	TotalBlocks     int                    `json:"totalBlocks"`
	Duration        int64                  `json:"durationMs"`
	Intent          string                 `json:"intent"`
	NavigationPlan  models.UserJourneyPlan `json:"navigationPlan"`
	Recommendations Recommendations        `json:"recommendations"`
}

func GenerationComplete(p CompletePayload) Event {
	if p.Recommendations.BlockTypes == nil {
		p.Recommendations.BlockTypes = []string{}
	}
	if p.Recommendations.Mentions == nil {
		p.Recommendations.Mentions = []string{}
	}
	return Event{Type: TypeGenerationComplete, Payload: p}
}

func Error(code, message string) Event {
	return Event{Type: TypeError, Payload: map[string]interface{}{
		"code":    code,
		"message": message,
	}}
}
