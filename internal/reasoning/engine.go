// internal/reasoning/engine.go

// Package reasoning decides which page blocks to build for a run. Unlike
// classification and retrieval, reasoning failure is fatal: without a block
// plan there is no page.
package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/parse"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/gateway"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

const reasoningSystemPrompt = `You plan a generated page for a blender brand site. Given the visitor's
intent and the retrieved catalog content, select which blocks the page gets.

Available block types: hero, product-cards, comparison-table, specs-table,
faq, testimonials, recipe-cards, use-cases, article-links,
reasoning-explained, next-steps, allergen-safety.

Return ONLY a JSON object, no prose:
{
  "selectedBlocks": [{"type": "...", "variant": "", "priority": 1, "rationale": "...", "contentGuidance": "..."}],
  "reasoning": {"intentAnalysis": "...", "needsAssessment": "...", "alternativesConsidered": ["..."], "finalDecision": "..."},
  "userJourneyPlan": {"currentStage": "<exploring | comparing | deciding>", "nextAction": "...", "followUps": ["..."]},
  "confidence": {"intent": <0-1>, "productMatch": <0-1>},
  "selectedProducts": [{"id": "...", "rationale": "...", "isPrimary": true, "contextType": "..."}],
  "productSelectionRationale": "..."
}

Rules:
- priority orders blocks on the page, 1 first.
- Only recommend specific products (selectedProducts non-empty) when one
  clearly fits; high intent confidence alone is not enough.
- FAQ and testimonial blocks can only use the retrieved entries verbatim.`

// Input is everything the engine reasons over for one run.
type Input struct {
	Query             string
	Intent            *models.IntentClassification
	Retrieval         *models.RetrievalContext
	History           []string
	Interpretation    *models.SignalInterpretation
	ProfileConfidence float64
}

// Engine produces the block plan via the reasoning model role.
type Engine struct {
	gateway gateway.Completer
	logger  logger.Logger
}

func NewEngine(gw gateway.Completer, log logger.Logger) *Engine {
	return &Engine{
		gateway: gw,
		logger:  log.WithFields(map[string]interface{}{"component": "reasoning"}),
	}
}

// SelectBlocks returns the block plan for the run. A gateway failure or an
// unparseable response is an error; the caller terminates the run.
func (e *Engine) SelectBlocks(ctx context.Context, in *Input) (*models.ReasoningResult, error) {
	text, err := e.gateway.Complete(ctx, &gateway.Request{
		Role:   gateway.RoleReasoning,
		System: reasoningSystemPrompt,
		User:   buildUserPrompt(in),
	})
	if err != nil {
		return nil, stderrors.NewReasoningFailedError(fmt.Errorf("reasoning model call failed: %w", err))
	}

	var result models.ReasoningResult
	if res := parse.JSONInto(text, &result); !res.Ok {
		return nil, stderrors.NewReasoningFailedError(fmt.Errorf("reasoning response unparseable: %w", res.Err))
	}

	if len(result.SelectedBlocks) == 0 {
		return nil, stderrors.NewReasoningFailedError(fmt.Errorf("reasoning selected no blocks"))
	}

	// The hero is produced by the fast path; drop it from the plan here,
	// once, so downstream consumers never re-filter.
	blocks := result.SelectedBlocks[:0]
	for _, b := range result.SelectedBlocks {
		if b.Type == models.BlockHero {
			continue
		}
		blocks = append(blocks, b)
	}
	result.SelectedBlocks = blocks

	if !models.ValidJourneyStage(string(result.UserJourneyPlan.CurrentStage)) {
		result.UserJourneyPlan.CurrentStage = in.Intent.JourneyStage
	}

	e.logger.Info("block plan selected", map[string]interface{}{
		"blocks":           len(result.SelectedBlocks),
		"selectedProducts": len(result.SelectedProducts),
		"intentConfidence": result.Confidence.Intent,
	})
	return &result, nil
}

func buildUserPrompt(in *Input) string {
	var sb strings.Builder
	sb.WriteString("Query: " + in.Query + "\n")
	if len(in.History) > 0 {
		sb.WriteString("Earlier queries this session: " + strings.Join(in.History, "; ") + "\n")
	}

	if in.Intent != nil {
		sb.WriteString(fmt.Sprintf("Intent: %s (confidence %.2f, stage %s)\n",
			in.Intent.IntentType, in.Intent.Confidence, in.Intent.JourneyStage))
	}
	if in.Interpretation != nil {
		sb.WriteString("Behavioral reading: " + in.Interpretation.PrimaryIntent + "\n")
		if len(in.Interpretation.SpecificNeeds) > 0 {
			sb.WriteString("Specific needs: " + strings.Join(in.Interpretation.SpecificNeeds, "; ") + "\n")
		}
		if len(in.Interpretation.Guidance.PreferredBlocks) > 0 {
			sb.WriteString("Preferred blocks: " + joinBlockTypes(in.Interpretation.Guidance.PreferredBlocks) + "\n")
		}
		if len(in.Interpretation.Guidance.AvoidedBlocks) > 0 {
			sb.WriteString("Avoid blocks: " + joinBlockTypes(in.Interpretation.Guidance.AvoidedBlocks) + "\n")
		}
	}
	if in.ProfileConfidence > 0 {
		sb.WriteString(fmt.Sprintf("Profile confidence: %.2f\n", in.ProfileConfidence))
	}

	sb.WriteString("\nRetrieved catalog content:\n")
	sb.WriteString(retrievalSummary(in.Retrieval))
	return sb.String()
}

// retrievalSummary serializes a compact view of what was retrieved so the
// model plans against real availability, not assumptions.
func retrievalSummary(rc *models.RetrievalContext) string {
	if rc == nil {
		return "(nothing retrieved)\n"
	}

	type productView struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Price    string   `json:"price"`
		UseCases []string `json:"useCases,omitempty"`
	}
	products := make([]productView, 0, len(rc.Products))
	for _, p := range rc.Products {
		products = append(products, productView{ID: p.ID, Name: p.Name, Price: p.Price, UseCases: p.UseCases})
	}

	summary := map[string]interface{}{
		"products": products,
		"recipes":  len(rc.Recipes),
		"faqs":     len(rc.FAQs),
		"reviews":  len(rc.Reviews),
		"useCases": len(rc.UseCases),
		"articles": len(rc.Articles),
	}
	raw, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "(retrieval summary unavailable)\n"
	}
	return string(raw) + "\n"
}

func joinBlockTypes(types []models.BlockType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
