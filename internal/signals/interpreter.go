// internal/signals/interpreter.go

// Package signals reads captured browsing behavior directly and produces
// the richer interpretation that supersedes plain query classification.
package signals

import (
	"context"
	"fmt"
	"strings"

	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/parse"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/gateway"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

const interpretationSystemPrompt = `You interpret a visitor's recent browsing behavior on a blender brand site.

Return ONLY a JSON object, no prose:
{
  "primaryIntent": "<one sentence describing what the visitor is trying to accomplish>",
  "specificNeeds": ["<concrete need>"],
  "emotionalContext": "<short description of where they are emotionally>",
  "journeyStage": "<exploring | comparing | deciding>",
  "classification": {
    "intentType": "<one of: discovery, comparison, product-detail, use-case, specs, reviews, price, recommendation, support, partnership, gift, medical, accessibility>",
    "confidence": <0.0-1.0>,
    "entities": {"products": [], "useCases": [], "features": []},
    "journeyStage": "<exploring | comparing | deciding>"
  },
  "guidance": {
    "preferredBlocks": ["<block type>"],
    "avoidedBlocks": ["<block type>"],
    "heroTone": "<short tone direction for the hero copy>"
  }
}`

// ContextClassifier is the fallback classifier the interpreter degrades to.
// ok is false when the classifier itself fell back to neutral.
type ContextClassifier interface {
	ClassifyWithContext(ctx context.Context, query, signalSummary string, profile *models.UserProfile) (*models.IntentClassification, bool)
}

// Interpreter reads an extension context bundle into a SignalInterpretation.
type Interpreter struct {
	gateway    gateway.Completer
	classifier ContextClassifier
	logger     logger.Logger
}

func NewInterpreter(gw gateway.Completer, classifier ContextClassifier, log logger.Logger) *Interpreter {
	return &Interpreter{
		gateway:    gw,
		classifier: classifier,
		logger:     log.WithFields(map[string]interface{}{"component": "signals"}),
	}
}

// Interpret produces the interpretation for one captured context bundle.
// Errors only on an empty bundle; model failures degrade through
// context-aware classification and then profile heuristics.
func (i *Interpreter) Interpret(ctx context.Context, ec *models.ExtensionContext) (*models.SignalInterpretation, error) {
	if ec == nil || ec.Empty() {
		return nil, fmt.Errorf("extension context carries no signals, query, or history")
	}

	summary := summarize(ec)

	text, err := i.gateway.Complete(ctx, &gateway.Request{
		Role:   gateway.RoleReasoning,
		System: interpretationSystemPrompt,
		User:   summary,
	})
	if err != nil {
		stdErr := stderrors.NewInterpretationFailedError(err)
		i.logger.Warn("signal interpretation call failed, degrading", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		return i.degraded(ctx, ec, summary), nil
	}

	var out models.SignalInterpretation
	if res := parse.JSONInto(text, &out); !res.Ok {
		stdErr := stderrors.NewInterpretationFailedError(res.Err)
		i.logger.Warn("signal interpretation unparseable, degrading", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		return i.degraded(ctx, ec, summary), nil
	}

	if out.Classification == nil || !models.ValidIntentType(string(out.Classification.IntentType)) {
		out.Classification = i.fallbackClassification(ctx, ec, summary)
	}
	if !models.ValidJourneyStage(string(out.JourneyStage)) {
		out.JourneyStage = out.Classification.JourneyStage
	}
	return &out, nil
}

// degraded builds an interpretation without the interpretation model,
// from context-aware classification and profile heuristics.
func (i *Interpreter) degraded(ctx context.Context, ec *models.ExtensionContext, summary string) *models.SignalInterpretation {
	cls := i.fallbackClassification(ctx, ec, summary)
	return &models.SignalInterpretation{
		PrimaryIntent:  primaryIntentText(cls.IntentType),
		SpecificNeeds:  []string{},
		JourneyStage:   cls.JourneyStage,
		Classification: cls,
	}
}

func (i *Interpreter) fallbackClassification(ctx context.Context, ec *models.ExtensionContext, summary string) *models.IntentClassification {
	if i.classifier != nil {
		if cls, ok := i.classifier.ClassifyWithContext(ctx, ec.Query, summary, ec.Profile); ok {
			return cls
		}
	}
	return heuristicClassification(ec.Profile)
}

// heuristicClassification is the last rung of the fallback chain, a fixed
// rule ladder over the extension profile.
func heuristicClassification(profile *models.UserProfile) *models.IntentClassification {
	cls := models.FallbackClassification()
	if profile == nil {
		return cls
	}

	switch {
	case strings.EqualFold(profile.Segment, "gift"):
		cls.IntentType = models.IntentGift
		cls.JourneyStage = models.StageDeciding
	case len(profile.ConsideredProducts) >= 2:
		cls.IntentType = models.IntentComparison
		cls.JourneyStage = models.StageComparing
		cls.Entities.Products = append([]string{}, profile.ConsideredProducts...)
	case profile.PurchaseReadiness >= 0.7:
		cls.IntentType = models.IntentRecommendation
		cls.JourneyStage = models.StageDeciding
	}
	return cls
}

func primaryIntentText(t models.IntentType) string {
	switch t {
	case models.IntentGift:
		return "Choosing a blender as a gift"
	case models.IntentComparison:
		return "Comparing blender models before deciding"
	case models.IntentRecommendation:
		return "Ready for a concrete recommendation"
	default:
		return "Exploring the blender lineup"
	}
}

// summarize flattens the bundle into prompt text. Signal volume is bounded
// so prompts stay small regardless of how much the extension captured.
func summarize(ec *models.ExtensionContext) string {
	var sb strings.Builder
	if ec.Query != "" {
		sb.WriteString("Query: " + ec.Query + "\n")
	}
	if len(ec.PreviousQueries) > 0 {
		sb.WriteString("Earlier queries: " + strings.Join(ec.PreviousQueries, "; ") + "\n")
	}

	const maxSignals = 20
	signals := ec.Signals
	if len(signals) > maxSignals {
		signals = signals[len(signals)-maxSignals:]
	}
	for _, s := range signals {
		sb.WriteString("- " + s.Type)
		if s.Title != "" {
			sb.WriteString(": " + s.Title)
		} else if s.Query != "" {
			sb.WriteString(": " + s.Query)
		} else if s.Product != "" {
			sb.WriteString(": " + s.Product)
		} else if s.URL != "" {
			sb.WriteString(": " + s.URL)
		}
		sb.WriteString("\n")
	}

	if p := ec.Profile; p != nil {
		if p.Segment != "" {
			sb.WriteString("Segment: " + p.Segment + "\n")
		}
		if len(p.ConsideredProducts) > 0 {
			sb.WriteString("Considered products: " + strings.Join(p.ConsideredProducts, ", ") + "\n")
		}
		if len(p.Interests) > 0 {
			sb.WriteString("Interests: " + strings.Join(p.Interests, ", ") + "\n")
		}
		if len(p.DietaryConcerns) > 0 {
			sb.WriteString("Dietary concerns: " + strings.Join(p.DietaryConcerns, ", ") + "\n")
		}
		if p.PurchaseReadiness > 0 {
			sb.WriteString(fmt.Sprintf("Purchase readiness: %.2f\n", p.PurchaseReadiness))
		}
	}
	return sb.String()
}
