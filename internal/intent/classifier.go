// internal/intent/classifier.go

// Package intent classifies what the visitor is trying to accomplish.
// Classification is advisory: every failure path degrades to a fixed
// neutral fallback, never an error.
package intent

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

const classificationSystemPrompt = `You classify visitor queries for a blender brand site.

Return ONLY a JSON object, no prose:
{
  "intentType": "<one of: discovery, comparison, product-detail, use-case, specs, reviews, price, recommendation, support, partnership, gift, medical, accessibility>",
  "confidence": <0.0-1.0>,
  "entities": {"products": [], "useCases": [], "features": []},
  "journeyStage": "<exploring | comparing | deciding>"
}

Special intents take priority over shopping intents: if the query mentions
warranty, repair or troubleshooting use "support"; presents or registries use
"gift"; health conditions or dietary therapy use "medical"; disability or
ease-of-use needs use "accessibility"; wholesale, affiliate or business
inquiries use "partnership".`

// Classifier turns a raw query into a structured intent via the
// classification model role.
type Classifier struct {
	gateway gateway.Completer
	logger  logger.Logger
}

func NewClassifier(gw gateway.Completer, log logger.Logger) *Classifier {
	return &Classifier{
		gateway: gw,
		logger:  log.WithFields(map[string]interface{}{"component": "intent"}),
	}
}

// Classify returns the intent for query. On any failure (gateway error,
// unparseable response, unknown enum values) it returns the fixed fallback
// classification so the run continues with neutral assumptions.
func (c *Classifier) Classify(ctx context.Context, query string, previousQueries []string) *models.IntentClassification {
	user := "Query: " + query
	if len(previousQueries) > 0 {
		user += "\nEarlier queries this session: " + strings.Join(previousQueries, "; ")
	}
	cls, _ := c.classify(ctx, classificationSystemPrompt, user)
	return cls
}

// ClassifyWithContext classifies with behavioral signal context attached.
// Used by the signal interpreter's fallback chain. ok is false when the
// result is the neutral fallback rather than a model classification, so
// callers can distinguish a failed call from a genuine discovery result.
func (c *Classifier) ClassifyWithContext(ctx context.Context, query, signalSummary string, profile *models.UserProfile) (*models.IntentClassification, bool) {
	var sb strings.Builder
	sb.WriteString("Query: " + query)
	if signalSummary != "" {
		sb.WriteString("\nObserved behavior: " + signalSummary)
	}
	if profile != nil {
		if profile.Segment != "" {
			sb.WriteString("\nVisitor segment: " + profile.Segment)
		}
		if len(profile.ConsideredProducts) > 0 {
			sb.WriteString("\nProducts under consideration: " + strings.Join(profile.ConsideredProducts, ", "))
		}
		if profile.PurchaseReadiness > 0 {
			sb.WriteString(fmt.Sprintf("\nPurchase readiness: %.2f", profile.PurchaseReadiness))
		}
	}
	return c.classify(ctx, classificationSystemPrompt, sb.String())
}

func (c *Classifier) classify(ctx context.Context, system, user string) (*models.IntentClassification, bool) {
	text, err := c.gateway.Complete(ctx, &gateway.Request{
		Role:   gateway.RoleClassification,
		System: system,
		User:   user,
	})
	if err != nil {
		stdErr := stderrors.NewClassificationFailedError(err)
		c.logger.Warn("classification call failed, using fallback", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		return models.FallbackClassification(), false
	}

	var out models.IntentClassification
	if res := parse.JSONInto(text, &out); !res.Ok {
		stdErr := stderrors.NewClassificationFailedError(res.Err)
		c.logger.Warn("classification response unparseable, using fallback", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		return models.FallbackClassification(), false
	}

	if !models.ValidIntentType(string(out.IntentType)) {
		c.logger.Warn("classification returned unknown intent type, using fallback", map[string]interface{}{
			"intentType": string(out.IntentType),
		})
		return models.FallbackClassification(), false
	}
	if !models.ValidJourneyStage(string(out.JourneyStage)) {
		out.JourneyStage = models.StageExploring
	}
	if out.Confidence <= 0 || out.Confidence > 1 {
		out.Confidence = 0.5
	}
	if out.Entities.Products == nil {
		out.Entities.Products = []string{}
	}
	if out.Entities.UseCases == nil {
		out.Entities.UseCases = []string{}
	}
	if out.Entities.Features == nil {
		out.Entities.Features = []string{}
	}

	return &out, true
}
