// internal/blocks/generator.go

// Package blocks renders one page section per planned block selection.
// Rendering never fails the run: every failure mode maps to a deterministic
// fallback, a placeholder, or an omitted block.
package blocks

import (
	"context"
	"strings"

	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/metrics"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/parse"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/gateway"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// GenerateInput carries everything one block render needs.
type GenerateInput struct {
	Selection        models.BlockSelection
	Retrieval        *models.RetrievalContext
	Query            string
	Intent           *models.IntentClassification
	ProductRationale string
	HeroImage        *models.HeroImage

	// Vetted run data for the deterministic block types.
	Trace       models.ReasoningTrace
	JourneyPlan models.UserJourneyPlan

	// Optional per-run model preset, passed through to the gateway.
	Preset string
}

// Generator renders block HTML via the content model role.
type Generator struct {
	gateway gateway.Completer
	logger  logger.Logger
}

func NewGenerator(gw gateway.Completer, log logger.Logger) *Generator {
	return &Generator{
		gateway: gw,
		logger:  log.WithFields(map[string]interface{}{"component": "blocks"}),
	}
}

// Generate renders one block. Never returns an error: a generation failure
// yields the fixed placeholder, a refusal yields the product fallback card
// for product-centric types, and an empty-HTML block otherwise. Callers
// drop blocks whose HTML comes back empty.
func (g *Generator) Generate(ctx context.Context, in *GenerateInput) *models.GeneratedBlock {
	t := in.Selection.Type

	if DeterministicType(t) {
		metrics.BlocksGenerated.WithLabelValues(string(t), "deterministic").Inc()
		return g.deterministic(in)
	}

	tpl, ok := templateFor(t)
	if !ok {
		g.logger.Warn("no template for block type, skipping", map[string]interface{}{
			"blockType": string(t),
		})
		metrics.BlocksGenerated.WithLabelValues(string(t), "skipped").Inc()
		return &models.GeneratedBlock{Type: t, HTML: ""}
	}

	system := tpl.instruction + "\n\nData (the only content you may use):\n" + excerptFor(t, in.Retrieval)
	user := buildUserPrompt(in)

	text, err := g.gateway.Complete(ctx, &gateway.Request{
		Role:   gateway.RoleContent,
		System: system,
		User:   user,
		Preset: in.Preset,
	})
	if err != nil {
		stdErr := stderrors.NewBlockGenerationFailedError(string(t), err)
		g.logger.Error("block generation failed", map[string]interface{}{
			"blockType": string(t),
			"code":      string(stdErr.Code),
			"error":     stdErr.Details,
		})
		metrics.BlocksGenerated.WithLabelValues(string(t), "failed").Inc()
		return g.finish(in, failurePlaceholder(t))
	}

	html := parse.StripCodeFences(text)

	if isRefusal(html) {
		metrics.SafetyFallbacks.WithLabelValues(string(t)).Inc()
		if t.ProductCentric() {
			g.logger.Warn("refusal replaced with product fallback", map[string]interface{}{
				"blockType": string(t),
			})
			metrics.BlocksGenerated.WithLabelValues(string(t), "fallback").Inc()
			return g.finish(in, productFallbackCard(t, in.Retrieval))
		}
		g.logger.Warn("refusal dropped block", map[string]interface{}{
			"blockType": string(t),
		})
		metrics.BlocksGenerated.WithLabelValues(string(t), "dropped").Inc()
		return &models.GeneratedBlock{Type: t, HTML: ""}
	}

	// The hero's wrapper carries its layout class; finish owns it.
	if t != models.BlockHero {
		html = ensureWrapped(t, html)
	}
	metrics.BlocksGenerated.WithLabelValues(string(t), "ok").Inc()
	return g.finish(in, html)
}

func (g *Generator) deterministic(in *GenerateInput) *models.GeneratedBlock {
	var html string
	switch in.Selection.Type {
	case models.BlockReasoningExplained:
		html = renderReasoningExplained(in.Trace)
	case models.BlockNextSteps:
		html = renderNextSteps(in.JourneyPlan)
	case models.BlockAllergenSafety:
		html = renderAllergenSafety()
	}
	return &models.GeneratedBlock{Type: in.Selection.Type, HTML: html}
}

// finish attaches hero layout metadata. The hero's section style is chosen
// by the image's aspect ratio: wide images run full-bleed with overlaid
// text, squarer images get the split layout.
func (g *Generator) finish(in *GenerateInput, html string) *models.GeneratedBlock {
	block := &models.GeneratedBlock{Type: in.Selection.Type, HTML: html}

	if in.Selection.Type == models.BlockHero && in.HeroImage == nil {
		block.HTML = ensureWrapped(models.BlockHero, html)
		return block
	}
	if in.Selection.Type == models.BlockHero {
		style := "split-quote"
		if in.HeroImage.AspectRatio >= 1.5 {
			style = "full-bleed"
		}
		block.SectionStyle = style
		block.HeroComposition = in.HeroImage
		if html != "" && !strings.Contains(html, `class="hero`) {
			block.HTML = `<div class="hero hero-` + style + `">` + html + `</div>`
		}
	}
	return block
}

func buildUserPrompt(in *GenerateInput) string {
	var sb strings.Builder
	sb.WriteString("Visitor query: " + in.Query + "\n")
	if in.Intent != nil {
		sb.WriteString("Intent: " + string(in.Intent.IntentType) + "\n")
	}
	if in.Selection.Rationale != "" {
		sb.WriteString("Why this block: " + in.Selection.Rationale + "\n")
	}
	if in.Selection.ContentGuidance != "" {
		sb.WriteString("Content guidance: " + in.Selection.ContentGuidance + "\n")
	}
	if in.ProductRationale != "" {
		sb.WriteString("Product selection rationale: " + in.ProductRationale + "\n")
	}
	if in.Selection.Variant != "" {
		sb.WriteString("Variant: " + in.Selection.Variant + "\n")
	}
	return sb.String()
}

// ensureWrapped wraps html in the block's container div when the model
// omitted it.
func ensureWrapped(t models.BlockType, html string) string {
	if strings.Contains(html, `class="`+string(t)) {
		return html
	}
	return `<div class="` + string(t) + `">` + html + `</div>`
}
