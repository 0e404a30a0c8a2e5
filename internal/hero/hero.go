// internal/hero/hero.go

// Package hero renders the page hero ahead of the full block plan so the
// stream shows content while reasoning is still running.
package hero

import (
	"context"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/blocks"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/catalog"
	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// Input is one hero render request. OnImage, when set, fires as soon as the
// hero image resolves, before any HTML exists.
type Input struct {
	Query     string
	Intent    *models.IntentClassification
	Retrieval *models.RetrievalContext
	Preset    string
	OnImage   func(*models.HeroImage)
}

// Renderer is what the fast path needs from the block generator.
type Renderer interface {
	Generate(ctx context.Context, in *blocks.GenerateInput) *models.GeneratedBlock
}

// Generator builds the hero without waiting for the reasoning engine.
type Generator struct {
	catalog  catalog.Retriever
	renderer Renderer
	logger   logger.Logger
}

func NewGenerator(cat catalog.Retriever, renderer Renderer, log logger.Logger) *Generator {
	return &Generator{
		catalog:  cat,
		renderer: renderer,
		logger:   log.WithFields(map[string]interface{}{"component": "hero"}),
	}
}

// Generate resolves the hero image and renders the hero block under a
// synthetic selection. Image selection failure degrades to a hero without
// composition metadata rather than erroring.
func (g *Generator) Generate(ctx context.Context, in *Input) (*models.GeneratedBlock, error) {
	var useCases []string
	if in.Intent != nil {
		useCases = in.Intent.Entities.UseCases
	}

	img, err := g.catalog.SelectImage(ctx, in.Query, intentType(in.Intent), useCases)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		stdErr := stderrors.NewImageSelectionFailedError(err)
		g.logger.Warn("hero image selection failed, rendering without image", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		img = nil
	}
	if img != nil && in.OnImage != nil {
		in.OnImage(img)
	}

	block := g.renderer.Generate(ctx, &blocks.GenerateInput{
		Selection: models.BlockSelection{
			Type:      models.BlockHero,
			Priority:  1,
			Rationale: "fast path",
		},
		Retrieval: in.Retrieval,
		Query:     in.Query,
		Intent:    in.Intent,
		HeroImage: img,
		Preset:    in.Preset,
	})
	return block, nil
}

func intentType(cls *models.IntentClassification) models.IntentType {
	if cls == nil {
		return models.IntentDiscovery
	}
	return cls.IntentType
}
