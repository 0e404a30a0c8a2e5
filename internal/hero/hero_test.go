// internal/hero/hero_test.go
package hero

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/blocks"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

type fakeCatalog struct {
	image *models.HeroImage
	err   error
}

func (f *fakeCatalog) Retrieve(_ context.Context, _ string, _ models.IntentType, _ []string) (*models.RetrievalContext, error) {
	return &models.RetrievalContext{}, nil
}
func (f *fakeCatalog) ResolveProducts(_ context.Context, _ []string) []models.Product { return nil }
func (f *fakeCatalog) SelectImage(_ context.Context, _ string, _ models.IntentType, _ []string) (*models.HeroImage, error) {
	return f.image, f.err
}

type fakeRenderer struct {
	lastInput *blocks.GenerateInput
}

func (f *fakeRenderer) Generate(_ context.Context, in *blocks.GenerateInput) *models.GeneratedBlock {
	f.lastInput = in
	return &models.GeneratedBlock{
		Type:            models.BlockHero,
		HTML:            `<div class="hero"><h1>Blend anything</h1></div>`,
		HeroComposition: in.HeroImage,
	}
}

func TestGenerate_SyntheticSelection(t *testing.T) {
	renderer := &fakeRenderer{}
	g := NewGenerator(&fakeCatalog{image: &models.HeroImage{URL: "/x.jpg", AspectRatio: 1.78}}, renderer, logger.NewNoOpLogger())

	block, err := g.Generate(context.Background(), &Input{
		Query:  "best blender for smoothies",
		Intent: models.FallbackClassification(),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.BlockHero, block.Type)
	assert.Equal(t, models.BlockHero, renderer.lastInput.Selection.Type)
	assert.Equal(t, 1, renderer.lastInput.Selection.Priority)
	assert.Equal(t, "fast path", renderer.lastInput.Selection.Rationale)
}

func TestGenerate_OnImageFiresBeforeRender(t *testing.T) {
	renderer := &fakeRenderer{}
	img := &models.HeroImage{URL: "/assets/hero/smoothie-pour.jpg", AspectRatio: 1.78}
	g := NewGenerator(&fakeCatalog{image: img}, renderer, logger.NewNoOpLogger())

	var seen *models.HeroImage
	_, err := g.Generate(context.Background(), &Input{
		Query:  "smoothies",
		Intent: models.FallbackClassification(),
		OnImage: func(i *models.HeroImage) {
			seen = i
			assert.Nil(t, renderer.lastInput, "image callback must precede rendering")
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, img, seen)
	assert.Equal(t, img, renderer.lastInput.HeroImage)
}

func TestGenerate_ImageFailureDegrades(t *testing.T) {
	renderer := &fakeRenderer{}
	g := NewGenerator(&fakeCatalog{err: errors.New("table unavailable")}, renderer, logger.NewNoOpLogger())

	called := false
	block, err := g.Generate(context.Background(), &Input{
		Query:   "smoothies",
		Intent:  models.FallbackClassification(),
		OnImage: func(*models.HeroImage) { called = true },
	})

	assert.NoError(t, err)
	assert.NotNil(t, block)
	assert.Nil(t, renderer.lastInput.HeroImage)
	assert.False(t, called)
}

func TestGenerate_CancelledContext(t *testing.T) {
	g := NewGenerator(&fakeCatalog{err: context.Canceled}, &fakeRenderer{}, logger.NewNoOpLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block, err := g.Generate(ctx, &Input{Query: "smoothies", Intent: models.FallbackClassification()})

	assert.Error(t, err)
	assert.Nil(t, block)
}
