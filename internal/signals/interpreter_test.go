// internal/signals/interpreter_test.go
package signals

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/gateway"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

type fakeCompleter struct {
	response string
	err      error
	lastReq  *gateway.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req *gateway.Request) (string, error) {
	f.lastReq = req
	return f.response, f.err
}

type fakeClassifier struct {
	result *models.IntentClassification
	called bool
}

func (f *fakeClassifier) ClassifyWithContext(_ context.Context, _, _ string, _ *models.UserProfile) (*models.IntentClassification, bool) {
	f.called = true
	if f.result != nil {
		return f.result, true
	}
	return models.FallbackClassification(), false
}

func testContext() *models.ExtensionContext {
	return &models.ExtensionContext{
		Query: "best blender for smoothies",
		Signals: []models.Signal{
			{Type: "page-view", Title: "Ascent X5", Timestamp: time.Now()},
			{Type: "search", Query: "smoothie blender", Timestamp: time.Now()},
		},
		Profile:   &models.UserProfile{Segment: "home-chef"},
		Timestamp: time.Now(),
	}
}

func TestInterpret_EmptyBundleErrors(t *testing.T) {
	i := NewInterpreter(&fakeCompleter{}, &fakeClassifier{}, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), &models.ExtensionContext{})

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestInterpret_WellFormedResponse(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"primaryIntent": "Wants a smoothie-focused machine",
		"specificNeeds": ["daily smoothies", "easy cleanup"],
		"emotionalContext": "enthusiastic, early research",
		"journeyStage": "exploring",
		"classification": {"intentType": "use-case", "confidence": 0.88, "entities": {"products": [], "useCases": ["smoothies"], "features": []}, "journeyStage": "exploring"},
		"guidance": {"preferredBlocks": ["recipe-cards", "use-cases"], "avoidedBlocks": ["comparison-table"], "heroTone": "energetic"}
	}`}
	i := NewInterpreter(fake, &fakeClassifier{}, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), testContext())

	assert.NoError(t, err)
	assert.Equal(t, "Wants a smoothie-focused machine", got.PrimaryIntent)
	assert.Equal(t, models.IntentUseCase, got.Classification.IntentType)
	assert.Equal(t, "energetic", got.Guidance.HeroTone)
	assert.Contains(t, got.Guidance.PreferredBlocks, models.BlockRecipeCards)
	assert.Contains(t, fake.lastReq.User, "Ascent X5")
	assert.Contains(t, fake.lastReq.User, "home-chef")
}

func TestInterpret_GatewayErrorUsesClassifier(t *testing.T) {
	cls := &fakeClassifier{result: &models.IntentClassification{
		IntentType:   models.IntentComparison,
		Confidence:   0.75,
		Entities:     models.IntentEntities{Products: []string{}, UseCases: []string{}, Features: []string{}},
		JourneyStage: models.StageComparing,
	}}
	i := NewInterpreter(&fakeCompleter{err: errors.New("timeout")}, cls, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), testContext())

	assert.NoError(t, err)
	assert.True(t, cls.called)
	assert.Equal(t, models.IntentComparison, got.Classification.IntentType)
	assert.Equal(t, models.StageComparing, got.JourneyStage)
}

func TestInterpret_GenuineDiscoveryClassificationKept(t *testing.T) {
	// A model-produced discovery/0.5 result is a real classification, not a
	// fallback; the profile heuristics must not override it.
	cls := &fakeClassifier{result: &models.IntentClassification{
		IntentType:   models.IntentDiscovery,
		Confidence:   0.5,
		Entities:     models.IntentEntities{Products: []string{}, UseCases: []string{}, Features: []string{}},
		JourneyStage: models.StageExploring,
	}}
	ec := testContext()
	ec.Profile = &models.UserProfile{Segment: "gift"}
	i := NewInterpreter(&fakeCompleter{err: errors.New("down")}, cls, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), ec)

	assert.NoError(t, err)
	assert.True(t, cls.called)
	assert.Equal(t, models.IntentDiscovery, got.Classification.IntentType)
}

func TestInterpret_HeuristicGiftSegment(t *testing.T) {
	ec := testContext()
	ec.Profile = &models.UserProfile{Segment: "gift"}
	i := NewInterpreter(&fakeCompleter{err: errors.New("down")}, &fakeClassifier{}, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), ec)

	assert.NoError(t, err)
	assert.Equal(t, models.IntentGift, got.Classification.IntentType)
	assert.Equal(t, models.StageDeciding, got.Classification.JourneyStage)
}

func TestInterpret_HeuristicConsideredProducts(t *testing.T) {
	ec := testContext()
	ec.Profile = &models.UserProfile{ConsideredProducts: []string{"a3500", "p750"}}
	i := NewInterpreter(&fakeCompleter{err: errors.New("down")}, &fakeClassifier{}, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), ec)

	assert.NoError(t, err)
	assert.Equal(t, models.IntentComparison, got.Classification.IntentType)
	assert.Equal(t, []string{"a3500", "p750"}, got.Classification.Entities.Products)
}

func TestInterpret_HeuristicPurchaseReadiness(t *testing.T) {
	ec := testContext()
	ec.Profile = &models.UserProfile{PurchaseReadiness: 0.8}
	i := NewInterpreter(&fakeCompleter{err: errors.New("down")}, &fakeClassifier{}, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), ec)

	assert.NoError(t, err)
	assert.Equal(t, models.IntentRecommendation, got.Classification.IntentType)
}

func TestInterpret_HeuristicDefaultDiscovery(t *testing.T) {
	ec := testContext()
	ec.Profile = nil
	i := NewInterpreter(&fakeCompleter{err: errors.New("down")}, nil, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), ec)

	assert.NoError(t, err)
	assert.Equal(t, models.IntentDiscovery, got.Classification.IntentType)
}

func TestInterpret_ResponseMissingClassificationRepaired(t *testing.T) {
	fake := &fakeCompleter{response: `{"primaryIntent": "browsing", "specificNeeds": [], "emotionalContext": "calm", "journeyStage": "exploring"}`}
	cls := &fakeClassifier{result: &models.IntentClassification{
		IntentType:   models.IntentDiscovery,
		Confidence:   0.6,
		Entities:     models.IntentEntities{Products: []string{}, UseCases: []string{}, Features: []string{}},
		JourneyStage: models.StageExploring,
	}}
	i := NewInterpreter(fake, cls, logger.NewNoOpLogger())

	got, err := i.Interpret(context.Background(), testContext())

	assert.NoError(t, err)
	assert.NotNil(t, got.Classification)
	assert.True(t, cls.called)
}
