// internal/reasoning/engine_test.go
package reasoning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
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

const planResponse = `{
	"selectedBlocks": [
		{"type": "hero", "priority": 1, "rationale": "anchor", "contentGuidance": ""},
		{"type": "product-cards", "priority": 2, "rationale": "show the lineup", "contentGuidance": "lead with capacity"},
		{"type": "faq", "priority": 3, "rationale": "answer warranty questions", "contentGuidance": ""}
	],
	"reasoning": {
		"intentAnalysis": "Visitor is early in research",
		"needsAssessment": "Needs orientation across the lineup",
		"alternativesConsidered": ["comparison-first layout"],
		"finalDecision": "Lineup overview with FAQ support"
	},
	"userJourneyPlan": {"currentStage": "exploring", "nextAction": "compare two models", "followUps": ["Which container size fits my family?"]},
	"confidence": {"intent": 0.9, "productMatch": 0.3},
	"selectedProducts": [],
	"productSelectionRationale": ""
}`

func testInput() *Input {
	return &Input{
		Query:  "best blender for smoothies",
		Intent: models.FallbackClassification(),
		Retrieval: &models.RetrievalContext{
			Products: []models.Product{{ID: "a3500", Name: "Ascent X5", Price: "$749.95"}},
		},
	}
}

func TestSelectBlocks_ParsesPlanAndFiltersHero(t *testing.T) {
	fake := &fakeCompleter{response: planResponse}
	e := NewEngine(fake, logger.NewNoOpLogger())

	result, err := e.SelectBlocks(context.Background(), testInput())

	assert.NoError(t, err)
	assert.Len(t, result.SelectedBlocks, 2)
	for _, b := range result.SelectedBlocks {
		assert.NotEqual(t, models.BlockHero, b.Type)
	}
	assert.Equal(t, models.BlockProductCards, result.SelectedBlocks[0].Type)
	assert.Equal(t, 0.9, result.Confidence.Intent)
	assert.Equal(t, 0.3, result.Confidence.ProductMatch)
	assert.Equal(t, models.StageExploring, result.UserJourneyPlan.CurrentStage)
	assert.Len(t, result.Reasoning.Steps(), 4)
}

func TestSelectBlocks_GatewayErrorIsFatal(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("timeout")}
	e := NewEngine(fake, logger.NewNoOpLogger())

	result, err := e.SelectBlocks(context.Background(), testInput())

	assert.Nil(t, result)
	assert.Error(t, err)
	var stdErr *stderrors.StandardError
	assert.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeReasoningFailed, stdErr.Code)
}

func TestSelectBlocks_UnparseableResponseIsFatal(t *testing.T) {
	fake := &fakeCompleter{response: "Sounds great, here is my plan in prose form."}
	e := NewEngine(fake, logger.NewNoOpLogger())

	result, err := e.SelectBlocks(context.Background(), testInput())

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestSelectBlocks_EmptyPlanIsFatal(t *testing.T) {
	fake := &fakeCompleter{response: `{"selectedBlocks": [], "reasoning": {}, "userJourneyPlan": {}, "confidence": {}}`}
	e := NewEngine(fake, logger.NewNoOpLogger())

	result, err := e.SelectBlocks(context.Background(), testInput())

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestSelectBlocks_SelectedProductsSurvive(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"selectedBlocks": [{"type": "product-cards", "priority": 1, "rationale": "one clear fit", "contentGuidance": ""}],
		"reasoning": {"intentAnalysis": "a", "needsAssessment": "b", "alternativesConsidered": [], "finalDecision": "c"},
		"userJourneyPlan": {"currentStage": "deciding", "nextAction": "buy", "followUps": []},
		"confidence": {"intent": 0.95, "productMatch": 0.9},
		"selectedProducts": [{"id": "a3500", "rationale": "fits daily smoothies", "isPrimary": true, "contextType": "recommendation"}],
		"productSelectionRationale": "Strong single match"
	}`}
	e := NewEngine(fake, logger.NewNoOpLogger())

	result, err := e.SelectBlocks(context.Background(), testInput())

	assert.NoError(t, err)
	assert.Len(t, result.SelectedProducts, 1)
	assert.Equal(t, "a3500", result.SelectedProducts[0].ID)
	assert.True(t, result.SelectedProducts[0].IsPrimary)
	assert.Equal(t, "Strong single match", result.ProductSelectionRationale)
}

func TestSelectBlocks_InterpretationReachesPrompt(t *testing.T) {
	fake := &fakeCompleter{response: planResponse}
	e := NewEngine(fake, logger.NewNoOpLogger())
	in := testInput()
	in.Interpretation = &models.SignalInterpretation{
		PrimaryIntent: "Comparing two specific models",
		SpecificNeeds: []string{"quiet operation"},
		Guidance: models.ContentGuidance{
			PreferredBlocks: []models.BlockType{models.BlockComparisonTable},
		},
	}

	_, err := e.SelectBlocks(context.Background(), in)

	assert.NoError(t, err)
	assert.Contains(t, fake.lastReq.User, "Comparing two specific models")
	assert.Contains(t, fake.lastReq.User, "quiet operation")
	assert.Contains(t, fake.lastReq.User, "comparison-table")
	assert.Equal(t, gateway.RoleReasoning, fake.lastReq.Role)
}

func TestSelectBlocks_InvalidJourneyStageFallsBackToIntentStage(t *testing.T) {
	fake := &fakeCompleter{response: `{
		"selectedBlocks": [{"type": "faq", "priority": 1, "rationale": "r", "contentGuidance": ""}],
		"reasoning": {},
		"userJourneyPlan": {"currentStage": "meandering", "nextAction": "", "followUps": []},
		"confidence": {"intent": 0.5, "productMatch": 0.1}
	}`}
	e := NewEngine(fake, logger.NewNoOpLogger())

	result, err := e.SelectBlocks(context.Background(), testInput())

	assert.NoError(t, err)
	assert.Equal(t, models.StageExploring, result.UserJourneyPlan.CurrentStage)
}
