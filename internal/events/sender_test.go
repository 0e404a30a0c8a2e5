// internal/events/sender_test.go
package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

func TestChanSender_PreservesOrder(t *testing.T) {
	s := NewChanSender(8)

	assert.NoError(t, s.Send(GenerationStart("q", "q-slug", 5)))
	assert.NoError(t, s.Send(ReasoningStart("thinking")))
	assert.NoError(t, s.Send(ReasoningStep(0, "step one")))
	s.Close()

	var types []Type
	for e := range s.Events() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []Type{TypeGenerationStart, TypeReasoningStart, TypeReasoningStep}, types)
}

func TestChanSender_SendAfterClose(t *testing.T) {
	s := NewChanSender(1)
	s.Close()

	err := s.Send(Error("REASONING_FAILED", "late"))

	assert.ErrorIs(t, err, ErrClosed)
}

func TestChanSender_CloseIdempotent(t *testing.T) {
	s := NewChanSender(1)

	assert.NotPanics(t, func() {
		s.Close()
		s.Close()
	})
}

func TestCaptureSender_RecordsTypes(t *testing.T) {
	s := &CaptureSender{}

	assert.NoError(t, s.Send(GenerationStart("q", "s", 5)))
	assert.NoError(t, s.Send(GenerationComplete(CompletePayload{TotalBlocks: 3})))

	assert.Equal(t, []Type{TypeGenerationStart, TypeGenerationComplete}, s.Types())
	assert.Len(t, s.Events(), 2)
}

func TestBlockStart_FastPathFlagOnlyWhenSet(t *testing.T) {
	fast := BlockStart(0, models.BlockHero, true)
	normal := BlockStart(1, models.BlockFAQ, false)

	fastPayload := fast.Payload.(map[string]interface{})
	normalPayload := normal.Payload.(map[string]interface{})

	assert.Equal(t, true, fastPayload["fastPath"])
	_, present := normalPayload["fastPath"]
	assert.False(t, present)
}

func TestBlockContent_HeroMetadataIncluded(t *testing.T) {
	img := &models.HeroImage{URL: "/x.jpg", AspectRatio: 1.78}
	e := BlockContent(0, &models.GeneratedBlock{
		Type:            models.BlockHero,
		HTML:            "<div></div>",
		SectionStyle:    "full-bleed",
		HeroComposition: img,
	})

	payload := e.Payload.(map[string]interface{})
	assert.Equal(t, "full-bleed", payload["sectionStyle"])
	assert.Equal(t, img, payload["heroComposition"])
}

func TestGenerationStart_CarriesEstimatedBlockCount(t *testing.T) {
	e := GenerationStart("best blender", "best-blender-1a2b3c4d", 5)

	payload := e.Payload.(map[string]interface{})
	assert.Equal(t, 5, payload["estimatedBlockCount"])

	raw, err := e.MarshalPayload()
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"estimatedBlockCount":5`)
}

func TestReasoningComplete_CarriesElapsedMilliseconds(t *testing.T) {
	e := ReasoningComplete([]models.BlockType{models.BlockFAQ}, models.ReasoningConfidence{Intent: 0.9}, 1300*time.Millisecond)

	payload := e.Payload.(map[string]interface{})
	assert.Equal(t, int64(1300), payload["elapsed"])
}

func TestGenerationComplete_EmptyRecommendationsSerializeAsLists(t *testing.T) {
	e := GenerationComplete(CompletePayload{TotalBlocks: 2, Intent: "discovery"})

	raw, err := e.MarshalPayload()

	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"recommendations":{"blockTypes":[],"mentions":[]}`)
}
