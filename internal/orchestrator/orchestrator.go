// internal/orchestrator/orchestrator.go

// Package orchestrator drives one generation run end to end, emitting the
// event stream as stages complete. The run is resilient everywhere except
// reasoning: classification, retrieval, signal reading, and individual
// blocks all degrade, but no block plan means no page.
package orchestrator

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/blocks"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/catalog"
	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/metrics"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/events"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/hero"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/reasoning"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/slug"
)

// Classifier produces the run's intent.
type Classifier interface {
	Classify(ctx context.Context, query string, previousQueries []string) *models.IntentClassification
}

// Interpreter reads captured signals when a context bundle is attached.
type Interpreter interface {
	Interpret(ctx context.Context, ec *models.ExtensionContext) (*models.SignalInterpretation, error)
}

// Planner is the reasoning engine.
type Planner interface {
	SelectBlocks(ctx context.Context, in *reasoning.Input) (*models.ReasoningResult, error)
}

// HeroGenerator renders the fast-path hero.
type HeroGenerator interface {
	Generate(ctx context.Context, in *hero.Input) (*models.GeneratedBlock, error)
}

// BlockGenerator renders one planned block.
type BlockGenerator interface {
	Generate(ctx context.Context, in *blocks.GenerateInput) *models.GeneratedBlock
}

// estimatedBlockCount is announced at generation-start, before reasoning
// decides the real plan: the hero plus a typical four-block page.
const estimatedBlockCount = 5

// RunInput parameterizes one generation run.
type RunInput struct {
	Query           string
	Slug            string
	PreviousQueries []string
	Extension       *models.ExtensionContext
	Preset          string
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	classifier  Classifier
	interpreter Interpreter
	catalog     catalog.Retriever
	planner     Planner
	hero        HeroGenerator
	blocks      BlockGenerator
	logger      logger.Logger
}

func New(
	classifier Classifier,
	interpreter Interpreter,
	cat catalog.Retriever,
	planner Planner,
	heroGen HeroGenerator,
	blockGen BlockGenerator,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		classifier:  classifier,
		interpreter: interpreter,
		catalog:     cat,
		planner:     planner,
		hero:        heroGen,
		blocks:      blockGen,
		logger:      log.WithFields(map[string]interface{}{"component": "orchestrator"}),
	}
}

// Run executes one generation run, sending every stream event through
// sender in order. The only fatal outcome is a reasoning failure, reported
// as a single error event.
func (o *Orchestrator) Run(ctx context.Context, in *RunInput, sender events.Sender) {
	started := time.Now()
	metrics.RunsStarted.Inc()

	runSlug := in.Slug
	if runSlug == "" {
		runSlug = slug.Make(in.Query)
	}

	o.send(sender, events.GenerationStart(in.Query, runSlug, estimatedBlockCount))

	// Classification and retrieval run in parallel; retrieval starts under
	// a provisional neutral intent since intent only tunes weighting.
	intentCh := make(chan *models.IntentClassification, 1)
	go func() {
		defer close(intentCh)
		stage := time.Now()
		intentCh <- o.classifier.Classify(ctx, in.Query, in.PreviousQueries)
		metrics.StageDuration.WithLabelValues("classification").Observe(time.Since(stage).Seconds())
	}()

	retrievalStage := time.Now()
	retrieval, err := o.catalog.Retrieve(ctx, in.Query, models.IntentDiscovery, in.PreviousQueries)
	metrics.StageDuration.WithLabelValues("retrieval").Observe(time.Since(retrievalStage).Seconds())
	if err != nil {
		// Retrieval degrades internally; an error here still leaves the run
		// viable with an empty context.
		o.logger.Warn("retrieval failed, continuing with empty context", map[string]interface{}{
			"error": err.Error(),
		})
		retrieval = &models.RetrievalContext{}
	}
	if retrieval == nil {
		retrieval = &models.RetrievalContext{}
	}

	cls := <-intentCh
	if cls == nil {
		cls = models.FallbackClassification()
	}

	// A signal interpretation supersedes the query classification wholesale.
	var interp *models.SignalInterpretation
	if in.Extension != nil && !in.Extension.Empty() && o.interpreter != nil {
		stage := time.Now()
		interp, err = o.interpreter.Interpret(ctx, in.Extension)
		metrics.StageDuration.WithLabelValues("interpretation").Observe(time.Since(stage).Seconds())
		if err != nil {
			o.logger.Warn("signal interpretation failed, keeping query classification", map[string]interface{}{
				"error": err.Error(),
			})
		} else if interp.Classification != nil {
			cls = interp.Classification
		}
	}

	o.send(sender, events.ReasoningStart("Planning your page"))

	// Hero fast path runs while reasoning thinks. Its events go straight to
	// the sender so hero content reaches the client first.
	heroDone := make(chan int, 1)
	go func() {
		count := 0
		defer func() { heroDone <- count }()
		stage := time.Now()
		heroBlock, heroErr := o.hero.Generate(ctx, &hero.Input{
			Query:     in.Query,
			Intent:    cls,
			Retrieval: retrieval,
			Preset:    in.Preset,
			OnImage: func(img *models.HeroImage) {
				o.send(sender, events.ImageReady(img))
			},
		})
		metrics.StageDuration.WithLabelValues("hero").Observe(time.Since(stage).Seconds())
		if heroErr != nil || heroBlock == nil || heroBlock.HTML == "" {
			if heroErr != nil {
				o.logger.Warn("hero fast path failed", map[string]interface{}{"error": heroErr.Error()})
			}
			return
		}
		o.send(sender, events.BlockStart(0, models.BlockHero, true))
		o.send(sender, events.BlockContent(0, heroBlock))
		o.send(sender, events.BlockRationale(0, models.BlockHero, "Immediate answer to your query"))
		count = 1
	}()

	reasoningStage := time.Now()
	result, err := o.planner.SelectBlocks(ctx, &reasoning.Input{
		Query:             in.Query,
		Intent:            cls,
		Retrieval:         retrieval,
		History:           in.PreviousQueries,
		Interpretation:    interp,
		ProfileConfidence: profileConfidence(in.Extension),
	})
	reasoningElapsed := time.Since(reasoningStage)
	metrics.StageDuration.WithLabelValues("reasoning").Observe(reasoningElapsed.Seconds())
	heroBlocks := <-heroDone

	if err != nil {
		o.logger.Error("reasoning failed, terminating run", map[string]interface{}{
			"error": err.Error(),
		})
		code := string(stderrors.ErrCodeReasoningFailed)
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			code = string(stdErr.Code)
		}
		metrics.RunsFailed.WithLabelValues(code).Inc()
		o.send(sender, events.Error(code, "Page generation could not be planned"))
		return
	}

	for i, step := range result.Reasoning.Steps() {
		o.send(sender, events.ReasoningStep(i, step))
	}

	selections := orderedSelections(result.SelectedBlocks)
	o.send(sender, events.ReasoningComplete(selectionTypes(selections), result.Confidence, reasoningElapsed))

	if len(result.UserJourneyPlan.FollowUps) > 0 {
		o.send(sender, events.SuggestionEnhancement(result.UserJourneyPlan.FollowUps))
	}

	// Explicit product selections override keyword retrieval. Unresolved
	// IDs were logged by the catalog; an empty resolution keeps the prior
	// list so product blocks still have data.
	if len(result.SelectedProducts) > 0 {
		resolved := o.catalog.ResolveProducts(ctx, selectionIDs(result.SelectedProducts))
		if len(resolved) > 0 {
			annotateSelections(resolved, result.SelectedProducts)
			retrieval.Products = resolved
		}
	}

	total := heroBlocks
	blockTypes := make([]string, 0, len(selections)+1)
	if heroBlocks > 0 {
		blockTypes = append(blockTypes, string(models.BlockHero))
	}
	var rendered []*models.GeneratedBlock
	for i, sel := range selections {
		index := heroBlocks + i
		o.send(sender, events.BlockStart(index, sel.Type, false))

		block := o.blocks.Generate(ctx, &blocks.GenerateInput{
			Selection:        sel,
			Retrieval:        retrieval,
			Query:            in.Query,
			Intent:           cls,
			ProductRationale: result.ProductSelectionRationale,
			Trace:            result.Reasoning,
			JourneyPlan:      result.UserJourneyPlan,
			Preset:           in.Preset,
		})
		if block.HTML == "" {
			continue
		}

		o.send(sender, events.BlockContent(index, block))
		o.send(sender, events.BlockRationale(index, sel.Type, sel.Rationale))
		rendered = append(rendered, block)
		blockTypes = append(blockTypes, string(block.Type))
		total++
	}

	o.send(sender, events.GenerationComplete(events.CompletePayload{
		TotalBlocks:    total,
		Duration:       time.Since(started).Milliseconds(),
		Intent:         string(cls.IntentType),
		NavigationPlan: result.UserJourneyPlan,
		Recommendations: events.Recommendations{
			BlockTypes: blockTypes,
			Mentions:   extractMentions(rendered, retrieval),
		},
	}))
	metrics.RunsCompleted.Inc()

	o.logger.Info("generation run complete", map[string]interface{}{
		"slug":       runSlug,
		"intent":     string(cls.IntentType),
		"blocks":     total,
		"durationMs": time.Since(started).Milliseconds(),
	})
}

// send delivers one event; a closed stream just stops mattering.
func (o *Orchestrator) send(sender events.Sender, e events.Event) {
	if err := sender.Send(e); err != nil && !errors.Is(err, events.ErrClosed) {
		o.logger.Warn("event send failed", map[string]interface{}{
			"eventType": string(e.Type),
			"error":     err.Error(),
		})
	}
}

// orderedSelections sorts by priority ascending, stable for equal values.
func orderedSelections(in []models.BlockSelection) []models.BlockSelection {
	out := make([]models.BlockSelection, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func selectionTypes(in []models.BlockSelection) []models.BlockType {
	types := make([]models.BlockType, len(in))
	for i, s := range in {
		types[i] = s.Type
	}
	return types
}

func selectionIDs(in []models.ProductSelection) []string {
	ids := make([]string, len(in))
	for i, s := range in {
		ids[i] = s.ID
	}
	return ids
}

// annotateSelections carries the reasoning engine's provenance onto the
// resolved products.
func annotateSelections(products []models.Product, selections []models.ProductSelection) {
	byID := make(map[string]models.ProductSelection, len(selections))
	for _, s := range selections {
		byID[s.ID] = s
	}
	for i := range products {
		if s, ok := byID[products[i].ID]; ok {
			products[i].SelectionRationale = s.Rationale
			products[i].IsPrimary = s.IsPrimary
		}
	}
}

func profileConfidence(ec *models.ExtensionContext) float64 {
	if ec == nil || ec.Profile == nil {
		return 0
	}
	return ec.Profile.PurchaseReadiness
}
