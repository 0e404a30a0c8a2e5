// internal/catalog/images.go
package catalog

import (
	"context"
	"strings"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// heroImageEntry is one candidate in the curated hero image table. Keywords
// and intents drive the match score; composition hints travel with the image
// so the renderer never guesses text placement against a busy background.
type heroImageEntry struct {
	image    models.HeroImage
	keywords []string
	intents  []models.IntentType
}

var heroImages = []heroImageEntry{
	{
		image:    models.HeroImage{URL: "/assets/hero/smoothie-pour.jpg", TextPlacement: "left", BackgroundTone: "light", AspectRatio: 1.78},
		keywords: []string{"smoothie", "smoothies", "breakfast", "green", "fruit", "protein"},
		intents:  []models.IntentType{models.IntentUseCase, models.IntentDiscovery},
	},
	{
		image:    models.HeroImage{URL: "/assets/hero/soup-steam.jpg", TextPlacement: "right", BackgroundTone: "dark", AspectRatio: 1.78},
		keywords: []string{"soup", "soups", "hot", "winter", "dinner"},
		intents:  []models.IntentType{models.IntentUseCase},
	},
	{
		image:    models.HeroImage{URL: "/assets/hero/lineup-studio.jpg", TextPlacement: "center", BackgroundTone: "light", AspectRatio: 1.78},
		keywords: []string{"compare", "comparison", "versus", "vs", "which", "best", "difference"},
		intents:  []models.IntentType{models.IntentComparison, models.IntentRecommendation},
	},
	{
		image:    models.HeroImage{URL: "/assets/hero/nut-butter-swirl.jpg", TextPlacement: "left", BackgroundTone: "warm", AspectRatio: 1.33},
		keywords: []string{"nut", "butter", "almond", "peanut", "spread"},
		intents:  []models.IntentType{models.IntentUseCase},
	},
	{
		image:    models.HeroImage{URL: "/assets/hero/frozen-dessert.jpg", TextPlacement: "right", BackgroundTone: "light", AspectRatio: 1.33},
		keywords: []string{"frozen", "dessert", "sorbet", "ice", "cream", "summer"},
		intents:  []models.IntentType{models.IntentUseCase},
	},
	{
		image:    models.HeroImage{URL: "/assets/hero/gift-wrapped.jpg", TextPlacement: "center", BackgroundTone: "warm", AspectRatio: 1.78},
		keywords: []string{"gift", "present", "wedding", "holiday", "registry"},
		intents:  []models.IntentType{models.IntentGift},
	},
	{
		image:    models.HeroImage{URL: "/assets/hero/kitchen-counter.jpg", TextPlacement: "left", BackgroundTone: "neutral", AspectRatio: 1.78},
		keywords: []string{"kitchen", "counter", "home", "family", "everyday"},
		intents:  []models.IntentType{models.IntentDiscovery, models.IntentUseCase},
	},
	{
		image:    models.HeroImage{URL: "/assets/hero/closeup-blades.jpg", TextPlacement: "right", BackgroundTone: "dark", AspectRatio: 1.33},
		keywords: []string{"power", "motor", "blade", "specs", "performance", "warranty"},
		intents:  []models.IntentType{models.IntentSpecs, models.IntentSupport},
	},
}

// defaultHeroImage is returned when nothing in the table scores above zero.
var defaultHeroImage = models.HeroImage{
	URL: "/assets/hero/kitchen-counter.jpg", TextPlacement: "left", BackgroundTone: "neutral", AspectRatio: 1.78,
}

// SelectImage picks a hero image by scoring the curated table against the
// query terms, intent, and retrieved use cases. Deterministic for a given
// input; ties resolve to the earliest table entry.
func (b *Builder) SelectImage(ctx context.Context, query string, intentType models.IntentType, useCases []string) (*models.HeroImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(query))
	for _, uc := range useCases {
		terms = append(terms, strings.Fields(strings.ToLower(uc))...)
	}

	best := defaultHeroImage
	bestScore := 0
	for _, entry := range heroImages {
		score := 0
		for _, kw := range entry.keywords {
			for _, t := range terms {
				if t == kw || strings.Contains(t, kw) {
					score += 2
					break
				}
			}
		}
		for _, it := range entry.intents {
			if it == intentType {
				score++
				break
			}
		}
		if score > bestScore {
			best = entry.image
			bestScore = score
		}
	}

	img := best
	img.URL = absoluteURL(strings.TrimSuffix(b.config.SiteURL, "/"), img.URL)
	return &img, nil
}
