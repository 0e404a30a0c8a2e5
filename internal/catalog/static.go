// internal/catalog/static.go
package catalog

import (
	"strings"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// Embedded catalog fixture used when search is unreachable. Keeps runs
// alive with real, bounded data instead of aborting on retrieval failure.

var staticProducts = []models.Product{
	{
		ID:          "a3500",
		Name:        "Ascent X5",
		Price:       "$749.95",
		URL:         "/products/ascent-x5",
		ImageURL:    "/assets/products/ascent-x5.jpg",
		Description: "Flagship smart blender with five program settings, variable speed control, and self-detect container technology.",
		Specs:       map[string]string{"motor": "2.2 HP", "capacity": "64 oz", "programs": "5", "warranty": "10 years"},
		Features:    []string{"self-detect containers", "touchscreen controls", "wireless connectivity"},
		UseCases:    []string{"smoothies", "hot soups", "nut butters", "frozen desserts"},
	},
	{
		ID:          "e310",
		Name:        "Explorian E310",
		Price:       "$349.95",
		URL:         "/products/explorian-e310",
		ImageURL:    "/assets/products/explorian-e310.jpg",
		Description: "Entry-level workhorse with ten variable speeds and a 48-ounce container sized for everyday blends.",
		Specs:       map[string]string{"motor": "2.0 HP", "capacity": "48 oz", "programs": "0", "warranty": "5 years"},
		Features:    []string{"variable speed dial", "pulse feature", "aircraft-grade blades"},
		UseCases:    []string{"smoothies", "batters", "dressings"},
	},
	{
		ID:          "p750",
		Name:        "Professional Series 750",
		Price:       "$629.95",
		URL:         "/products/professional-750",
		ImageURL:    "/assets/products/professional-750.jpg",
		Description: "Professional-grade blender with five pre-programmed settings and a low-profile 64-ounce container.",
		Specs:       map[string]string{"motor": "2.2 HP", "capacity": "64 oz", "programs": "5", "warranty": "7 years"},
		Features:    []string{"pre-programmed settings", "low-profile container", "metal drive system"},
		UseCases:    []string{"smoothies", "hot soups", "purees"},
	},
	{
		ID:          "immersion",
		Name:        "Immersion Blender",
		Price:       "$169.95",
		URL:         "/products/immersion-blender",
		ImageURL:    "/assets/products/immersion.jpg",
		Description: "Five-speed immersion blender that brings blending power directly to the pot or pitcher.",
		Specs:       map[string]string{"motor": "625 W", "speeds": "5", "warranty": "3 years"},
		Features:    []string{"variable speed", "blade guard", "dishwasher-safe shaft"},
		UseCases:    []string{"soups", "sauces", "baby food"},
	},
}

var staticRecipes = []models.Recipe{
	{ID: "r-green-smoothie", Name: "Going Green Smoothie", URL: "/recipes/going-green-smoothie", ImageURL: "/assets/recipes/going-green.jpg", Category: "smoothies", Ingredients: []string{"spinach", "green grapes", "pineapple", "banana"}, Allergens: []string{}},
	{ID: "r-tortilla-soup", Name: "Tortilla Soup", URL: "/recipes/tortilla-soup", ImageURL: "/assets/recipes/tortilla-soup.jpg", Category: "soups", Ingredients: []string{"tomatoes", "corn tortilla", "onion", "vegetable broth"}, Allergens: []string{"corn"}},
	{ID: "r-almond-butter", Name: "Almond Butter", URL: "/recipes/almond-butter", ImageURL: "/assets/recipes/almond-butter.jpg", Category: "nut butters", Ingredients: []string{"almonds"}, Allergens: []string{"tree nuts"}},
	{ID: "r-berry-sorbet", Name: "Berry Sorbet", URL: "/recipes/berry-sorbet", ImageURL: "/assets/recipes/berry-sorbet.jpg", Category: "frozen desserts", Ingredients: []string{"mixed berries", "honey", "ice"}, Allergens: []string{}},
}

var staticFAQs = []models.FAQ{
	{ID: "f-warranty", Question: "How long is the warranty?", Answer: "Warranty coverage runs from 3 to 10 years depending on the series; Ascent models carry the full 10-year warranty.", Category: "warranty"},
	{ID: "f-hot", Question: "Can it blend hot ingredients?", Answer: "Yes. Friction heat from the blades can also bring cold ingredients to steaming hot in about six minutes.", Category: "usage"},
	{ID: "f-clean", Question: "How do I clean the container?", Answer: "Blend warm water with a drop of dish soap on high for 30 to 60 seconds, then rinse.", Category: "care"},
	{ID: "f-noise", Question: "How loud is the motor?", Answer: "Comparable to a kitchen mixer at full speed; low-speed blending is considerably quieter.", Category: "usage"},
	{ID: "f-containers", Question: "Are containers interchangeable?", Answer: "Self-detect containers work across the Ascent series; classic containers fit the C and G series bases.", Category: "compatibility"},
}

var staticReviews = []models.Review{
	{ID: "v-1", Author: "Dana M.", Rating: 5, Text: "Smoothies come out silk-smooth every single morning. Worth every penny.", Product: "Ascent X5"},
	{ID: "v-2", Author: "Priya K.", Rating: 4.5, Text: "The E310 handles frozen fruit without flinching. Loud on high, but fast.", Product: "Explorian E310"},
	{ID: "v-3", Author: "Sam R.", Rating: 5, Text: "Hot soup straight from the blender still feels like a magic trick.", Product: "Professional Series 750"},
	{ID: "v-4", Author: "Jordan L.", Rating: 4, Text: "Nut butters take patience but the texture is better than store-bought.", Product: "Ascent X5"},
}

var staticUseCases = []models.UseCase{
	{ID: "u-smoothies", Name: "Smoothies", Description: "Silky smoothies from whole fruits and leafy greens, fiber intact.", URL: "/use-cases/smoothies"},
	{ID: "u-soups", Name: "Hot Soups", Description: "Blade friction brings soup to steaming in about six minutes.", URL: "/use-cases/hot-soups"},
	{ID: "u-nut-butters", Name: "Nut Butters", Description: "Fresh single-ingredient nut butters with no added oils.", URL: "/use-cases/nut-butters"},
	{ID: "u-frozen", Name: "Frozen Desserts", Description: "Sorbets and ice creams from frozen fruit in under a minute.", URL: "/use-cases/frozen-desserts"},
}

var staticArticles = []models.Article{
	{ID: "a-choose", Title: "How to Choose Your First High-Performance Blender", URL: "/articles/choose-first-blender", Summary: "Container size, motor power, and program settings compared across series."},
	{ID: "a-smoothie-guide", Title: "The Complete Smoothie Guide", URL: "/articles/complete-smoothie-guide", Summary: "Layering order, ratios, and troubleshooting for perfect texture."},
	{ID: "a-meal-prep", Title: "Weekly Meal Prep With One Machine", URL: "/articles/meal-prep", Summary: "Sauces, dressings, and batters batched in a single session."},
}

// staticContext scores the fixtures against the query and returns a bounded
// context. Keyword overlap keeps ordering deterministic for a given query.
func staticContext(query string, intentType models.IntentType, limits config.RetrievalLimits) *models.RetrievalContext {
	terms := strings.Fields(strings.ToLower(query))

	products := rankProducts(terms, staticProducts)
	recipes := rankRecipes(terms, staticRecipes)

	return &models.RetrievalContext{
		Products: bound(products, limits.Products),
		Recipes:  bound(recipes, limits.Recipes),
		FAQs:     bound(staticFAQs, limits.FAQs),
		Reviews:  bound(staticReviews, limits.Reviews),
		UseCases: bound(staticUseCases, limits.UseCases),
		Articles: bound(staticArticles, limits.Articles),
	}
}

func rankProducts(terms []string, in []models.Product) []models.Product {
	type scored struct {
		p     models.Product
		score int
	}
	ranked := make([]scored, 0, len(in))
	for _, p := range in {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + strings.Join(p.UseCases, " "))
		s := 0
		for _, t := range terms {
			if strings.Contains(haystack, t) {
				s++
			}
		}
		ranked = append(ranked, scored{p, s})
	}
	// Stable insertion sort by score descending; the fixture list is tiny.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	out := make([]models.Product, len(ranked))
	for i, r := range ranked {
		out[i] = r.p
	}
	return out
}

func rankRecipes(terms []string, in []models.Recipe) []models.Recipe {
	type scored struct {
		r     models.Recipe
		score int
	}
	ranked := make([]scored, 0, len(in))
	for _, r := range in {
		haystack := strings.ToLower(r.Name + " " + r.Category + " " + strings.Join(r.Ingredients, " "))
		s := 0
		for _, t := range terms {
			if strings.Contains(haystack, t) {
				s++
			}
		}
		ranked = append(ranked, scored{r, s})
	}
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].score > ranked[j-1].score; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	out := make([]models.Recipe, len(ranked))
	for i, r := range ranked {
		out[i] = r.r
	}
	return out
}

func bound[T any](in []T, limit int) []T {
	if limit <= 0 || limit >= len(in) {
		out := make([]T, len(in))
		copy(out, in)
		return out
	}
	out := make([]T, limit)
	copy(out, in[:limit])
	return out
}
