// internal/blocks/excerpt.go
package blocks

import (
	"encoding/json"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// excerptFor serializes the slice of retrieved data a block type is allowed
// to draw from. Scoping the excerpt per type is what keeps FAQ answers and
// testimonials grounded in stored entries.
func excerptFor(t models.BlockType, rc *models.RetrievalContext) string {
	if rc == nil {
		return "{}"
	}

	var v interface{}
	switch t {
	case models.BlockHero:
		v = map[string]interface{}{"products": topProducts(rc.Products, 2), "useCases": rc.UseCases}
	case models.BlockProductCards, models.BlockComparisonTable:
		v = map[string]interface{}{"products": rc.Products}
	case models.BlockSpecsTable:
		// One product's specs only; a specs table across products is the
		// comparison table's job.
		v = map[string]interface{}{"products": topProducts(rc.Products, 1)}
	case models.BlockFAQ:
		v = map[string]interface{}{"faqs": rc.FAQs}
	case models.BlockTestimonials:
		v = map[string]interface{}{"reviews": rc.Reviews}
	case models.BlockRecipeCards:
		v = map[string]interface{}{"recipes": rc.Recipes}
	case models.BlockUseCases:
		v = map[string]interface{}{"useCases": rc.UseCases}
	case models.BlockArticleLinks:
		v = map[string]interface{}{"articles": rc.Articles}
	default:
		return "{}"
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func topProducts(products []models.Product, n int) []models.Product {
	if len(products) <= n {
		return products
	}
	return products[:n]
}
