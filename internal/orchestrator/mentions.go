// internal/orchestrator/mentions.go
package orchestrator

import (
	"strings"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// extractMentions collects catalog product and recipe names that actually
// appear in the rendered HTML of product-centric and recipe blocks. Those
// names feed the generation-complete recommendations so follow-up pages can
// link what the visitor just saw.
func extractMentions(rendered []*models.GeneratedBlock, rc *models.RetrievalContext) []string {
	if rc == nil || len(rendered) == 0 {
		return []string{}
	}

	var html strings.Builder
	for _, b := range rendered {
		if b.Type.ProductCentric() || b.Type == models.BlockRecipeCards {
			html.WriteString(b.HTML)
		}
	}
	haystack := html.String()
	if haystack == "" {
		return []string{}
	}

	seen := make(map[string]bool)
	mentions := []string{}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		if strings.Contains(haystack, name) {
			seen[name] = true
			mentions = append(mentions, name)
		}
	}

	for _, p := range rc.Products {
		add(p.Name)
	}
	for _, r := range rc.Recipes {
		add(r.Name)
	}
	return mentions
}
