// internal/blocks/safety.go
package blocks

import (
	"fmt"
	"strings"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// refusalPatterns are the declared markers of a model declining to produce
// content. Matched case-insensitively against the generated HTML.
var refusalPatterns = []string{
	"i'm sorry",
	"i am sorry",
	"i cannot",
	"i can't",
	"i'm unable",
	"i am unable",
	"as an ai",
	"not available",
	"i apologize",
	"i won't be able",
}

// isRefusal reports whether html reads as a refusal rather than content.
func isRefusal(html string) bool {
	lowered := strings.ToLower(html)
	for _, p := range refusalPatterns {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

// productFallbackCard is the deterministic replacement for a refused
// product-centric block: a plain card for the first retrieved product.
func productFallbackCard(t models.BlockType, rc *models.RetrievalContext) string {
	if rc == nil || len(rc.Products) == 0 {
		return ""
	}
	p := rc.Products[0]
	return fmt.Sprintf(
		`<div class="%s"><div class="product-card"><img src="%s" alt="%s"><h3>%s</h3><p class="price">%s</p><p>%s</p><a href="%s">View product</a></div></div>`,
		t, p.ImageURL, p.Name, p.Name, p.Price, p.Description, p.URL)
}
