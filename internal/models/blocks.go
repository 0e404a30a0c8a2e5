// internal/models/blocks.go
package models

// BlockType names one self-contained HTML section of a generated page.
type BlockType string

const (
	BlockHero               BlockType = "hero"
	BlockProductCards       BlockType = "product-cards"
	BlockComparisonTable    BlockType = "comparison-table"
	BlockSpecsTable         BlockType = "specs-table"
	BlockFAQ                BlockType = "faq"
	BlockTestimonials       BlockType = "testimonials"
	BlockRecipeCards        BlockType = "recipe-cards"
	BlockUseCases           BlockType = "use-cases"
	BlockArticleLinks       BlockType = "article-links"
	BlockReasoningExplained BlockType = "reasoning-explained"
	BlockNextSteps          BlockType = "next-steps"
	BlockAllergenSafety     BlockType = "allergen-safety"
)

// ProductCentric reports whether a refused generation for this block type is
// replaced by the deterministic product fallback card rather than dropped.
func (t BlockType) ProductCentric() bool {
	switch t {
	case BlockHero, BlockProductCards, BlockComparisonTable, BlockSpecsTable:
		return true
	}
	return false
}

// BlockSelection is one planned page section. Immutable after the reasoning
// engine returns it; consumed in list order.
type BlockSelection struct {
	Type            BlockType `json:"type"`
	Variant         string    `json:"variant,omitempty"`
	Priority        int       `json:"priority"`
	Rationale       string    `json:"rationale"`
	ContentGuidance string    `json:"contentGuidance"`
}

// GeneratedBlock is one rendered page section plus layout metadata.
type GeneratedBlock struct {
	Type            BlockType  `json:"type"`
	HTML            string     `json:"html"`
	SectionStyle    string     `json:"sectionStyle,omitempty"`
	HeroComposition *HeroImage `json:"heroComposition,omitempty"`
}
