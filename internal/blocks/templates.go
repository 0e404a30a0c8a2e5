// internal/blocks/templates.go
package blocks

import "github.com/paolomoz/vitamix-gensite-sub000/internal/models"

// template is the fixed generation instruction for one block type. The
// registry is a pure lookup; templates never vary per run.
type template struct {
	instruction string
}

var templates = map[models.BlockType]template{
	models.BlockHero: {
		instruction: `Write the hero section HTML for a blender brand page.
Structure: an <h1> headline answering the visitor's query, a one-sentence
subheadline, and a primary call-to-action link. No <img> tags; the image is
composed by the layout. Keep copy under 40 words total.`,
	},
	models.BlockProductCards: {
		instruction: `Write a product card grid as HTML. One card per product from the data:
image (<img src> from the data, never invented), name, price, one-line
description, and a link to the product URL. Use only products present in
the data.`,
	},
	models.BlockComparisonTable: {
		instruction: `Write an HTML <table> comparing the products in the data across their
shared spec keys (motor, capacity, programs, warranty). One column per
product, one row per spec. Use only values present in the data.`,
	},
	models.BlockSpecsTable: {
		instruction: `Write an HTML definition table of the single product's specifications from
the data. One row per spec key. Do not invent specs.`,
	},
	models.BlockFAQ: {
		instruction: `Write an HTML FAQ section using ONLY the question/answer pairs in the data,
verbatim. Each pair as a <details> element with the question in <summary>.
Never invent questions or answers.`,
	},
	models.BlockTestimonials: {
		instruction: `Write an HTML testimonial section using ONLY the reviews in the data,
verbatim quotes with author attribution and star rating. Never invent
reviews.`,
	},
	models.BlockRecipeCards: {
		instruction: `Write a recipe card grid as HTML from the recipes in the data: image,
name, linked to the recipe URL. Mention allergens where the data lists
them. Use only recipes present in the data.`,
	},
	models.BlockUseCases: {
		instruction: `Write an HTML section presenting the use cases from the data: name,
description, link. Use only use cases present in the data.`,
	},
	models.BlockArticleLinks: {
		instruction: `Write an HTML list of article links from the data: title linked to the
URL, with the summary as supporting text. Use only articles present in
the data.`,
	},
}

// templateFor returns the generation template for t. Deterministic block
// types have no template; ok is false for them and for unknown types.
func templateFor(t models.BlockType) (template, bool) {
	tpl, ok := templates[t]
	return tpl, ok
}
