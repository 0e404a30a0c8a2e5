// internal/models/catalog.go
package models

// Product represents one catalog product (a blender model and its commerce data).
type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Price       string            `json:"price"`
	URL         string            `json:"url"`
	ImageURL    string            `json:"imageUrl"`
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs,omitempty"`
	Features    []string          `json:"features,omitempty"`
	UseCases    []string          `json:"useCases,omitempty"`

	// Provenance attached when the reasoning engine explicitly selected
	// this product; empty for keyword-retrieved products.
	SelectionRationale string `json:"selectionRationale,omitempty"`
	IsPrimary          bool   `json:"isPrimary,omitempty"`
}

// Recipe represents one catalog recipe.
type Recipe struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
}

// FAQ is a real, stored question/answer pair. FAQ blocks render only these;
// answers are never invented.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category,omitempty"`
}

// Review is a real, stored customer review.
type Review struct {
	ID      string  `json:"id"`
	Author  string  `json:"author"`
	Rating  float64 `json:"rating"`
	Text    string  `json:"text"`
	Product string  `json:"product,omitempty"`
}

// UseCase describes an application of the product line (smoothies, soups, ...).
type UseCase struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

// Article is an editorial catalog entry.
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary,omitempty"`
}

// RetrievalContext is the bounded, query-relevant subset of the catalog
// fetched for one generation run. Owned by the run; the product list is
// replaced in place when the reasoning engine's explicit selections resolve.
type RetrievalContext struct {
	Products []Product `json:"products"`
	Recipes  []Recipe  `json:"recipes"`
	FAQs     []FAQ     `json:"faqs"`
	Reviews  []Review  `json:"reviews"`
	UseCases []UseCase `json:"useCases"`
	Articles []Article `json:"articles"`
}

// HeroImage is the resolved hero image plus composition hints.
type HeroImage struct {
	URL            string  `json:"url"`
	TextPlacement  string  `json:"textPlacement"`
	BackgroundTone string  `json:"backgroundTone"`
	AspectRatio    float64 `json:"aspectRatio"`
}
