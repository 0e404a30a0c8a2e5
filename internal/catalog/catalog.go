// internal/catalog/catalog.go

// Package catalog builds the bounded retrieval context for one generation
// run and resolves explicit product selections against the content catalog.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// Retriever is the read-only catalog contract the orchestrator depends on.
type Retriever interface {
	Retrieve(ctx context.Context, query string, intentType models.IntentType, history []string) (*models.RetrievalContext, error)
	ResolveProducts(ctx context.Context, ids []string) []models.Product
	SelectImage(ctx context.Context, query string, intentType models.IntentType, useCases []string) (*models.HeroImage, error)
}

// Builder retrieves query-relevant catalog entries from Elasticsearch,
// degrading to the embedded static catalog when search is unavailable.
// Retrieval failure must never abort a generation run.
type Builder struct {
	config *config.CatalogConfig
	es     *elasticsearch.Client
	logger logger.Logger
}

func NewBuilder(cfg *config.CatalogConfig, es *elasticsearch.Client, log logger.Logger) *Builder {
	return &Builder{
		config: cfg,
		es:     es,
		logger: log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

// Retrieve returns the bounded retrieval context for the query. A
// provisional neutral intent ("discovery") is acceptable before
// classification completes; intent only tunes per-index weighting.
func (b *Builder) Retrieve(ctx context.Context, query string, intentType models.IntentType, history []string) (*models.RetrievalContext, error) {
	if b.es == nil {
		return b.staticRetrieve(query, intentType), nil
	}

	rc := &models.RetrievalContext{}
	searchText := query
	if len(history) > 0 {
		searchText = query + " " + strings.Join(history, " ")
	}

	failures := 0

	if err := b.searchInto(ctx, b.config.Indices.Products, searchText, b.config.Limits.Products, productFields, &rc.Products); err != nil {
		failures++
		b.logger.Warn("product search failed", map[string]interface{}{"error": err.Error()})
	}
	if err := b.searchInto(ctx, b.config.Indices.Recipes, searchText, b.config.Limits.Recipes, recipeFields, &rc.Recipes); err != nil {
		failures++
		b.logger.Warn("recipe search failed", map[string]interface{}{"error": err.Error()})
	}
	if err := b.searchInto(ctx, b.config.Indices.FAQs, query, b.config.Limits.FAQs, faqFields, &rc.FAQs); err != nil {
		failures++
		b.logger.Warn("faq search failed", map[string]interface{}{"error": err.Error()})
	}
	if err := b.searchInto(ctx, b.config.Indices.Reviews, searchText, b.config.Limits.Reviews, reviewFields, &rc.Reviews); err != nil {
		failures++
		b.logger.Warn("review search failed", map[string]interface{}{"error": err.Error()})
	}
	if err := b.searchInto(ctx, b.config.Indices.UseCases, searchText, b.config.Limits.UseCases, useCaseFields, &rc.UseCases); err != nil {
		failures++
		b.logger.Warn("use-case search failed", map[string]interface{}{"error": err.Error()})
	}
	if err := b.searchInto(ctx, b.config.Indices.Articles, searchText, b.config.Limits.Articles, articleFields, &rc.Articles); err != nil {
		failures++
		b.logger.Warn("article search failed", map[string]interface{}{"error": err.Error()})
	}

	// All indices unreachable: fall back to the static catalog wholesale.
	if failures == 6 {
		stdErr := stderrors.NewRetrievalFailedError(errors.New("all catalog indices unreachable"))
		b.logger.Warn("all catalog searches failed, using static catalog", map[string]interface{}{
			"code":  string(stdErr.Code),
			"error": stdErr.Details,
		})
		return b.staticRetrieve(query, intentType), nil
	}

	b.normalizeImageURLs(rc)
	return rc, nil
}

// ResolveProducts looks up explicit product IDs selected by the reasoning
// engine. Unresolved IDs are logged and skipped; resolution never errors.
func (b *Builder) ResolveProducts(ctx context.Context, ids []string) []models.Product {
	resolved := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := b.lookupProduct(ctx, id)
		if !ok {
			b.logger.Warn("selected product not found in catalog", map[string]interface{}{
				"productId": id,
			})
			continue
		}
		resolved = append(resolved, p)
	}
	return resolved
}

func (b *Builder) lookupProduct(ctx context.Context, id string) (models.Product, bool) {
	if b.es != nil {
		if p, ok := b.getProductDoc(ctx, id); ok {
			return p, true
		}
	}
	for _, p := range staticProducts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (b *Builder) staticRetrieve(query string, intentType models.IntentType) *models.RetrievalContext {
	rc := staticContext(query, intentType, b.config.Limits)
	b.normalizeImageURLs(rc)
	return rc
}

// normalizeImageURLs rewrites relative catalog image paths to absolute URLs.
func (b *Builder) normalizeImageURLs(rc *models.RetrievalContext) {
	base := strings.TrimSuffix(b.config.SiteURL, "/")
	if base == "" {
		return
	}
	for i := range rc.Products {
		rc.Products[i].ImageURL = absoluteURL(base, rc.Products[i].ImageURL)
	}
	for i := range rc.Recipes {
		rc.Recipes[i].ImageURL = absoluteURL(base, rc.Recipes[i].ImageURL)
	}
}

func absoluteURL(base, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
