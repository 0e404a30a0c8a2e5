// internal/catalog/search.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

// Per-index multi_match field weightings.
var (
	productFields = []string{"name^3", "description^2", "features", "useCases"}
	recipeFields  = []string{"name^3", "category^2", "ingredients"}
	faqFields     = []string{"question^3", "answer"}
	reviewFields  = []string{"text^2", "product"}
	useCaseFields = []string{"name^3", "description"}
	articleFields = []string{"title^3", "summary"}
)

// searchInto runs one bounded multi_match search and decodes the hits into
// out, which must be a pointer to a slice of the index's document type.
func (b *Builder) searchInto(ctx context.Context, index, query string, size int, fields []string, out interface{}) error {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": fields,
				"type":   "best_fields",
			},
		},
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, b.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("search failed for index %s: %s", index, res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return err
	}

	sources := make([]json.RawMessage, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		sources = append(sources, hit.Source)
	}

	merged, _ := json.Marshal(sources)
	return json.Unmarshal(merged, out)
}

// getProductDoc fetches a product document by ID.
func (b *Builder) getProductDoc(ctx context.Context, id string) (p models.Product, ok bool) {
	req := esapi.GetRequest{
		Index:      b.config.Indices.Products,
		DocumentID: id,
	}

	res, err := req.Do(ctx, b.es)
	if err != nil {
		return p, false
	}
	defer res.Body.Close()

	if res.IsError() {
		return p, false
	}

	var doc struct {
		Source models.Product `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return p, false
	}
	if doc.Source.ID == "" {
		doc.Source.ID = id
	}
	return doc.Source, true
}
