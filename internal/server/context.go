// internal/server/context.go
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xeipuuv/gojsonschema"

	stderrors "github.com/paolomoz/vitamix-gensite-sub000/internal/common/errors"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/contextstore"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

const maxContextBody = 1 << 20

// contextSchema validates incoming capture bundles before they are stored.
const contextSchema = `{
  "type": "object",
  "properties": {
    "signals": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "url": {"type": "string"},
          "title": {"type": "string"},
          "query": {"type": "string"},
          "product": {"type": "string"},
          "timestamp": {"type": "string"}
        },
        "required": ["type"]
      }
    },
    "query": {"type": "string"},
    "previousQueries": {"type": "array", "items": {"type": "string"}},
    "profile": {
      "type": "object",
      "properties": {
        "segment": {"type": "string"},
        "consideredProducts": {"type": "array", "items": {"type": "string"}},
        "interests": {"type": "array", "items": {"type": "string"}},
        "purchaseReadiness": {"type": "number", "minimum": 0, "maximum": 1},
        "dietaryConcerns": {"type": "array", "items": {"type": "string"}}
      }
    }
  },
  "anyOf": [
    {"required": ["signals"]},
    {"required": ["query"]},
    {"required": ["previousQueries"]}
  ]
}`

var contextSchemaLoader = gojsonschema.NewStringLoader(contextSchema)

// handleContextPut validates and stores a context bundle, returning its id
// and lifetime.
func (s *Server) handleContextPut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxContextBody))
	if err != nil {
		s.writeError(w, stderrors.NewInvalidRequestError("unreadable request body"))
		return
	}

	result, err := gojsonschema.Validate(contextSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		s.writeError(w, stderrors.NewInvalidRequestError("request body is not valid JSON"))
		return
	}
	if !result.Valid() {
		detail := "context bundle failed validation"
		if errs := result.Errors(); len(errs) > 0 {
			detail = errs[0].String()
		}
		s.writeError(w, stderrors.NewInvalidRequestError(detail))
		return
	}

	var ec models.ExtensionContext
	if err := json.Unmarshal(body, &ec); err != nil {
		s.writeError(w, stderrors.NewInvalidRequestError("context bundle does not decode"))
		return
	}

	id, err := s.store.Put(r.Context(), &ec)
	if err != nil {
		if errors.Is(err, contextstore.ErrEmptyContext) {
			s.writeError(w, stderrors.NewInvalidRequestError(err.Error()))
			return
		}
		s.writeError(w, stderrors.NewContextStoreUnavailableError(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"contextId": id,
		"expiresIn": s.ttlSeconds,
	})
}
