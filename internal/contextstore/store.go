// internal/contextstore/store.go

// Package contextstore persists extension context bundles between the
// capture request and the generation run that consumes them. Entries live
// under a TTL; expiry is Redis's job, read-once semantics are the caller's.
package contextstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/metrics"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

var (
	// ErrNotFound means no entry exists for the id (never stored, or expired).
	ErrNotFound = errors.New("context not found")
	// ErrMalformed means an entry exists but does not decode. Distinct from
	// ErrNotFound so the HTTP layer can map them to different statuses.
	ErrMalformed = errors.New("context malformed")
	// ErrEmptyContext rejects bundles carrying nothing usable.
	ErrEmptyContext = errors.New("context requires at least one of signals, query, or previousQueries")
)

// Store reads and writes context bundles in Redis.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Logger
}

func New(client *redis.Client, cfg config.ContextStoreConfig, log logger.Logger) *Store {
	return &Store{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		logger: log.WithFields(map[string]interface{}{"component": "contextstore"}),
	}
}

// TTL returns the configured entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Put stores a bundle and returns its id. The id is short, URL-safe, and
// derived from a fresh uuid.
func (s *Store) Put(ctx context.Context, ec *models.ExtensionContext) (string, error) {
	if ec == nil || ec.Empty() {
		return "", ErrEmptyContext
	}
	if ec.Timestamp.IsZero() {
		ec.Timestamp = time.Now().UTC()
	}

	raw, err := json.Marshal(ec)
	if err != nil {
		return "", err
	}

	id := shortID()
	if err := s.client.Set(ctx, s.prefix+id, raw, s.ttl).Err(); err != nil {
		metrics.ContextStoreOps.WithLabelValues("put", "error").Inc()
		return "", err
	}
	metrics.ContextStoreOps.WithLabelValues("put", "ok").Inc()

	s.logger.Debug("context stored", map[string]interface{}{
		"contextId":  id,
		"signals":    len(ec.Signals),
		"ttlSeconds": int(s.ttl.Seconds()),
	})
	return id, nil
}

// Get fetches a bundle by id.
func (s *Store) Get(ctx context.Context, id string) (*models.ExtensionContext, error) {
	raw, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ContextStoreOps.WithLabelValues("get", "miss").Inc()
			return nil, ErrNotFound
		}
		metrics.ContextStoreOps.WithLabelValues("get", "error").Inc()
		return nil, err
	}

	var ec models.ExtensionContext
	if err := json.Unmarshal([]byte(raw), &ec); err != nil {
		metrics.ContextStoreOps.WithLabelValues("get", "malformed").Inc()
		s.logger.Warn("stored context does not decode", map[string]interface{}{
			"contextId": id,
			"error":     err.Error(),
		})
		return nil, ErrMalformed
	}
	metrics.ContextStoreOps.WithLabelValues("get", "ok").Inc()
	return &ec, nil
}

// shortID is the first uuid group: 8 hex chars, unique enough for entries
// that live an hour.
func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
