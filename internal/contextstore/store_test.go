// internal/contextstore/store_test.go
package contextstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/logger"
	"github.com/paolomoz/vitamix-gensite-sub000/internal/models"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := New(client, config.ContextStoreConfig{
		KeyPrefix:  "gensite:ctx:",
		TTLSeconds: 3600,
	}, logger.NewNoOpLogger())
	return store, mr
}

func validContext() *models.ExtensionContext {
	return &models.ExtensionContext{
		Query:           "best blender for smoothies",
		PreviousQueries: []string{"blender comparison"},
		Signals: []models.Signal{
			{Type: "page-view", Title: "Ascent X5", Timestamp: time.Now()},
		},
	}
}

func TestPutGet_RoundTrip(t *testing.T) {
	store, _ := testStore(t)

	id, err := store.Put(context.Background(), validContext())
	require.NoError(t, err)
	assert.Len(t, id, 8)

	got, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "best blender for smoothies", got.Query)
	assert.Len(t, got.Signals, 1)
	assert.False(t, got.Timestamp.IsZero())
}

func TestPut_RejectsEmptyBundle(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.Put(context.Background(), &models.ExtensionContext{})

	assert.ErrorIs(t, err, ErrEmptyContext)
}

func TestPut_QueryOnlyBundleAccepted(t *testing.T) {
	store, _ := testStore(t)

	id, err := store.Put(context.Background(), &models.ExtensionContext{Query: "quiet blender"})

	assert.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestGet_MissReturnsNotFound(t *testing.T) {
	store, _ := testStore(t)

	got, err := store.Get(context.Background(), "deadbeef")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_MalformedEntryDistinctFromMiss(t *testing.T) {
	store, mr := testStore(t)
	require.NoError(t, mr.Set("gensite:ctx:badentry", "{not json"))

	got, err := store.Get(context.Background(), "badentry")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestEntriesExpireViaTTL(t *testing.T) {
	store, mr := testStore(t)

	id, err := store.Put(context.Background(), validContext())
	require.NoError(t, err)

	mr.FastForward(time.Hour + time.Second)

	got, err := store.Get(context.Background(), id)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_BackendErrorIsNeitherMissNorMalformed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("gensite:ctx:abc12345").SetErr(errors.New("connection refused"))
	store := New(client, config.ContextStoreConfig{KeyPrefix: "gensite:ctx:", TTLSeconds: 3600}, logger.NewNoOpLogger())

	got, err := store.Get(context.Background(), "abc12345")

	assert.Nil(t, got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrMalformed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPut_BackendErrorPropagates(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.Regexp().ExpectSet(`gensite:ctx:[0-9a-f]{8}`, `.*`, time.Hour).SetErr(errors.New("readonly replica"))
	store := New(client, config.ContextStoreConfig{KeyPrefix: "gensite:ctx:", TTLSeconds: 3600}, logger.NewNoOpLogger())

	_, err := store.Put(context.Background(), validContext())

	assert.Error(t, err)
}

func TestPut_DistinctIDs(t *testing.T) {
	store, _ := testStore(t)

	first, err := store.Put(context.Background(), validContext())
	require.NoError(t, err)
	second, err := store.Put(context.Background(), validContext())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
