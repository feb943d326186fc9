package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/timescript/pkg/domain"
)

// RunDocumentCacheContract runs a suite of tests to verify that a DocumentCache
// implementation adheres to the interface contract.
func RunDocumentCacheContract(t *testing.T, cache DocumentCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	compilation := func(content string) *domain.Compilation {
		q := &domain.Question{
			Statement: domain.Statement{UIType: domain.UIQuestion, DataTag: "A", VoiceType: domain.VoiceDefault, Speaker: "S", Content: content},
			Options:   []domain.Option{{ID: 1, UIType: "D1", DataTag: "A", VoiceType: domain.VoiceDefault, Speaker: "P", Target: "L1", Content: "go"}},
		}
		q.Metadata = domain.NewMetadata("b", "2", "a", "1")
		return &domain.Compilation{
			Document: domain.Document{q},
			Warnings: []domain.Diagnostic{},
		}
	}

	t.Run("Put and Get", func(t *testing.T) {
		want := compilation("Which way?")
		require.NoError(t, cache.Put(ctx, key, want), "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		require.Len(t, got.Document, 1)
		q, ok := got.Document[0].(*domain.Question)
		require.True(t, ok, "expected *domain.Question, got %T", got.Document[0])
		assert.Equal(t, "Which way?", q.Content)
		assert.Equal(t, []string{"b", "a"}, q.Metadata.Keys(), "metadata order must survive the cache")
		require.Len(t, q.Options, 1)
		assert.Equal(t, "L1", q.Options[0].Target)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, compilation("second")))
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", got.Document[0].Header().Content)
	})

	t.Run("Isolation", func(t *testing.T) {
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got.Document[0].Header().Content = "mutated"

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Document[0].Header().Content, "callers must not mutate cached entries")
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")
		assert.NoError(t, cache.Delete(ctx, key), "deleting twice is not an error")
	})
}
