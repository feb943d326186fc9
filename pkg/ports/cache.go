package ports

import (
	"context"

	"github.com/aretw0/timescript/pkg/domain"
)

// DocumentCache stores compiled documents so identical sources compile once.
type DocumentCache interface {
	// Get returns the compilation stored under key.
	// Returns domain.ErrCacheMiss if nothing is stored.
	Get(ctx context.Context, key string) (*domain.Compilation, error)

	// Put stores a compilation under key, replacing any previous entry.
	Put(ctx context.Context, key string, c *domain.Compilation) error

	// Delete removes the entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
