// Package store abstracts persistence for the catalog and the exchange
// rate singleton. Two backends exist: an in-memory map for tests and
// single-node setups, and a postgres-backed implementation.
package store

import (
	"context"
	"time"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
)

// Store is the narrow persistence contract shared by the catalog
// service and the exchange rate refresher. Every operation is atomic
// at single-record granularity; no additional locking is layered on
// top, so concurrent updates to the same product race and the last
// write wins.
type Store interface {
	// Products
	FindMany(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	// FindOne returns (nil, nil) when no product has the given id.
	FindOne(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	// UpdateFields merges the patch into the stored record and returns
	// the number of modified records (0 when the id is unknown).
	UpdateFields(ctx context.Context, id string, patch domain.ProductPatch, updatedAt time.Time) (int64, error)
	// DeleteOne returns the number of deleted records (0 or 1).
	DeleteOne(ctx context.Context, id string) (int64, error)

	// Exchange rates singleton
	UpsertRates(ctx context.Context, rates *domain.ExchangeRates) error
	// GetRates returns (nil, nil) when no record has been stored yet.
	GetRates(ctx context.Context) (*domain.ExchangeRates, error)

	// Status checks
	InsertStatusCheck(ctx context.Context, sc *domain.StatusCheck) error
	ListStatusChecks(ctx context.Context, limit int) ([]domain.StatusCheck, error)
	PurgeStatusChecks(ctx context.Context, olderThan time.Time) (int64, error)

	Close() error
}
