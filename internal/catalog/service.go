// Package catalog implements the product query engine on top of the
// store abstraction.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
	"github.com/kysrn-ww/mathi-phone/internal/store"
)

// ErrNotFound is returned when a product id has no record. It is the
// only non-storage failure this package produces.
var ErrNotFound = errors.New("product not found")

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Create assigns id and timestamps, persists and returns the full
// record. Caller-supplied id/created_at/updated_at are ignored.
func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.Name = strings.TrimSpace(p.Name)
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.store.Insert(ctx, &p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.store.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Update merges only the fields present in the patch and stamps
// updated_at. An empty patch still bumps updated_at. Concurrent
// updates to the same id race; the last write wins.
func (s *Service) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	modified, err := s.store.UpdateFields(ctx, id, patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if modified == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes the record and reports whether it existed. A repeat
// delete returns false, not an error.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.DeleteOne(ctx, id)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// List returns one page of matching products in creation order, plus
// the total match count before pagination. Both come from the same
// filter evaluation.
func (s *Service) List(ctx context.Context, filter domain.ProductFilter, limit, offset int) ([]domain.Product, int, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	matched, err := s.store.FindMany(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total := len(matched)
	if offset >= total {
		return []domain.Product{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
