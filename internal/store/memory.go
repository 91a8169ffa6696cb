package store

import (
	"context"
	"sync"
	"time"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
)

// Memory is a mutex-guarded in-memory Store. Products keep insertion
// order so listings page in creation order.
type Memory struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	order    []string
	rates    *domain.ExchangeRates
	checks   []domain.StatusCheck
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{products: make(map[string]*domain.Product)}
}

func (s *Memory) FindMany(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		if filter.Matches(p) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (s *Memory) FindOne(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	c := cloneProduct(p)
	return &c, nil
}

func (s *Memory) Insert(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := cloneProduct(p)
	s.products[p.ID] = &c
	s.order = append(s.order, p.ID)
	return nil
}

func (s *Memory) UpdateFields(_ context.Context, id string, patch domain.ProductPatch, updatedAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return 0, nil
	}
	patch.Apply(p)
	p.UpdatedAt = updatedAt
	return 1, nil
}

func (s *Memory) DeleteOne(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return 0, nil
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (s *Memory) UpsertRates(_ context.Context, rates *domain.ExchangeRates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *rates
	s.rates = &c
	return nil
}

func (s *Memory) GetRates(_ context.Context) (*domain.ExchangeRates, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rates == nil {
		return nil, nil
	}
	c := *s.rates
	return &c, nil
}

func (s *Memory) InsertStatusCheck(_ context.Context, sc *domain.StatusCheck) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, *sc)
	return nil
}

func (s *Memory) ListStatusChecks(_ context.Context, limit int) ([]domain.StatusCheck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.checks)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.StatusCheck, n)
	copy(out, s.checks[:n])
	return out, nil
}

func (s *Memory) PurgeStatusChecks(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.checks[:0]
	var purged int64
	for _, sc := range s.checks {
		if sc.Timestamp.Before(olderThan) {
			purged++
			continue
		}
		kept = append(kept, sc)
	}
	s.checks = kept
	return purged, nil
}

func (s *Memory) Close() error { return nil }

// cloneProduct copies p including its features slice so callers never
// alias stored state.
func cloneProduct(p *domain.Product) domain.Product {
	c := *p
	if p.Features != nil {
		c.Features = append([]string(nil), p.Features...)
	}
	return c
}
