// Package persister writes article batches to a store at most once per id
package persister

import (
	"context"
	"fmt"

	"github.com/umputun/coinscope/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store is the article collection the persister writes to
type Store interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	InsertMany(ctx context.Context, articles []domain.Article) (int, error)
}

// Persister drops articles whose id is already stored and bulk-inserts the rest
type Persister struct {
	store Store
}

// New makes a persister for the store
func New(store Store) *Persister {
	return &Persister{store: store}
}

// Persist stores new articles of the batch and returns how many were inserted.
// Existing ids are found with one query and the new partition is written with one insert,
// nothing is written when the partition is empty.
func (p *Persister) Persist(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	ids := make([]int64, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}

	existing, err := p.store.ExistingIDs(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("check existing articles: %w", err)
	}

	seen := make(map[int64]bool, len(existing)+len(articles))
	for _, id := range existing {
		seen[id] = true
	}

	fresh := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true // a repeated id within the batch is written once
		fresh = append(fresh, a)
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	inserted, err := p.store.InsertMany(ctx, fresh)
	if err != nil {
		return 0, fmt.Errorf("insert articles: %w", err)
	}
	return inserted, nil
}
