package dataloader

import (
	"context"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/czechplus-backend/internal/domain"
)

// newNoteBatchFn loads notes by ID. A missing note resolves to nil.
func newNoteBatchFn(repo noteRepo) dataloader.BatchFunc[uuid.UUID, *domain.Note] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Note] {
		notes, err := repo.ListByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Note](len(keys), err)
		}

		byID := make(map[uuid.UUID]*domain.Note, len(notes))
		for i := range notes {
			byID[notes[i].ID] = &notes[i]
		}
		return mapResults(keys, byID, nilValue[domain.Note])
	}
}

// errorResults returns n results that all carry err.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

func nilValue[T any]() *T { return nil }
