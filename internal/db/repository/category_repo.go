package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/store"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]store.Category, error)
	GetCategory(ctx context.Context, id int32) (store.Category, error)
}

// CategoryRepository provides read access to the seeded categories.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// ListAll returns every category ordered by id.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]store.Category, error) {
	return r.store.ListCategories(ctx)
}

func (r *CategoryRepository) Get(ctx context.Context, id int32) (store.Category, error) {
	return r.store.GetCategory(ctx, id)
}
