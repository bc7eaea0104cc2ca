package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
)

type CatalogRepository struct {
	mu             sync.RWMutex
	categories     []catalog.Category
	categoriesByID map[string]catalog.Category
	clubs          []catalog.Club
	clubsByID      map[string]catalog.Club
}

func NewCatalogRepository(categories []catalog.Category, clubs []catalog.Club) *CatalogRepository {
	categoriesByID := make(map[string]catalog.Category, len(categories))
	for _, item := range categories {
		if _, exists := categoriesByID[item.ID]; !exists {
			categoriesByID[item.ID] = item
		}
	}
	clubsByID := make(map[string]catalog.Club, len(clubs))
	for _, item := range clubs {
		if _, exists := clubsByID[item.ID]; !exists {
			clubsByID[item.ID] = item
		}
	}

	return &CatalogRepository{
		categories:     append([]catalog.Category(nil), categories...),
		categoriesByID: categoriesByID,
		clubs:          append([]catalog.Club(nil), clubs...),
		clubsByID:      clubsByID,
	}
}

func (r *CatalogRepository) ListCategories(_ context.Context) ([]catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Category, 0, len(r.categories))
	out = append(out, r.categories...)
	return out, nil
}

func (r *CatalogRepository) ListClubs(_ context.Context) ([]catalog.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Club, 0, len(r.clubs))
	out = append(out, r.clubs...)
	return out, nil
}

func (r *CatalogRepository) GetCategory(_ context.Context, id string) (catalog.Category, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.categoriesByID[id]
	return item, ok, nil
}

func (r *CatalogRepository) GetClub(_ context.Context, id string) (catalog.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.clubsByID[id]
	return item, ok, nil
}
