package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
)

// CatalogService lists the filter options offered to users.
type CatalogService struct {
	repo catalog.Repository
}

func NewCatalogService(repo catalog.Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListCategories")
	defer span.End()

	items, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// ListClubs returns clubs ordered by display name.
func (s *CatalogService) ListClubs(ctx context.Context) ([]catalog.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListClubs")
	defer span.End()

	items, err := s.repo.ListClubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	out := append([]catalog.Club(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (catalog.Category, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetCategory")
	defer span.End()

	item, ok, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return catalog.Category{}, fmt.Errorf("get category id=%s: %w", id, err)
	}
	if !ok {
		return catalog.Category{}, fmt.Errorf("%w: category id=%s", ErrNotFound, id)
	}
	return item, nil
}

func (s *CatalogService) GetClub(ctx context.Context, id string) (catalog.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetClub")
	defer span.End()

	item, ok, err := s.repo.GetClub(ctx, id)
	if err != nil {
		return catalog.Club{}, fmt.Errorf("get club id=%s: %w", id, err)
	}
	if !ok {
		return catalog.Club{}, fmt.Errorf("%w: club id=%s", ErrNotFound, id)
	}
	return item, nil
}
