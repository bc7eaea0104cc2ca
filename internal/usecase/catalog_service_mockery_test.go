package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
	catalogmock "github.com/riskibarqy/federated-matches/internal/mocks/domain/catalog"
	"github.com/stretchr/testify/mock"
)

func TestCatalogService_ListClubs_SortedByNameUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := catalogmock.NewRepository(t)
	repo.
		On("ListClubs", mock.Anything).
		Return([]catalog.Club{{ID: "2", Name: "CB Vic"}, {ID: "1", Name: "CB Artés"}}, nil).
		Once()

	got, err := NewCatalogService(repo).ListClubs(ctx)
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected club order: %+v", got)
	}
}

func TestCatalogService_ListCategories_PropagatesErrorUsingMockery(t *testing.T) {
	t.Parallel()

	repo := catalogmock.NewRepository(t)
	repo.
		On("ListCategories", mock.Anything).
		Return(nil, errors.New("catalog unavailable")).
		Once()

	if _, err := NewCatalogService(repo).ListCategories(context.Background()); err == nil {
		t.Fatalf("expected error from repository to propagate")
	}
}

func TestCatalogService_GetCategory_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := catalogmock.NewRepository(t)
	repo.On("GetCategory", mock.Anything, "missing").Return(catalog.Category{}, false, nil).Once()
	repo.On("GetCategory", mock.Anything, "senior").Return(catalog.Category{ID: "senior", Name: "Sènior"}, true, nil).Once()

	service := NewCatalogService(repo)
	if _, err := service.GetCategory(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := service.GetCategory(ctx, "senior")
	if err != nil || got.Name != "Sènior" {
		t.Fatalf("unexpected category: %+v err=%v", got, err)
	}
}

func TestCatalogService_GetClub_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	repo := catalogmock.NewRepository(t)
	repo.On("GetClub", mock.Anything, "k9").Return(catalog.Club{}, false, nil).Once()

	if _, err := NewCatalogService(repo).GetClub(context.Background(), "k9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
