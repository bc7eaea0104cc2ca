package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
)

func TestCatalogRepository_ListAndGet(t *testing.T) {
	t.Parallel()

	repo := NewCatalogRepository(
		[]catalog.Category{
			{ID: "c1", Name: "Senior", Gender: catalog.GenderMale},
			{ID: "c1", Name: "Shadowed"},
			{ID: "c2", Name: "Junior"},
		},
		[]catalog.Club{{ID: "k1", Name: "Nord"}},
	)
	ctx := context.Background()

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected listing to keep table order and size, got=%d", len(categories))
	}
	categories[0].Name = "mutated"

	item, ok, err := repo.GetCategory(ctx, "c1")
	if err != nil || !ok {
		t.Fatalf("expected c1 to exist, ok=%v err=%v", ok, err)
	}
	if item.Name != "Senior" {
		t.Fatalf("expected first entry to win and listing copies to be detached, got %q", item.Name)
	}

	if _, ok, _ := repo.GetCategory(ctx, "missing"); ok {
		t.Fatalf("expected missing category lookup to report false")
	}

	club, ok, err := repo.GetClub(ctx, "k1")
	if err != nil || !ok || club.Name != "Nord" {
		t.Fatalf("unexpected club lookup: %+v ok=%v err=%v", club, ok, err)
	}
	clubs, _ := repo.ListClubs(ctx)
	if len(clubs) != 1 {
		t.Fatalf("expected one club, got=%d", len(clubs))
	}
}
