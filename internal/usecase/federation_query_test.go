package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
)

var testFederations = []federation.Federation{
	{Key: "a", Name: "Federation A", ManagerID: "314965", NativeGenderFilter: true},
	{Key: "b", Name: "Federation B", ManagerID: "900100", NativeGenderFilter: false},
}

var testCategories = []catalog.Category{
	{ID: "cat-both", Name: "Infantil", FederationIDs: map[string]string{"a": "A-INF", "b": "B-INF"}, Gender: catalog.GenderFemale},
	{ID: "cat-a", Name: "Sènior A", FederationIDs: map[string]string{"a": "A-SEN"}},
	{ID: "cat-b", Name: "Cadet B", FederationIDs: map[string]string{"b": "B-CAD"}},
	{ID: "cat-none", Name: "Mini", FederationIDs: map[string]string{}},
}

var testClubs = []catalog.Club{
	{ID: "club-both", Name: "CB Manresa", FederationIDs: map[string]string{"a": "A-MAN", "b": "B-MAN"}},
	{ID: "club-a", Name: "CB Vic", FederationIDs: map[string]string{"a": "A-VIC"}},
	{ID: "club-b", Name: "CB Artés", FederationIDs: map[string]string{"b": "B-ART"}},
	{ID: "club-none", Name: "CB Sallent"},
}

func newTestQueryBuilder() *FederationQueryBuilder {
	return NewFederationQueryBuilder(testFederations, testCategories, testClubs, FederationQueryConfig{
		SeasonID: "7618",
		PageSize: 50,
		Now:      func() time.Time { return time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC) },
	})
}

func participation(plans []FederationPlan) map[string]bool {
	out := make(map[string]bool, len(plans))
	for _, plan := range plans {
		out[plan.Federation.Key] = plan.Participates
	}
	return out
}

func TestFederationQueryBuilder_ParticipationMatrix(t *testing.T) {
	t.Parallel()

	builder := newTestQueryBuilder()
	cases := []struct {
		name     string
		category string
		club     string
		wantA    bool
		wantB    bool
	}{
		{name: "nothing selected", wantA: true, wantB: true},
		{name: "category on both", category: "cat-both", wantA: true, wantB: true},
		{name: "category only on A", category: "cat-a", wantA: true, wantB: false},
		{name: "club only on B", club: "club-b", wantA: false, wantB: true},
		{name: "category A and club B excludes both", category: "cat-a", club: "club-b", wantA: false, wantB: false},
		{name: "category on both and club only on A", category: "cat-both", club: "club-a", wantA: true, wantB: false},
		{name: "category on neither is unselected", category: "cat-none", wantA: true, wantB: true},
		{name: "unknown club is unselected", club: "club-404", wantA: true, wantB: true},
		{name: "category on neither with club on B", category: "cat-none", club: "club-b", wantA: false, wantB: true},
		{name: "club on neither with category on A", category: "cat-a", club: "club-none", wantA: true, wantB: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := participation(builder.Plan(federation.Filter{
				Period:     federation.PeriodFuture,
				CategoryID: tc.category,
				ClubID:     tc.club,
			}))
			if got["a"] != tc.wantA || got["b"] != tc.wantB {
				t.Fatalf("unexpected participation: got a=%v b=%v want a=%v b=%v", got["a"], got["b"], tc.wantA, tc.wantB)
			}
		})
	}
}

func TestFederationQueryBuilder_TranslatesIdentifiers(t *testing.T) {
	t.Parallel()

	plans := newTestQueryBuilder().Plan(federation.Filter{
		Period:     federation.PeriodPast,
		CategoryID: "cat-both",
		ClubID:     "club-both",
	})
	if len(plans) != 2 {
		t.Fatalf("expected plans for both federations, got=%d", len(plans))
	}

	a := plans[0].Query
	if a.FederationKey != "a" || a.CategoryID != "A-INF" || a.ClubID != "A-MAN" || a.ManagerID != "314965" {
		t.Fatalf("unexpected federation A query: %+v", a)
	}
	b := plans[1].Query
	if b.CategoryID != "B-INF" || b.ClubID != "B-MAN" || b.ManagerID != "900100" {
		t.Fatalf("unexpected federation B query: %+v", b)
	}

	if a.DateBound != "2024-05-01" {
		t.Fatalf("unexpected date bound: %s", a.DateBound)
	}
	if a.SeasonID != "7618" || a.PageSize != 50 || a.PageNumber != 1 {
		t.Fatalf("unexpected paging/season: %+v", a)
	}
	if a.SortExpression() != "-datetime" {
		t.Fatalf("expected descending sort for past period, got=%s", a.SortExpression())
	}
	wantFilter := "datetime<2024-05-01," +
		"round.group.tournament.season.id:7618," +
		"round.group.tournament.manager.id:314965," +
		"round.group.tournament.category.id:A-INF," +
		"teams.club.id:A-MAN"
	if got := a.FilterExpression(); got != wantFilter {
		t.Fatalf("unexpected filter:\n got=%s\nwant=%s", got, wantFilter)
	}
	if a.IncludeExpression() != "round.group.tournament.category,teams,facility,results" {
		t.Fatalf("unexpected include: %s", a.IncludeExpression())
	}
}

func TestFederationQueryBuilder_UnmappedSelectionLeavesQueryUnrestricted(t *testing.T) {
	t.Parallel()

	plans := newTestQueryBuilder().Plan(federation.Filter{CategoryID: "cat-none"})
	for _, plan := range plans {
		if !plan.Participates {
			t.Fatalf("expected federation %s to participate", plan.Federation.Key)
		}
		if plan.Query.CategoryID != "" {
			t.Fatalf("expected no category restriction on %s, got=%s", plan.Federation.Key, plan.Query.CategoryID)
		}
		if plan.Query.Period != federation.PeriodFuture {
			t.Fatalf("expected zero period to default to future")
		}
	}
}
