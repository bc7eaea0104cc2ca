package federation

import "testing"

func TestQuery_FilterExpressionFuture(t *testing.T) {
	t.Parallel()

	q := Query{
		Period:     PeriodFuture,
		DateBound:  "2024-05-01",
		SeasonID:   "7618",
		ManagerID:  "314965",
		CategoryID: "c-11",
		ClubID:     "k-7",
	}

	want := "datetime>2024-05-01," +
		"round.group.tournament.season.id:7618," +
		"round.group.tournament.manager.id:314965," +
		"round.group.tournament.category.id:c-11," +
		"teams.club.id:k-7"
	if got := q.FilterExpression(); got != want {
		t.Fatalf("unexpected filter:\n got=%s\nwant=%s", got, want)
	}
	if got := q.SortExpression(); got != "datetime" {
		t.Fatalf("unexpected sort: %s", got)
	}
}

func TestQuery_FilterExpressionPastWithoutOptionalIDs(t *testing.T) {
	t.Parallel()

	q := Query{Period: PeriodPast, DateBound: "2024-05-01", SeasonID: "1", ManagerID: "2"}

	want := "datetime<2024-05-01,round.group.tournament.season.id:1,round.group.tournament.manager.id:2"
	if got := q.FilterExpression(); got != want {
		t.Fatalf("unexpected filter:\n got=%s\nwant=%s", got, want)
	}
	if got := q.SortExpression(); got != "-datetime" {
		t.Fatalf("unexpected sort: %s", got)
	}
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	cases := map[string]Period{"": PeriodFuture, "future": PeriodFuture, "PAST": PeriodPast, "-1": PeriodPast}
	for raw, want := range cases {
		got, ok := ParsePeriod(raw)
		if !ok || got != want {
			t.Fatalf("ParsePeriod(%q)=%v,%v want %v", raw, got, ok, want)
		}
	}
	if _, ok := ParsePeriod("yesterday"); ok {
		t.Fatalf("expected unknown period to be rejected")
	}
}
