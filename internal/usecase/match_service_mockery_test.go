package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
	"github.com/riskibarqy/federated-matches/internal/domain/resource"
	federationmock "github.com/riskibarqy/federated-matches/internal/mocks/domain/federation"
	"github.com/riskibarqy/federated-matches/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestMatchService(t *testing.T, cfg MatchServiceConfig) (*MatchService, *federationmock.Fetcher, *federationmock.Fetcher) {
	t.Helper()

	fetcherA := federationmock.NewFetcher(t)
	fetcherB := federationmock.NewFetcher(t)
	service := NewMatchService(
		newTestQueryBuilder(),
		map[string]federation.Fetcher{"a": fetcherA, "b": fetcherB},
		cfg,
		logging.NewNop(),
	)
	return service, fetcherA, fetcherB
}

type fetcherFunc func(ctx context.Context, query federation.Query) (federation.Document, error)

func (f fetcherFunc) FetchMatches(ctx context.Context, query federation.Query) (federation.Document, error) {
	return f(ctx, query)
}

func blockUntilDone(ctx context.Context, _ federation.Query) (federation.Document, error) {
	<-ctx.Done()
	return federation.Document{}, ctx.Err()
}

func matchIDs(matches []resource.Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestMatchService_Merge_SkipsExcludedFederationsUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})

	set, err := service.Merge(context.Background(), federation.Filter{
		Period:     federation.PeriodFuture,
		CategoryID: "cat-a",
		ClubID:     "club-b",
	})
	require.NoError(t, err)
	require.Empty(t, set.Matches)
	require.Equal(t, 0, set.Graph.Len())
	fetcherA.AssertNotCalled(t, "FetchMatches", mock.Anything, mock.Anything)
	fetcherB.AssertNotCalled(t, "FetchMatches", mock.Anything, mock.Anything)
}

func TestMatchService_Merge_GenderFilterOnlyNarrowsNonNativeFederationUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})

	fetcherA.
		On("FetchMatches", mock.Anything, mock.MatchedBy(func(q federation.Query) bool { return q.CategoryID == "A-INF" })).
		Return(federation.Document{
			Matches: []resource.Match{{ID: "MA", Date: "2024-05-10 10:00:00", RoundID: "RA"}},
			Included: []resource.Resource{
				resource.Round{ID: "RA", GroupID: "GA"},
				resource.Group{ID: "GA", TournamentID: "TA"},
				resource.Tournament{ID: "TA", Gender: "male"},
			},
		}, nil).
		Once()
	fetcherB.
		On("FetchMatches", mock.Anything, mock.MatchedBy(func(q federation.Query) bool { return q.CategoryID == "B-INF" })).
		Return(federation.Document{
			Matches: []resource.Match{
				{ID: "M1", Date: "2024-05-12 10:00:00", RoundID: "R1"},
				{ID: "M2", Date: "2024-05-11 10:00:00", RoundID: "R2"},
				{ID: "M3", Date: "2024-05-13 10:00:00", RoundID: "R404"},
			},
			Included: []resource.Resource{
				resource.Tournament{ID: "T1", Gender: "female"},
				resource.Tournament{ID: "T2", Gender: "male"},
				resource.Group{ID: "G1", TournamentID: "T1"},
				resource.Group{ID: "G2", TournamentID: "T2"},
				resource.Round{ID: "R1", GroupID: "G1"},
				resource.Round{ID: "R2", GroupID: "G2"},
			},
		}, nil).
		Once()

	set, err := service.Merge(context.Background(), federation.Filter{
		Period:     federation.PeriodFuture,
		CategoryID: "cat-both",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"MA", "M1"}, matchIDs(set.Matches))
}

func TestMatchService_Merge_SortsByPeriodUsingMockery(t *testing.T) {
	t.Parallel()

	doc := func() federation.Document {
		return federation.Document{Matches: []resource.Match{
			{ID: "may", Date: "2024-05-01"},
			{ID: "jun", Date: "2024-06-01"},
			{ID: "apr", Date: "2024-04-01"},
		}}
	}

	cases := []struct {
		period federation.Period
		want   []string
	}{
		{period: federation.PeriodFuture, want: []string{"apr", "may", "jun"}},
		{period: federation.PeriodPast, want: []string{"jun", "may", "apr"}},
	}
	for _, tc := range cases {
		service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})
		fetcherA.On("FetchMatches", mock.Anything, mock.Anything).Return(doc(), nil).Once()
		fetcherB.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{}, nil).Once()

		set, err := service.Merge(context.Background(), federation.Filter{Period: tc.period})
		require.NoError(t, err)
		require.Equal(t, tc.want, matchIDs(set.Matches), "period=%s", tc.period)
	}
}

func TestMatchService_Merge_EmptyDateSortsFirstInFutureUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})
	fetcherA.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{Matches: []resource.Match{
		{ID: "dated", Date: "2024-05-01 10:00:00"},
	}}, nil).Once()
	fetcherB.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{Matches: []resource.Match{
		{ID: "undated"},
	}}, nil).Once()

	set, err := service.Merge(context.Background(), federation.Filter{Period: federation.PeriodFuture})
	require.NoError(t, err)
	require.Equal(t, []string{"undated", "dated"}, matchIDs(set.Matches))
}

func TestMatchService_Merge_FirstFederationWinsOnDuplicateKeyUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})
	fetcherA.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{
		Included: []resource.Resource{resource.Team{ID: "9", Name: "Team from A"}},
	}, nil).Once()
	fetcherB.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{
		Included: []resource.Resource{resource.Team{ID: "9", Name: "Team from B"}},
	}, nil).Once()

	set, err := service.Merge(context.Background(), federation.Filter{})
	require.NoError(t, err)

	team, ok := set.Graph.Team("9")
	require.True(t, ok)
	require.Equal(t, "Team from A", team.Name)
}

func TestMatchService_Merge_PropagatesFetchFailureUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})
	fetcherA.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{}, nil).Maybe()
	fetcherB.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{}, errors.New("connection reset")).Once()

	_, err := service.Merge(context.Background(), federation.Filter{})
	if !crerr.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestMatchService_Merge_ToleratesFetchFailureWhenConfiguredUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{TolerateFederationFailure: true})
	fetcherA.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{
		Matches: []resource.Match{{ID: "from-a", Date: "2024-05-01 10:00:00"}},
	}, nil).Once()
	fetcherB.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{}, errors.New("status=503")).Once()

	set, err := service.Merge(context.Background(), federation.Filter{})
	require.NoError(t, err)
	require.Equal(t, []string{"from-a"}, matchIDs(set.Matches))
}

func TestMatchService_Merge_MissingFetcherIsDependencyErrorUsingMockery(t *testing.T) {
	t.Parallel()

	service := NewMatchService(newTestQueryBuilder(), map[string]federation.Fetcher{}, MatchServiceConfig{}, nil)

	_, err := service.Merge(context.Background(), federation.Filter{})
	if !crerr.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestMatchService_List_ResolvesViewsUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})
	fetcherA.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{
		Matches: []resource.Match{{ID: "m1", Date: "2024-07-04 18:30:00", RoundID: "r1", HomeTeamID: "t1"}},
		Included: []resource.Resource{
			resource.Round{ID: "r1", Name: "Jornada 3"},
			resource.Team{ID: "t1", Name: "CB Manresa"},
		},
	}, nil).Once()
	fetcherB.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{}, nil).Once()

	views, err := service.List(context.Background(), federation.Filter{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Jornada 3", views[0].RoundName)
	require.Equal(t, "04/07", views[0].Day)
	require.NotNil(t, views[0].HomeTeam)
	require.Equal(t, "CB Manresa", views[0].HomeTeam.Name)
	require.Nil(t, views[0].AwayTeam)
}

func TestMatchService_Merge_GenderFilterAcceptsShortRemoteCodesUsingMockery(t *testing.T) {
	t.Parallel()

	service, fetcherA, fetcherB := newTestMatchService(t, MatchServiceConfig{})
	fetcherA.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{}, nil).Once()
	fetcherB.On("FetchMatches", mock.Anything, mock.Anything).Return(federation.Document{
		Matches: []resource.Match{
			{ID: "M1", Date: "2024-05-12 10:00:00", RoundID: "R1"},
			{ID: "M2", Date: "2024-05-11 10:00:00", RoundID: "R2"},
		},
		Included: []resource.Resource{
			resource.Tournament{ID: "T1", Gender: "F"},
			resource.Tournament{ID: "T2", Gender: "M"},
			resource.Group{ID: "G1", TournamentID: "T1"},
			resource.Group{ID: "G2", TournamentID: "T2"},
			resource.Round{ID: "R1", GroupID: "G1"},
			resource.Round{ID: "R2", GroupID: "G2"},
		},
	}, nil).Once()

	set, err := service.Merge(context.Background(), federation.Filter{
		Period:     federation.PeriodFuture,
		CategoryID: "cat-both",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"M1"}, matchIDs(set.Matches))
}

func TestMatchService_Merge_FetchesFederationsConcurrently(t *testing.T) {
	t.Parallel()

	var (
		inFlight atomic.Int32
		peak     atomic.Int32
		finished atomic.Int32
		arrived  sync.WaitGroup
	)
	arrived.Add(2)

	fetcher := func(id, date string, hold time.Duration) federation.Fetcher {
		return fetcherFunc(func(ctx context.Context, _ federation.Query) (federation.Document, error) {
			current := inFlight.Add(1)
			for {
				seen := peak.Load()
				if current <= seen || peak.CompareAndSwap(seen, current) {
					break
				}
			}

			// Each fetch waits for the other one to start.
			arrived.Done()
			bothStarted := make(chan struct{})
			go func() {
				arrived.Wait()
				close(bothStarted)
			}()
			select {
			case <-bothStarted:
			case <-ctx.Done():
				return federation.Document{}, ctx.Err()
			}

			time.Sleep(hold)
			inFlight.Add(-1)
			finished.Add(1)
			return federation.Document{Matches: []resource.Match{{ID: id, Date: date}}}, nil
		})
	}

	service := NewMatchService(
		newTestQueryBuilder(),
		map[string]federation.Fetcher{
			"a": fetcher("from-a", "2024-05-02 10:00:00", 0),
			"b": fetcher("from-b", "2024-05-01 10:00:00", 30*time.Millisecond),
		},
		MatchServiceConfig{QueryTimeout: 2 * time.Second},
		logging.NewNop(),
	)

	set, err := service.Merge(context.Background(), federation.Filter{Period: federation.PeriodFuture})
	require.NoError(t, err)
	require.Equal(t, int32(2), peak.Load(), "both fetches should be in flight together")
	require.Equal(t, int32(2), finished.Load(), "merge must wait for every fetch")
	require.Equal(t, []string{"from-b", "from-a"}, matchIDs(set.Matches))
}

func TestMatchService_Merge_QueryTimeoutCancelsHungFetch(t *testing.T) {
	t.Parallel()

	service := NewMatchService(
		newTestQueryBuilder(),
		map[string]federation.Fetcher{
			"a": fetcherFunc(func(context.Context, federation.Query) (federation.Document, error) {
				return federation.Document{}, nil
			}),
			"b": fetcherFunc(blockUntilDone),
		},
		MatchServiceConfig{QueryTimeout: 50 * time.Millisecond},
		logging.NewNop(),
	)

	started := time.Now()
	_, err := service.Merge(context.Background(), federation.Filter{})
	elapsed := time.Since(started)

	require.Error(t, err)
	require.Less(t, elapsed, 2*time.Second)
	require.True(t, crerr.Is(err, ErrDependencyUnavailable), "got %v", err)
	require.True(t, crerr.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestMatchService_Merge_TolerateModeStillFailsOnDeadline(t *testing.T) {
	t.Parallel()

	service := NewMatchService(
		newTestQueryBuilder(),
		map[string]federation.Fetcher{
			"a": fetcherFunc(func(context.Context, federation.Query) (federation.Document, error) {
				return federation.Document{Matches: []resource.Match{{ID: "from-a"}}}, nil
			}),
			"b": fetcherFunc(blockUntilDone),
		},
		MatchServiceConfig{QueryTimeout: 50 * time.Millisecond, TolerateFederationFailure: true},
		logging.NewNop(),
	)

	_, err := service.Merge(context.Background(), federation.Filter{})
	require.Error(t, err)
	require.True(t, crerr.Is(err, ErrDependencyUnavailable), "got %v", err)
	require.True(t, crerr.Is(err, context.DeadlineExceeded), "got %v", err)
}
