package usecase

import (
	"context"
	"slices"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
	"github.com/riskibarqy/federated-matches/internal/domain/matchview"
	"github.com/riskibarqy/federated-matches/internal/domain/resource"
	"github.com/riskibarqy/federated-matches/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

type MatchServiceConfig struct {
	QueryTimeout time.Duration
	// TolerateFederationFailure turns a failed federation fetch into an empty
	// document instead of failing the whole query.
	TolerateFederationFailure bool
}

// MatchSet is the merged, filtered and sorted outcome of one query.
type MatchSet struct {
	Matches []resource.Match
	Graph   *resource.Graph
}

type MatchService struct {
	planner  *FederationQueryBuilder
	fetchers map[string]federation.Fetcher
	cfg      MatchServiceConfig
	logger   *logging.Logger
}

func NewMatchService(
	planner *FederationQueryBuilder,
	fetchers map[string]federation.Fetcher,
	cfg MatchServiceConfig,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		planner:  planner,
		fetchers: fetchers,
		cfg:      cfg,
		logger:   logger,
	}
}

// List merges both federations and resolves every retained match for display.
func (s *MatchService) List(ctx context.Context, filter federation.Filter) ([]matchview.MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	set, err := s.Merge(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]matchview.MatchView, 0, len(set.Matches))
	for _, match := range set.Matches {
		out = append(out, ResolveMatchView(match, set.Graph))
	}
	return out, nil
}

// Merge fetches every participating federation concurrently and combines the
// documents once all fetches have settled.
func (s *MatchService) Merge(ctx context.Context, filter federation.Filter) (MatchSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Merge")
	defer span.End()

	if filter.Period == 0 {
		filter.Period = federation.PeriodFuture
	}

	plans := s.planner.Plan(filter)
	docs, err := s.fetchAll(ctx, plans)
	if err != nil {
		return MatchSet{}, err
	}

	gender := ""
	if category, ok := s.planner.Category(filter.CategoryID); ok {
		gender = catalog.NormalizeGender(category.Gender)
	}

	set := mergeDocuments(plans, docs, gender)
	sortMatchesByDate(set.Matches, filter.Period)

	s.logger.DebugContext(ctx, "matches merged",
		"period", filter.Period.String(),
		"category_id", filter.CategoryID,
		"club_id", filter.ClubID,
		"gender", gender,
		"matches", len(set.Matches),
		"resources", set.Graph.Len(),
	)
	return set, nil
}

func (s *MatchService) fetchAll(ctx context.Context, plans []FederationPlan) ([]federation.Document, error) {
	if s.cfg.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.QueryTimeout)
		defer cancel()
	}

	for _, plan := range plans {
		if !plan.Participates {
			continue
		}
		if fetcher, ok := s.fetchers[plan.Federation.Key]; !ok || fetcher == nil {
			return nil, crerr.Wrapf(ErrDependencyUnavailable, "no fetcher configured for federation=%s", plan.Federation.Key)
		}
	}

	docs := make([]federation.Document, len(plans))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, plan := range plans {
		if !plan.Participates {
			s.logger.DebugContext(ctx, "federation skipped for query", "federation", plan.Federation.Key)
			continue
		}

		fetcher := s.fetchers[plan.Federation.Key]
		p.Go(func(ctx context.Context) error {
			doc, err := fetcher.FetchMatches(ctx, plan.Query)
			if err != nil {
				if s.cfg.TolerateFederationFailure && ctx.Err() == nil {
					s.logger.WarnContext(ctx, "federation fetch failed, continuing without it",
						"federation", plan.Federation.Key,
						"error", err,
					)
					return nil
				}
				return crerr.Wrapf(crerr.Mark(err, ErrDependencyUnavailable), "fetch matches federation=%s", plan.Federation.Key)
			}
			docs[i] = doc
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// mergeDocuments concatenates the documents in plan order. The gender
// post-filter narrows only matches of federations without native gender
// filtering, using the merged graph.
func mergeDocuments(plans []FederationPlan, docs []federation.Document, gender string) MatchSet {
	graph := resource.Build(nil, nil)
	for _, doc := range docs {
		graph = graph.Concat(doc.Graph())
	}

	var allowedRounds map[string]struct{}
	if gender != "" {
		allowedRounds = roundIDsForGender(graph, gender)
	}

	total := 0
	for _, doc := range docs {
		total += len(doc.Matches)
	}
	matches := make([]resource.Match, 0, total)
	for i, doc := range docs {
		narrow := allowedRounds != nil && !plans[i].Federation.NativeGenderFilter
		for _, match := range doc.Matches {
			if narrow {
				if _, ok := allowedRounds[match.RoundID]; !ok {
					continue
				}
			}
			matches = append(matches, match)
		}
	}

	return MatchSet{Matches: matches, Graph: graph}
}

// roundIDsForGender walks tournament → group → round and returns the rounds
// that belong to tournaments of the given gender.
func roundIDsForGender(graph *resource.Graph, gender string) map[string]struct{} {
	tournaments := make(map[string]struct{})
	graph.Each(resource.KindTournament, func(r resource.Resource) {
		if t, ok := r.(resource.Tournament); ok && catalog.NormalizeGender(t.Gender) == gender {
			tournaments[t.ID] = struct{}{}
		}
	})

	groups := make(map[string]struct{})
	graph.Each(resource.KindGroup, func(r resource.Resource) {
		if g, ok := r.(resource.Group); ok {
			if _, hit := tournaments[g.TournamentID]; hit {
				groups[g.ID] = struct{}{}
			}
		}
	})

	rounds := make(map[string]struct{})
	graph.Each(resource.KindRound, func(r resource.Resource) {
		if round, ok := r.(resource.Round); ok {
			if _, hit := groups[round.GroupID]; hit {
				rounds[round.ID] = struct{}{}
			}
		}
	})
	return rounds
}

// sortMatchesByDate orders by the raw date string, ascending for future and
// descending for past. Missing dates compare as "".
func sortMatchesByDate(matches []resource.Match, period federation.Period) {
	direction := period.Direction()
	slices.SortStableFunc(matches, func(a, b resource.Match) int {
		return strings.Compare(a.Date, b.Date) * direction
	})
}
