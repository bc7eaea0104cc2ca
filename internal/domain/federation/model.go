package federation

import (
	"strings"

	"github.com/riskibarqy/federated-matches/internal/domain/resource"
)

// Period selects upcoming or already played matches. Its integer value is
// the sort direction applied to match dates.
type Period int

const (
	PeriodPast   Period = -1
	PeriodFuture Period = 1
)

func ParsePeriod(value string) (Period, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "future", "next", "1":
		return PeriodFuture, true
	case "past", "previous", "-1":
		return PeriodPast, true
	default:
		return 0, false
	}
}

func (p Period) Direction() int {
	if p == PeriodPast {
		return -1
	}
	return 1
}

func (p Period) String() string {
	if p == PeriodPast {
		return "past"
	}
	return "future"
}

// Filter is the user-facing query before federation-specific translation.
// Empty ids mean "not selected".
type Filter struct {
	Period     Period
	CategoryID string
	ClubID     string
}

// Federation is one remote registry of competitions.
type Federation struct {
	Key       string
	Name      string
	ManagerID string
	// NativeGenderFilter reports whether the federation's own category ids
	// are already gender specific.
	NativeGenderFilter bool
}

// Query holds the federation-specific request parameters of one fetch.
type Query struct {
	FederationKey string
	Period        Period
	DateBound     string
	SeasonID      string
	ManagerID     string
	CategoryID    string
	ClubID        string
	Include       []string
	PageSize      int
	PageNumber    int
}

// Document is a decoded compound document of matches.
type Document struct {
	Matches  []resource.Match
	Included []resource.Resource
}

func (d Document) Graph() *resource.Graph {
	return resource.Build(d.Matches, d.Included)
}
