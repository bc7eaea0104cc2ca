package federation

import (
	"strings"

	"github.com/riskibarqy/federated-matches/internal/platform/filterexpr"
)

const (
	DateField = "datetime"

	SeasonPath   = "round.group.tournament.season.id"
	ManagerPath  = "round.group.tournament.manager.id"
	CategoryPath = "round.group.tournament.category.id"
	ClubPath     = "teams.club.id"
)

// DefaultInclude lists the relationship paths the view resolver walks.
var DefaultInclude = []string{
	"round.group.tournament.category",
	"teams",
	"facility",
	"results",
}

// FilterExpression renders the comma-joined predicate list understood by the
// remote document store.
func (q Query) FilterExpression() string {
	conditions := make([]filterexpr.Condition, 0, 5)
	if q.DateBound != "" {
		if q.Period == PeriodPast {
			conditions = append(conditions, filterexpr.Lt(DateField, q.DateBound))
		} else {
			conditions = append(conditions, filterexpr.Gt(DateField, q.DateBound))
		}
	}
	if q.SeasonID != "" {
		conditions = append(conditions, filterexpr.Eq(SeasonPath, q.SeasonID))
	}
	if q.ManagerID != "" {
		conditions = append(conditions, filterexpr.Eq(ManagerPath, q.ManagerID))
	}
	if q.CategoryID != "" {
		conditions = append(conditions, filterexpr.Eq(CategoryPath, q.CategoryID))
	}
	if q.ClubID != "" {
		conditions = append(conditions, filterexpr.Eq(ClubPath, q.ClubID))
	}
	return filterexpr.And(conditions...).String()
}

func (q Query) SortExpression() string {
	if q.Period == PeriodPast {
		return filterexpr.Desc(DateField)
	}
	return filterexpr.Asc(DateField)
}

func (q Query) IncludeExpression() string {
	return strings.Join(q.Include, ",")
}
