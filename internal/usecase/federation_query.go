package usecase

import (
	"strings"
	"time"

	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
)

const (
	defaultPageSize = 50
	dateBoundLayout = "2006-01-02"
	firstPageNumber = 1
)

type FederationQueryConfig struct {
	SeasonID string
	PageSize int
	Include  []string
	Now      func() time.Time
}

// FederationPlan is the per-federation outcome of translating a logical filter.
type FederationPlan struct {
	Federation   federation.Federation
	Participates bool
	Query        federation.Query
}

// FederationQueryBuilder translates logical filters into per-federation
// queries using the static category and club tables.
type FederationQueryBuilder struct {
	federations []federation.Federation
	categories  map[string]catalog.Category
	clubs       map[string]catalog.Club
	seasonID    string
	pageSize    int
	include     []string
	now         func() time.Time
}

func NewFederationQueryBuilder(
	federations []federation.Federation,
	categories []catalog.Category,
	clubs []catalog.Club,
	cfg FederationQueryConfig,
) *FederationQueryBuilder {
	categoryByID := make(map[string]catalog.Category, len(categories))
	for _, item := range categories {
		if _, exists := categoryByID[item.ID]; !exists {
			categoryByID[item.ID] = item
		}
	}
	clubByID := make(map[string]catalog.Club, len(clubs))
	for _, item := range clubs {
		if _, exists := clubByID[item.ID]; !exists {
			clubByID[item.ID] = item
		}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	include := cfg.Include
	if len(include) == 0 {
		include = federation.DefaultInclude
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &FederationQueryBuilder{
		federations: append([]federation.Federation(nil), federations...),
		categories:  categoryByID,
		clubs:       clubByID,
		seasonID:    strings.TrimSpace(cfg.SeasonID),
		pageSize:    pageSize,
		include:     append([]string(nil), include...),
		now:         now,
	}
}

func (b *FederationQueryBuilder) Category(id string) (catalog.Category, bool) {
	item, ok := b.categories[strings.TrimSpace(id)]
	return item, ok
}

// Plan returns one plan per configured federation, in configuration order.
//
// A selected category or club that no federation carries is treated as not
// selected at all. Otherwise a federation takes part only when it resolves
// every selected dimension.
func (b *FederationQueryBuilder) Plan(filter federation.Filter) []FederationPlan {
	if filter.Period == 0 {
		filter.Period = federation.PeriodFuture
	}

	categoryIDs := b.categoryIDsByFederation(filter.CategoryID)
	clubIDs := b.clubIDsByFederation(filter.ClubID)
	categorySelected := len(categoryIDs) > 0
	clubSelected := len(clubIDs) > 0

	dateBound := b.now().UTC().Format(dateBoundLayout)
	plans := make([]FederationPlan, 0, len(b.federations))
	for _, fed := range b.federations {
		categoryFedID, categoryResolved := categoryIDs[fed.Key]
		clubFedID, clubResolved := clubIDs[fed.Key]

		plan := FederationPlan{
			Federation:   fed,
			Participates: participates(categorySelected, categoryResolved, clubSelected, clubResolved),
		}
		if plan.Participates {
			plan.Query = federation.Query{
				FederationKey: fed.Key,
				Period:        filter.Period,
				DateBound:     dateBound,
				SeasonID:      b.seasonID,
				ManagerID:     fed.ManagerID,
				CategoryID:    categoryFedID,
				ClubID:        clubFedID,
				Include:       append([]string(nil), b.include...),
				PageSize:      b.pageSize,
				PageNumber:    firstPageNumber,
			}
		}
		plans = append(plans, plan)
	}

	return plans
}

func participates(categorySelected, categoryResolved, clubSelected, clubResolved bool) bool {
	switch {
	case !categorySelected && !clubSelected:
		return true
	case !categorySelected && clubResolved:
		return true
	case categoryResolved && !clubSelected:
		return true
	case categoryResolved && clubResolved:
		return true
	default:
		return false
	}
}

func (b *FederationQueryBuilder) categoryIDsByFederation(logicalID string) map[string]string {
	logicalID = strings.TrimSpace(logicalID)
	if logicalID == "" {
		return nil
	}
	item, ok := b.categories[logicalID]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(b.federations))
	for _, fed := range b.federations {
		if id, ok := item.FederationID(fed.Key); ok {
			out[fed.Key] = id
		}
	}
	return out
}

func (b *FederationQueryBuilder) clubIDsByFederation(logicalID string) map[string]string {
	logicalID = strings.TrimSpace(logicalID)
	if logicalID == "" {
		return nil
	}
	item, ok := b.clubs[logicalID]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(b.federations))
	for _, fed := range b.federations {
		if id, ok := item.FederationID(fed.Key); ok {
			out[fed.Key] = id
		}
	}
	return out
}
