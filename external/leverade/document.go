package leverade

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/federated-matches/internal/domain/federation"
	"github.com/riskibarqy/federated-matches/internal/domain/resource"
)

type documentEnvelope struct {
	Data     []wireResource `json:"data"`
	Included []wireResource `json:"included"`
}

type wireResource struct {
	Type          string                      `json:"type"`
	ID            flexibleID                  `json:"id"`
	Attributes    json.RawMessage             `json:"attributes"`
	Meta          wireMeta                    `json:"meta"`
	Relationships map[string]wireRelationship `json:"relationships"`
}

type wireMeta struct {
	HomeTeam flexibleID  `json:"home_team"`
	AwayTeam flexibleID  `json:"away_team"`
	Avatar   *wireAvatar `json:"avatar"`
}

type wireAvatar struct {
	Large string `json:"large"`
}

type wireRelationship struct {
	Data relationshipData `json:"data"`
}

type wireRef struct {
	Type string     `json:"type"`
	ID   flexibleID `json:"id"`
}

// relationshipData accepts the three JSON:API linkage shapes: null, a single
// resource identifier or an array of them.
type relationshipData struct {
	Refs []wireRef
}

func (r *relationshipData) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		r.Refs = nil
		return nil
	}
	if raw[0] == '[' {
		var refs []wireRef
		if err := sonic.Unmarshal(raw, &refs); err != nil {
			return err
		}
		r.Refs = refs
		return nil
	}

	var ref wireRef
	if err := sonic.Unmarshal(raw, &ref); err != nil {
		return err
	}
	r.Refs = []wireRef{ref}
	return nil
}

// flexibleID accepts string, numeric and null identifiers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = ""
		return nil
	}
	if raw[0] == '"' {
		var value string
		if err := sonic.Unmarshal(raw, &value); err != nil {
			return err
		}
		*f = flexibleID(strings.TrimSpace(value))
		return nil
	}
	*f = flexibleID(raw)
	return nil
}

// optionalNumber accepts numbers, numeric strings and null.
type optionalNumber struct {
	Value *float64
}

func (n *optionalNumber) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		n.Value = nil
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := sonic.Unmarshal(raw, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			n.Value = nil
			return nil
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return crerr.Wrapf(err, "parse number %q", text)
	}
	n.Value = &value
	return nil
}

type matchAttributes struct {
	Date            *string `json:"date"`
	Datetime        *string `json:"datetime"`
	DisplayTimezone *string `json:"display_timezone"`
	Finished        bool    `json:"finished"`
	Canceled        bool    `json:"canceled"`
	Postponed       bool    `json:"postponed"`
	Rest            bool    `json:"rest"`
}

type roundAttributes struct {
	Name      *string        `json:"name"`
	Order     optionalNumber `json:"order"`
	StartDate *string        `json:"start_date"`
	EndDate   *string        `json:"end_date"`
}

type groupAttributes struct {
	Name  *string        `json:"name"`
	Order optionalNumber `json:"order"`
}

type tournamentAttributes struct {
	Name     *string `json:"name"`
	Gender   *string `json:"gender"`
	Modality *string `json:"modality"`
	Status   *string `json:"status"`
}

type namedAttributes struct {
	Name *string `json:"name"`
}

type facilityAttributes struct {
	Name      *string        `json:"name"`
	Address   *string        `json:"address"`
	City      *string        `json:"city"`
	Latitude  optionalNumber `json:"latitude"`
	Longitude optionalNumber `json:"longitude"`
}

type resultAttributes struct {
	Value optionalNumber `json:"value"`
}

func decodeDocument(raw []byte) (federation.Document, error) {
	var envelope documentEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return federation.Document{}, crerr.Wrap(err, "decode matches document")
	}
	return envelope.toDocument()
}

// toDocument maps wire resources onto domain variants. A missing data or
// included member yields an empty slice.
func (e documentEnvelope) toDocument() (federation.Document, error) {
	doc := federation.Document{
		Matches:  make([]resource.Match, 0, len(e.Data)),
		Included: make([]resource.Resource, 0, len(e.Included)),
	}

	for _, item := range e.Data {
		if resource.Kind(item.Type) != resource.KindMatch {
			continue
		}
		match, err := item.toMatch()
		if err != nil {
			return federation.Document{}, err
		}
		doc.Matches = append(doc.Matches, match)
	}

	for _, item := range e.Included {
		res, err := item.toResource()
		if err != nil {
			return federation.Document{}, err
		}
		doc.Included = append(doc.Included, res)
	}
	return doc, nil
}

func (w wireResource) toResource() (resource.Resource, error) {
	id := string(w.ID)
	switch resource.Kind(w.Type) {
	case resource.KindMatch:
		return w.toMatch()
	case resource.KindRound:
		var attrs roundAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return resource.Round{
			ID:        id,
			Name:      deref(attrs.Name),
			Order:     attrs.Order.Int(),
			StartDate: deref(attrs.StartDate),
			EndDate:   deref(attrs.EndDate),
			GroupID:   w.relationshipID("group"),
		}, nil
	case resource.KindGroup:
		var attrs groupAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return resource.Group{
			ID:           id,
			Name:         deref(attrs.Name),
			Order:        attrs.Order.Int(),
			TournamentID: w.relationshipID("tournament"),
		}, nil
	case resource.KindTournament:
		var attrs tournamentAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return resource.Tournament{
			ID:           id,
			Name:         deref(attrs.Name),
			Gender:       deref(attrs.Gender),
			Modality:     deref(attrs.Modality),
			Status:       deref(attrs.Status),
			CategoryID:   w.relationshipID("category"),
			SeasonID:     w.relationshipID("season"),
			DisciplineID: w.relationshipID("discipline"),
			ManagerID:    w.relationshipID("manager"),
		}, nil
	case resource.KindCategory:
		var attrs namedAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return resource.Category{ID: id, Name: deref(attrs.Name)}, nil
	case resource.KindClub:
		var attrs namedAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return resource.Club{ID: id, Name: deref(attrs.Name)}, nil
	case resource.KindTeam:
		var attrs namedAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		team := resource.Team{
			ID:     id,
			Name:   deref(attrs.Name),
			ClubID: w.relationshipID("club"),
		}
		if w.Meta.Avatar != nil {
			team.AvatarURL = strings.TrimSpace(w.Meta.Avatar.Large)
		}
		return team, nil
	case resource.KindFacility:
		var attrs facilityAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return resource.Facility{
			ID:        id,
			Name:      deref(attrs.Name),
			Address:   deref(attrs.Address),
			City:      deref(attrs.City),
			Latitude:  attrs.Latitude.Value,
			Longitude: attrs.Longitude.Value,
		}, nil
	case resource.KindResult:
		var attrs resultAttributes
		if err := w.decodeAttributes(&attrs); err != nil {
			return nil, err
		}
		return resource.Result{
			ID:     id,
			Value:  attrs.Value.Value,
			TeamID: w.relationshipID("team"),
		}, nil
	default:
		return resource.Unknown{Kind: resource.Kind(w.Type), ID: id}, nil
	}
}

func (w wireResource) toMatch() (resource.Match, error) {
	var attrs matchAttributes
	if err := w.decodeAttributes(&attrs); err != nil {
		return resource.Match{}, err
	}
	return resource.Match{
		ID:              string(w.ID),
		Date:            deref(attrs.Date),
		Datetime:        deref(attrs.Datetime),
		DisplayTimezone: deref(attrs.DisplayTimezone),
		Finished:        attrs.Finished,
		Canceled:        attrs.Canceled,
		Postponed:       attrs.Postponed,
		Rest:            attrs.Rest,
		HomeTeamID:      string(w.Meta.HomeTeam),
		AwayTeamID:      string(w.Meta.AwayTeam),
		RoundID:         w.relationshipID("round"),
		FacilityID:      w.relationshipID("facility"),
		TeamIDs:         w.relationshipIDs("teams"),
		ResultIDs:       w.relationshipIDs("results"),
	}, nil
}

func (w wireResource) decodeAttributes(target any) error {
	raw := bytes.TrimSpace(w.Attributes)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(err, "decode %s id=%s attributes", w.Type, w.ID)
	}
	return nil
}

func (w wireResource) relationshipID(name string) string {
	rel, ok := w.Relationships[name]
	if !ok || len(rel.Data.Refs) == 0 {
		return ""
	}
	return string(rel.Data.Refs[0].ID)
}

func (w wireResource) relationshipIDs(name string) []string {
	rel, ok := w.Relationships[name]
	if !ok || len(rel.Data.Refs) == 0 {
		return nil
	}
	out := make([]string, 0, len(rel.Data.Refs))
	for _, ref := range rel.Data.Refs {
		if ref.ID == "" {
			continue
		}
		out = append(out, string(ref.ID))
	}
	return out
}

func (n optionalNumber) Int() int {
	if n.Value == nil {
		return 0
	}
	return int(*n.Value)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
