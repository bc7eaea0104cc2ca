package httpapi

import "github.com/riskibarqy/federated-matches/internal/domain/matchview"

type matchDTO struct {
	ID           string   `json:"id"`
	Tournament   string   `json:"tournament,omitempty"`
	Category     string   `json:"category,omitempty"`
	Round        string   `json:"round,omitempty"`
	FacilityName string   `json:"facilityName,omitempty"`
	FacilityLat  *float64 `json:"facilityLat,omitempty"`
	FacilityLng  *float64 `json:"facilityLng,omitempty"`
	HomeTeam     *teamDTO `json:"homeTeam,omitempty"`
	AwayTeam     *teamDTO `json:"awayTeam,omitempty"`
	HomeResult   *float64 `json:"homeResult,omitempty"`
	AwayResult   *float64 `json:"awayResult,omitempty"`
	Day          string   `json:"day,omitempty"`
	Hour         string   `json:"hour,omitempty"`
	Timezone     string   `json:"timezone,omitempty"`
	Finished     bool     `json:"finished"`
	Canceled     bool     `json:"canceled"`
	Postponed    bool     `json:"postponed"`
	Rest         bool     `json:"rest"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	ClubID    string `json:"clubId,omitempty"`
}

type categoryDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender,omitempty"`
}

type clubDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func matchViewToDTO(view matchview.MatchView) matchDTO {
	return matchDTO{
		ID:           view.MatchID,
		Tournament:   view.TournamentName,
		Category:     view.CategoryName,
		Round:        view.RoundName,
		FacilityName: view.FacilityName,
		FacilityLat:  view.FacilityLat,
		FacilityLng:  view.FacilityLng,
		HomeTeam:     teamToDTO(view.HomeTeam),
		AwayTeam:     teamToDTO(view.AwayTeam),
		HomeResult:   view.HomeResult,
		AwayResult:   view.AwayResult,
		Day:          view.Day,
		Hour:         view.Hour,
		Timezone:     view.DisplayTimezone,
		Finished:     view.Finished,
		Canceled:     view.Canceled,
		Postponed:    view.Postponed,
		Rest:         view.Rest,
	}
}

func teamToDTO(team *matchview.Team) *teamDTO {
	if team == nil {
		return nil
	}
	return &teamDTO{
		ID:        team.ID,
		Name:      team.Name,
		AvatarURL: team.AvatarURL,
		ClubID:    team.ClubID,
	}
}
