package usecase

import (
	"strings"
	"time"

	"github.com/riskibarqy/federated-matches/internal/domain/matchview"
	"github.com/riskibarqy/federated-matches/internal/domain/resource"
)

const (
	matchDateLayout = "2006-01-02 15:04:05"
	dayLayout       = "02/01"
	hourLayout      = "15:04"
)

// ResolveMatchView flattens a match and its related resources. Every missing
// hop leaves the dependent fields empty.
func ResolveMatchView(match resource.Match, graph *resource.Graph) matchview.MatchView {
	view := matchview.MatchView{
		MatchID:         match.ID,
		DisplayTimezone: match.DisplayTimezone,
		Finished:        match.Finished,
		Canceled:        match.Canceled,
		Postponed:       match.Postponed,
		Rest:            match.Rest,
	}

	if round, ok := graph.Round(match.RoundID); ok {
		view.RoundName = round.Name
		if tournament, ok := tournamentOfRound(graph, round); ok {
			view.TournamentName = tournament.Name
			if category, ok := graph.Category(tournament.CategoryID); ok {
				view.CategoryName = category.Name
			}
		}
	}

	if facility, ok := graph.Facility(match.FacilityID); ok {
		view.FacilityName = facility.Name
		view.FacilityLat = facility.Latitude
		view.FacilityLng = facility.Longitude
	}

	view.HomeTeam = resolveTeam(graph, match.HomeTeamID)
	view.AwayTeam = resolveTeam(graph, match.AwayTeamID)
	view.HomeResult, view.AwayResult = assignResults(graph, match.ResultIDs, view.HomeTeam, view.AwayTeam)

	view.Day, view.Hour = ParseMatchDate(match.Date)
	return view
}

func tournamentOfRound(graph *resource.Graph, round resource.Round) (resource.Tournament, bool) {
	group, ok := graph.Group(round.GroupID)
	if !ok {
		return resource.Tournament{}, false
	}
	return graph.Tournament(group.TournamentID)
}

func resolveTeam(graph *resource.Graph, teamID string) *matchview.Team {
	team, ok := graph.Team(teamID)
	if !ok {
		return nil
	}
	return &matchview.Team{
		ID:        team.ID,
		Name:      team.Name,
		AvatarURL: team.AvatarURL,
		ClubID:    team.ClubID,
	}
}

// assignResults pairs results with the resolved teams through the result's
// own team reference. Results of other teams stay unassigned.
func assignResults(graph *resource.Graph, resultIDs []string, home, away *matchview.Team) (*float64, *float64) {
	var homeResult, awayResult *float64
	for _, id := range resultIDs {
		result, ok := graph.Result(id)
		if !ok || result.TeamID == "" {
			continue
		}
		switch {
		case home != nil && homeResult == nil && result.TeamID == home.ID:
			homeResult = result.Value
		case away != nil && awayResult == nil && result.TeamID == away.ID:
			awayResult = result.Value
		}
	}
	return homeResult, awayResult
}

// ParseMatchDate reads a `yyyy-MM-dd HH:mm:ss` UTC timestamp and returns the
// day as dd/MM and the hour as HH:mm. Absent or malformed input yields empty strings.
func ParseMatchDate(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	parsed, err := time.ParseInLocation(matchDateLayout, raw, time.UTC)
	if err != nil {
		return "", ""
	}
	return parsed.Format(dayLayout), parsed.Format(hourLayout)
}
