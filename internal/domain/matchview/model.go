package matchview

// Team is the display form of a resolved team.
type Team struct {
	ID        string
	Name      string
	AvatarURL string
	ClubID    string
}

// MatchView is the flattened, render-ready record of one match.
// Unresolvable references leave the matching fields empty.
type MatchView struct {
	MatchID         string
	TournamentName  string
	CategoryName    string
	RoundName       string
	FacilityName    string
	FacilityLat     *float64
	FacilityLng     *float64
	HomeTeam        *Team
	AwayTeam        *Team
	HomeResult      *float64
	AwayResult      *float64
	Day             string
	Hour            string
	DisplayTimezone string
	Finished        bool
	Canceled        bool
	Postponed       bool
	Rest            bool
}
