package resource

// Kind is the JSON:API type discriminant of a resource.
type Kind string

const (
	KindMatch      Kind = "match"
	KindRound      Kind = "round"
	KindGroup      Kind = "group"
	KindTournament Kind = "tournament"
	KindCategory   Kind = "category"
	KindClub       Kind = "club"
	KindTeam       Kind = "team"
	KindFacility   Kind = "facility"
	KindResult     Kind = "result"
)

// Key identifies one resource inside a graph.
type Key struct {
	Kind Kind
	ID   string
}

// Resource is implemented by every resource variant below.
type Resource interface {
	Key() Key
}

// Match is a primary resource of a matches document.
// Relationship ids are empty when the reference is null.
type Match struct {
	ID              string
	Date            string
	Datetime        string
	DisplayTimezone string
	Finished        bool
	Canceled        bool
	Postponed       bool
	Rest            bool
	HomeTeamID      string
	AwayTeamID      string
	RoundID         string
	FacilityID      string
	TeamIDs         []string
	ResultIDs       []string
}

type Round struct {
	ID        string
	Name      string
	Order     int
	StartDate string
	EndDate   string
	GroupID   string
}

type Group struct {
	ID           string
	Name         string
	Order        int
	TournamentID string
}

// Tournament carries the gender tag used by the gender post-filter.
type Tournament struct {
	ID           string
	Name         string
	Gender       string
	Modality     string
	Status       string
	CategoryID   string
	SeasonID     string
	DisciplineID string
	ManagerID    string
}

type Category struct {
	ID   string
	Name string
}

type Club struct {
	ID   string
	Name string
}

type Team struct {
	ID        string
	Name      string
	AvatarURL string
	ClubID    string
}

type Facility struct {
	ID        string
	Name      string
	Address   string
	City      string
	Latitude  *float64
	Longitude *float64
}

// Result is the score of one team in one match.
type Result struct {
	ID     string
	Value  *float64
	TeamID string
}

// Unknown keeps resources of kinds this service does not interpret,
// so they still occupy their key in the graph.
type Unknown struct {
	Kind Kind
	ID   string
}

func (m Match) Key() Key      { return Key{Kind: KindMatch, ID: m.ID} }
func (r Round) Key() Key      { return Key{Kind: KindRound, ID: r.ID} }
func (g Group) Key() Key      { return Key{Kind: KindGroup, ID: g.ID} }
func (t Tournament) Key() Key { return Key{Kind: KindTournament, ID: t.ID} }
func (c Category) Key() Key   { return Key{Kind: KindCategory, ID: c.ID} }
func (c Club) Key() Key       { return Key{Kind: KindClub, ID: c.ID} }
func (t Team) Key() Key       { return Key{Kind: KindTeam, ID: t.ID} }
func (f Facility) Key() Key   { return Key{Kind: KindFacility, ID: f.ID} }
func (r Result) Key() Key     { return Key{Kind: KindResult, ID: r.ID} }
func (u Unknown) Key() Key    { return Key{Kind: u.Kind, ID: u.ID} }
