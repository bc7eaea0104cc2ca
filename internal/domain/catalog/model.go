package catalog

import "strings"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderMixed  = "mixed"
)

// Category is a logical competition category shared across federations.
type Category struct {
	ID            string
	Name          string
	FederationIDs map[string]string
	Gender        string
}

// Club is a logical club shared across federations.
type Club struct {
	ID            string
	Name          string
	FederationIDs map[string]string
}

// FederationID returns the category id used by the given federation.
func (c Category) FederationID(federationKey string) (string, bool) {
	return lookupFederationID(c.FederationIDs, federationKey)
}

func (c Club) FederationID(federationKey string) (string, bool) {
	return lookupFederationID(c.FederationIDs, federationKey)
}

func lookupFederationID(ids map[string]string, federationKey string) (string, bool) {
	if len(ids) == 0 {
		return "", false
	}
	id := strings.TrimSpace(ids[federationKey])
	if id == "" {
		return "", false
	}
	return id, true
}

// NormalizeGender folds the spellings seen in catalog files and remote
// tournament attributes onto male, female or mixed. Other values are
// returned lowercased and trimmed.
func NormalizeGender(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case "m", "male", "men", "masculino", "masculi", "masculí":
		return GenderMale
	case "f", "female", "women", "femenino", "femeni", "femení":
		return GenderFemale
	case "x", "mixed", "mixto", "mixt":
		return GenderMixed
	default:
		return value
	}
}

func IsKnownGender(value string) bool {
	switch value {
	case "", GenderMale, GenderFemale, GenderMixed:
		return true
	default:
		return false
	}
}
