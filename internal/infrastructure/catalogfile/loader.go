package catalogfile

import (
	_ "embed"
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/federated-matches/internal/domain/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog holds the parsed category and club tables.
type Catalog struct {
	Categories []catalog.Category
	Clubs      []catalog.Club
}

type fileCatalog struct {
	Categories []categoryEntry `yaml:"categories" validate:"dive"`
	Clubs      []clubEntry     `yaml:"clubs" validate:"dive"`
}

type categoryEntry struct {
	ID          string            `yaml:"id" validate:"required"`
	Name        string            `yaml:"name" validate:"required"`
	Gender      string            `yaml:"gender" validate:"catalog_gender"`
	Federations map[string]string `yaml:"federations"`
}

type clubEntry struct {
	ID          string            `yaml:"id" validate:"required"`
	Name        string            `yaml:"name" validate:"required"`
	Federations map[string]string `yaml:"federations"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("catalog_gender", func(fl validator.FieldLevel) bool {
		return catalog.IsKnownGender(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, crerr.Wrapf(err, "read catalog file %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (Catalog, error) {
	var file fileCatalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Catalog{}, crerr.Wrap(err, "parse catalog")
	}
	normalize(&file)
	if err := validate.Struct(file); err != nil {
		return Catalog{}, crerr.Wrap(err, "validate catalog")
	}

	out := Catalog{
		Categories: make([]catalog.Category, 0, len(file.Categories)),
		Clubs:      make([]catalog.Club, 0, len(file.Clubs)),
	}

	seen := make(map[string]struct{}, len(file.Categories))
	for _, item := range file.Categories {
		if _, dup := seen[item.ID]; dup {
			return Catalog{}, crerr.Newf("duplicate category id %q", item.ID)
		}
		seen[item.ID] = struct{}{}
		out.Categories = append(out.Categories, catalog.Category{
			ID:            item.ID,
			Name:          item.Name,
			Gender:        item.Gender,
			FederationIDs: item.Federations,
		})
	}

	seen = make(map[string]struct{}, len(file.Clubs))
	for _, item := range file.Clubs {
		if _, dup := seen[item.ID]; dup {
			return Catalog{}, crerr.Newf("duplicate club id %q", item.ID)
		}
		seen[item.ID] = struct{}{}
		out.Clubs = append(out.Clubs, catalog.Club{
			ID:            item.ID,
			Name:          item.Name,
			FederationIDs: item.Federations,
		})
	}
	return out, nil
}

func normalize(file *fileCatalog) {
	for i := range file.Categories {
		item := &file.Categories[i]
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)
		item.Gender = catalog.NormalizeGender(item.Gender)
		item.Federations = normalizeFederationIDs(item.Federations)
	}
	for i := range file.Clubs {
		item := &file.Clubs[i]
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)
		item.Federations = normalizeFederationIDs(item.Federations)
	}
}

// normalizeFederationIDs drops blank entries so an empty id reads as unmapped.
func normalizeFederationIDs(ids map[string]string) map[string]string {
	out := make(map[string]string, len(ids))
	for key, value := range ids {
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	return out
}
