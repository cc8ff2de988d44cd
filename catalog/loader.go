// ABOUTME: YAML catalog loader with validation and eco-grade derivation
// ABOUTME: Ships an embedded seed catalog used when no catalog file is configured

package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/markalston/vegan-menu-optimizer/models"
)

//go:embed seed.yaml
var seedYAML []byte

// carbon footprint (kg CO2e per 100 g) that maps to an eco-score of 0
const carbonScoreCeiling = 5.0

type itemRecord struct {
	ID              string                `yaml:"id"`
	Name            string                `yaml:"name"`
	Category        models.MealCategory   `yaml:"category"`
	Nutrients       models.NutrientValues `yaml:"nutrients"`
	CostPerServing  float64               `yaml:"cost_per_serving"`
	CarbonFootprint float64               `yaml:"carbon_footprint"`
	EcoScore        *float64              `yaml:"eco_score"`
	EcoGrade        string                `yaml:"eco_grade"`
	NutriScore      string                `yaml:"nutri_score"`
	CookingMinutes  int                   `yaml:"cooking_minutes"`
	Difficulty      models.Difficulty     `yaml:"difficulty"`
	Allergens       []string              `yaml:"allergens"`
	Ingredients     []string              `yaml:"ingredients"`
	Tags            []string              `yaml:"tags"`
	Vegan           *bool                 `yaml:"vegan"`
	Source          string                `yaml:"source"`
}

type catalogFile struct {
	Items []itemRecord `yaml:"items"`
}

// Load parses a YAML catalog document
func Load(r io.Reader) ([]models.CatalogItem, error) {
	var doc catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog is empty")
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Items))
	items := make([]models.CatalogItem, 0, len(doc.Items))
	for i, rec := range doc.Items {
		item, err := rec.toItem()
		if err != nil {
			return nil, fmt.Errorf("catalog item %d: %w", i, err)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("catalog item %d: duplicate id %q", i, item.ID)
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items, nil
}

// LoadFile reads a YAML catalog from path
func LoadFile(path string) ([]models.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// SeedItems returns the embedded seed catalog
func SeedItems() ([]models.CatalogItem, error) {
	return Load(bytes.NewReader(seedYAML))
}

// Default returns a catalog from path, or the embedded seed when path is empty
func Default(path string) (*Catalog, error) {
	var (
		items []models.CatalogItem
		err   error
	)
	if path == "" {
		items, err = SeedItems()
	} else {
		items, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return New(items), nil
}

func (r itemRecord) toItem() (models.CatalogItem, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return models.CatalogItem{}, fmt.Errorf("id is required")
	}
	category := models.MealCategory(strings.ToLower(strings.TrimSpace(string(r.Category))))
	if !category.Valid() {
		return models.CatalogItem{}, fmt.Errorf("%s: unsupported category %q", id, r.Category)
	}
	if !finite(r.CostPerServing) || !finite(r.CarbonFootprint) || (r.EcoScore != nil && !finite(*r.EcoScore)) {
		return models.CatalogItem{}, fmt.Errorf("%s: cost, carbon footprint and eco score must be finite numbers", id)
	}
	if r.CostPerServing < 0 || r.CarbonFootprint < 0 || r.CookingMinutes < 0 {
		return models.CatalogItem{}, fmt.Errorf("%s: cost, carbon footprint and cooking minutes must not be negative", id)
	}
	if g := strings.TrimSpace(r.EcoGrade); g != "" && models.EcoScoreForGrade(g) < 0 {
		return models.CatalogItem{}, fmt.Errorf("%s: unknown eco grade %q", id, r.EcoGrade)
	}

	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyEasy
	}
	vegan := true
	if r.Vegan != nil {
		vegan = *r.Vegan
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = id
	}

	score, grade := ecoRating(r)
	return models.CatalogItem{
		ID:              id,
		Name:            name,
		Category:        category,
		Nutrients:       r.Nutrients.Resolve(),
		CostPerServing:  r.CostPerServing,
		CarbonFootprint: r.CarbonFootprint,
		EcoScore:        score,
		EcoGrade:        grade,
		NutriScore:      strings.ToUpper(strings.TrimSpace(r.NutriScore)),
		CookingMinutes:  r.CookingMinutes,
		Difficulty:      difficulty,
		Allergens:       r.Allergens,
		Ingredients:     r.Ingredients,
		Tags:            r.Tags,
		Vegan:           vegan,
		Source:          r.Source,
	}, nil
}

// ecoRating fills whichever of score and grade is missing. With neither,
// the score is derived from the carbon footprint.
func ecoRating(r itemRecord) (float64, string) {
	grade := strings.ToUpper(strings.TrimSpace(r.EcoGrade))
	switch {
	case r.EcoScore != nil && grade != "":
		return clampScore(*r.EcoScore), grade
	case r.EcoScore != nil:
		s := clampScore(*r.EcoScore)
		return s, models.EcoGradeFor(s)
	case grade != "":
		return models.EcoScoreForGrade(grade), grade
	default:
		s := clampScore(100 * (1 - r.CarbonFootprint/carbonScoreCeiling))
		return s, models.EcoGradeFor(s)
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
