package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the fixed training content: disaster categories, quiz tiers,
// and the drills offered per category. It is loaded once at boot and treated
// as read-only afterwards.
type Catalog struct {
	Categories []Category `yaml:"categories"`
	QuizTiers  []string   `yaml:"quiz_tiers"`
}

type Category struct {
	Key         string  `yaml:"key" json:"key"`
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Drills      []Drill `yaml:"drills" json:"drills"`
}

type Drill struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	if len(c.Categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}
	if len(c.QuizTiers) == 0 {
		c.QuizTiers = []string{"1", "2", "3", "4", "5"}
	}
	return &c, nil
}

// Default returns the built-in catalog used when no catalog file is
// configured. It mirrors the shipped training content.
func Default() *Catalog {
	return &Catalog{
		QuizTiers: []string{"1", "2", "3", "4", "5"},
		Categories: []Category{
			{
				Key:         "fire",
				Title:       "Fire Safety",
				Description: "Fire prevention, evacuation, and extinguisher use",
				Drills: []Drill{
					{ID: "fire_evacuation", Title: "Building Evacuation", Description: "Evacuate the building along the marked route"},
					{ID: "fire_extinguisher", Title: "Extinguisher Operation", Description: "Select and operate the correct extinguisher"},
				},
			},
			{
				Key:         "earthquake",
				Title:       "Earthquake Preparedness",
				Description: "Drop, cover, and hold on procedures",
				Drills: []Drill{
					{ID: "earthquake_drop_cover", Title: "Drop, Cover, Hold On", Description: "React correctly during shaking"},
					{ID: "earthquake_aftershock", Title: "Aftershock Response", Description: "Safe movement after the main shock"},
				},
			},
			{
				Key:         "flood",
				Title:       "Flood Response",
				Description: "Flood warnings, safe routes, and supply kits",
				Drills: []Drill{
					{ID: "flood_high_ground", Title: "Move to High Ground", Description: "Choose a safe evacuation route"},
				},
			},
			{
				Key:         "severe_weather",
				Title:       "Severe Weather",
				Description: "Storm, cyclone, and lightning safety",
				Drills: []Drill{
					{ID: "storm_shelter", Title: "Shelter in Place", Description: "Pick and prepare a safe interior room"},
				},
			},
			{
				Key:         "electrical",
				Title:       "Electrical Safety",
				Description: "Electrical hazard identification and response",
				Drills: []Drill{
					{ID: "electrical_shutoff", Title: "Power Shutoff", Description: "Isolate power at the breaker safely"},
				},
			},
		},
	}
}

func (c *Catalog) HasCategory(key string) bool {
	for _, cat := range c.Categories {
		if cat.Key == key {
			return true
		}
	}
	return false
}

func (c *Catalog) HasQuizTier(level string) bool {
	for _, t := range c.QuizTiers {
		if t == level {
			return true
		}
	}
	return false
}

func (c *Catalog) CategoryKeys() []string {
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, cat.Key)
	}
	return keys
}
