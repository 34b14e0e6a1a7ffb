package configs

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// GridDefaults: domain default untuk render timetable kalau request tidak
// membawa working_days / periods_per_day sendiri.
type GridDefaults struct {
	WorkingDays   int            `yaml:"working_days"`
	PeriodsPerDay int            `yaml:"periods_per_day"`
	Spans         map[string]int `yaml:"spans"`
	Concurrency   int            `yaml:"concurrency"`
}

func DefaultGrid() GridDefaults {
	return GridDefaults{
		WorkingDays:   6,
		PeriodsPerDay: 8,
		Spans:         map[string]int{"LAB": 2, "PROJECT": 3},
		Concurrency:   4,
	}
}

// LoadGridDefaults: default → file YAML (opsional) → ENV (GRID_*).
func LoadGridDefaults(path string) (GridDefaults, error) {
	g := DefaultGrid()

	if p := strings.TrimSpace(path); p != "" {
		raw, err := os.ReadFile(p)
		if err != nil {
			return g, fmt.Errorf("read grid config %s: %w", p, err)
		}
		if err := yaml.Unmarshal(raw, &g); err != nil {
			return g, fmt.Errorf("parse grid config %s: %w", p, err)
		}
	}

	g.WorkingDays = GetEnvInt("GRID_WORKING_DAYS", g.WorkingDays)
	g.PeriodsPerDay = GetEnvInt("GRID_PERIODS_PER_DAY", g.PeriodsPerDay)
	g.Concurrency = GetEnvInt("GRID_CONCURRENCY", g.Concurrency)

	if g.WorkingDays < 1 || g.WorkingDays > 7 {
		return g, fmt.Errorf("working_days must be within 1..7, got %d", g.WorkingDays)
	}
	if g.PeriodsPerDay < 1 {
		return g, fmt.Errorf("periods_per_day must be > 0, got %d", g.PeriodsPerDay)
	}
	if g.Concurrency < 1 {
		g.Concurrency = 1
	}
	return g, nil
}
