// Package program loads training program definitions from YAML files.
package program

import (
	"fmt"
	"os"
	"time"

	"github.com/myrjola/ironplan/internal/plan"
	"gopkg.in/yaml.v3"
)

// Definition mirrors the YAML shape of a program file.
type Definition struct {
	Name              string  `yaml:"name"`
	Methodology       string  `yaml:"methodology"`
	Weeks             int     `yaml:"weeks"`
	StartDate         string  `yaml:"start_date"`
	RoundingIncrement float64 `yaml:"rounding_increment"`
	Days              []Day   `yaml:"days"`
}

type Day struct {
	Role  string `yaml:"role"`
	Slots []Slot `yaml:"slots"`
}

type Slot struct {
	Exercise       string  `yaml:"exercise"`
	StartingWeight float64 `yaml:"starting_weight"`
	Increment      float64 `yaml:"increment"`
	Sets           int     `yaml:"sets"`
	Reps           int     `yaml:"reps"`
	Anchor         bool    `yaml:"anchor"`
}

// Load reads a program definition from a YAML file and converts it into a
// plan definition. A missing start date defaults to today.
func Load(path string) (plan.PlanDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return plan.PlanDefinition{}, fmt.Errorf("reading program file: %w", err)
	}
	return Parse(data)
}

// Parse converts YAML program bytes into a plan definition.
func Parse(data []byte) (plan.PlanDefinition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return plan.PlanDefinition{}, fmt.Errorf("parsing program file: %w", err)
	}
	return def.toPlanDefinition()
}

func (d Definition) toPlanDefinition() (plan.PlanDefinition, error) {
	if d.Name == "" {
		return plan.PlanDefinition{}, fmt.Errorf("program needs a name: %w", plan.ErrInvalidInput)
	}

	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if d.StartDate != "" {
		parsed, err := time.Parse(time.DateOnly, d.StartDate)
		if err != nil {
			return plan.PlanDefinition{}, fmt.Errorf("parsing start date: %w", err)
		}
		startDate = parsed
	}

	result := plan.PlanDefinition{
		Name:              d.Name,
		Methodology:       plan.Methodology(d.Methodology),
		Weeks:             d.Weeks,
		StartDate:         startDate,
		RoundingIncrement: d.RoundingIncrement,
	}
	for _, day := range d.Days {
		dayDef := plan.DayDefinition{Role: plan.DayRole(day.Role)}
		for _, slot := range day.Slots {
			dayDef.Slots = append(dayDef.Slots, plan.SlotDefinition{
				Exercise:       slot.Exercise,
				StartingWeight: slot.StartingWeight,
				Increment:      slot.Increment,
				Sets:           slot.Sets,
				Reps:           slot.Reps,
				Anchor:         slot.Anchor,
			})
		}
		result.Days = append(result.Days, dayDef)
	}
	return result, nil
}
