// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

type Step struct {
	Key         string `yaml:"key" json:"key"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Choice struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type AgeGroup struct {
	Value    string `yaml:"value" json:"value"`
	Midpoint int    `yaml:"midpoint" json:"midpoint"`
}

type Question struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
}

type Scale struct {
	Min  int    `yaml:"min" json:"min"`
	Max  int    `yaml:"max" json:"max"`
	Low  string `yaml:"low" json:"low"`
	High string `yaml:"high" json:"high"`
}

// Catalog is the full set of questionnaire choices
type Catalog struct {
	Steps                []Step     `yaml:"steps" json:"steps"`
	AgeGroups            []AgeGroup `yaml:"age_groups" json:"age_groups"`
	Genders              []string   `yaml:"genders" json:"genders"`
	Education            []string   `yaml:"education" json:"education"`
	IncomeGroups         []Choice   `yaml:"income_groups" json:"income_groups"`
	BehaviorQuestions    []Question `yaml:"behavior_questions" json:"behavior_questions"`
	Likert               Scale      `yaml:"likert" json:"likert"`
	TourismImpact        Scale      `yaml:"tourism_impact" json:"tourism_impact"`
	MedicalExpenseBands  []Choice   `yaml:"medical_expense_bands" json:"medical_expense_bands"`
	HouseholdCostBands   []Choice   `yaml:"household_cost_bands" json:"household_cost_bands"`
	ProgramAwareness     []string   `yaml:"program_awareness" json:"program_awareness"`
	FineAwareness        []string   `yaml:"fine_awareness" json:"fine_awareness"`
	ReportingWillingness []string   `yaml:"reporting_willingness" json:"reporting_willingness"`
	WillingnessToPay     []string   `yaml:"willingness_to_pay" json:"willingness_to_pay"`
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.Steps) == 0 {
		return nil, fmt.Errorf("catalog has no steps")
	}
	return &c, nil
}

var (
	loadOnce sync.Once
	loaded   *Catalog
)

// Default returns the embedded catalog. It panics if the embedded document is
// invalid, which is a build defect.
func Default() *Catalog {
	loadOnce.Do(func() {
		c, err := Parse(defaultYAML)
		if err != nil {
			panic(err)
		}
		loaded = c
	})
	return loaded
}

// Midpoints maps each age group to its midpoint
func (c *Catalog) Midpoints() map[string]int {
	m := make(map[string]int, len(c.AgeGroups))
	for _, g := range c.AgeGroups {
		m[g.Value] = g.Midpoint
	}
	return m
}
