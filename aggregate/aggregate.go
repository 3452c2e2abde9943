// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"math"
	"strings"

	"github.com/danielhkuo/civic-pulse/catalog"
	"github.com/danielhkuo/civic-pulse/models"
)

// Category is one behaviour question
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	index int
}

// Categories lists the behaviour questions in display order
var Categories = []Category{
	{Key: "littering", Label: "Littering", index: 0},
	{Key: "spitting", Label: "Spitting", index: 1},
	{Key: "trafficViolations", Label: "Traffic Violations", index: 2},
	{Key: "encroachment", Label: "Encroachment", index: 3},
	{Key: "propertyDamage", Label: "Property Damage", index: 4},
}

// AgeMidpoints maps an age-group label to the age used for the mean. The
// values come from the questionnaire catalog.
var AgeMidpoints = catalog.Default().Midpoints()

// DefaultAgeMidpoint is used for labels missing from AgeMidpoints
const DefaultAgeMidpoint = 25

// UnknownIncome groups responses with a blank income
const UnknownIncome = "Unknown"

type ProfilePoint struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Mean     float64 `json:"mean"`
	FullMark int     `json:"full_mark"`
}

type Histogram struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Counts [5]int `json:"counts"` // Counts[i] is the number of answers equal to i+1
}

type ScorePair struct {
	Score        float64 `json:"score"`
	DelayMinutes int     `json:"delay_minutes"`
}

type IncomeAwareness struct {
	Name      string `json:"name"`
	Fully     int    `json:"fully"`
	Partially int    `json:"partially"`
	Not       int    `json:"not"`
}

// BehaviorProfile averages each behaviour category, rounded to 2 places.
func BehaviorProfile(rs []models.SurveyResponse) []ProfilePoint {
	out := make([]ProfilePoint, len(Categories))
	for i, c := range Categories {
		sum := 0
		for _, r := range rs {
			sum += r.Behavior.Scores()[c.index]
		}
		out[i] = ProfilePoint{
			Key:      c.Key,
			Label:    c.Label,
			Mean:     meanRounded(float64(sum), len(rs), 2),
			FullMark: models.LikertMax,
		}
	}
	return out
}

// BehaviorFrequency counts answers at each Likert value per category.
// Values outside 1..5 are not counted.
func BehaviorFrequency(rs []models.SurveyResponse) []Histogram {
	out := make([]Histogram, len(Categories))
	for i, c := range Categories {
		h := Histogram{Key: c.Key, Label: c.Label}
		for _, r := range rs {
			v := r.Behavior.Scores()[c.index]
			if v >= models.LikertMin && v <= models.LikertMax {
				h.Counts[v-1]++
			}
		}
		out[i] = h
	}
	return out
}

// ViolationDelayPairs pairs each response's mean behaviour score with its
// reported traffic delay.
func ViolationDelayPairs(rs []models.SurveyResponse) []ScorePair {
	out := make([]ScorePair, 0, len(rs))
	for _, r := range rs {
		total := 0
		scores := r.Behavior.Scores()
		for _, s := range scores {
			total += s
		}
		out = append(out, ScorePair{
			Score:        round(float64(total)/float64(len(scores)), 2),
			DelayMinutes: r.Economic.TrafficDelayMinutes,
		})
	}
	return out
}

// AwarenessByIncome cross-tabulates program awareness by income group,
// keeping groups in the order they first appear.
func AwarenessByIncome(rs []models.SurveyResponse) []IncomeAwareness {
	out := []IncomeAwareness{}
	index := map[string]int{}

	for _, r := range rs {
		income := r.Demographics.IncomeGroup
		if income == "" {
			income = UnknownIncome
		}
		i, ok := index[income]
		if !ok {
			i = len(out)
			index[income] = i
			out = append(out, IncomeAwareness{Name: income})
		}

		aware := r.Awareness.ProgramAwareness
		switch {
		case strings.Contains(aware, "Fully"):
			out[i].Fully++
		case strings.Contains(aware, "Partially"):
			out[i].Partially++
		default:
			out[i].Not++
		}
	}
	return out
}

// MedicalCostIncidence is the percentage of responses reporting any medical
// expense, rounded to a whole number.
func MedicalCostIncidence(rs []models.SurveyResponse) int {
	if len(rs) == 0 {
		return 0
	}
	n := 0
	for _, r := range rs {
		if r.Economic.MedicalExpenseBand != models.NoneBand {
			n++
		}
	}
	return int(math.Round(float64(n) / float64(len(rs)) * 100))
}

// ApproxMeanAge averages age-group midpoints. It approximates, it does not
// measure, the respondents' mean age.
func ApproxMeanAge(rs []models.SurveyResponse) int {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		age, ok := AgeMidpoints[r.Demographics.AgeGroup]
		if !ok {
			age = DefaultAgeMidpoint
		}
		sum += age
	}
	return int(math.Round(float64(sum) / float64(len(rs))))
}

func meanRounded(sum float64, n int, places int) float64 {
	if n == 0 {
		return 0
	}
	return round(sum/float64(n), places)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
