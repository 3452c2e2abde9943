// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package aggregate

import (
	"math"

	"github.com/danielhkuo/civic-pulse/models"
)

// NoData labels the placeholder slice returned for an empty collection
const NoData = "No Data"

// RecentDelayWindow is how many of the latest responses the delay trend shows
const RecentDelayWindow = 10

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DelayPoint struct {
	Index int `json:"index"`
	Delay int `json:"delay"`
}

// ViolationAverages returns the headline averages shown to visitors, at one
// decimal place.
func ViolationAverages(rs []models.SurveyResponse) []NamedValue {
	if len(rs) == 0 {
		return []NamedValue{{Name: NoData, Value: 0}}
	}
	var litter, traffic, spit int
	for _, r := range rs {
		litter += r.Behavior.Littering
		traffic += r.Behavior.TrafficViolations
		spit += r.Behavior.Spitting
	}
	n := len(rs)
	return []NamedValue{
		{Name: "Littering", Value: meanRounded(float64(litter), n, 1)},
		{Name: "Traffic", Value: meanRounded(float64(traffic), n, 1)},
		{Name: "Spitting", Value: meanRounded(float64(spit), n, 1)},
	}
}

// CostBreakdown counts responses reporting medical and household costs.
// Other counts responses with no household cost.
func CostBreakdown(rs []models.SurveyResponse) []NamedValue {
	if len(rs) == 0 {
		return []NamedValue{{Name: NoData, Value: 1}}
	}
	var medical, household, other int
	for _, r := range rs {
		if r.Economic.MedicalExpenseBand != models.NoneBand {
			medical++
		}
		if r.Economic.ExtraHouseholdCostBand != models.NoneBand {
			household++
		} else {
			other++
		}
	}
	return []NamedValue{
		{Name: "Medical", Value: float64(medical)},
		{Name: "Household", Value: float64(household)},
		{Name: "Other", Value: float64(other)},
	}
}

// RecentTrafficDelays returns the delays of the last n responses, indexed from 1.
func RecentTrafficDelays(rs []models.SurveyResponse, n int) []DelayPoint {
	if n <= 0 || len(rs) == 0 {
		return []DelayPoint{}
	}
	start := len(rs) - n
	if start < 0 {
		start = 0
	}
	out := make([]DelayPoint, 0, len(rs)-start)
	for i, r := range rs[start:] {
		out = append(out, DelayPoint{Index: i + 1, Delay: r.Economic.TrafficDelayMinutes})
	}
	return out
}

// AverageTrafficDelay is the mean delay in whole minutes
func AverageTrafficDelay(rs []models.SurveyResponse) int {
	if len(rs) == 0 {
		return 0
	}
	total := 0
	for _, r := range rs {
		total += r.Economic.TrafficDelayMinutes
	}
	return int(math.Round(float64(total) / float64(len(rs))))
}

// Public is what anonymous visitors see
type Public struct {
	Total               int          `json:"total"`
	ViolationAverages   []NamedValue `json:"violation_averages"`
	CostBreakdown       []NamedValue `json:"cost_breakdown"`
	RecentTrafficDelays []DelayPoint `json:"recent_traffic_delays"`
	AverageTrafficDelay int          `json:"average_traffic_delay"`
}

func BuildPublic(rs []models.SurveyResponse) Public {
	return Public{
		Total:               len(rs),
		ViolationAverages:   ViolationAverages(rs),
		CostBreakdown:       CostBreakdown(rs),
		RecentTrafficDelays: RecentTrafficDelays(rs, RecentDelayWindow),
		AverageTrafficDelay: AverageTrafficDelay(rs),
	}
}

// Dashboard is the admin view
type Dashboard struct {
	Total                int               `json:"total"`
	ApproxMeanAge        int               `json:"approx_mean_age"`
	BehaviorProfile      []ProfilePoint    `json:"behavior_profile"`
	BehaviorFrequency    []Histogram       `json:"behavior_frequency"`
	ViolationDelayPairs  []ScorePair       `json:"violation_delay_pairs"`
	AwarenessByIncome    []IncomeAwareness `json:"awareness_by_income"`
	MedicalCostIncidence int               `json:"medical_cost_incidence"`
}

func BuildDashboard(rs []models.SurveyResponse) Dashboard {
	return Dashboard{
		Total:                len(rs),
		ApproxMeanAge:        ApproxMeanAge(rs),
		BehaviorProfile:      BehaviorProfile(rs),
		BehaviorFrequency:    BehaviorFrequency(rs),
		ViolationDelayPairs:  ViolationDelayPairs(rs),
		AwarenessByIncome:    AwarenessByIncome(rs),
		MedicalCostIncidence: MedicalCostIncidence(rs),
	}
}
