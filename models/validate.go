// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"
)

// RangeError reports a numeric answer outside its allowed range
type RangeError struct {
	Field string
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of range: %d", e.Field, e.Value)
}

// Validate checks the numeric invariants of a draft. Categorical fields are
// gated separately by the wizard.
func (d Draft) Validate() error {
	likert := []struct {
		field string
		value int
	}{
		{"behavior.littering", d.Behavior.Littering},
		{"behavior.spitting", d.Behavior.Spitting},
		{"behavior.trafficViolations", d.Behavior.TrafficViolations},
		{"behavior.encroachment", d.Behavior.Encroachment},
		{"behavior.propertyDamage", d.Behavior.PropertyDamage},
		{"economic.tourismImpact", d.Economic.TourismImpact},
	}
	for _, l := range likert {
		if l.value < LikertMin || l.value > LikertMax {
			return &RangeError{Field: l.field, Value: l.value}
		}
	}

	if d.Economic.TrafficDelayMinutes < 0 {
		return &RangeError{Field: "economic.trafficDelayMinutes", Value: d.Economic.TrafficDelayMinutes}
	}

	return nil
}

// Record builds an immutable response from the draft
func (d Draft) Record(id string, submittedAt time.Time) SurveyResponse {
	return SurveyResponse{
		ID:           id,
		SubmittedAt:  submittedAt,
		Demographics: d.Demographics,
		Behavior:     d.Behavior,
		Economic:     d.Economic,
		Awareness:    d.Awareness,
	}
}
