// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/civic-pulse/aggregate"
	"github.com/danielhkuo/civic-pulse/models"
)

func TestRenderDashboard(t *testing.T) {
	rs := []models.SurveyResponse{
		{
			Demographics: models.Demographics{AgeGroup: "25-34", IncomeGroup: "3L-8L"},
			Behavior:     models.Behavior{Littering: 3, Spitting: 2, TrafficViolations: 4, Encroachment: 1, PropertyDamage: 1},
			Economic:     models.Economic{MedicalExpenseBand: "<5000", TrafficDelayMinutes: 20},
			Awareness:    models.Awareness{ProgramAwareness: "Partially Aware"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, aggregate.BuildDashboard(rs)))

	html := buf.String()
	assert.Contains(t, html, PageTitle)
	assert.Contains(t, html, "Civic Behaviour Profile")
	assert.Contains(t, html, "Program Awareness by Income Group")
	assert.Contains(t, html, "3L-8L")
}

func TestRenderDashboardEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, aggregate.BuildDashboard(nil)))
	assert.Contains(t, buf.String(), "Medical Cost Incidence")
}
