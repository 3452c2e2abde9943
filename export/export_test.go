// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/civic-pulse/models"
)

func sample() []models.SurveyResponse {
	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	return []models.SurveyResponse{
		{
			ID:          "r1",
			SubmittedAt: at,
			Demographics: models.Demographics{
				Name: "Sharma, Asha", Email: "asha@example.com", AgeGroup: "25-34",
				Gender: "Female", Education: "Graduate", IncomeGroup: "3L-8L",
			},
			Behavior: models.Behavior{Littering: 4},
			Economic: models.Economic{MedicalExpenseBand: "<5000", TrafficDelayMinutes: 25},
		},
		{
			ID:          "r2",
			SubmittedAt: at.Add(time.Hour),
			Demographics: models.Demographics{
				Name: "Ravi", Email: "ravi@example.com", AgeGroup: "50+",
				Gender: "Male", Education: "PhD", IncomeGroup: ">15L",
			},
			Behavior: models.Behavior{Littering: 1},
			Economic: models.Economic{MedicalExpenseBand: models.NoneBand},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"r1", "2025-03-01T09:30:00Z", "Sharma, Asha", "asha@example.com", "25-34",
		"Female", "Graduate", "3L-8L", "4", "25", "<5000",
	}, records[1])
	assert.Equal(t, "r2", records[2][0])
	assert.Equal(t, "None", records[2][10])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, nil), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "Sharma, Asha", rows[1][2])
	assert.Equal(t, "25", rows[1][9])
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteXLSX(&buf, []models.SurveyResponse{}), ErrNoData)
}
