// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/civic-pulse/models"
)

// currentVersion is written with every payload. Version 0 is the original
// unversioned layout: a bare JSON array with the old field names.
const currentVersion = 1

type envelope struct {
	Version   int                     `json:"version"`
	Responses []models.SurveyResponse `json:"responses"`
}

type versionHeader struct {
	Version   int             `json:"version"`
	Responses json.RawMessage `json:"responses"`
}

func encode(responses []models.SurveyResponse) ([]byte, error) {
	return json.Marshal(envelope{Version: currentVersion, Responses: responses})
}

func decode(raw []byte) ([]models.SurveyResponse, int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []models.SurveyResponse{}, currentVersion, nil
	}

	if raw[0] == '[' {
		responses, err := migrateV0(raw)
		return responses, 0, err
	}

	var head versionHeader
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, currentVersion, fmt.Errorf("decode envelope: %w", err)
	}

	switch {
	case head.Version > currentVersion:
		return nil, head.Version, ErrUnsupportedVersion
	case head.Version == 0:
		responses, err := migrateV0(head.Responses)
		return responses, 0, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, head.Version, fmt.Errorf("decode responses: %w", err)
	}
	if env.Responses == nil {
		env.Responses = []models.SurveyResponse{}
	}
	return env.Responses, env.Version, nil
}

// v0 record layout
type v0Response struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	Demographics struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Age        string `json:"age"`
		Gender     string `json:"gender"`
		Education  string `json:"education"`
		Occupation string `json:"occupation"`
		Income     string `json:"income"`
	} `json:"demographics"`
	Behavior models.Behavior `json:"behavior"`
	Economic struct {
		MedicalExpenses    string `json:"medicalExpenses"`
		TrafficDelay       int    `json:"trafficDelay"`
		ExtraHouseholdCost string `json:"extraHouseholdCost"`
		TourismImpact      int    `json:"tourismImpact"`
	} `json:"economic"`
	Awareness struct {
		SwachhBharat      string `json:"swachhBharat"`
		KnowledgeOfFines  string `json:"knowledgeOfFines"`
		ReportWillingness string `json:"reportWillingness"`
		PayForBetter      string `json:"payForBetter"`
	} `json:"awareness"`
}

func migrateV0(raw []byte) ([]models.SurveyResponse, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []models.SurveyResponse{}, nil
	}

	var old []v0Response
	if err := json.Unmarshal(raw, &old); err != nil {
		return nil, fmt.Errorf("decode v0 responses: %w", err)
	}

	out := make([]models.SurveyResponse, 0, len(old))
	for _, o := range old {
		// Unparseable timestamps become the zero time rather than dropping the record.
		ts, _ := time.Parse(time.RFC3339Nano, o.Timestamp)

		out = append(out, models.SurveyResponse{
			ID:          o.ID,
			SubmittedAt: ts,
			Demographics: models.Demographics{
				Name:        o.Demographics.Name,
				Email:       o.Demographics.Email,
				AgeGroup:    o.Demographics.Age,
				Gender:      o.Demographics.Gender,
				Education:   o.Demographics.Education,
				Occupation:  o.Demographics.Occupation,
				IncomeGroup: o.Demographics.Income,
			},
			Behavior: o.Behavior,
			Economic: models.Economic{
				MedicalExpenseBand:     o.Economic.MedicalExpenses,
				TrafficDelayMinutes:    o.Economic.TrafficDelay,
				ExtraHouseholdCostBand: o.Economic.ExtraHouseholdCost,
				TourismImpact:          o.Economic.TourismImpact,
			},
			Awareness: models.Awareness{
				ProgramAwareness:     o.Awareness.SwachhBharat,
				FineAwareness:        o.Awareness.KnowledgeOfFines,
				ReportingWillingness: o.Awareness.ReportWillingness,
				WillingnessToPay:     o.Awareness.PayForBetter,
			},
		})
	}
	return out, nil
}
