// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Likert bounds shared by behaviour scores and tourism impact
const (
	LikertMin = 1
	LikertMax = 5
)

// NoneBand is the sentinel answer for "no extra cost"
const NoneBand = "None"

// EventStorageUpdate is broadcast after every append or clear
const EventStorageUpdate = "storage-update"

// Domain types

type Demographics struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	AgeGroup    string `json:"ageGroup"`
	Gender      string `json:"gender"`
	Education   string `json:"education"`
	Occupation  string `json:"occupation"`
	IncomeGroup string `json:"incomeGroup"`
}

type Behavior struct {
	Littering         int `json:"littering"`
	Spitting          int `json:"spitting"`
	TrafficViolations int `json:"trafficViolations"`
	Encroachment      int `json:"encroachment"`
	PropertyDamage    int `json:"propertyDamage"`
}

// Scores returns the five scores in category order
func (b Behavior) Scores() [5]int {
	return [5]int{b.Littering, b.Spitting, b.TrafficViolations, b.Encroachment, b.PropertyDamage}
}

type Economic struct {
	MedicalExpenseBand     string `json:"medicalExpenseBand"`
	TrafficDelayMinutes    int    `json:"trafficDelayMinutes"`
	ExtraHouseholdCostBand string `json:"extraHouseholdCostBand"`
	TourismImpact          int    `json:"tourismImpact"`
}

type Awareness struct {
	ProgramAwareness     string `json:"programAwareness"`
	FineAwareness        string `json:"fineAwareness"`
	ReportingWillingness string `json:"reportingWillingness"`
	WillingnessToPay     string `json:"willingnessToPay"`
}

// SurveyResponse is one completed submission. It is never modified once stored.
type SurveyResponse struct {
	ID           string       `json:"id"`
	SubmittedAt  time.Time    `json:"submittedAt"`
	Demographics Demographics `json:"demographics"`
	Behavior     Behavior     `json:"behavior"`
	Economic     Economic     `json:"economic"`
	Awareness    Awareness    `json:"awareness"`
}

// Draft is the in-progress answer set held by a survey wizard
type Draft struct {
	Demographics Demographics `json:"demographics"`
	Behavior     Behavior     `json:"behavior"`
	Economic     Economic     `json:"economic"`
	Awareness    Awareness    `json:"awareness"`
}

// NewDraft returns the initial answers shown on a fresh questionnaire
func NewDraft() Draft {
	return Draft{
		Behavior: Behavior{
			Littering:         1,
			Spitting:          1,
			TrafficViolations: 1,
			Encroachment:      1,
			PropertyDamage:    1,
		},
		Economic: Economic{
			MedicalExpenseBand:     NoneBand,
			TrafficDelayMinutes:    0,
			ExtraHouseholdCostBand: NoneBand,
			TourismImpact:          3,
		},
	}
}

// Section names used by the wizard edit endpoint
const (
	SectionDemographics = "demographics"
	SectionBehavior     = "behavior"
	SectionEconomic     = "economic"
	SectionAwareness    = "awareness"
)

// Request types

type AdminLoginRequest struct {
	Passphrase string `json:"passphrase"`
}

// Response types

type WizardResponse struct {
	SessionID  string          `json:"session_id"`
	Step       int             `json:"step"`
	StepName   string          `json:"step_name"`
	Draft      Draft           `json:"draft"`
	Error      string          `json:"error,omitempty"`
	Submitted  *SurveyResponse `json:"submitted,omitempty"`
	TotalSteps int             `json:"total_steps"`
}

type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ClearResponsesResponse struct {
	Cleared bool   `json:"cleared"`
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
