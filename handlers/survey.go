// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/danielhkuo/civic-pulse/catalog"
	"github.com/danielhkuo/civic-pulse/cliparse"
	"github.com/danielhkuo/civic-pulse/middleware"
	"github.com/danielhkuo/civic-pulse/models"
	"github.com/danielhkuo/civic-pulse/store"
	"github.com/danielhkuo/civic-pulse/survey"
)

// maxSectionBody bounds a PATCH body
const maxSectionBody = 16 << 10

type SurveyHandler struct {
	store    *store.Store
	registry *survey.Registry
	cfg      cliparse.Config
	log      *zap.Logger
}

func NewSurveyHandler(st *store.Store, reg *survey.Registry, cfg cliparse.Config, log *zap.Logger) *SurveyHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &SurveyHandler{store: st, registry: reg, cfg: cfg, log: log}
}

// GetSchema handles GET /survey/schema
// Returns the choice lists for every question
func (h *SurveyHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, catalog.Default())
}

// CreateWizard handles POST /wizards
// Starts a new questionnaire with the initial draft
func (h *SurveyHandler) CreateWizard(w http.ResponseWriter, r *http.Request) {
	wiz := survey.New(h.store,
		survey.WithDelay(h.cfg.SubmitDelay),
		survey.WithLogger(h.log),
	)

	id, err := h.registry.Add(wiz)
	if err != nil {
		h.log.Error("failed to start survey", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start survey")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, wizardResponse(id, wiz.Snapshot()))
}

// GetWizard handles GET /wizards/{id}
func (h *SurveyHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, wizardResponse(id, wiz.Snapshot()))
}

// UpdateSection handles PATCH /wizards/{id}/{section}
// Merges the JSON body into one section of the draft. Fields left out keep
// their current values.
func (h *SurveyHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(w, r)
	if !ok {
		return
	}

	section := r.PathValue("section")
	target, ok := sectionTarget(section)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown section: "+section)
		return
	}

	defer r.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSectionBody))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	// Reject malformed input before touching the draft
	scratch := models.NewDraft()
	if err := json.Unmarshal(raw, target(&scratch)); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON for section "+section)
		return
	}

	err = wiz.Edit(func(d *models.Draft) {
		_ = json.Unmarshal(raw, target(d))
	})
	if err != nil {
		h.writeWizardError(w, id, wiz, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, wizardResponse(id, wiz.Snapshot()))
}

// Next handles POST /wizards/{id}/next
func (h *SurveyHandler) Next(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := wiz.Next(r.Context()); err != nil {
		h.writeWizardError(w, id, wiz, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, wizardResponse(id, wiz.Snapshot()))
}

// Back handles POST /wizards/{id}/back
func (h *SurveyHandler) Back(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := wiz.Back(); err != nil {
		h.writeWizardError(w, id, wiz, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, wizardResponse(id, wiz.Snapshot()))
}

// Submit handles POST /wizards/{id}/submit
// Blocks for the submit delay, then stores the response
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if _, err := wiz.Submit(r.Context()); err != nil {
		h.writeWizardError(w, id, wiz, err)
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, wizardResponse(id, wiz.Snapshot()))
}

func (h *SurveyHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *survey.Wizard, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return "", nil, false
	}

	wiz, ok := h.registry.Get(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Survey session not found")
		return "", nil, false
	}
	return id, wiz, true
}

// writeWizardError maps wizard errors to status codes. Validation failures
// return the wizard state so the client can show the message.
func (h *SurveyHandler) writeWizardError(w http.ResponseWriter, id string, wiz *survey.Wizard, err error) {
	var verr *survey.ValidationError
	switch {
	case errors.As(err, &verr):
		status := http.StatusUnprocessableEntity
		if verr.Message == survey.MsgDuplicateEmail {
			status = http.StatusConflict
		}
		middleware.JSONResponse(w, status, wizardResponse(id, wiz.Snapshot()))
	case errors.Is(err, survey.ErrOutOfRange):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, survey.ErrSubmitInProgress),
		errors.Is(err, survey.ErrAlreadySubmitted),
		errors.Is(err, survey.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		h.log.Error("survey operation failed", zap.String("session", id), zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save your response, please try again")
	}
}

// sectionTarget returns an accessor for the named draft section
func sectionTarget(section string) (func(*models.Draft) interface{}, bool) {
	switch section {
	case models.SectionDemographics:
		return func(d *models.Draft) interface{} { return &d.Demographics }, true
	case models.SectionBehavior:
		return func(d *models.Draft) interface{} { return &d.Behavior }, true
	case models.SectionEconomic:
		return func(d *models.Draft) interface{} { return &d.Economic }, true
	case models.SectionAwareness:
		return func(d *models.Draft) interface{} { return &d.Awareness }, true
	}
	return nil, false
}

func wizardResponse(id string, snap survey.Snapshot) models.WizardResponse {
	return models.WizardResponse{
		SessionID:  id,
		Step:       int(snap.Step),
		StepName:   snap.Step.String(),
		Draft:      snap.Draft,
		Error:      snap.Error,
		Submitted:  snap.Submitted,
		TotalSteps: survey.QuestionSteps,
	}
}
