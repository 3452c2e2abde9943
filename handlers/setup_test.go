// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/civic-pulse/auth"
	"github.com/danielhkuo/civic-pulse/cliparse"
	"github.com/danielhkuo/civic-pulse/models"
	"github.com/danielhkuo/civic-pulse/store"
	"github.com/danielhkuo/civic-pulse/survey"
	"github.com/danielhkuo/civic-pulse/testutil"
)

// testEnv wires the handlers over an in-memory store
type testEnv struct {
	cfg       cliparse.Config
	store     *store.Store
	backend   *testutil.FlakyBackend
	gate      *auth.Gate
	snapshots *Snapshots
	survey    *SurveyHandler
	stats     *StatsHandler
	admin     *AdminHandler
	mux       *http.ServeMux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testutil.GetTestConfig()
	st, backend := testutil.NewTestStore(t)
	gate := auth.NewGate(auth.StaticVerifier{Passphrase: cfg.AdminPassphrase}, cfg.AdminTokenSalt)
	snapshots := NewSnapshots(st)
	t.Cleanup(snapshots.Close)

	env := &testEnv{
		cfg:       cfg,
		store:     st,
		backend:   backend,
		gate:      gate,
		snapshots: snapshots,
		survey:    NewSurveyHandler(st, survey.NewRegistry(cfg.WizardTTL), cfg, nil),
		stats:     NewStatsHandler(snapshots),
		admin:     NewAdminHandler(st, gate, snapshots, nil),
		mux:       http.NewServeMux(),
	}

	env.mux.HandleFunc("GET /survey/schema", env.survey.GetSchema)
	env.mux.HandleFunc("POST /wizards", env.survey.CreateWizard)
	env.mux.HandleFunc("GET /wizards/{id}", env.survey.GetWizard)
	env.mux.HandleFunc("PATCH /wizards/{id}/{section}", env.survey.UpdateSection)
	env.mux.HandleFunc("POST /wizards/{id}/next", env.survey.Next)
	env.mux.HandleFunc("POST /wizards/{id}/back", env.survey.Back)
	env.mux.HandleFunc("POST /wizards/{id}/submit", env.survey.Submit)
	env.mux.HandleFunc("GET /stats", env.stats.GetStats)
	env.mux.HandleFunc("POST /admin/login", env.admin.Login)
	env.mux.HandleFunc("GET /admin/dashboard", env.admin.GetDashboard)
	env.mux.HandleFunc("GET /admin/charts", env.admin.GetCharts)
	env.mux.HandleFunc("GET /admin/export.csv", env.admin.ExportCSV)
	env.mux.HandleFunc("GET /admin/export.xlsx", env.admin.ExportXLSX)
	env.mux.HandleFunc("DELETE /admin/responses", env.admin.ClearResponses)

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, testutil.MakeRequest(method, path, body, headers))
	return w
}

// startWizard creates a session and returns its ID
func (e *testEnv) startWizard(t *testing.T) string {
	t.Helper()
	w := e.do(t, "POST", "/wizards", nil, nil)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.WizardResponse
	testutil.AssertJSON(t, w, &resp)
	return resp.SessionID
}

// completeWizard walks a session with the given email to the awareness step
func (e *testEnv) completeWizard(t *testing.T, id, email string) {
	t.Helper()
	w := e.do(t, "PATCH", "/wizards/"+id+"/demographics", testutil.ValidDemographics(email), nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	for i := 0; i < 3; i++ {
		w = e.do(t, "POST", "/wizards/"+id+"/next", nil, nil)
		testutil.AssertStatus(t, w, http.StatusOK)
	}
}

// adminToken logs in and returns the token header
func (e *testEnv) adminToken(t *testing.T) map[string]string {
	t.Helper()
	token, _, err := e.gate.Login(testutil.TestPassphrase)
	if err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	return map[string]string{"X-Admin-Token": token}
}
