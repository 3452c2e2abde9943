// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/danielhkuo/civic-pulse/auth"
	"github.com/danielhkuo/civic-pulse/cliparse"
	"github.com/danielhkuo/civic-pulse/handlers"
	"github.com/danielhkuo/civic-pulse/middleware"
	"github.com/danielhkuo/civic-pulse/store"
	"github.com/danielhkuo/civic-pulse/survey"
)

// Banner is the body of GET /
const Banner = "civic-pulse API v1"

func NewRouter(st *store.Store, gate *auth.Gate, cfg cliparse.Config, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	snapshots := handlers.NewSnapshots(st)
	surveyHandler := handlers.NewSurveyHandler(st, survey.NewRegistry(cfg.WizardTTL), cfg, log)
	statsHandler := handlers.NewStatsHandler(snapshots)
	eventsHandler := handlers.NewEventsHandler(st, handlers.DefaultHeartbeat, log)
	adminHandler := handlers.NewAdminHandler(st, gate, snapshots, log)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Questionnaire (public)
	mux.HandleFunc("GET /survey/schema", middleware.WithLogging(surveyHandler.GetSchema))
	mux.HandleFunc("POST /wizards", middleware.WithLogging(surveyHandler.CreateWizard))
	mux.HandleFunc("GET /wizards/{id}", middleware.WithLogging(surveyHandler.GetWizard))
	mux.HandleFunc("PATCH /wizards/{id}/{section}", middleware.WithLogging(surveyHandler.UpdateSection))
	mux.HandleFunc("POST /wizards/{id}/next", middleware.WithLogging(surveyHandler.Next))
	mux.HandleFunc("POST /wizards/{id}/back", middleware.WithLogging(surveyHandler.Back))
	mux.HandleFunc("POST /wizards/{id}/submit", middleware.WithLogging(surveyHandler.Submit))

	// Public statistics and change notifications
	mux.HandleFunc("GET /stats", middleware.WithLogging(statsHandler.GetStats))
	mux.HandleFunc("GET /events", middleware.WithLogging(eventsHandler.Stream))

	// Admin operations (X-Admin-Token)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/dashboard", middleware.WithLogging(adminHandler.GetDashboard))
	mux.HandleFunc("GET /admin/charts", middleware.WithLogging(adminHandler.GetCharts))
	mux.HandleFunc("GET /admin/export.csv", middleware.WithLogging(adminHandler.ExportCSV))
	mux.HandleFunc("GET /admin/export.xlsx", middleware.WithLogging(adminHandler.ExportXLSX))
	mux.HandleFunc("DELETE /admin/responses", middleware.WithLogging(adminHandler.ClearResponses))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	return middleware.SecureHeaders(middleware.CORS(cfg.AllowedOrigins)(mux))
}
