// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/danielhkuo/civic-pulse/auth"
	"github.com/danielhkuo/civic-pulse/charts"
	"github.com/danielhkuo/civic-pulse/export"
	"github.com/danielhkuo/civic-pulse/middleware"
	"github.com/danielhkuo/civic-pulse/models"
	"github.com/danielhkuo/civic-pulse/store"
)

const (
	csvFileName  = "civic_research_data.csv"
	xlsxFileName = "civic_research_data.xlsx"
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type AdminHandler struct {
	store     *store.Store
	gate      *auth.Gate
	snapshots *Snapshots
	log       *zap.Logger
}

func NewAdminHandler(st *store.Store, gate *auth.Gate, snapshots *Snapshots, log *zap.Logger) *AdminHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{store: st, gate: gate, snapshots: snapshots, log: log}
}

// Login handles POST /admin/login
// Exchanges the passphrase for a session token. No lockout.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	token, expiresAt, err := h.gate.Login(req.Passphrase)
	if err != nil {
		h.log.Warn("admin login rejected", zap.String("client_ip", middleware.GetClientIP(r)))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	h.log.Info("admin login", zap.String("client_ip", middleware.GetClientIP(r)))
	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// GetDashboard handles GET /admin/dashboard
func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.CapViewDashboard) {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.snapshots.Dashboard(r.Context()))
}

// GetCharts handles GET /admin/charts
// Renders the dashboard as an HTML page
func (h *AdminHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.CapViewDashboard) {
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderDashboard(&buf, h.snapshots.Dashboard(r.Context())); err != nil {
		h.log.Error("failed to render charts", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render charts")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// ExportCSV handles GET /admin/export.csv
// Returns 204 when there is nothing to export
func (h *AdminHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "text/csv; charset=utf-8", csvFileName, export.WriteCSV)
}

// ExportXLSX handles GET /admin/export.xlsx
func (h *AdminHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, xlsxMIME, xlsxFileName, export.WriteXLSX)
}

// ClearResponses handles DELETE /admin/responses?confirm=true
// Deletes every stored response. This cannot be undone.
func (h *AdminHandler) ClearResponses(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, auth.CapClearResponses) {
		return
	}

	if ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Pass confirm=true to delete ALL data")
		return
	}

	if err := h.store.ClearAll(r.Context()); err != nil {
		h.log.Error("failed to clear responses", zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear responses")
		return
	}

	h.log.Warn("all responses cleared", zap.String("client_ip", middleware.GetClientIP(r)))
	middleware.JSONResponse(w, http.StatusOK, models.ClearResponsesResponse{
		Cleared: true,
		Message: "All responses cleared",
	})
}

func (h *AdminHandler) export(w http.ResponseWriter, r *http.Request, contentType, fileName string,
	write func(io.Writer, []models.SurveyResponse) error) {
	if !h.authorize(w, r, auth.CapExport) {
		return
	}

	var buf bytes.Buffer
	err := write(&buf, h.store.ListAll(r.Context()))
	if errors.Is(err, export.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.log.Error("export failed", zap.String("file", fileName), zap.Error(err))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// authorize checks the admin token for capability c and writes the error
// response if it fails.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request, c auth.Capability) bool {
	err := h.gate.Authorize(r.Header.Get(middleware.AdminTokenHeader), c)
	switch {
	case err == nil:
		return true
	case errors.Is(err, auth.ErrTokenExpired):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Session expired, please log in again")
	case auth.IsAuthError(err):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Missing or invalid "+middleware.AdminTokenHeader+" header")
	default:
		middleware.ErrorResponse(w, http.StatusForbidden, "Not allowed")
	}
	return false
}
