// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/civic-pulse/middleware"
)

type StatsHandler struct {
	snapshots *Snapshots
}

func NewStatsHandler(snapshots *Snapshots) *StatsHandler {
	return &StatsHandler{snapshots: snapshots}
}

// GetStats handles GET /stats
// Public summary: headline averages, cost breakdown and the recent delay trend
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.snapshots.Public(r.Context()))
}
