// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /stats", middleware.WithLogging(handler))

Each request is logged once through the global zap logger with method,
path, status and duration_ms. 5xx responses log at error level, 4xx at warn.

# CORS and Security Headers

	handler := middleware.SecureHeaders(middleware.CORS(origins)(mux))

CORS allows GET, POST, PATCH, DELETE and OPTIONS with the Content-Type and
X-Admin-Token headers. SecureHeaders sets frame, nosniff, XSS and referrer
headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Used in admin audit log lines.
*/
package middleware
