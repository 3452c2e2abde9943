// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the civic-pulse API.

	handler := router.NewRouter(store, gate, cfg, logger)

# Endpoints

Health and info:

	GET /health - Health check (returns "OK")
	GET /       - API banner

Questionnaire (public):

	GET   /survey/schema            - Steps and answer choices
	POST  /wizards                  - Start a session
	GET   /wizards/{id}             - Session state
	PATCH /wizards/{id}/{section}   - Edit a section
	POST  /wizards/{id}/next        - Advance
	POST  /wizards/{id}/back        - Go back
	POST  /wizards/{id}/submit      - Submit

Statistics (public):

	GET /stats  - Visitor statistics
	GET /events - Server-Sent Events, one storage-update per change

Admin (X-Admin-Token):

	POST   /admin/login                  - Exchange passphrase for a token
	GET    /admin/dashboard              - Dashboard aggregates (JSON)
	GET    /admin/charts                 - Dashboard charts (HTML)
	GET    /admin/export.csv             - CSV download
	GET    /admin/export.xlsx            - Excel download
	DELETE /admin/responses?confirm=true - Delete all responses

The returned handler applies security headers and CORS to every route.
*/
package router
