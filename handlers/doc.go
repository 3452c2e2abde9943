// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the civic-pulse API.

# Handler Types

  - SurveyHandler: questionnaire sessions (create, edit, next, back, submit)
  - StatsHandler: public statistics
  - EventsHandler: Server-Sent Events for store changes
  - AdminHandler: login, dashboard, charts, export and clear

# Questionnaire Flow

Each respondent works in a session held in memory:

	POST  /wizards                 → CreateWizard (returns session_id)
	PATCH /wizards/{id}/{section}  → UpdateSection (partial JSON merge)
	POST  /wizards/{id}/next       → Next (demographics is gated)
	POST  /wizards/{id}/back       → Back
	POST  /wizards/{id}/submit     → Submit (awareness step only)

A failed gate answers 422 with the message in the session body. An email
that already has a stored response answers 409.

# Statistics

Snapshots caches the public and admin aggregate views and drops them on
every store change.

# Admin

Admin operations require the X-Admin-Token header from POST /admin/login.
Clearing all responses also requires confirm=true.
*/
package handlers
