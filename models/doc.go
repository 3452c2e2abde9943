// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the survey record, the wizard draft, and the API
request and response types.

A SurveyResponse is immutable once stored. Likert answers are 1 to 5 and
traffic delay is a non-negative number of minutes; Draft.Validate enforces
both. Categorical answers are free strings validated only for presence at
the demographics step.
*/
package models
