// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"regexp"
	"strings"

	"github.com/danielhkuo/civic-pulse/models"
)

// Messages shown for failed demographics checks
const (
	MsgNameRequired    = "Please enter your name."
	MsgInvalidEmail    = "Please enter a valid email address."
	MsgDuplicateEmail  = "This email has already been used to submit a response. Multiple submissions are not allowed."
	MsgIncompleteDemog = "Please complete all demographic fields."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is the single user-correctable message a wizard shows
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidEmail checks local@domain.tld syntax
func IsValidEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// validateDemographics runs the gate rules in order and stops at the first failure.
func validateDemographics(ctx context.Context, d models.Demographics, st Store) *ValidationError {
	if verr := checkIdentity(d); verr != nil {
		return verr
	}

	if st.ExistsByEmail(ctx, d.Email) {
		return &ValidationError{Field: "email", Message: MsgDuplicateEmail}
	}

	return checkComplete(d)
}

// checkDemographics is the gate without the duplicate-email rule, which the
// store enforces on append.
func checkDemographics(d models.Demographics) *ValidationError {
	if verr := checkIdentity(d); verr != nil {
		return verr
	}
	return checkComplete(d)
}

func checkIdentity(d models.Demographics) *ValidationError {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Message: MsgNameRequired}
	}
	if !IsValidEmail(d.Email) {
		return &ValidationError{Field: "email", Message: MsgInvalidEmail}
	}
	return nil
}

func checkComplete(d models.Demographics) *ValidationError {
	if d.AgeGroup == "" || d.IncomeGroup == "" || d.Gender == "" || d.Education == "" {
		return &ValidationError{Field: "demographics", Message: MsgIncompleteDemog}
	}
	return nil
}
