// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"time"
)

// Capability names an admin action
type Capability string

const (
	CapViewDashboard  Capability = "view-dashboard"
	CapExport         Capability = "export"
	CapClearResponses Capability = "clear-responses"
)

// PrincipalAdmin is the only principal the gate issues tokens for
const PrincipalAdmin = "admin"

// DefaultTokenTTL bounds an admin session
const DefaultTokenTTL = 12 * time.Hour

// Policy decides whether a principal holds a capability
type Policy interface {
	Allow(principal string, c Capability) bool
}

// AdminPolicy grants every capability to the admin principal
type AdminPolicy struct{}

func (AdminPolicy) Allow(principal string, _ Capability) bool {
	return principal == PrincipalAdmin
}

// Gate turns a verified passphrase into a signed session token and checks
// capabilities on later requests.
type Gate struct {
	verifier Verifier
	policy   Policy
	salt     string
	ttl      time.Duration
	now      func() time.Time
}

type GateOption func(*Gate)

func WithPolicy(p Policy) GateOption {
	return func(g *Gate) { g.policy = p }
}

func WithTokenTTL(ttl time.Duration) GateOption {
	return func(g *Gate) {
		if ttl > 0 {
			g.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) { g.now = now }
}

func NewGate(v Verifier, salt string, opts ...GateOption) *Gate {
	g := &Gate{
		verifier: v,
		policy:   AdminPolicy{},
		salt:     salt,
		ttl:      DefaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Login verifies the passphrase and issues a token. There is no lockout or
// attempt tracking.
func (g *Gate) Login(passphrase string) (string, time.Time, error) {
	if err := g.verifier.Verify(passphrase); err != nil {
		return "", time.Time{}, ErrInvalidCredential
	}

	expiresAt := g.now().Add(g.ttl).Truncate(time.Second)
	return signToken(PrincipalAdmin, expiresAt, g.salt), expiresAt, nil
}

// Authorize checks the token and that its principal holds c
func (g *Gate) Authorize(token string, c Capability) error {
	if token == "" {
		return ErrInvalidToken
	}
	if err := verifyToken(token, PrincipalAdmin, g.salt, g.now()); err != nil {
		return err
	}
	if !g.policy.Allow(PrincipalAdmin, c) {
		return ErrForbidden
	}
	return nil
}

// IsAuthError reports whether err should be answered with 401
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrInvalidCredential)
}
