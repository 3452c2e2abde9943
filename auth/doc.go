// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin surface.

# Passphrase Verification

A Verifier checks the admin passphrase. NewVerifier prefers a bcrypt hash
when one is configured:

	v, err := auth.NewVerifier(passphrase, hash)

# Session Tokens

A Gate exchanges a verified passphrase for a signed session token:

	gate := auth.NewGate(v, salt, auth.WithTokenTTL(12*time.Hour))
	token, expiresAt, err := gate.Login(passphrase)

Tokens carry their expiry and an HMAC-SHA256 signature over it, so they can
be checked without server-side session storage:

	err := gate.Authorize(token, auth.CapExport)

Authorize returns ErrInvalidToken or ErrTokenExpired for bad tokens and
ErrForbidden when the Policy withholds the capability.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
