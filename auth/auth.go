// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidToken      = errors.New("invalid token format")
	ErrTokenExpired      = errors.New("token expired")
	ErrForbidden         = errors.New("capability not granted")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Verifier checks an admin passphrase
type Verifier interface {
	Verify(passphrase string) error
}

// StaticVerifier compares against one shared passphrase
type StaticVerifier struct {
	Passphrase string
}

func (v StaticVerifier) Verify(passphrase string) error {
	if v.Passphrase == "" {
		return ErrInvalidCredential
	}
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(v.Passphrase)) != 1 {
		return ErrInvalidCredential
	}
	return nil
}

// BcryptVerifier compares against a bcrypt hash of the passphrase
type BcryptVerifier struct {
	Hash []byte
}

func (v BcryptVerifier) Verify(passphrase string) error {
	if err := bcrypt.CompareHashAndPassword(v.Hash, []byte(passphrase)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

// NewVerifier prefers a bcrypt hash over a plain passphrase. An unparsable
// hash is an error so a bad deployment fails at startup rather than at login.
func NewVerifier(passphrase, hash string) (Verifier, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid passphrase hash: %w", err)
		}
		return BcryptVerifier{Hash: []byte(hash)}, nil
	}
	if passphrase == "" {
		return nil, errors.New("admin passphrase required")
	}
	return StaticVerifier{Passphrase: passphrase}, nil
}

// HashPassphrase returns a bcrypt hash suitable for BcryptVerifier
func HashPassphrase(passphrase string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(h), nil
}

// signToken creates an HMAC-signed token carrying its own expiry.
// Format: <unix-expiry>.<base64url(hmac)>
func signToken(subject string, expiresAt time.Time, salt string) string {
	exp := strconv.FormatInt(expiresAt.Unix(), 10)
	return exp + "." + tokenMAC(subject, exp, salt)
}

func tokenMAC(subject, exp, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(subject))
	h.Write([]byte{0})
	h.Write([]byte(exp))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// verifyToken checks signature and expiry of a token made by signToken
func verifyToken(token, subject, salt string, now time.Time) error {
	exp, mac, ok := strings.Cut(token, ".")
	if !ok || exp == "" || mac == "" {
		return ErrInvalidToken
	}

	expected := tokenMAC(subject, exp, salt)
	if !hmac.Equal([]byte(mac), []byte(expected)) {
		return ErrInvalidToken
	}

	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return ErrInvalidToken
	}
	if !now.Before(time.Unix(unix, 0)) {
		return ErrTokenExpired
	}
	return nil
}
