// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestStaticVerifier(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		given      string
		wantErr    bool
	}{
		{"match", "s3cret", "s3cret", false},
		{"mismatch", "s3cret", "S3CRET", true},
		{"prefix", "s3cret", "s3c", true},
		{"empty given", "s3cret", "", true},
		{"nothing configured", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := StaticVerifier{Passphrase: tt.configured}.Verify(tt.given)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidCredential {
				t.Errorf("Verify() error = %v, want %v", err, ErrInvalidCredential)
			}
		})
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassphrase("civic")
	if err != nil {
		t.Fatalf("HashPassphrase() error = %v", err)
	}
	if hash == "civic" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("HashPassphrase() = %q, want a bcrypt hash", hash)
	}

	v := BcryptVerifier{Hash: []byte(hash)}
	if err := v.Verify("civic"); err != nil {
		t.Errorf("Verify() correct passphrase error = %v", err)
	}
	if err := v.Verify("civics"); err != ErrInvalidCredential {
		t.Errorf("Verify() wrong passphrase error = %v, want %v", err, ErrInvalidCredential)
	}
}

func TestNewVerifier(t *testing.T) {
	hash, err := HashPassphrase("hashed")
	if err != nil {
		t.Fatalf("HashPassphrase() error = %v", err)
	}

	t.Run("hash preferred", func(t *testing.T) {
		v, err := NewVerifier("plain", hash)
		if err != nil {
			t.Fatalf("NewVerifier() error = %v", err)
		}
		if _, ok := v.(BcryptVerifier); !ok {
			t.Errorf("NewVerifier() = %T, want BcryptVerifier", v)
		}
		if v.Verify("plain") == nil {
			t.Error("plain passphrase accepted when a hash is configured")
		}
	})

	t.Run("plain passphrase", func(t *testing.T) {
		v, err := NewVerifier("plain", "")
		if err != nil {
			t.Fatalf("NewVerifier() error = %v", err)
		}
		if err := v.Verify("plain"); err != nil {
			t.Errorf("Verify() error = %v", err)
		}
	})

	t.Run("invalid hash", func(t *testing.T) {
		if _, err := NewVerifier("", "not-a-hash"); err == nil {
			t.Error("NewVerifier() accepted an invalid hash")
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		if _, err := NewVerifier("", ""); err == nil {
			t.Error("NewVerifier() accepted an empty configuration")
		}
	})
}

func TestSignToken(t *testing.T) {
	exp := time.Unix(1_900_000_000, 0)
	token := signToken(PrincipalAdmin, exp, "salt")

	// Should be deterministic
	if token != signToken(PrincipalAdmin, exp, "salt") {
		t.Error("signToken() is not deterministic")
	}

	// Should be URL-safe (no padding)
	if strings.Contains(token, "=") {
		t.Error("signToken() contains padding characters")
	}

	if !strings.HasPrefix(token, strconv.FormatInt(exp.Unix(), 10)+".") {
		t.Errorf("signToken() = %q, want expiry prefix", token)
	}

	if token == signToken(PrincipalAdmin, exp, "other-salt") {
		t.Error("signToken() produced same token for different salts")
	}
}

func TestVerifyToken(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	exp := now.Add(time.Hour)
	valid := signToken(PrincipalAdmin, exp, "salt")
	expStr := strconv.FormatInt(exp.Unix(), 10)

	tests := []struct {
		name    string
		token   string
		salt    string
		now     time.Time
		wantErr error
	}{
		{"valid", valid, "salt", now, nil},
		{"wrong salt", valid, "other", now, ErrInvalidToken},
		{"expired", valid, "salt", exp, ErrTokenExpired},
		{"long expired", valid, "salt", exp.Add(time.Hour), ErrTokenExpired},
		{"no separator", "abc", "salt", now, ErrInvalidToken},
		{"empty mac", expStr + ".", "salt", now, ErrInvalidToken},
		{"empty expiry", "." + strings.SplitN(valid, ".", 2)[1], "salt", now, ErrInvalidToken},
		{"extended expiry", "9999999999." + strings.SplitN(valid, ".", 2)[1], "salt", now, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifyToken(tt.token, PrincipalAdmin, tt.salt, tt.now)
			if err != tt.wantErr {
				t.Errorf("verifyToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

type readOnlyPolicy struct{}

func (readOnlyPolicy) Allow(principal string, c Capability) bool {
	return principal == PrincipalAdmin && c == CapViewDashboard
}

func TestGate(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	gate := NewGate(StaticVerifier{Passphrase: "pass"}, "salt", WithTokenTTL(time.Hour), WithClock(clock))

	t.Run("wrong passphrase", func(t *testing.T) {
		token, _, err := gate.Login("nope")
		if err != ErrInvalidCredential || token != "" {
			t.Errorf("Login() = %q, %v; want empty, %v", token, err, ErrInvalidCredential)
		}
		if !IsAuthError(err) {
			t.Error("IsAuthError() = false for a rejected login")
		}
	})

	token, expiresAt, err := gate.Login("pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !expiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("Login() expiresAt = %v, want %v", expiresAt, now.Add(time.Hour))
	}

	t.Run("every capability", func(t *testing.T) {
		for _, c := range []Capability{CapViewDashboard, CapExport, CapClearResponses} {
			if err := gate.Authorize(token, c); err != nil {
				t.Errorf("Authorize(%s) error = %v", c, err)
			}
		}
	})

	t.Run("missing token", func(t *testing.T) {
		if err := gate.Authorize("", CapExport); err != ErrInvalidToken {
			t.Errorf("Authorize() error = %v, want %v", err, ErrInvalidToken)
		}
	})

	t.Run("token from another salt", func(t *testing.T) {
		other := NewGate(StaticVerifier{Passphrase: "pass"}, "different", WithClock(clock))
		foreign, _, _ := other.Login("pass")
		if err := gate.Authorize(foreign, CapExport); !IsAuthError(err) {
			t.Errorf("Authorize() error = %v, want auth error", err)
		}
	})

	t.Run("expiry", func(t *testing.T) {
		later := NewGate(StaticVerifier{Passphrase: "pass"}, "salt",
			WithClock(func() time.Time { return now.Add(time.Hour) }))
		err := later.Authorize(token, CapViewDashboard)
		if !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Authorize() error = %v, want %v", err, ErrTokenExpired)
		}
	})

	t.Run("policy", func(t *testing.T) {
		ro := NewGate(StaticVerifier{Passphrase: "pass"}, "salt", WithClock(clock), WithPolicy(readOnlyPolicy{}))
		if err := ro.Authorize(token, CapViewDashboard); err != nil {
			t.Errorf("Authorize(view) error = %v", err)
		}
		err := ro.Authorize(token, CapClearResponses)
		if err != ErrForbidden {
			t.Errorf("Authorize(clear) error = %v, want %v", err, ErrForbidden)
		}
		if IsAuthError(err) {
			t.Error("IsAuthError() = true for a forbidden capability")
		}
	})
}

func TestNewGate_Defaults(t *testing.T) {
	g := NewGate(StaticVerifier{Passphrase: "pass"}, "salt", WithTokenTTL(0))
	if g.ttl != DefaultTokenTTL {
		t.Errorf("ttl = %v, want %v", g.ttl, DefaultTokenTTL)
	}
	if _, ok := g.policy.(AdminPolicy); !ok {
		t.Errorf("policy = %T, want AdminPolicy", g.policy)
	}
}

func TestAdminPolicy(t *testing.T) {
	p := AdminPolicy{}
	if !p.Allow(PrincipalAdmin, CapClearResponses) {
		t.Error("AdminPolicy denied the admin")
	}
	if p.Allow("visitor", CapViewDashboard) {
		t.Error("AdminPolicy allowed a non-admin principal")
	}
}

// Benchmark tests
func BenchmarkGenerateID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateID(16)
	}
}

func BenchmarkAuthorize(b *testing.B) {
	gate := NewGate(StaticVerifier{Passphrase: "pass"}, "salt")
	token, _, _ := gate.Login("pass")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		gate.Authorize(token, CapExport)
	}
}
