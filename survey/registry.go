// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/danielhkuo/civic-pulse/auth"
)

// DefaultSessionTTL is how long an untouched draft survives
const DefaultSessionTTL = time.Hour

// Registry holds in-progress wizards by session ID. Sessions that are not
// touched within the TTL expire and their drafts are discarded.
type Registry struct {
	sessions *cache.Cache
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: cache.New(ttl, 2*ttl),
		ttl:      ttl,
	}
}

// Add stores w under a fresh session ID
func (r *Registry) Add(w *Wizard) (string, error) {
	id, err := auth.GenerateID(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}
	r.sessions.Set(id, w, r.ttl)
	return id, nil
}

// Get returns the wizard for id and extends its lifetime
func (r *Registry) Get(id string) (*Wizard, bool) {
	v, ok := r.sessions.Get(id)
	if !ok {
		return nil, false
	}
	w := v.(*Wizard)
	r.sessions.Set(id, w, r.ttl)
	return w, true
}

// Remove discards a session
func (r *Registry) Remove(id string) {
	r.sessions.Delete(id)
}

func (r *Registry) Len() int {
	return r.sessions.ItemCount()
}
