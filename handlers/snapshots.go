// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/patrickmn/go-cache"

	"github.com/danielhkuo/civic-pulse/aggregate"
	"github.com/danielhkuo/civic-pulse/store"
)

// Snapshots caches aggregate views of the store. Every change notification
// bumps the generation and flushes the cache, so a view computed from data
// read before a change can never be served after it. A view built from a
// failed read is served but not cached.
type Snapshots struct {
	store  *store.Store
	cache  *cache.Cache
	gen    atomic.Uint64
	cancel func()
}

func NewSnapshots(st *store.Store) *Snapshots {
	s := &Snapshots{
		store: st,
		// no expiry and no janitor; entries live until the next change
		cache: cache.New(cache.NoExpiration, 0),
	}
	s.cancel = st.Subscribe(func(store.Event) {
		s.gen.Add(1)
		s.cache.Flush()
	})
	return s
}

// Public returns the visitor statistics
func (s *Snapshots) Public(ctx context.Context) aggregate.Public {
	key := s.key("public")
	if v, ok := s.cache.Get(key); ok {
		return v.(aggregate.Public)
	}
	responses, err := s.store.ReadAll(ctx)
	p := aggregate.BuildPublic(responses)
	if err == nil {
		s.cache.Set(key, p, cache.NoExpiration)
	}
	return p
}

// Dashboard returns the admin statistics
func (s *Snapshots) Dashboard(ctx context.Context) aggregate.Dashboard {
	key := s.key("dashboard")
	if v, ok := s.cache.Get(key); ok {
		return v.(aggregate.Dashboard)
	}
	responses, err := s.store.ReadAll(ctx)
	d := aggregate.BuildDashboard(responses)
	if err == nil {
		s.cache.Set(key, d, cache.NoExpiration)
	}
	return d
}

// Close stops listening for store changes
func (s *Snapshots) Close() {
	s.cancel()
}

func (s *Snapshots) key(view string) string {
	return view + ":" + strconv.FormatUint(s.gen.Load(), 10)
}
