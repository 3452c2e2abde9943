// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/civic-pulse/aggregate"
	"github.com/danielhkuo/civic-pulse/testutil"
)

func TestGetStats_Empty(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/stats", nil, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	var p aggregate.Public
	testutil.AssertJSON(t, w, &p)
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, []aggregate.NamedValue{{Name: aggregate.NoData, Value: 0}}, p.ViolationAverages)
	assert.Equal(t, []aggregate.NamedValue{{Name: aggregate.NoData, Value: 1}}, p.CostBreakdown)
	assert.Empty(t, p.RecentTrafficDelays)
	assert.Equal(t, 0, p.AverageTrafficDelay)
}

func TestGetStats_RefreshesAfterChange(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedResponses(t, env.store, 2)

	get := func() aggregate.Public {
		w := env.do(t, "GET", "/stats", nil, nil)
		testutil.AssertStatus(t, w, http.StatusOK)
		var p aggregate.Public
		testutil.AssertJSON(t, w, &p)
		return p
	}

	first := get()
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, 15, first.AverageTrafficDelay)
	assert.Equal(t, first, get(), "unchanged store serves the same view")

	require.NoError(t, env.store.Append(context.Background(), testutil.SampleResponse(3)))

	second := get()
	assert.Equal(t, 3, second.Total)
	assert.Equal(t, 20, second.AverageTrafficDelay)
	assert.Len(t, second.RecentTrafficDelays, 3)

	require.NoError(t, env.store.ClearAll(context.Background()))
	assert.Equal(t, 0, get().Total)
}

func TestSnapshots_CloseStopsListening(t *testing.T) {
	st, _ := testutil.NewTestStore(t)
	s := NewSnapshots(st)

	_ = s.Public(context.Background())
	gen := s.gen.Load()
	s.Close()

	testutil.SeedResponses(t, st, 1)
	assert.Equal(t, gen, s.gen.Load())
}

func TestSnapshots_FailedReadIsNotCached(t *testing.T) {
	st, backend := testutil.NewTestStore(t)
	s := NewSnapshots(st)
	defer s.Close()
	ctx := context.Background()
	testutil.SeedResponses(t, st, 4)

	backend.FailReads(true)
	assert.Equal(t, 0, s.Public(ctx).Total)
	assert.Equal(t, 0, s.Dashboard(ctx).Total)
	assert.Zero(t, s.cache.ItemCount())

	backend.FailReads(false)
	assert.Equal(t, 4, s.Public(ctx).Total)
	assert.Equal(t, 4, s.Dashboard(ctx).Total)
	assert.Equal(t, 2, s.cache.ItemCount())
}

func TestGetStats_RecoversAfterReadFailure(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedResponses(t, env.store, 3)

	get := func() aggregate.Public {
		w := env.do(t, "GET", "/stats", nil, nil)
		testutil.AssertStatus(t, w, http.StatusOK)
		var p aggregate.Public
		testutil.AssertJSON(t, w, &p)
		return p
	}

	env.backend.FailReads(true)
	assert.Equal(t, 0, get().Total)

	env.backend.FailReads(false)
	assert.Equal(t, 3, get().Total)
}
