// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
)

// TestConcurrentSubmissions verifies that simultaneous submissions from
// different respondents are all stored and none is lost
func TestConcurrentSubmissions(t *testing.T) {
	env := newTestEnv(t)

	numRespondents := 20
	ids := make([]string, numRespondents)

	// Walk every session to the awareness step first
	for i := 0; i < numRespondents; i++ {
		ids[i] = env.startWizard(t)
		env.completeWizard(t, ids[i], fmt.Sprintf("respondent%d@example.com", i))
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRespondents; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			w := env.do(t, "POST", "/wizards/"+ids[idx]+"/submit", nil, nil)
			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numRespondents {
		t.Errorf("Expected %d successful submissions, got %d", numRespondents, successCount.Load())
	}

	responses := env.store.ListAll(context.Background())
	if len(responses) != numRespondents {
		t.Fatalf("Expected %d stored responses, got %d", numRespondents, len(responses))
	}

	// Verify no record was written twice
	seen := make(map[string]bool)
	for _, r := range responses {
		if seen[r.ID] {
			t.Errorf("Duplicate response ID %s", r.ID)
		}
		seen[r.ID] = true
	}
}

// TestConcurrentSameEmail verifies that when several sessions with the same
// email submit at once, exactly one is stored
func TestConcurrentSameEmail(t *testing.T) {
	env := newTestEnv(t)

	numAttempts := 8
	ids := make([]string, numAttempts)
	for i := 0; i < numAttempts; i++ {
		ids[i] = env.startWizard(t)
		env.completeWizard(t, ids[i], "contested@example.com")
	}

	var created, conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			w := env.do(t, "POST", "/wizards/"+ids[idx]+"/submit", nil, nil)
			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 stored submission, got %d", created.Load())
	}
	if int(conflicts.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflicts.Load())
	}
	if n := env.store.Count(context.Background()); n != 1 {
		t.Errorf("Expected 1 response in store, got %d", n)
	}
}

// TestConcurrentSubmitSameSession verifies that repeated submits of one
// session store a single record
func TestConcurrentSubmitSameSession(t *testing.T) {
	env := newTestEnv(t)
	id := env.startWizard(t)
	env.completeWizard(t, id, "double-click@example.com")

	numClicks := 5
	var created atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numClicks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := env.do(t, "POST", "/wizards/"+id+"/submit", nil, nil)
			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 successful submit, got %d", created.Load())
	}
	if n := env.store.Count(context.Background()); n != 1 {
		t.Errorf("Expected 1 response in store, got %d", n)
	}
}

// TestConcurrentReadsDuringWrites exercises the stats cache while responses
// are being appended
func TestConcurrentReadsDuringWrites(t *testing.T) {
	env := newTestEnv(t)

	numWriters := 10
	ids := make([]string, numWriters)
	for i := 0; i < numWriters; i++ {
		ids[i] = env.startWizard(t)
		env.completeWizard(t, ids[i], fmt.Sprintf("writer%d@example.com", i))
	}

	var wg sync.WaitGroup

	for i := 0; i < numWriters; i++ {
		wg.Add(2)
		go func(idx int) {
			defer wg.Done()
			env.do(t, "POST", "/wizards/"+ids[idx]+"/submit", nil, nil)
		}(i)
		go func() {
			defer wg.Done()
			w := env.do(t, "GET", "/stats", nil, nil)
			if w.Code != http.StatusOK {
				t.Errorf("Expected 200 from stats, got %d", w.Code)
			}
		}()
	}

	wg.Wait()

	// After the writes settle the view must reflect all of them
	if got := env.snapshots.Public(context.Background()).Total; got != numWriters {
		t.Errorf("Expected stats total %d, got %d", numWriters, got)
	}
}
