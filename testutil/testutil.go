// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/danielhkuo/civic-pulse/cliparse"
	"github.com/danielhkuo/civic-pulse/models"
	"github.com/danielhkuo/civic-pulse/storage"
	"github.com/danielhkuo/civic-pulse/store"
)

// TestPassphrase is the admin passphrase in GetTestConfig
const TestPassphrase = "test-passphrase"

// LeakOptions ignores the go-cache janitor, which stops only when its cache
// is garbage collected.
var LeakOptions = []goleak.Option{
	goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"),
}

// ErrInjected is returned by FlakyBackend while it is failing
var ErrInjected = errors.New("injected backend failure")

// FlakyBackend is an in-memory backend whose reads and writes can be made to
// fail
type FlakyBackend struct {
	*storage.Memory
	fail      atomic.Bool
	failReads atomic.Bool
	readsLeft atomic.Int64
}

// FailWrites toggles write failures
func (b *FlakyBackend) FailWrites(fail bool) {
	b.fail.Store(fail)
}

// FailReads toggles read failures
func (b *FlakyBackend) FailReads(fail bool) {
	b.failReads.Store(fail)
}

// FailNextReads makes the next n reads fail, then recovers on its own
func (b *FlakyBackend) FailNextReads(n int) {
	b.readsLeft.Store(int64(n))
}

func (b *FlakyBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if b.failReads.Load() {
		return nil, ErrInjected
	}
	if b.readsLeft.Add(-1) >= 0 {
		return nil, ErrInjected
	}
	b.readsLeft.Store(0)
	return b.Memory.Get(ctx, key)
}

func (b *FlakyBackend) Put(ctx context.Context, key string, value []byte) error {
	if b.fail.Load() {
		return ErrInjected
	}
	return b.Memory.Put(ctx, key, value)
}

func (b *FlakyBackend) Delete(ctx context.Context, key string) error {
	if b.fail.Load() {
		return ErrInjected
	}
	return b.Memory.Delete(ctx, key)
}

// NewTestStore returns a store over a fresh in-memory backend
func NewTestStore(t *testing.T) (*store.Store, *FlakyBackend) {
	t.Helper()
	backend := &FlakyBackend{Memory: storage.NewMemory()}
	return store.New(backend), backend
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            8085,
		DatabaseType:    "memory",
		StorageKey:      store.DefaultKey,
		AdminPassphrase: TestPassphrase,
		AdminTokenSalt:  "test-token-salt",
		AdminTokenTTL:   time.Hour,
		SubmitDelay:     0,
		WizardTTL:       time.Minute,
		LogLevel:        "debug",
		AllowedOrigins:  []string{"*"},
	}
}

// SampleResponse builds a complete record numbered n with a unique email
func SampleResponse(n int) models.SurveyResponse {
	return models.SurveyResponse{
		ID:          fmt.Sprintf("resp-%03d", n),
		SubmittedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute),
		Demographics: models.Demographics{
			Name:        fmt.Sprintf("Respondent %d", n),
			Email:       fmt.Sprintf("user%d@example.com", n),
			AgeGroup:    "25-34",
			Gender:      "Female",
			Education:   "Graduate",
			Occupation:  "Engineer",
			IncomeGroup: "3L-8L",
		},
		Behavior: models.Behavior{
			Littering:         1 + n%5,
			Spitting:          1,
			TrafficViolations: 2,
			Encroachment:      1,
			PropertyDamage:    1,
		},
		Economic: models.Economic{
			MedicalExpenseBand:     models.NoneBand,
			TrafficDelayMinutes:    10 * n,
			ExtraHouseholdCostBand: models.NoneBand,
			TourismImpact:          3,
		},
		Awareness: models.Awareness{
			ProgramAwareness:     "Partially Aware",
			FineAwareness:        "Vaguely",
			ReportingWillingness: "Yes",
			WillingnessToPay:     "Maybe",
		},
	}
}

// SeedResponses appends n sample responses
func SeedResponses(t *testing.T, st *store.Store, n int) []models.SurveyResponse {
	t.Helper()

	out := make([]models.SurveyResponse, 0, n)
	for i := 1; i <= n; i++ {
		r := SampleResponse(i)
		if err := st.Append(context.Background(), r); err != nil {
			t.Fatalf("Failed to seed response %d: %v", i, err)
		}
		out = append(out, r)
	}
	return out
}

// ValidDemographics is a demographics section that passes the gate
func ValidDemographics(email string) models.Demographics {
	return models.Demographics{
		Name:        "Asha",
		Email:       email,
		AgeGroup:    "18-24",
		Gender:      "Female",
		Education:   "Post Graduate",
		IncomeGroup: "<3L",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
