// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danielhkuo/civic-pulse/models"
	"github.com/danielhkuo/civic-pulse/store"
)

// Step is a wizard state
type Step int

const (
	StepDemographics Step = iota
	StepBehavior
	StepEconomic
	StepAwareness
	StepSubmitted
	// StepSubmitting holds Awareness -> Submitted while the write is outstanding
	StepSubmitting
)

// QuestionSteps is the number of steps that take answers
const QuestionSteps = 4

// DefaultSubmitDelay mirrors the latency the questionnaire has always shown
const DefaultSubmitDelay = 800 * time.Millisecond

var stepNames = map[Step]string{
	StepDemographics: "demographics",
	StepBehavior:     "behavior",
	StepEconomic:     "economic",
	StepAwareness:    "awareness",
	StepSubmitted:    "submitted",
	StepSubmitting:   "submitting",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	ErrInvalidTransition = errors.New("transition not allowed from current step")
	ErrSubmitInProgress  = errors.New("submission already in progress")
	ErrAlreadySubmitted  = errors.New("survey already submitted")
	ErrOutOfRange        = errors.New("answer out of range")
)

// Store is what a wizard needs from the response store
type Store interface {
	ExistsByEmail(ctx context.Context, email string) bool
	Append(ctx context.Context, r models.SurveyResponse) error
}

// Snapshot is a consistent copy of wizard state
type Snapshot struct {
	Step      Step
	Draft     models.Draft
	Error     string
	Submitted *models.SurveyResponse
}

// Wizard walks one respondent through the questionnaire. A submitted wizard
// is finished; a new one is needed for another response.
type Wizard struct {
	store Store
	delay time.Duration
	now   func() time.Time
	newID func() string
	log   *zap.Logger

	mu        sync.Mutex
	step      Step
	draft     models.Draft
	errMsg    string
	submitted *models.SurveyResponse
}

type Option func(*Wizard)

// WithDelay sets the simulated submit latency
func WithDelay(d time.Duration) Option {
	return func(w *Wizard) { w.delay = d }
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

func WithIDFunc(fn func() string) Option {
	return func(w *Wizard) { w.newID = fn }
}

func WithLogger(log *zap.Logger) Option {
	return func(w *Wizard) {
		if log != nil {
			w.log = log
		}
	}
}

func New(st Store, opts ...Option) *Wizard {
	w := &Wizard{
		store: st,
		delay: DefaultSubmitDelay,
		now:   time.Now,
		newID: uuid.NewString,
		log:   zap.NewNop(),
		step:  StepDemographics,
		draft: models.NewDraft(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{
		Step:  w.step,
		Draft: w.draft,
		Error: w.errMsg,
	}
	if w.submitted != nil {
		r := *w.submitted
		snap.Submitted = &r
	}
	return snap
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Err returns the validation message currently shown, or ""
func (w *Wizard) Err() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// Edit applies a field change to the draft. Any shown validation error is
// cleared without re-validating. Out-of-range numeric answers are rejected
// and leave the draft untouched.
func (w *Wizard) Edit(fn func(d *models.Draft)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}

	next := w.draft
	fn(&next)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}

	w.draft = next
	w.errMsg = ""
	return nil
}

// Next advances one step. Leaving Demographics requires the gate to pass;
// Behavior and Economic advance unconditionally.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepDemographics:
		if verr := validateDemographics(ctx, w.draft.Demographics, w.store); verr != nil {
			w.errMsg = verr.Message
			return verr
		}
		w.errMsg = ""
		w.step = StepBehavior
	case StepBehavior, StepEconomic:
		w.step++
	case StepSubmitting:
		return ErrSubmitInProgress
	case StepSubmitted:
		return ErrAlreadySubmitted
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Back returns to the previous step. It is a no-op on the first step.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepDemographics:
		return nil
	case StepBehavior, StepEconomic, StepAwareness:
		w.step--
		return nil
	case StepSubmitting:
		return ErrSubmitInProgress
	default:
		return ErrAlreadySubmitted
	}
}

// Submit finalizes the draft and appends it to the store. Only one submit can
// be outstanding; a concurrent call gets ErrSubmitInProgress. Demographics
// edited after the gate are checked again first. A failed check, or the store
// reporting the email as taken, sends the wizard back to Demographics with the
// message; any other failure leaves it at Awareness.
func (w *Wizard) Submit(ctx context.Context) (models.SurveyResponse, error) {
	w.mu.Lock()
	switch w.step {
	case StepAwareness:
	case StepSubmitting:
		w.mu.Unlock()
		return models.SurveyResponse{}, ErrSubmitInProgress
	case StepSubmitted:
		w.mu.Unlock()
		return models.SurveyResponse{}, ErrAlreadySubmitted
	default:
		w.mu.Unlock()
		return models.SurveyResponse{}, ErrInvalidTransition
	}
	if verr := checkDemographics(w.draft.Demographics); verr != nil {
		w.step = StepDemographics
		w.errMsg = verr.Message
		w.mu.Unlock()
		return models.SurveyResponse{}, verr
	}
	w.step = StepSubmitting
	draft := w.draft
	w.mu.Unlock()

	if err := w.wait(ctx); err != nil {
		w.finish(StepAwareness, "", nil)
		return models.SurveyResponse{}, err
	}

	record := draft.Record(w.newID(), w.now().UTC())

	if err := w.store.Append(ctx, record); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			w.finish(StepDemographics, MsgDuplicateEmail, nil)
			return models.SurveyResponse{}, &ValidationError{Field: "email", Message: MsgDuplicateEmail}
		}
		w.log.Error("failed to store response", zap.Error(err))
		w.finish(StepAwareness, "", nil)
		return models.SurveyResponse{}, fmt.Errorf("submit: %w", err)
	}

	w.finish(StepSubmitted, "", &record)
	w.log.Info("survey submitted", zap.String("id", record.ID))
	return record, nil
}

func (w *Wizard) wait(ctx context.Context) error {
	if w.delay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(w.delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Wizard) finish(step Step, msg string, record *models.SurveyResponse) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.step = step
	w.errMsg = msg
	w.submitted = record
}

func (w *Wizard) editableLocked() error {
	switch w.step {
	case StepSubmitting:
		return ErrSubmitInProgress
	case StepSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}
