// Package completion decides whether a user's questionnaire is complete.
//
// The persisted completion flag is a claim, not a fact: every run re-checks it
// against live answers and clears it when the answers no longer back it.
// Failures lean towards incomplete, never towards a false completed.
package completion

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"anamnesis/internal/anamnesis/metrics"
	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/audit"
	id "anamnesis/pkg/domain"
	dErrors "anamnesis/pkg/domain-errors"
)

var tracer = otel.Tracer("anamnesis.completion")

const (
	reasonNoAnswers          = "no_answers"
	reasonSectionsIncomplete = "sections_incomplete"
	reasonMalformed          = "malformed_flag"
)

// Validator runs the completion state machine per user.
type Validator struct {
	repo    Repository
	flags   FlagStore
	auditor Auditor
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time

	group singleflight.Group
	locks *userLocks

	mu     sync.RWMutex
	states map[id.UserID]models.CompletionState
}

// Option configures a Validator.
type Option func(*Validator)

func WithAuditor(a Auditor) Option {
	return func(v *Validator) {
		v.auditor = a
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(v *Validator) {
		v.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

func New(repo Repository, flags FlagStore, opts ...Option) *Validator {
	v := &Validator{
		repo:   repo,
		flags:  flags,
		logger: slog.Default(),
		now:    time.Now,
		locks:  newUserLocks(),
		states: make(map[id.UserID]models.CompletionState),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the user's current state; users never validated are unknown.
func (v *Validator) State(userID id.UserID) models.CompletionState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if s, ok := v.states[userID]; ok {
		return s
	}
	return models.StateUnknown
}

func (v *Validator) setState(userID id.UserID, s models.CompletionState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states[userID] = s
}

// runTimeout bounds a shared run once it no longer follows any caller's
// context.
const runTimeout = 30 * time.Second

// Validate runs the state machine for a user. Triggers for the same user and
// locale arriving while a run is in flight share that run's result. The run
// does not stop when the caller that started it goes away; each caller only
// stops waiting on its own context.
func (v *Validator) Validate(ctx context.Context, userID id.UserID, locale id.Locale) (models.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ValidationResult{State: models.StateUnknown}, abandoned(err)
	}

	var leader atomic.Bool
	ch := v.group.DoChan(runKey(userID, locale), func() (any, error) {
		leader.Store(true)
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runTimeout)
		defer cancel()
		return v.run(runCtx, userID, locale)
	})

	select {
	case <-ctx.Done():
		return models.ValidationResult{State: models.StateUnknown}, abandoned(ctx.Err())
	case res := <-ch:
		if !leader.Load() {
			v.metrics.IncrementCoalesced()
		}
		if res.Err != nil {
			return models.ValidationResult{State: models.StateUnknown}, res.Err
		}
		return res.Val.(models.ValidationResult), nil
	}
}

func runKey(userID id.UserID, locale id.Locale) string {
	return userID.String() + "|" + locale.String()
}

func abandoned(err error) error {
	return dErrors.Wrap(err, dErrors.CodeTimeout, "completion check aborted: context cancelled")
}

func (v *Validator) run(ctx context.Context, userID id.UserID, locale id.Locale) (result models.ValidationResult, err error) {
	ctx, span := tracer.Start(ctx, "completion.validate")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	unlock, err := v.locks.lock(ctx, userID)
	if err != nil {
		return models.ValidationResult{}, err
	}
	defer unlock()

	v.setState(userID, models.StateChecking)

	flag, malformed := v.readFlag(ctx, userID)
	questions, answers, err := v.load(ctx, userID, locale)
	if err != nil {
		v.setState(userID, models.StateUnknown)
		v.metrics.IncrementValidationOutcome(string(models.StateUnknown))
		v.logger.WarnContext(ctx, "completion check skipped: data unavailable",
			"user_id", userID.String(),
			"error", err,
		)
		return models.ValidationResult{}, err
	}

	result, stale := Evaluate(flag, questions, answers)
	switch {
	case stale && !result.HasAnyAnswers:
		result.FlagCleared = v.clearFlag(ctx, userID, reasonNoAnswers)
	case stale:
		result.FlagCleared = v.clearFlag(ctx, userID, reasonSectionsIncomplete)
	case malformed:
		result.FlagCleared = v.clearFlag(ctx, userID, reasonMalformed)
	}

	v.setState(userID, result.State)
	v.metrics.IncrementValidationOutcome(string(result.State))
	span.SetAttributes(
		attribute.String("completion.state", string(result.State)),
		attribute.Bool("completion.has_answers", result.HasAnyAnswers),
		attribute.Bool("completion.flag_cleared", result.FlagCleared),
	)
	return result, nil
}

// Finish asserts completion. It refuses unless the user has answers and every
// section is complete, then writes the flag.
func (v *Validator) Finish(ctx context.Context, userID id.UserID, locale id.Locale) (result models.ValidationResult, err error) {
	ctx, span := tracer.Start(ctx, "completion.finish")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	unlock, err := v.locks.lock(ctx, userID)
	if err != nil {
		return models.ValidationResult{}, err
	}
	defer unlock()

	questions, answers, err := v.load(ctx, userID, locale)
	if err != nil {
		v.metrics.IncrementFinish("unavailable")
		return models.ValidationResult{}, err
	}

	result, _ = Evaluate(nil, questions, answers)
	if !result.HasAnyAnswers || !result.AllSectionsComplete {
		v.metrics.IncrementFinish("refused")
		v.emit(ctx, userID, audit.ActionFinishRefused, "")
		return result, dErrors.New(dErrors.CodeConflict, "questionnaire is not complete")
	}

	completedAt := v.now().UTC().Truncate(time.Millisecond)
	if err := v.flags.Set(ctx, userID, models.CompletionFlag{CompletedAt: completedAt}); err != nil {
		v.metrics.IncrementFinish("error")
		v.logger.ErrorContext(ctx, "failed to write completion flag",
			"user_id", userID.String(),
			"error", err,
		)
		return models.ValidationResult{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to record completion")
	}

	result.State = models.StateCompleted
	result.CompletedAt = &completedAt
	v.setState(userID, models.StateCompleted)
	v.metrics.IncrementFinish("completed")
	v.emit(ctx, userID, audit.ActionCompletionFlagSet, "")
	return result, nil
}

// readFlag treats any read failure as an absent flag. malformed reports a
// stored value that is not a timestamp.
func (v *Validator) readFlag(ctx context.Context, userID id.UserID) (flag *models.CompletionFlag, malformed bool) {
	flag, err := v.flags.Get(ctx, userID)
	if err != nil {
		v.metrics.IncrementFlagReadFailures()
		v.logger.WarnContext(ctx, "completion flag unreadable, treating as absent",
			"user_id", userID.String(),
			"error", err,
		)
		return nil, errors.Is(err, ErrMalformedFlag)
	}
	return flag, false
}

func (v *Validator) load(ctx context.Context, userID id.UserID, locale id.Locale) ([]models.Question, []models.UserAnswer, error) {
	var (
		questions []models.Question
		answers   []models.UserAnswer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = v.repo.GetQuestions(gctx, locale)
		return err
	})
	g.Go(func() error {
		var err error
		answers, err = v.repo.GetUserAnswers(gctx, userID, locale)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "questionnaire data unavailable")
	}
	return questions, answers, nil
}

// clearFlag removes a stale flag. A failed clear is logged; the run still
// reports incomplete.
func (v *Validator) clearFlag(ctx context.Context, userID id.UserID, reason string) bool {
	if err := v.flags.Clear(ctx, userID); err != nil {
		v.metrics.IncrementFlagClearFailures()
		v.logger.ErrorContext(ctx, "failed to clear stale completion flag",
			"user_id", userID.String(),
			"reason", reason,
			"error", err,
		)
		return false
	}
	v.metrics.IncrementFlagClears()
	v.logger.InfoContext(ctx, "stale completion flag cleared",
		"user_id", userID.String(),
		"reason", reason,
	)
	v.emit(ctx, userID, audit.ActionCompletionFlagCleared, reason)
	return true
}

func (v *Validator) emit(ctx context.Context, userID id.UserID, action audit.Action, reason string) {
	if v.auditor == nil {
		return
	}
	if err := v.auditor.Emit(ctx, audit.Event{UserID: userID, Action: action, Reason: reason}); err != nil {
		v.logger.WarnContext(ctx, "audit emit failed",
			"user_id", userID.String(),
			"action", action,
			"error", err,
		)
	}
}
