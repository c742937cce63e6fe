// Package repository is the boundary to the questionnaire backend. It caches
// question sets, encodes submitted values per section and maps transport
// failures to domain errors.
package repository

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"anamnesis/internal/anamnesis/catalog"
	"anamnesis/internal/anamnesis/encoding"
	"anamnesis/internal/anamnesis/metrics"
	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/anamnesis/remote"
	"anamnesis/internal/kvstore"
	id "anamnesis/pkg/domain"
	dErrors "anamnesis/pkg/domain-errors"
)

// Remote is the questionnaire backend.
type Remote interface {
	GetQuestions(ctx context.Context, locale id.Locale) ([]models.Question, error)
	GetUserAnswers(ctx context.Context, userID id.UserID, locale id.Locale) ([]models.UserAnswer, error)
	SubmitAnswer(ctx context.Context, userID id.UserID, answer models.RemoteAnswer) error
	GetUserMarkers(ctx context.Context, userID id.UserID) ([]models.UserMarker, error)
}

// Repository reads questions and answers and submits new answers.
type Repository struct {
	remote  Remote
	cache   QuestionCache
	kv      kvstore.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	group   singleflight.Group
}

// Option configures a Repository.
type Option func(*Repository)

func WithCache(c QuestionCache) Option {
	return func(r *Repository) {
		r.cache = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Repository) {
		r.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.logger = l
		}
	}
}

// New builds a repository. kv supplies the selected marker ids and may be nil.
func New(remote Remote, kv kvstore.Store, opts ...Option) *Repository {
	r := &Repository{
		remote: remote,
		kv:     kv,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// sharedFetchTimeout bounds a coalesced backend fetch, which outlives the
// caller that started it.
const sharedFetchTimeout = 30 * time.Second

// GetQuestions returns the question set of a locale. Concurrent misses for
// the same locale share one backend call. An empty set is valid.
func (r *Repository) GetQuestions(ctx context.Context, locale id.Locale) ([]models.Question, error) {
	questions, _, err := r.loadQuestions(ctx, locale)
	return questions, err
}

// loadQuestions also reports whether the set was served from the cache.
func (r *Repository) loadQuestions(ctx context.Context, locale id.Locale) ([]models.Question, bool, error) {
	if r.cache != nil {
		questions, ok, err := r.cache.Get(ctx, locale)
		if err != nil {
			r.logger.WarnContext(ctx, "question cache read failed", "locale", locale, "error", err)
		}
		if ok {
			r.metrics.IncrementCacheHit()
			return questions, true, nil
		}
		r.metrics.IncrementCacheMiss()
	}

	ch := r.group.DoChan(locale.String(), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedFetchTimeout)
		defer cancel()
		questions, err := r.remote.GetQuestions(fetchCtx, locale)
		if err != nil {
			return nil, err
		}
		if questions == nil {
			questions = []models.Question{}
		}
		if r.cache != nil {
			if err := r.cache.Set(fetchCtx, locale, questions); err != nil {
				r.logger.WarnContext(ctx, "question cache write failed", "locale", locale, "error", err)
			}
		}
		return questions, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, dErrors.Wrap(ctx.Err(), dErrors.CodeTimeout, "failed to load questions")
	case res := <-ch:
		if res.Err != nil {
			return nil, false, mapRemoteError(res.Err, "failed to load questions")
		}
		return res.Val.([]models.Question), false, nil
	}
}

// InvalidateQuestions drops the cached set of a locale.
func (r *Repository) InvalidateQuestions(ctx context.Context, locale id.Locale) error {
	if r.cache == nil {
		return nil
	}
	if err := r.cache.Delete(ctx, locale); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to invalidate questions")
	}
	return nil
}

// GetUserAnswers returns every answer the backend holds for the user,
// including answers to questions no longer in the current set.
func (r *Repository) GetUserAnswers(ctx context.Context, userID id.UserID, locale id.Locale) ([]models.UserAnswer, error) {
	answers, err := r.remote.GetUserAnswers(ctx, userID, locale)
	if err != nil {
		return nil, mapRemoteError(err, "failed to load answers")
	}
	if answers == nil {
		answers = []models.UserAnswer{}
	}
	return answers, nil
}

// SubmitAnswer encodes value for the question's section and posts it once.
// Body questions take a symptom level name, all others an option key.
func (r *Repository) SubmitAnswer(ctx context.Context, userID id.UserID, locale id.Locale, questionConceptID string, value string) error {
	question, err := r.findQuestion(ctx, locale, questionConceptID)
	if err != nil {
		return err
	}
	answer, err := encodeAnswer(question, value)
	if err != nil {
		return err
	}

	if err := r.remote.SubmitAnswer(ctx, userID, answer); err != nil {
		r.metrics.IncrementSubmitFailures()
		r.logger.ErrorContext(ctx, "answer submission failed",
			"user_id", userID.String(),
			"question_id", questionConceptID,
			"error", err,
		)
		return mapRemoteError(err, "failed to submit answer")
	}
	return nil
}

// findQuestion looks a question up in the locale's set. A cached set that
// lacks it is refreshed once, since the backend may have published new
// questions since it was cached.
func (r *Repository) findQuestion(ctx context.Context, locale id.Locale, questionConceptID string) (models.Question, error) {
	questions, cached, err := r.loadQuestions(ctx, locale)
	if err != nil {
		return models.Question{}, err
	}
	idx := slices.IndexFunc(questions, func(q models.Question) bool { return q.ID == questionConceptID })
	if idx < 0 && cached {
		if err := r.InvalidateQuestions(ctx, locale); err != nil {
			r.logger.WarnContext(ctx, "question cache invalidation failed", "locale", locale, "error", err)
		}
		if questions, _, err = r.loadQuestions(ctx, locale); err != nil {
			return models.Question{}, err
		}
		idx = slices.IndexFunc(questions, func(q models.Question) bool { return q.ID == questionConceptID })
	}
	if idx < 0 {
		return models.Question{}, dErrors.New(dErrors.CodeBadRequest, "unknown question: "+questionConceptID)
	}
	return questions[idx], nil
}

// GetUserMarkers passes markers through, flagging those the user selected,
// and reports when the user last picked objectives.
func (r *Repository) GetUserMarkers(ctx context.Context, userID id.UserID) (models.MarkerSelection, error) {
	markers, err := r.remote.GetUserMarkers(ctx, userID)
	if err != nil {
		return models.MarkerSelection{}, mapRemoteError(err, "failed to load markers")
	}
	if markers == nil {
		markers = []models.UserMarker{}
	}
	selection := models.MarkerSelection{Markers: markers}
	if r.kv == nil {
		return selection, nil
	}

	values, err := kvstore.GetMany(ctx, r.kv, userID, []kvstore.Key{kvstore.KeySelectedMarkerIDs, kvstore.KeyObjectivesSelectedAt})
	if err != nil {
		r.logger.WarnContext(ctx, "marker selection unreadable", "user_id", userID.String(), "error", err)
		return selection, nil
	}
	if at, ok := values[kvstore.KeyObjectivesSelectedAt]; ok {
		selection.ObjectivesSelectedAt = &at
	}
	raw, ok := values[kvstore.KeySelectedMarkerIDs]
	if !ok {
		return selection, nil
	}
	selected, err := kvstore.DecodeStringList(kvstore.KeySelectedMarkerIDs, raw)
	if err != nil {
		r.logger.WarnContext(ctx, "selected markers unreadable", "user_id", userID.String(), "error", err)
		return selection, nil
	}
	for i := range markers {
		markers[i].Selected = slices.Contains(selected, markers[i].ID)
	}
	return selection, nil
}

func encodeAnswer(q models.Question, value string) (models.RemoteAnswer, error) {
	section, ok := catalog.Lookup(q.SectionID)
	if !ok {
		return models.RemoteAnswer{}, dErrors.New(dErrors.CodeBadRequest, "question has unknown section: "+string(q.SectionID))
	}
	answer := models.RemoteAnswer{QuestionConceptID: q.ID}

	switch section.Encoding {
	case catalog.EncodingSymptomScale:
		level, err := encoding.ParseSymptomLevel(value)
		if err != nil {
			return models.RemoteAnswer{}, err
		}
		answer.AnswerText = encoding.EncodeSymptomLevel(level)
		for _, opt := range q.AnswerOptions {
			if decoded, ok := encoding.DecodeAnswer(nil, &opt.Key); ok && decoded == level {
				answer.AnswerOptionID = &opt.ID
				break
			}
		}
	default:
		key := encoding.EncodeSingleChoice(value)
		opt, ok := q.OptionByKey(key)
		if !ok {
			return models.RemoteAnswer{}, dErrors.New(dErrors.CodeBadRequest, "invalid option for question "+q.ID+": "+value)
		}
		answer.AnswerOptionID = &opt.ID
		answer.AnswerText = key
	}
	return answer, nil
}

func mapRemoteError(err error, msg string) error {
	if remote.IsCanceled(err) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, msg)
	}
	if remote.IsNetworkError(err) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	}
	switch status := remote.StatusCode(err); {
	case status == http.StatusNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, msg)
	case status >= 500:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, msg)
	case status >= 400:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, msg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
