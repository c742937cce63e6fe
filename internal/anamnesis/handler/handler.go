// Package handler exposes the questionnaire over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/anamnesis/progress"
	"anamnesis/internal/platform/metrics"
	"anamnesis/internal/platform/middleware"
	id "anamnesis/pkg/domain"
	dErrors "anamnesis/pkg/domain-errors"
	"anamnesis/pkg/platform/httputil"
	"anamnesis/pkg/requestcontext"
)

// AnswerService reads the questionnaire and records answers.
type AnswerService interface {
	GetQuestions(ctx context.Context, locale id.Locale) ([]models.Question, error)
	GetUserAnswers(ctx context.Context, userID id.UserID, locale id.Locale) ([]models.UserAnswer, error)
	SubmitAnswer(ctx context.Context, userID id.UserID, locale id.Locale, questionConceptID string, value string) error
	GetUserMarkers(ctx context.Context, userID id.UserID) (models.MarkerSelection, error)
}

// CompletionService owns the completion flag.
type CompletionService interface {
	Validate(ctx context.Context, userID id.UserID, locale id.Locale) (models.ValidationResult, error)
	Finish(ctx context.Context, userID id.UserID, locale id.Locale) (models.ValidationResult, error)
}

// LocaleConfig selects the questionnaire locale of a request.
type LocaleConfig struct {
	Default   id.Locale
	Supported []id.Locale
}

// Handler serves the /anamnesis routes.
type Handler struct {
	logger       *slog.Logger
	answers      AnswerService
	completion   CompletionService
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	locales      LocaleConfig
	timeout      time.Duration
}

// New creates a questionnaire Handler.
func New(
	answers AnswerService,
	completion CompletionService,
	locales LocaleConfig,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		answers:      answers,
		completion:   completion,
		metrics:      metrics,
		jwtValidator: jwtValidator,
		locales:      locales,
		timeout:      30 * time.Second,
	}
}

// Register mounts the questionnaire routes on r.
func (h *Handler) Register(r chi.Router) {
	anamnesisRouter := chi.NewRouter()
	anamnesisRouter.Use(middleware.Recovery(h.logger))
	anamnesisRouter.Use(middleware.RequestID)
	anamnesisRouter.Use(middleware.ClientMetadata)
	anamnesisRouter.Use(middleware.Logger(h.logger))
	anamnesisRouter.Use(middleware.Timeout(h.timeout))
	anamnesisRouter.Use(middleware.ContentTypeJSON)
	anamnesisRouter.Use(middleware.LatencyMiddleware(h.metrics))
	anamnesisRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	anamnesisRouter.Get("/questions", h.handleGetQuestions)
	anamnesisRouter.Get("/answers", h.handleGetAnswers)
	anamnesisRouter.Post("/answers", h.handleSubmitAnswer)
	anamnesisRouter.Get("/progress", h.handleGetProgress)
	anamnesisRouter.Get("/summary", h.handleGetSummary)
	anamnesisRouter.Post("/finish", h.handleFinish)
	anamnesisRouter.Get("/markers", h.handleGetMarkers)

	r.Mount("/anamnesis", anamnesisRouter)
}

func (h *Handler) handleGetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	locale, err := h.resolveLocale(r)
	if err != nil {
		h.fail(ctx, w, "invalid locale", err)
		return
	}
	questions, err := h.answers.GetQuestions(ctx, locale)
	if err != nil {
		h.fail(ctx, w, "failed to load questions", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.QuestionsResponse{Locale: locale.String(), Questions: questions})
}

func (h *Handler) handleGetAnswers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	locale, err := h.resolveLocale(r)
	if err != nil {
		h.fail(ctx, w, "invalid locale", err)
		return
	}
	answers, err := h.answers.GetUserAnswers(ctx, userID, locale)
	if err != nil {
		h.fail(ctx, w, "failed to load answers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.AnswersResponse{Answers: answers})
}

func (h *Handler) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	locale, err := h.resolveLocale(r)
	if err != nil {
		h.fail(ctx, w, "invalid locale", err)
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(ctx, w, "invalid submit answer request", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid submit answer request", err)
		return
	}

	if err := h.answers.SubmitAnswer(ctx, userID, locale, req.QuestionConceptID, req.Value); err != nil {
		h.fail(ctx, w, "failed to submit answer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetProgress computes per-section progress without touching the
// completion flag.
func (h *Handler) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	locale, err := h.resolveLocale(r)
	if err != nil {
		h.fail(ctx, w, "invalid locale", err)
		return
	}

	var (
		questions []models.Question
		answers   []models.UserAnswer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = h.answers.GetQuestions(gctx, locale)
		return err
	})
	g.Go(func() error {
		var err error
		answers, err = h.answers.GetUserAnswers(gctx, userID, locale)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(ctx, w, "failed to compute progress", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewProgressResponse(progress.ComputeCatalog(questions, answers)))
}

// handleGetSummary runs the completion validator each time the summary view
// is shown.
func (h *Handler) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	locale, err := h.resolveLocale(r)
	if err != nil {
		h.fail(ctx, w, "invalid locale", err)
		return
	}
	result, err := h.completion.Validate(ctx, userID, locale)
	if err != nil {
		h.fail(ctx, w, "completion validation failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewSummaryResponse(result))
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	locale, err := h.resolveLocale(r)
	if err != nil {
		h.fail(ctx, w, "invalid locale", err)
		return
	}
	result, err := h.completion.Finish(ctx, userID, locale)
	if err != nil {
		h.fail(ctx, w, "finish refused", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.NewSummaryResponse(result))
}

func (h *Handler) handleGetMarkers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}
	selection, err := h.answers.GetUserMarkers(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "failed to load markers", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.MarkersResponse{
		Markers:              selection.Markers,
		ObjectivesSelectedAt: selection.ObjectivesSelectedAt,
	})
}

// requireUser reads the user id set by RequireAuth.
func (h *Handler) requireUser(w http.ResponseWriter, r *http.Request) (id.UserID, bool) {
	ctx := r.Context()
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		// RequireAuth guarantees a user on every mounted route.
		h.logger.ErrorContext(ctx, "userID missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return id.UserID{}, false
	}
	return userID, true
}

// resolveLocale prefers ?locale= over Accept-Language. Unsupported locales
// fall back to the default.
func (h *Handler) resolveLocale(r *http.Request) (id.Locale, error) {
	if raw := r.URL.Query().Get("locale"); raw != "" {
		parsed, err := id.ParseLocale(raw)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid locale: "+raw)
		}
		return id.MatchLocale(parsed.String(), h.locales.Supported, h.locales.Default), nil
	}
	return id.MatchLocale(r.Header.Get("Accept-Language"), h.locales.Supported, h.locales.Default), nil
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	}
	if userID := requestcontext.UserID(ctx); !userID.IsNil() {
		attrs = append(attrs, "user_id", userID.String())
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeUnavailable, dErrors.CodeTimeout:
		h.logger.ErrorContext(ctx, msg, attrs...)
	default:
		h.logger.WarnContext(ctx, msg, attrs...)
	}
	httputil.WriteError(w, err)
}
