package completion

import (
	"context"

	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/audit"
	id "anamnesis/pkg/domain"
)

// Repository loads the live questionnaire data a run validates against.
type Repository interface {
	GetQuestions(ctx context.Context, locale id.Locale) ([]models.Question, error)
	GetUserAnswers(ctx context.Context, userID id.UserID, locale id.Locale) ([]models.UserAnswer, error)
}

// FlagStore persists the completion flag. Get returns nil when absent.
// Only this package writes through it.
type FlagStore interface {
	Get(ctx context.Context, userID id.UserID) (*models.CompletionFlag, error)
	Set(ctx context.Context, userID id.UserID, flag models.CompletionFlag) error
	Clear(ctx context.Context, userID id.UserID) error
}

// Auditor records flag changes.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}
