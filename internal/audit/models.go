package audit

import (
	"time"

	"github.com/google/uuid"

	id "anamnesis/pkg/domain"
)

// Action names an audited state change.
type Action string

const (
	ActionCompletionFlagSet     Action = "completion_flag_set"
	ActionCompletionFlagCleared Action = "completion_flag_cleared"
	ActionFinishRefused         Action = "completion_finish_refused"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    id.UserID `json:"userId"`
	Action    Action    `json:"action"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	// Platform is the client platform that triggered the change.
	Platform string `json:"platform,omitempty"`
}
