package models

import (
	"strings"

	dErrors "anamnesis/pkg/domain-errors"
)

// SubmitAnswerRequest is the client payload for POST /anamnesis/answers.
// Value is a symptom level name for body questions and an option key
// otherwise.
type SubmitAnswerRequest struct {
	QuestionConceptID string `json:"questionConceptId"`
	Value             string `json:"value"`
}

// Normalize trims client input in place.
func (r *SubmitAnswerRequest) Normalize() {
	if r == nil {
		return
	}
	r.QuestionConceptID = strings.TrimSpace(r.QuestionConceptID)
	r.Value = strings.TrimSpace(r.Value)
}

// Validate checks required fields.
func (r *SubmitAnswerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.QuestionConceptID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "questionConceptId is required")
	}
	if r.Value == "" {
		return dErrors.New(dErrors.CodeBadRequest, "value is required")
	}
	return nil
}

// RemoteAnswer is the body posted to the remote backend.
type RemoteAnswer struct {
	QuestionConceptID string  `json:"questionConceptId"`
	AnswerOptionID    *string `json:"answerOptionId,omitempty"`
	AnswerText        string  `json:"answerText"`
}
