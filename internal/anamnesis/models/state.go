package models

import (
	"time"

	"anamnesis/internal/anamnesis/catalog"
)

// CompletionState is the validator's state for one user.
type CompletionState string

const (
	StateUnknown    CompletionState = "unknown"
	StateChecking   CompletionState = "checking"
	StateCompleted  CompletionState = "completed"
	StateIncomplete CompletionState = "incomplete"
)

func (s CompletionState) String() string {
	return string(s)
}

// ValidationResult is the outcome of one validator run.
type ValidationResult struct {
	State               CompletionState
	HasAnyAnswers       bool
	AllSectionsComplete bool
	Sections            []SectionProgress
	CompletedAt         *time.Time
	// FlagCleared is true when this run removed a stale flag.
	FlagCleared bool
}

// ShowPrompt reports whether the start/continue prompt should be shown.
func (r ValidationResult) ShowPrompt() bool {
	return r.State != StateCompleted
}

// ShowScores reports whether computed scores replace the empty placeholder.
func (r ValidationResult) ShowScores() bool {
	return r.HasAnyAnswers || r.State == StateCompleted
}

// Section returns the progress of one section.
func (r ValidationResult) Section(id catalog.SectionID) (SectionProgress, bool) {
	for _, p := range r.Sections {
		if p.SectionID == id {
			return p, true
		}
	}
	return SectionProgress{}, false
}
