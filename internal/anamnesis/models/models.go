package models

import (
	"time"

	"anamnesis/internal/anamnesis/catalog"
)

// AnswerOption is one selectable answer of a question.
type AnswerOption struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a questionnaire item as served by the remote backend. Questions
// are immutable once fetched.
type Question struct {
	ID            string            `json:"id"`
	SectionID     catalog.SectionID `json:"sectionId"`
	Text          string            `json:"text"`
	Key           string            `json:"key"`
	AnswerOptions []AnswerOption    `json:"answerOptions"`
}

// OptionByID returns the option with the given id.
func (q Question) OptionByID(id string) (AnswerOption, bool) {
	for _, o := range q.AnswerOptions {
		if o.ID == id {
			return o, true
		}
	}
	return AnswerOption{}, false
}

// OptionByKey returns the option with the given key.
func (q Question) OptionByKey(key string) (AnswerOption, bool) {
	for _, o := range q.AnswerOptions {
		if o.Key == key {
			return o, true
		}
	}
	return AnswerOption{}, false
}

// UserAnswer is the stored answer of one user to one question. The latest
// write wins.
type UserAnswer struct {
	QuestionConceptID string    `json:"questionConceptId"`
	AnswerOptionID    *string   `json:"answerOptionId,omitempty"`
	AnswerText        *string   `json:"answerText,omitempty"`
	AnsweredAt        time.Time `json:"answeredAt,omitzero"`
}

// SectionProgress is derived on demand and never persisted.
type SectionProgress struct {
	SectionID catalog.SectionID `json:"sectionId"`
	Answered  int               `json:"answered"`
	Total     int               `json:"total"`
}

// Complete reports whether every question of the section is answered. A
// section without questions is complete.
func (p SectionProgress) Complete() bool {
	return p.Answered == p.Total
}

// Percent returns progress in whole percent; an empty section reports 100.
func (p SectionProgress) Percent() int {
	if p.Total == 0 {
		return 100
	}
	return p.Answered * 100 / p.Total
}

// CompletionFlag is the persisted claim that the user finished the
// questionnaire. A nil flag means absent.
type CompletionFlag struct {
	CompletedAt time.Time
}

// UserMarker is a wellness indicator owned by another subsystem, passed through
// for display.
type UserMarker struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Trend      string  `json:"trend"`
	Percentage float64 `json:"percentage"`
	Selected   bool    `json:"selected"`
}

// MarkerSelection is the user's markers together with the local selection
// state. ObjectivesSelectedAt is nil until the user picked objectives.
type MarkerSelection struct {
	Markers              []UserMarker
	ObjectivesSelectedAt *string
}
