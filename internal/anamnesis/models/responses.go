package models

import (
	"time"

	"anamnesis/internal/anamnesis/catalog"
)

type QuestionsResponse struct {
	Locale    string     `json:"locale"`
	Questions []Question `json:"questions"`
}

type AnswersResponse struct {
	Answers []UserAnswer `json:"answers"`
}

type SectionProgressResponse struct {
	SectionID catalog.SectionID `json:"sectionId"`
	Kind      catalog.Kind      `json:"kind"`
	Answered  int               `json:"answered"`
	Total     int               `json:"total"`
	Percent   int               `json:"percent"`
	Complete  bool              `json:"complete"`
}

type ProgressResponse struct {
	Sections []SectionProgressResponse `json:"sections"`
}

// SummaryResponse is what the summary view renders from.
type SummaryResponse struct {
	State               CompletionState           `json:"state"`
	HasAnyAnswers       bool                      `json:"hasAnyAnswers"`
	AllSectionsComplete bool                      `json:"allSectionsComplete"`
	ShowPrompt          bool                      `json:"showPrompt"`
	ShowScores          bool                      `json:"showScores"`
	CompletedAt         *time.Time                `json:"completedAt,omitempty"`
	Sections            []SectionProgressResponse `json:"sections"`
}

type MarkersResponse struct {
	Markers              []UserMarker `json:"markers"`
	ObjectivesSelectedAt *string      `json:"objectivesSelectedAt,omitempty"`
}

// NewProgressResponse maps section progress into its wire form.
func NewProgressResponse(sections []SectionProgress) ProgressResponse {
	return ProgressResponse{Sections: toSectionResponses(sections)}
}

// NewSummaryResponse maps a validation result into its wire form.
func NewSummaryResponse(r ValidationResult) SummaryResponse {
	return SummaryResponse{
		State:               r.State,
		HasAnyAnswers:       r.HasAnyAnswers,
		AllSectionsComplete: r.AllSectionsComplete,
		ShowPrompt:          r.ShowPrompt(),
		ShowScores:          r.ShowScores(),
		CompletedAt:         r.CompletedAt,
		Sections:            toSectionResponses(r.Sections),
	}
}

func toSectionResponses(sections []SectionProgress) []SectionProgressResponse {
	out := make([]SectionProgressResponse, 0, len(sections))
	for _, p := range sections {
		var kind catalog.Kind
		if s, ok := catalog.Lookup(p.SectionID); ok {
			kind = s.Kind
		}
		out = append(out, SectionProgressResponse{
			SectionID: p.SectionID,
			Kind:      kind,
			Answered:  p.Answered,
			Total:     p.Total,
			Percent:   p.Percent(),
			Complete:  p.Complete(),
		})
	}
	return out
}
