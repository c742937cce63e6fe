package completion

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"anamnesis/internal/anamnesis/catalog"
	"anamnesis/internal/anamnesis/models"
	id "anamnesis/pkg/domain"
)

const testLocale = id.Locale("pt-BR")

var (
	testUser   = id.UserID(uuid.MustParse("3f1c1d5e-8a4b-4c2d-9e7f-0a1b2c3d4e5f"))
	answeredAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// questionnaire builds perSection questions for every catalog section.
func questionnaire(perSection int) []models.Question {
	var out []models.Question
	for _, s := range catalog.All() {
		for i := range perSection {
			qid := fmt.Sprintf("%s-%d", s.ID, i)
			q := models.Question{ID: qid, SectionID: s.ID, Key: qid}
			if s.Encoding == catalog.EncodingSymptomScale {
				for _, key := range []string{"none", "low", "medium", "high", "very_high"} {
					q.AnswerOptions = append(q.AnswerOptions, models.AnswerOption{ID: qid + "-" + key, Key: key})
				}
			} else {
				q.AnswerOptions = []models.AnswerOption{
					{ID: qid + "-a", Key: "option_a"},
					{ID: qid + "-b", Key: "option_b"},
				}
			}
			out = append(out, q)
		}
	}
	return out
}

// answerAll answers every question except those listed in skip.
func answerAll(questions []models.Question, skip ...string) []models.UserAnswer {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var out []models.UserAnswer
	for _, q := range questions {
		if skipped[q.ID] {
			continue
		}
		optionID := q.AnswerOptions[0].ID
		out = append(out, models.UserAnswer{
			QuestionConceptID: q.ID,
			AnswerOptionID:    &optionID,
			AnsweredAt:        answeredAt,
		})
	}
	return out
}

func presentFlag() *models.CompletionFlag {
	return &models.CompletionFlag{CompletedAt: answeredAt}
}
