// Package progress derives per-section answered/total counts. It holds no
// cross-section logic; the completion validator aggregates.
package progress

import (
	"anamnesis/internal/anamnesis/catalog"
	"anamnesis/internal/anamnesis/encoding"
	"anamnesis/internal/anamnesis/models"
)

// AnswerIndex maps a question id to the effective answer for it.
type AnswerIndex map[string]models.UserAnswer

// IndexAnswers keeps only answers to questions in the current set and
// resolves duplicates: the latest AnsweredAt wins, ties go to the later entry.
func IndexAnswers(questions []models.Question, answers []models.UserAnswer) AnswerIndex {
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}
	index := make(AnswerIndex, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionConceptID]; !ok {
			continue
		}
		if existing, ok := index[a.QuestionConceptID]; ok && a.AnsweredAt.Before(existing.AnsweredAt) {
			continue
		}
		index[a.QuestionConceptID] = a
	}
	return index
}

// ComputeSectionProgress counts the section's questions and those whose
// answer decodes to a value. A section without questions yields {0,0}.
func ComputeSectionProgress(section catalog.Section, questions []models.Question, answers AnswerIndex) models.SectionProgress {
	p := models.SectionProgress{SectionID: section.ID}
	for _, q := range questions {
		if q.SectionID != section.ID {
			continue
		}
		p.Total++
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		if _, decoded := encoding.DecodeForSection(section, q, &answer); decoded {
			p.Answered++
		}
	}
	return p
}

// ComputeCatalog returns progress for every catalog section in catalog order.
func ComputeCatalog(questions []models.Question, answers []models.UserAnswer) []models.SectionProgress {
	index := IndexAnswers(questions, answers)
	bySection := make(map[catalog.SectionID][]models.Question)
	for _, q := range questions {
		bySection[q.SectionID] = append(bySection[q.SectionID], q)
	}
	sections := catalog.All()
	out := make([]models.SectionProgress, 0, len(sections))
	for _, s := range sections {
		out = append(out, ComputeSectionProgress(s, bySection[s.ID], index))
	}
	return out
}
