package completion

import (
	"anamnesis/internal/anamnesis/models"
	"anamnesis/internal/anamnesis/progress"
)

// Evaluate reconciles a flag against live data. It reports the result and
// whether the flag must be cleared. A nil flag is absent.
//
// Rules, in order: no answers is incomplete and a present flag is stale; a
// present flag survives only when every catalog section is complete (sections
// without questions count as complete); without a flag the result is always
// incomplete, since completion is only asserted by Finish.
func Evaluate(flag *models.CompletionFlag, questions []models.Question, answers []models.UserAnswer) (models.ValidationResult, bool) {
	result := models.ValidationResult{
		State:         models.StateIncomplete,
		HasAnyAnswers: len(progress.IndexAnswers(questions, answers)) > 0,
		Sections:      progress.ComputeCatalog(questions, answers),
	}
	if !result.HasAnyAnswers {
		return result, flag != nil
	}

	result.AllSectionsComplete = true
	for _, s := range result.Sections {
		if !s.Complete() {
			result.AllSectionsComplete = false
			break
		}
	}

	if flag == nil {
		return result, false
	}
	if result.AllSectionsComplete {
		completedAt := flag.CompletedAt
		result.State = models.StateCompleted
		result.CompletedAt = &completedAt
		return result, false
	}
	return result, true
}
