package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anamnesis/internal/anamnesis/catalog"
	"anamnesis/internal/anamnesis/models"
	"anamnesis/pkg/testutil"
)

func TestEvaluate(t *testing.T) {
	questions := questionnaire(2)
	complete := answerAll(questions)
	partial := answerAll(questions, "body-0")

	testutil.Given(t, "no answers and no flag", func(t *testing.T) {
		result, stale := Evaluate(nil, questions, nil)
		assert.Equal(t, models.StateIncomplete, result.State)
		assert.False(t, stale)
		assert.False(t, result.ShowScores())
	})

	testutil.Given(t, "answers and no flag", func(t *testing.T) {
		result, stale := Evaluate(nil, questions, complete)
		assert.Equal(t, models.StateIncomplete, result.State, "completion is never inferred")
		assert.True(t, result.AllSectionsComplete)
		assert.True(t, result.ShowScores())
		assert.True(t, result.ShowPrompt())
		assert.False(t, stale)
	})

	testutil.Given(t, "a flag backed by complete sections", func(t *testing.T) {
		result, stale := Evaluate(presentFlag(), questions, complete)
		assert.Equal(t, models.StateCompleted, result.State)
		require.NotNil(t, result.CompletedAt)
		assert.Equal(t, answeredAt, *result.CompletedAt)
		assert.False(t, stale)
		assert.False(t, result.ShowPrompt())
	})

	testutil.Given(t, "a flag with an incomplete section", func(t *testing.T) {
		result, stale := Evaluate(presentFlag(), questions, partial)
		assert.Equal(t, models.StateIncomplete, result.State)
		assert.False(t, result.AllSectionsComplete)
		assert.True(t, stale)
	})

	testutil.Given(t, "a flag without answers", func(t *testing.T) {
		result, stale := Evaluate(presentFlag(), questions, nil)
		assert.Equal(t, models.StateIncomplete, result.State)
		assert.True(t, stale)
	})
}

func TestEvaluate_EmptySectionsCountAsComplete(t *testing.T) {
	var questions []models.Question
	for _, q := range questionnaire(1) {
		if q.SectionID == catalog.Bowel || q.SectionID == catalog.Mind {
			continue
		}
		questions = append(questions, q)
	}

	result, stale := Evaluate(presentFlag(), questions, answerAll(questions))

	bowel, ok := result.Section(catalog.Bowel)
	require.True(t, ok)
	assert.Equal(t, 0, bowel.Total)
	assert.Equal(t, models.StateCompleted, result.State)
	assert.False(t, stale)
}

func TestEvaluate_AnswersToRetiredQuestionsAreIgnored(t *testing.T) {
	questions := questionnaire(1)
	retired := "retired-question"
	answers := []models.UserAnswer{{QuestionConceptID: retired, AnswerText: &retired}}

	result, stale := Evaluate(presentFlag(), questions, answers)
	assert.False(t, result.HasAnyAnswers)
	assert.True(t, stale)
}

func TestEvaluate_SectionsFollowCatalog(t *testing.T) {
	result, _ := Evaluate(nil, questionnaire(1), answerAll(questionnaire(1)))
	require.Len(t, result.Sections, catalog.Len)
	for i, sid := range catalog.IDs() {
		assert.Equal(t, sid, result.Sections[i].SectionID)
	}
}
