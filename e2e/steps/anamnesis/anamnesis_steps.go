package anamnesis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	POST(path string, body interface{}) error
	GetLastStatusCode() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers questionnaire step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &anamnesisSteps{tc: tc}

	ctx.Step(`^I answer question "([^"]*)" with "([^"]*)"$`, steps.answerQuestion)
	ctx.Step(`^I answer every question$`, steps.answerEveryQuestion)
	ctx.Step(`^I answer every question except one in section "([^"]*)"$`, steps.answerAllButOne)
	ctx.Step(`^the section "([^"]*)" should be complete$`, steps.sectionShouldBeComplete)
	ctx.Step(`^the progress should list (\d+) sections$`, steps.progressShouldListSections)
}

type anamnesisSteps struct {
	tc TestContext
}

type question struct {
	ID            string `json:"id"`
	SectionID     string `json:"sectionId"`
	AnswerOptions []struct {
		Key string `json:"key"`
	} `json:"answerOptions"`
}

type section struct {
	SectionID string `json:"sectionId"`
	Complete  bool   `json:"complete"`
}

func (s *anamnesisSteps) answerQuestion(ctx context.Context, questionID, value string) error {
	return s.tc.POST("/anamnesis/answers", map[string]interface{}{
		"questionConceptId": questionID,
		"value":             value,
	})
}

func (s *anamnesisSteps) answerEveryQuestion(ctx context.Context) error {
	return s.answerAll(ctx, "")
}

func (s *anamnesisSteps) answerAllButOne(ctx context.Context, sectionID string) error {
	return s.answerAll(ctx, sectionID)
}

// answerAll answers every question, leaving the first question of skipSection
// unanswered.
func (s *anamnesisSteps) answerAll(ctx context.Context, skipSection string) error {
	if err := s.tc.GET("/anamnesis/questions", nil); err != nil {
		return err
	}
	var resp struct {
		Questions []question `json:"questions"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return fmt.Errorf("decode questions: %w", err)
	}

	skipped := false
	for _, q := range resp.Questions {
		if !skipped && q.SectionID == skipSection {
			skipped = true
			continue
		}
		value := "leve"
		if q.SectionID != "body" {
			if len(q.AnswerOptions) == 0 {
				return fmt.Errorf("question %s has no options", q.ID)
			}
			value = q.AnswerOptions[0].Key
		}
		if err := s.answerQuestion(ctx, q.ID, value); err != nil {
			return err
		}
		if status := s.tc.GetLastStatusCode(); status != 204 {
			return fmt.Errorf("answering %s returned %d: %s", q.ID, status, s.tc.GetLastResponseBody())
		}
	}
	if skipSection != "" && !skipped {
		return fmt.Errorf("section %s has no questions", skipSection)
	}
	return nil
}

func (s *anamnesisSteps) sections() ([]section, error) {
	var resp struct {
		Sections []section `json:"sections"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &resp); err != nil {
		return nil, fmt.Errorf("decode sections: %w", err)
	}
	return resp.Sections, nil
}

func (s *anamnesisSteps) sectionShouldBeComplete(ctx context.Context, sectionID string) error {
	sections, err := s.sections()
	if err != nil {
		return err
	}
	for _, sec := range sections {
		if sec.SectionID == sectionID {
			if !sec.Complete {
				return fmt.Errorf("section %s is not complete", sectionID)
			}
			return nil
		}
	}
	return fmt.Errorf("section %s not in response", sectionID)
}

func (s *anamnesisSteps) progressShouldListSections(ctx context.Context, n int) error {
	sections, err := s.sections()
	if err != nil {
		return err
	}
	if len(sections) != n {
		return fmt.Errorf("expected %d sections, got %d", n, len(sections))
	}
	return nil
}
