package e2e

import (
	"github.com/cucumber/godog"

	"anamnesis/e2e/steps/anamnesis"
	"anamnesis/e2e/steps/common"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (authentication, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register questionnaire-specific steps
	anamnesis.RegisterSteps(ctx, tc)
}
