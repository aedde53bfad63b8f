package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixbrock/gradeloop/internal/domain"
)

func testBuilder() PromptBuilder {
	return PromptBuilder{
		Rubric:      domain.DefaultRubric(),
		Scenario:    SampleScenario(),
		TargetScore: 96,
		CategoryBar: 90,
	}
}

func TestSystemPromptEmbedsRubric(t *testing.T) {
	system := testBuilder().System()

	for _, name := range domain.DefaultRubric().Names() {
		assert.Contains(t, system, name)
	}
	assert.Contains(t, system, "Mathematical Modeling (25%)")
	assert.Contains(t, system, "SCORES:")
	assert.Contains(t, system, "WEIGHTED TOTAL: [0-100]")
}

func TestInitialPromptEmbedsScenarioAndFormat(t *testing.T) {
	prompt := testBuilder().Initial()

	assert.Contains(t, prompt, "Smith County Corn Farming")
	assert.Contains(t, prompt, "FCIC Cause of Loss dataset")
	assert.Contains(t, prompt, "SCORES:")
	for _, name := range domain.DefaultRubric().Names() {
		assert.Contains(t, prompt, name+": [score]")
	}
}

func TestRevisionListsWeakCategories(t *testing.T) {
	builder := testBuilder()
	prev := domain.IterationRecord{
		Iteration: 1,
		Overall:   82.5,
		Scores: map[string]float64{
			"Project Definition":               92,
			"Data Identification & Assessment": 74,
			"Mathematical Modeling":            68,
			"Risk Analysis":                    91,
			"Recommendations":                  90,
			"Communication & Clarity":          95,
		},
	}

	prompt := builder.Revision(prev, nil)

	assert.Contains(t, prompt, "Weighted Total: 82.50/100")
	require.Contains(t, prompt, "Areas needing improvement")
	weakSection := prompt[strings.Index(prompt, "Areas needing improvement"):]
	assert.Contains(t, weakSection, "- Data Identification & Assessment: 74.00")
	assert.Contains(t, weakSection, "- Mathematical Modeling: 68.00")
	assert.NotContains(t, weakSection, "Project Definition")
}

func TestRevisionAllAboveBarIsRefinement(t *testing.T) {
	builder := testBuilder()
	scores := map[string]float64{}
	for _, name := range domain.DefaultRubric().Names() {
		scores[name] = 93
	}
	prev := domain.IterationRecord{Iteration: 2, Overall: 93, Scores: scores}

	prompt := builder.Revision(prev, nil)

	assert.Contains(t, prompt, "Refine it to reach >=96")
	assert.Contains(t, prompt, "Current weighted score: 93.00/100")
	assert.NotContains(t, prompt, "Areas needing improvement")
}

func TestRevisionAppendsFixPlan(t *testing.T) {
	builder := testBuilder()
	prev := domain.IterationRecord{
		Iteration: 1,
		Overall:   70,
		Scores:    map[string]float64{"Mathematical Modeling": 60},
	}
	plan := &FixPlan{EditsNow: []string{"add a variance calculation"}}

	prompt := builder.Revision(prev, plan)

	assert.Contains(t, prompt, "Apply these edits:")
	assert.Contains(t, prompt, "- add a variance calculation")
}

func TestFixPlanRequestListsWeakAreas(t *testing.T) {
	builder := testBuilder()
	prev := domain.IterationRecord{
		Iteration: 1,
		Overall:   71.2,
		Scores:    map[string]float64{"Risk Analysis": 55, "Project Definition": 92},
	}

	prompt := builder.FixPlanRequest(prev)

	assert.Contains(t, prompt, "71.20/100")
	assert.Contains(t, prompt, "- Risk Analysis: 55.00")
	assert.NotContains(t, prompt, "- Project Definition")
	assert.Contains(t, prompt, `"edits_now"`)
}
