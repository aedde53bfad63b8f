package app

import (
	"fmt"
	"strings"

	"github.com/felixbrock/gradeloop/internal/domain"
)

// PromptBuilder produces the prompts for one run. Pure functions of the
// fixed scenario and the previous iteration's scores.
type PromptBuilder struct {
	Rubric      domain.Rubric
	Scenario    Scenario
	TargetScore float64
	CategoryBar float64
}

func (b PromptBuilder) System() string {
	rubricLines := make([]string, len(b.Rubric.Categories))
	for i := 0; i < len(b.Rubric.Categories); i++ {
		category := b.Rubric.Categories[i]
		rubricLines[i] = fmt.Sprintf("%d. %s (%.0f%%)", i+1, category.Name, category.Weight*100)
	}

	return fmt.Sprintf(`You are an autonomous actuarial project generator and evaluator.

Your task:
1. Generate a complete actuarial project script following the five steps of the actuarial process:
   (1) Project Definition
   (2) Data Identification & Assessment
   (3) Mathematical Modeling
   (4) Risk Analysis
   (5) Recommendations
2. Evaluate your own output against the rubric below.
3. Provide 0-100 scores for each criterion and a short reasoning paragraph.
4. Compute the weighted total using the provided weights.
5. If the overall score is below %g, self-analyze weaknesses, rewrite, and iterate.

Rubric:
%s

Scoring bands:
90-100 = Excellent
75-89  = Good
60-74  = Adequate
<60    = Needs Work

IMPORTANT: At the end of your response, provide scores in this exact format:
%s`, b.TargetScore, strings.Join(rubricLines, "\n"), b.scoreBlockFormat("[0-100]"))
}

// Initial is the first-iteration prompt: generate content for the scenario
// and self-score in the required termination format.
func (b PromptBuilder) Initial() string {
	return fmt.Sprintf(`Create a full actuarial project script for the following scenario using the actuarial process.

Scenario: %s

%s

Data sources:
%s

Data summary:
%s

Include:
- All 5 steps of the actuarial process
- Specific formulas (Expected Value, variance, etc.)
- Clear reasoning and assumptions
- Tables and quantitative examples
- Professional actuarial communication style

After generating the script, evaluate it using the rubric and provide scores at the end in the format:
%s`, b.Scenario.Name, b.Scenario.Description, b.Scenario.DataSources, b.Scenario.DataSummary, b.scoreBlockFormat("[score]"))
}

// Revision builds the follow-up prompt from the previous record: a
// weak-area revision when any category sits below the bar, otherwise a
// general refinement pass toward the target. A decoded fix plan, when
// present, is appended to the revision instructions.
func (b PromptBuilder) Revision(prev domain.IterationRecord, plan *FixPlan) string {
	names := b.Rubric.Names()
	var current, low []string
	for i := 0; i < len(names); i++ {
		score := prev.Scores[names[i]]
		current = append(current, fmt.Sprintf("- %s: %.2f", names[i], score))
		if score < b.CategoryBar {
			low = append(low, fmt.Sprintf("- %s: %.2f", names[i], score))
		}
	}

	if len(low) == 0 {
		return b.refinement(prev)
	}

	prompt := fmt.Sprintf(`Revise the previous script to improve low-scoring rubric areas.

Current scores:
%s

Weighted Total: %.2f/100

Areas needing improvement (scores < %g):
%s

Produce an improved version that:
1. Addresses all weaknesses identified in the low-scoring areas
2. Maintains strengths from high-scoring areas
3. Includes all 5 steps of the actuarial process
4. Provides specific quantitative analysis, formulas, and examples
5. Uses professional actuarial communication

After generating the improved script, evaluate it and provide scores at the end.`,
		strings.Join(current, "\n"), prev.Overall, b.CategoryBar, strings.Join(low, "\n"))

	if plan != nil {
		prompt = fmt.Sprintf("%s\n\n%s", prompt, plan.Instructions())
	}

	return prompt
}

// FixPlanRequest asks for a JSON-only fix plan for the weak areas of the
// previous iteration, decodable via DecodeReply.
func (b PromptBuilder) FixPlanRequest(prev domain.IterationRecord) string {
	names := b.Rubric.Names()
	var low []string
	for i := 0; i < len(names); i++ {
		if score := prev.Scores[names[i]]; score < b.CategoryBar {
			low = append(low, fmt.Sprintf("- %s: %.2f", names[i], score))
		}
	}

	return fmt.Sprintf(`The previous script scored %.2f/100. Produce a fix plan for the weak rubric areas.

Weak areas (scores < %g):
%s

Respond with JSON only, no prose, in this exact format:
{"edits_now": ["..."], "numbers_to_add": ["..."], "novelty_changes": ["..."]}`,
		prev.Overall, b.CategoryBar, strings.Join(low, "\n"))
}

func (b PromptBuilder) refinement(prev domain.IterationRecord) string {
	return fmt.Sprintf(`The script is close to the target. Refine it to reach >=%g.

Current weighted score: %.2f/100

Make final improvements to push the score above %g:
- Enhance quantitative rigor
- Strengthen linkage between steps
- Add more detailed analysis
- Improve clarity and organization

After generating the refined script, evaluate it and provide scores at the end.`,
		b.TargetScore, prev.Overall, b.TargetScore)
}

func (b PromptBuilder) scoreBlockFormat(placeholder string) string {
	names := b.Rubric.Names()
	lines := make([]string, 0, len(names)+2)
	lines = append(lines, "SCORES:")
	for i := 0; i < len(names); i++ {
		lines = append(lines, fmt.Sprintf("%s: %s", names[i], placeholder))
	}
	lines = append(lines, fmt.Sprintf("WEIGHTED TOTAL: %s", placeholder))
	return strings.Join(lines, "\n")
}
