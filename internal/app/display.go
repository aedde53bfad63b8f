package app

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/felixbrock/gradeloop/internal/domain"
)

var (
	passMark = color.New(color.FgGreen).Sprint("✓")
	failMark = color.New(color.FgRed).Sprint("✗")
)

func displayIteration(record domain.IterationRecord, rubric domain.Rubric, bar float64) {
	fmt.Printf("\nIteration %d complete, score %.2f/100\n", record.Iteration, record.Overall)

	for i := 0; i < len(rubric.Categories); i++ {
		name := rubric.Categories[i].Name
		score := record.Scores[name]
		mark := passMark
		if score < bar {
			mark = failMark
		}
		fmt.Printf("  %s %s: %.2f\n", mark, name, score)
	}
}

func displayFinal(summary domain.RunSummary) {
	switch summary.State {
	case domain.StateTargetReached:
		fmt.Printf("\nTarget reached (%.2f >= %g) after %d iteration(s)\n",
			summary.FinalScore, summary.TargetScore, summary.TotalIterations)
	case domain.StateMaxIterationsExhausted:
		fmt.Printf("\nMaximum iterations (%d) reached without achieving %g+. Final score: %.2f/100\n",
			summary.TotalIterations, summary.TargetScore, summary.FinalScore)
	case domain.StateFailed:
		fmt.Printf("\nRun failed after %d completed iteration(s)\n", summary.TotalIterations)
	}
}
