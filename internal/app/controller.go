package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/felixbrock/gradeloop/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// Start drives the iteration loop: build prompt, complete, extract scores,
// persist the record, decide. Terminal states are target_reached,
// max_iterations_exhausted and failed; no completion calls happen after
// entering one. The run summary is written in every terminal state, so an
// aborted run still leaves its partial history behind.
func (a App) Start(ctx context.Context) (domain.RunSummary, error) {
	runId := uuid.New().String()
	builder := PromptBuilder{
		Rubric:      a.Rubric,
		Scenario:    a.Scenario,
		TargetScore: a.Config.TargetScore,
		CategoryBar: a.Config.CategoryBar,
	}
	extractor := NewExtractor(a.Rubric)

	// Cooldown between passes to respect upstream rate limits. Not a
	// correctness mechanism.
	limiter := rate.NewLimiter(rate.Every(a.Config.Cooldown), 1)

	slog.Info(fmt.Sprintf("Run %s started (target %g, max %d iterations)",
		runId, a.Config.TargetScore, a.Config.MaxIterations))

	var history []domain.IterationRecord
	var runErr error
	state := domain.StateRunning
	var overall float64
	system := builder.System()
	prompt := builder.Initial()

	for iteration := 1; state == domain.StateRunning; {
		if err := limiter.Wait(ctx); err != nil {
			state, runErr = domain.StateFailed, err
			break
		}

		slog.Info(fmt.Sprintf("Iteration %d started", iteration))

		script, err := a.CompletionRepo.Complete(ctx, CompletionProto{
			System: system,
			Prompt: prompt,
			Model:  a.Config.Model,
		})
		if err != nil {
			state, runErr = domain.StateFailed, err
			break
		}

		extraction := extractor.Extract(script)
		overall = extraction.Overall

		record := domain.IterationRecord{
			RunId:     runId,
			Iteration: iteration,
			Script:    script,
			Scores:    extraction.Scores,
			Overall:   extraction.Overall,
			Timestamp: time.Now().Format(timestampLayout),
		}
		history = append(history, record)

		if err := a.IterationRepo.InsertIteration(record); err != nil {
			state, runErr = domain.StateFailed, err
			break
		}

		displayIteration(record, a.Rubric, a.Config.CategoryBar)
		if !extraction.Complete(a.Rubric) {
			slog.Warn(fmt.Sprintf("Extraction found %d of %d categories",
				extraction.FoundCategories, len(a.Rubric.Categories)))
		}

		if extraction.Overall >= a.Config.TargetScore {
			state = domain.StateTargetReached
			break
		}
		if iteration >= a.Config.MaxIterations {
			state = domain.StateMaxIterationsExhausted
			break
		}

		prompt = builder.Revision(record, a.fixPlan(ctx, builder, record))
		iteration++
	}

	summary := domain.RunSummary{
		RunId:           runId,
		State:           state,
		FinalScore:      overall,
		TargetScore:     a.Config.TargetScore,
		TotalIterations: len(history),
		AchievedTarget:  state == domain.StateTargetReached,
		Iterations:      history,
	}

	if err := a.IterationRepo.InsertSummary(summary); err != nil {
		if runErr == nil {
			runErr = err
		} else {
			slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		}
	}

	if state == domain.StateTargetReached && a.ReportRepo != nil {
		script := history[len(history)-1].Script
		if err := a.ReportRepo.Export(fmt.Sprintf("report_%s", runId), script); err != nil {
			slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		}
	}

	displayFinal(summary)
	return summary, runErr
}

// fixPlan asks the model for a structured improvement plan when enabled and
// any category sits below the bar. Best-effort: any failure degrades to a
// plain revision prompt.
func (a App) fixPlan(ctx context.Context, builder PromptBuilder, record domain.IterationRecord) *FixPlan {
	if !a.Config.FixPlan {
		return nil
	}

	below := false
	for i := 0; i < len(a.Rubric.Categories); i++ {
		if record.Scores[a.Rubric.Categories[i].Name] < a.Config.CategoryBar {
			below = true
			break
		}
	}
	if !below {
		return nil
	}

	reply, err := a.CompletionRepo.Complete(ctx, CompletionProto{
		System: builder.System(),
		Prompt: builder.FixPlanRequest(record),
		Model:  a.Config.Model,
	})
	if err != nil {
		slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		return nil
	}

	plan, err := DecodeReply[FixPlan](reply)
	if err != nil {
		slog.Warn(fmt.Sprintf("Fix plan decode failed, using plain revision: %s", err.Error()))
		return nil
	}

	return plan
}
