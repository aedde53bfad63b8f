package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"

	"github.com/felixbrock/gradeloop/internal/app"
	"github.com/felixbrock/gradeloop/internal/domain"
	"github.com/felixbrock/gradeloop/internal/persistence"
)

type flags struct {
	scenarioPath  string
	outDir        string
	model         string
	target        float64
	bar           float64
	maxIterations int
	cooldown      time.Duration
	fixPlan       bool
}

func run(ctx context.Context, f flags) error {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return errors.New("OPENAI_API_KEY environment variable not set")
	}

	scenario := app.SampleScenario()
	if f.scenarioPath != "" {
		loaded, err := app.LoadScenario(f.scenarioPath)
		if err != nil {
			return err
		}
		scenario = *loaded
	}

	iterationRepo, err := persistence.NewIterationRepo(f.outDir)
	if err != nil {
		return err
	}

	oaiRepo := persistence.OpenAIRepo{
		BaseHeaders: []string{
			"Content-Type:application/json",
			fmt.Sprintf("Authorization: Bearer %s", apiKey)},
		BaseUrl:     "https://api.openai.com/v1",
		Temperature: 0.6,
		MaxTokens:   4000,
	}

	a := app.App{
		CompletionRepo: oaiRepo,
		IterationRepo:  iterationRepo,
		ReportRepo:     persistence.ReportRepo{Dir: f.outDir},
		Rubric:         domain.DefaultRubric(),
		Scenario:       scenario,
		Config: app.Config{
			Model:         f.model,
			TargetScore:   f.target,
			CategoryBar:   f.bar,
			MaxIterations: f.maxIterations,
			Cooldown:      f.cooldown,
			FixPlan:       f.fixPlan,
		},
	}

	_, err = a.Start(ctx)
	return err
}

func main() {
	// Optional, mirrors local dev setups. Env vars win when both exist.
	_ = godotenv.Load()

	var f flags

	cmd := &cobra.Command{
		Use:          "gradeloop",
		Short:        "Generate and iteratively improve a rubric-scored actuarial project report",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.scenarioPath, "scenario", "", "path to a scenario JSON file (built-in sample when empty)")
	cmd.Flags().StringVar(&f.outDir, "out", "iterations", "directory for iteration and summary records")
	cmd.Flags().StringVar(&f.model, "model", "gpt-4-turbo", "model name")
	cmd.Flags().Float64Var(&f.target, "target", 96, "overall weighted score to stop at")
	cmd.Flags().Float64Var(&f.bar, "bar", 90, "per-category quality bar")
	cmd.Flags().IntVar(&f.maxIterations, "max-iterations", 15, "iteration cap")
	cmd.Flags().DurationVar(&f.cooldown, "cooldown", 2*time.Second, "delay between iterations")
	cmd.Flags().BoolVar(&f.fixPlan, "fix-plan", false, "request a structured fix plan between iterations")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		os.Exit(1)
	}
}
