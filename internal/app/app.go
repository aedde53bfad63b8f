package app

import (
	"context"
	"fmt"
	"time"

	"github.com/felixbrock/gradeloop/internal/domain"
)

type Config struct {
	Model         string
	TargetScore   float64
	CategoryBar   float64
	MaxIterations int
	Cooldown      time.Duration
	FixPlan       bool
}

// CompletionProto is one outbound chat request: system instructions plus a
// user prompt, completed by the named model.
type CompletionProto struct {
	System string
	Prompt string
	Model  string
}

// CompletionError wraps any transport or API failure raised by the
// completion endpoint. The controller treats it as fatal for the run.
type CompletionError struct {
	Cause error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion request error: %s", e.Cause.Error())
}

func (e *CompletionError) Unwrap() error {
	return e.Cause
}

type CompletionRepo interface {
	Complete(ctx context.Context, proto CompletionProto) (string, error)
}

type IterationRepo interface {
	InsertIteration(record domain.IterationRecord) error
	InsertSummary(summary domain.RunSummary) error
}

type ReportRepo interface {
	Export(name string, script string) error
}

type App struct {
	CompletionRepo CompletionRepo
	IterationRepo  IterationRepo
	ReportRepo     ReportRepo
	Rubric         domain.Rubric
	Scenario       Scenario
	Config         Config
}
