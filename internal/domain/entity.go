package domain

// Run states. A run leaves StateRunning exactly once and performs no
// further completion calls afterwards.
const (
	StateRunning                = "running"
	StateTargetReached          = "target_reached"
	StateMaxIterationsExhausted = "max_iterations_exhausted"
	StateFailed                 = "failed"
)

type Category struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Rubric is the ordered set of weighted categories a report is scored
// against. Weights sum to 1.0. Defined once at process start, never mutated.
type Rubric struct {
	Categories []Category `json:"categories"`
}

func (r Rubric) Names() []string {
	names := make([]string, len(r.Categories))
	for i := 0; i < len(r.Categories); i++ {
		names[i] = r.Categories[i].Name
	}
	return names
}

func (r Rubric) Weight(name string) float64 {
	for i := 0; i < len(r.Categories); i++ {
		if r.Categories[i].Name == name {
			return r.Categories[i].Weight
		}
	}
	return 0
}

type IterationRecord struct {
	RunId     string             `json:"run_id"`
	Iteration int                `json:"iteration"`
	Script    string             `json:"script"`
	Scores    map[string]float64 `json:"scores"`
	Overall   float64            `json:"overall_score"`
	Timestamp string             `json:"timestamp"`
}

type RunSummary struct {
	RunId           string            `json:"run_id"`
	State           string            `json:"state"`
	FinalScore      float64           `json:"final_score"`
	TargetScore     float64           `json:"target_score"`
	TotalIterations int               `json:"total_iterations"`
	AchievedTarget  bool              `json:"achieved_target"`
	Iterations      []IterationRecord `json:"iterations"`
}

// Extraction is the outcome of parsing one model reply. Extraction is
// best-effort and never fails: categories without a recognizable score are
// recorded as 0. FoundCategories and TotalReported let callers tell a
// genuine zero apart from a parse miss.
type Extraction struct {
	Scores          map[string]float64 `json:"scores"`
	Overall         float64            `json:"overall_score"`
	FoundCategories int                `json:"found_categories"`
	TotalReported   bool               `json:"total_reported"`
}

func (e Extraction) Complete(rubric Rubric) bool {
	return e.FoundCategories == len(rubric.Categories)
}
