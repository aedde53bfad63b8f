package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/felixbrock/gradeloop/internal/domain"
)

// IterationRepo stores one JSON document per iteration plus a summary
// document, keyed by file name. Writes replace the whole file; every
// iteration gets its own key so no merging is needed.
type IterationRepo struct {
	Dir string
}

func NewIterationRepo(dir string) (IterationRepo, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return IterationRepo{}, err
	}

	return IterationRepo{Dir: dir}, nil
}

func (r IterationRepo) InsertIteration(record domain.IterationRecord) error {
	return r.write(fmt.Sprintf("iteration_%d.json", record.Iteration), record)
}

func (r IterationRepo) InsertSummary(summary domain.RunSummary) error {
	return r.write("summary.json", summary)
}

func (r IterationRepo) write(name string, record any) error {
	file, err := os.Create(filepath.Join(r.Dir, name))
	if err != nil {
		return err
	}

	defer func() {
		err = file.Close()
		if err != nil {
			slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		}
	}()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	return encoder.Encode(record)
}
