package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var (
	fencedExp = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	objectExp = regexp.MustCompile(`(?s)\{.*\}`)
)

// DecodeReply recovers a structured value from a model reply that may wrap
// JSON in a markdown code fence, surround it with prose, or emit slightly
// malformed JSON. Fenced content wins over a bare object; near-JSON is
// repaired before giving up.
func DecodeReply[T any](reply string) (*T, error) {
	raw := reply
	if m := fencedExp.FindStringSubmatch(reply); m != nil {
		raw = m[1]
	} else if m := objectExp.FindString(reply); m != "" {
		raw = m
	}

	t, err := ReadJSON[T]([]byte(raw))
	if err == nil {
		return t, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(raw)
	if repairErr != nil {
		return nil, err
	}

	return ReadJSON[T]([]byte(repaired))
}

// FixPlan is the structured improvement plan requested after a below-bar
// iteration. Lists are truncated before prompting so one oversized plan
// cannot crowd out the script itself.
type FixPlan struct {
	EditsNow       []string `json:"edits_now"`
	NumbersToAdd   []string `json:"numbers_to_add"`
	NoveltyChanges []string `json:"novelty_changes"`
}

func (p FixPlan) Instructions() string {
	var parts []string
	if len(p.EditsNow) > 0 {
		parts = append(parts, "Apply these edits:\n"+bullets(head(p.EditsNow, 5)))
	}
	if len(p.NumbersToAdd) > 0 {
		parts = append(parts, "Add these numbers:\n"+bullets(head(p.NumbersToAdd, 5)))
	}
	if len(p.NoveltyChanges) > 0 {
		parts = append(parts, "Novelty changes:\n"+bullets(head(p.NoveltyChanges, 3)))
	}
	return strings.Join(parts, "\n\n")
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i := 0; i < len(items); i++ {
		lines[i] = fmt.Sprintf("- %s", items[i])
	}
	return strings.Join(lines, "\n")
}

func Read(reader io.ReadCloser) ([]byte, error) {
	var err error

	defer func() {
		err = reader.Close()
		if err != nil {
			slog.Error(fmt.Sprintf("Error occured: %s", err.Error()))
		}
	}()

	var content []byte
	content, err = io.ReadAll(reader)

	if err != nil {
		return nil, err
	} else if len(content) == 0 {
		return nil, errors.New("no reader content error")
	}

	return content, nil
}

func ReadJSON[T any](content []byte) (*T, error) {
	var t *T
	err := json.Unmarshal(content, &t)

	if err != nil {
		return nil, err
	}

	return t, nil
}
