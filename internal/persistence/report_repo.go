package persistence

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
)

// ReportRepo exports the final script as a Markdown file plus an HTML
// rendering of it.
type ReportRepo struct {
	Dir string
}

func (r ReportRepo) Export(name string, script string) error {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return err
	}

	mdPath := filepath.Join(r.Dir, fmt.Sprintf("%s.md", name))
	if err := os.WriteFile(mdPath, []byte(script), 0644); err != nil {
		return err
	}

	var html bytes.Buffer
	if err := goldmark.Convert([]byte(script), &html); err != nil {
		return err
	}

	htmlPath := filepath.Join(r.Dir, fmt.Sprintf("%s.html", name))
	return os.WriteFile(htmlPath, html.Bytes(), 0644)
}
