package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportWritesMarkdownAndHTML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	repo := ReportRepo{Dir: dir}
	script := "# Actuarial Project Report\n\nExpected value per acre: $425."

	require.NoError(t, repo.Export("report_run-1", script))

	md, err := os.ReadFile(filepath.Join(dir, "report_run-1.md"))
	require.NoError(t, err)
	assert.Equal(t, script, string(md))

	html, err := os.ReadFile(filepath.Join(dir, "report_run-1.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Actuarial Project Report</h1>")
	assert.Contains(t, string(html), "$425")
}
