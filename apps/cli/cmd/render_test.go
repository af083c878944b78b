package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdriver/snapreq/packages/journal"
)

const fixtureYAML = `name: submit
method: POST
uri: /submit
params:
  - name: a
    value: "1"
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(resetRenderFlags)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func resetRenderFlags() {
	jsonFlag = false
	selectFlag = ""
	journalFlag = ""
	watchFlag = false
	noColorFlag = false
	bodyFlag = false
}

func TestRender_Console(t *testing.T) {
	out := execute(t, "render", "--no-color", writeFixture(t))

	assert.Contains(t, out, "submit")
	assert.Contains(t, out, "POST /submit")
	assert.Contains(t, out, "Content-Type: x-www-form-urlencoded")
}

func TestRender_JSONSummary(t *testing.T) {
	out := execute(t, "render", "--json", writeFixture(t))

	assert.Contains(t, out, `"method": "POST"`)
	assert.Contains(t, out, `"contentLength": 3`)
}

func TestRender_SelectField(t *testing.T) {
	out := execute(t, "render", "--select", "method", writeFixture(t))

	assert.Equal(t, "POST\n", out)
}

func TestRender_Journal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	execute(t, "render", "--no-color", "--journal", dbPath, writeFixture(t))

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer j.Close()

	entries, err := j.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "submit", entries[0].Name)
	assert.Equal(t, "POST", entries[0].Method)
}

func TestValidate_ReportsValidFile(t *testing.T) {
	out := execute(t, "validate", "--no-color", writeFixture(t))

	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "(1 requests)")
}
