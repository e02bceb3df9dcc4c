package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestest-extract/internal/schema"
	"bestest-extract/internal/store"
)

func writeConfig(t *testing.T, root string) string {
	t.Helper()
	content := `
project:
  root_dir: "` + filepath.ToSlash(root) + `"
output:
  dir: "results"
  pretty: false
report:
  dir: "reports"
  file_name: "e2e_report"
  formats: ["excel", "html", "word"]
`
	path := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestExtractThenReport(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeConfig(t, root)

	// input/<program>/<version>/<section>/...
	wb := filepath.Join(root, "input", "EnergyPlus", "9.0.1", "TF", "TF_Output.xlsx")
	require.NoError(t, execute(t, "sample", "-c", cfgPath, "-s", "thermal_fabric",
		"--software", "EnergyPlus", "--software-version", "9.0.1", wb))
	require.FileExists(t, wb)

	require.NoError(t, execute(t, "-c", cfgPath, "-q", "input"))

	out := filepath.Join(root, "results", "energyplus-9.0.1-tf.json")
	require.FileExists(t, out)
	doc, err := store.Load(out)
	require.NoError(t, err)
	_, ok := doc.Child(schema.IdentityTableName)
	assert.True(t, ok)
	_, ok = doc.Child("annual_sums_peaks")
	assert.True(t, ok)

	require.NoError(t, execute(t, "-c", cfgPath, "-q", "results"))
	for _, ext := range []string{".xlsx", ".html", ".docx"} {
		assert.FileExists(t, filepath.Join(root, "reports", "e2e_report"+ext))
	}
}

func TestFailedWorkbookFailsTheBatch(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeConfig(t, root)

	bad := filepath.Join(root, "input", "X", "1", "TF", "TF_Output.xlsx")
	require.NoError(t, os.MkdirAll(filepath.Dir(bad), 0755))
	require.NoError(t, os.WriteFile(bad, []byte("not a workbook"), 0644))

	err := execute(t, "-c", cfgPath, "-q", "input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 workbook(s) failed")
}

func TestMissingInputPath(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeConfig(t, root)

	assert.Error(t, execute(t, "-c", cfgPath, "-q", "nowhere"))
}

func TestSchemasCommand(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeConfig(t, root)

	assert.NoError(t, execute(t, "schemas", "-c", cfgPath))
}

func TestFlagsAreScopedToOneCommand(t *testing.T) {
	first := newRootCmd()
	require.NoError(t, first.ParseFlags([]string{"--strict", "-q", "-j", "4"}))

	second := newRootCmd()
	for name, want := range map[string]string{"strict": "false", "quiet": "false", "jobs": "0"} {
		assert.Equal(t, want, second.Flags().Lookup(name).Value.String(), name)
	}
	for name, want := range map[string]string{"strict": "true", "quiet": "true", "jobs": "4"} {
		assert.Equal(t, want, first.Flags().Lookup(name).Value.String(), name)
	}
}

func TestPathArgumentIsNotASubcommand(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeConfig(t, root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "input"), 0755))

	assert.NoError(t, execute(t, "-c", cfgPath, "-q", filepath.Join(root, "input")))
}
