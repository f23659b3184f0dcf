package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqschema/checklistml/checklist"
	"github.com/seqschema/checklistml/config"
)

const waterChecklistXML = `<CHECKLIST_SET>
  <CHECKLIST accession="ERC000015" checklistType="Sample">
    <DESCRIPTOR>
      <LABEL>GSC MIxS water</LABEL>
      <NAME>GSC MIxS water</NAME>
      <DESCRIPTION>Minimum information about a water sample.</DESCRIPTION>
      <AUTHORITY>GSC</AUTHORITY>
      <FIELD_GROUP restrictionType="Any number or none of the fields">
        <NAME>Environment</NAME>
        <FIELD>
          <LABEL>Depth</LABEL>
          <NAME>depth</NAME>
          <DESCRIPTION>Depth of the sample.</DESCRIPTION>
          <FIELD_TYPE>
            <TEXT_FIELD/>
          </FIELD_TYPE>
          <UNITS>
            <UNIT>m</UNIT>
          </UNITS>
          <MANDATORY>mandatory</MANDATORY>
        </FIELD>
        <FIELD>
          <LABEL>Trophic level</LABEL>
          <NAME>trophic_level</NAME>
          <FIELD_TYPE>
            <TEXT_CHOICE_FIELD>
              <TEXT_VALUE><VALUE>autotroph</VALUE></TEXT_VALUE>
              <TEXT_VALUE><VALUE>heterotroph</VALUE></TEXT_VALUE>
            </TEXT_CHOICE_FIELD>
          </FIELD_TYPE>
          <MANDATORY>optional</MANDATORY>
        </FIELD>
      </FIELD_GROUP>
    </DESCRIPTOR>
  </CHECKLIST>
</CHECKLIST_SET>`

func testConfig(t *testing.T) (*config.Config, string, string) {
	t.Helper()
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "schemas")

	cfg := config.DefaultConfig()
	cfg.Input.Dir = inputDir
	cfg.Output.Dir = outputDir
	cfg.Schema.BaseURI = "https://example.org/schemas"
	return cfg, inputDir, outputDir
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertFile(t *testing.T) {
	cfg, inputDir, outputDir := testConfig(t)
	path := writeInput(t, inputDir, "ERC000015.xml", waterChecklistXML)

	c := New(cfg, nil)
	result, err := c.ConvertFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ERC000015", result.Accession)
	assert.Equal(t, filepath.Join(outputDir, "ERC000015.yaml"), result.OutputPath)
	assert.Equal(t, 2, result.Slots)
	assert.Equal(t, 1, result.Required)
	assert.Equal(t, 1, result.Enums)

	_, err = os.Stat(result.OutputPath)
	require.NoError(t, err)
}

func TestConvertFile_ParseFailureLeavesNoOutput(t *testing.T) {
	cfg, inputDir, outputDir := testConfig(t)
	path := writeInput(t, inputDir, "broken.xml", "<CHECKLIST><DESCRIPTOR>")

	c := New(cfg, nil)
	_, err := c.ConvertFile(path)
	require.Error(t, err)

	var parseErr *checklist.ParseError
	assert.True(t, errors.As(err, &parseErr))

	// The output directory must not even exist: nothing was written.
	_, statErr := os.Stat(outputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertAll_IsolatesFailures(t *testing.T) {
	cfg, inputDir, _ := testConfig(t)
	good := writeInput(t, inputDir, "ERC000015.xml", waterChecklistXML)
	bad := writeInput(t, inputDir, "broken.xml", "not xml at all <")

	c := New(cfg, nil)
	results, failed := c.ConvertAll([]string{bad, good})

	assert.Equal(t, 1, failed)
	require.Len(t, results, 1)
	assert.Equal(t, good, results[0].Path)
}

func TestResolveInputs_ExplicitFilesOverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "ignored.xml", waterChecklistXML)

	files, err := ResolveInputs([]string{"a.xml", "b.xml", "a.xml"}, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.xml", "b.xml"}, files)
}

func TestResolveInputs_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "ERC000011.xml", waterChecklistXML)
	b := writeInput(t, dir, "ERC000015.xml", waterChecklistXML)
	writeInput(t, dir, "notes.txt", "not a checklist")

	files, err := ResolveInputs([]string{filepath.Join(dir, "*.xml")}, "unused")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestResolveInputs_DirectoryScan(t *testing.T) {
	dir := t.TempDir()
	lower := writeInput(t, dir, "erc1.xml", waterChecklistXML)
	upper := writeInput(t, dir, "ERC2.XML", waterChecklistXML)
	writeInput(t, dir, "readme.md", "docs")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0o755))

	files, err := ResolveInputs(nil, dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{lower, upper}, files)
}

func TestResolveInputs_EmptyDirectory(t *testing.T) {
	files, err := ResolveInputs(nil, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolveInputs_MissingDirectory(t *testing.T) {
	_, err := ResolveInputs(nil, filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestNewWatcher_Defaults(t *testing.T) {
	cfg, inputDir, _ := testConfig(t)
	c := New(cfg, nil)

	w, err := NewWatcher(c, inputDir, 0, nil)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, 500*time.Millisecond, w.debounce)
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	cfg, inputDir, _ := testConfig(t)
	c := New(cfg, nil)

	w, err := NewWatcher(c, inputDir, 10*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
}

func TestWatcher_MissingDirectory(t *testing.T) {
	cfg, _, _ := testConfig(t)
	c := New(cfg, nil)

	w, err := NewWatcher(c, filepath.Join(t.TempDir(), "absent"), 0, nil)
	require.NoError(t, err)
	defer w.Close()

	require.Error(t, w.Run(context.Background()))
}
