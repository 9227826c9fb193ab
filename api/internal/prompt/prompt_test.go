package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraitsFor(t *testing.T) {
	tr := TraitsFor(true, false)
	assert.Equal(t, TemperamentFlexible, tr.Temperament)
	assert.Equal(t, BackgroundInflexible, tr.Background)

	tr = TraitsFor(false, true)
	assert.Equal(t, TemperamentInflexible, tr.Temperament)
	assert.Equal(t, BackgroundFlexible, tr.Background)
}

func TestDefaultGenerationEmbedsTraits(t *testing.T) {
	out, err := Default().Generation(TraitsFor(true, false))
	require.NoError(t, err)

	assert.Contains(t, out, "The user is flexible and open to change.")
	assert.Contains(t, out, "Their family background is inflexible.")
	assert.NotContains(t, out, "{{")
}

func TestDefaultValidationAsksForJSON(t *testing.T) {
	v := Default().Validation()
	assert.Contains(t, v, `"is_palm"`)
	assert.Contains(t, v, `"hand_type"`)
}

func TestNewRejectsBadTemplates(t *testing.T) {
	_, err := New("", DefaultGeneration)
	assert.Error(t, err)

	_, err = New(DefaultValidation, "  ")
	assert.Error(t, err)

	_, err = New(DefaultValidation, "The user is {{.Mood}}")
	assert.Error(t, err)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	content := "generation: |\n  Reading for someone {{.Temperament}} from a {{.Background}} home.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tpl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultValidation, tpl.Validation())
	out, err := tpl.Generation(TraitsFor(false, true))
	require.NoError(t, err)
	assert.Equal(t, "Reading for someone stubborn and headstrong. from a flexible. home.", out)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	tpl, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultValidation, tpl.Validation())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
