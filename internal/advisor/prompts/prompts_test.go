package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/krishigpt/server/internal/advisor/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadSystemPrompt_EmbeddedDefault verifies the shipped prompt is
// non-empty and already trimmed.
func TestLoadSystemPrompt_EmbeddedDefault(t *testing.T) {
	p := LoadSystemPrompt("")
	require.NotEmpty(t, p)
	assert.Equal(t, p, LoadSystemPrompt(filepath.Join(t.TempDir(), "missing.txt")),
		"unreadable path should fall back to the embedded default")
}

// TestLoadSystemPrompt_CustomFile verifies an operator file wins.
func TestLoadSystemPrompt_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("  custom prompt\n"), 0o644))

	assert.Equal(t, "custom prompt", LoadSystemPrompt(path))
}

// TestAugment verifies the header and instruction suffix wrap a
// non-empty context, and an empty context changes nothing.
func TestAugment(t *testing.T) {
	out := Augment("base", "facts here")
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "--- 📚 संबंधित जानकारी ---")
	assert.Contains(t, out, "facts here")
	assert.Contains(t, out, "--- ⚠️ निर्देश ---")

	assert.Equal(t, "base", Augment("base", ""))
}

// TestStageNote verifies the rendered line carries the crop, day count,
// and stage label.
func TestStageNote(t *testing.T) {
	note := StageNote("कपास", stage.Result{DaysAfterSowing: 40, Stage: "वानस्पतिक वृद्धि (Vegetative Growth)"})
	assert.Contains(t, note, "कपास")
	assert.Contains(t, note, "40 दिन")
	assert.Contains(t, note, "वानस्पतिक वृद्धि (Vegetative Growth)")
}

// TestApology_CarriesHelpline pins the helpline number in the fixed
// failure message.
func TestApology_CarriesHelpline(t *testing.T) {
	assert.Contains(t, Apology, "1551")
}
