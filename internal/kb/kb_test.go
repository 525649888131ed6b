package kb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_EmbeddedDefault verifies the shipped crop data loads and
// carries the crops the engine depends on.
func TestLoad_EmbeddedDefault(t *testing.T) {
	k := Load("")
	require.NotNil(t, k)

	for _, crop := range []string{"cotton", "rice", "soybean", "tomato", "wheat"} {
		_, ok := k.Crops[crop]
		assert.True(t, ok, "embedded data should include %s", crop)
	}
	assert.NotEmpty(t, k.Schemes)
	assert.Equal(t, "1551", k.EmergencyContacts["kisan_call_center"])
}

// TestLoad_MissingFile verifies an unreadable path degrades to an empty
// knowledge base instead of failing.
func TestLoad_MissingFile(t *testing.T) {
	k := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NotNil(t, k)
	assert.Empty(t, k.Crops)
	assert.Empty(t, k.Schemes)
}

// TestLoad_MalformedFile verifies broken JSON degrades to empty.
func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	k := Load(path)
	require.NotNil(t, k)
	assert.Empty(t, k.Crops)
}

// TestLoad_CustomFile verifies an operator-supplied file replaces the
// embedded data entirely.
func TestLoad_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.json")
	data := `{
		"crops": {
			"banana": {"name_hi": "केला", "keywords": ["केला", "banana"]}
		},
		"government_schemes": [],
		"emergency_contacts": {"kisan_call_center": "1551"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	k := Load(path)
	require.Len(t, k.Crops, 1)
	assert.Equal(t, "केला", k.Crops["banana"].DisplayName)
}

// TestCropKeys_SortedOrder verifies scan order is pinned to sorted keys
// so first-match detection stays deterministic across runs.
func TestCropKeys_SortedOrder(t *testing.T) {
	k, err := Parse([]byte(`{"crops": {"wheat": {}, "cotton": {}, "rice": {}}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"cotton", "rice", "wheat"}, k.CropKeys())
}

// TestParse_Invalid verifies Parse surfaces the decode error.
func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("[]"))
	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	k := Empty()
	assert.NotNil(t, k.Crops)
	assert.Empty(t, k.CropKeys())
}
