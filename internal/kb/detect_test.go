package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKB(t *testing.T) *KnowledgeBase {
	t.Helper()
	k := Load("")
	require.NotEmpty(t, k.Crops)
	return k
}

// TestDetectCrop_Hindi verifies Devanagari keywords match.
func TestDetectCrop_Hindi(t *testing.T) {
	k := testKB(t)

	key, info, ok := k.DetectCrop("टमाटर के पत्ते पीले हो रहे हैं")
	require.True(t, ok)
	assert.Equal(t, "tomato", key)
	assert.Equal(t, "टमाटर", info.DisplayName)
}

// TestDetectCrop_Transliterated verifies romanized keywords match
// case-insensitively.
func TestDetectCrop_Transliterated(t *testing.T) {
	k := testKB(t)

	key, _, ok := k.DetectCrop("Kapas me keeda lag gaya hai")
	require.True(t, ok)
	assert.Equal(t, "cotton", key)

	key, _, ok = k.DetectCrop("TAMATAR me rog")
	require.True(t, ok)
	assert.Equal(t, "tomato", key)
}

// TestDetectCrop_NoMatch verifies ok=false when no keyword hits.
func TestDetectCrop_NoMatch(t *testing.T) {
	k := testKB(t)

	_, _, ok := k.DetectCrop("मौसम कैसा रहेगा")
	assert.False(t, ok)
}

// TestDetectCrop_Deterministic verifies that a query matching multiple
// crops always resolves to the same crop (first in sorted key order).
func TestDetectCrop_Deterministic(t *testing.T) {
	k, err := Parse([]byte(`{"crops": {
		"wheat":  {"keywords": ["फसल"]},
		"cotton": {"keywords": ["फसल"]}
	}}`))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		key, _, ok := k.DetectCrop("मेरी फसल खराब है")
		require.True(t, ok)
		assert.Equal(t, "cotton", key)
	}
}

// TestDetectQueryType covers each keyword group plus the general default.
func TestDetectQueryType(t *testing.T) {
	cases := []struct {
		query string
		want  QueryType
	}{
		{"कपास में गुलाबी सुंडी का इलाज", QueryDisease},
		{"पत्तियां पीली पड़ रही हैं", QueryDisease},
		{"tomato leaves turning yellow", QueryDisease},
		{"गेहूं में कौन सी खाद डालें", QueryFertilizer},
		{"यूरिया की मात्रा बताओ", QueryFertilizer},
		{"pm-kisan का पैसा कब आएगा", QueryScheme},
		{"फसल बीमा कैसे कराएं", QueryScheme},
		{"सिंचाई कब करनी चाहिए", QueryIrrigation},
		{"drip लगवाना है", QueryIrrigation},
		{"नमस्ते", QueryGeneral},
		{"", QueryGeneral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectQueryType(tc.query), "query: %s", tc.query)
	}
}

// TestDetectQueryType_Priority verifies disease wins when groups overlap.
func TestDetectQueryType_Priority(t *testing.T) {
	// Mentions both a disease symptom and fertilizer.
	assert.Equal(t, QueryDisease, DetectQueryType("पत्ते पीले हैं, कौन सी खाद डालूं"))
	// Fertilizer beats scheme.
	assert.Equal(t, QueryFertilizer, DetectQueryType("खाद पर सब्सिडी मिलती है क्या"))
}
