package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"कपास में गुलाबी सुंडी का इलाज बताओ", "hi"},
		{"how to treat pink bollworm in cotton", "en"},
		{"कपास की फसल में keeda", "hi"},
		{"cotton ka rate kya hai aaj mandi me", "en"},
		{"", "unknown"},
		{"123 456", "unknown"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectLanguage(tc.text), "text: %s", tc.text)
	}
}

func TestAudioExt(t *testing.T) {
	assert.Equal(t, ".ogg", audioExt("audio/ogg; codecs=opus"))
	assert.Equal(t, ".mp3", audioExt("audio/mpeg"))
	assert.Equal(t, ".wav", audioExt("audio/wav"))
	assert.Equal(t, ".amr", audioExt("audio/amr"))
	assert.Equal(t, ".ogg", audioExt(""))
}
