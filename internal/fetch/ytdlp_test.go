package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_YtdlpFormat(t *testing.T) {
	d := NewYtdlpDownloader(Config{VideoHeight: 1080})

	assert.Equal(t, "bv[height=1080][ext=mp4]/bv[height=1080]", d.format(VideoProfile))
	assert.Equal(t, "bestaudio", d.format(AudioProfile))
}

func Test_EscapeOutputTemplate(t *testing.T) {
	assert.Equal(t, "Credit-100%%.mp4", escapeOutputTemplate("Credit-100%.mp4"))
	assert.Equal(t, "plain.mp4", escapeOutputTemplate("plain.mp4"))
}
