package background_test

import (
	"bytes"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/hbomb79/backdrop/internal/background"
	"github.com/hbomb79/backdrop/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectorVideos = `{
		"a": ["https://example.com/a", "a.mp4", "A", "center"],
		"b": ["https://example.com/b", "b.mp4", "B", 10]
	}`
	selectorAudios = `{
		"lofi": ["https://example.com/l", "lofi.mp3", "L"],
		"chill": ["https://example.com/c", "chill.mp3", "C"]
	}`
)

func Test_Selector_MatchesPreferenceCaseInsensitive(t *testing.T) {
	catalog, err := background.LoadCatalog(writeCatalog(t, selectorVideos, selectorAudios))
	require.NoError(t, err)

	expectedVideo, _ := catalog.Video("a")
	expectedAudio, _ := catalog.Audio("chill")
	for _, pref := range []string{"a", "A", " a "} {
		selector := background.NewSelector(catalog, background.Preferences{Video: pref, Audio: "CHILL"})
		assert.Equal(t, expectedVideo, selector.ResolveVideo(), "preference %q", pref)
		assert.Equal(t, expectedAudio, selector.ResolveAudio(), "preference %q", pref)
	}
}

func Test_Selector_FallsBackToCatalogMember(t *testing.T) {
	catalog, err := background.LoadCatalog(writeCatalog(t, selectorVideos, selectorAudios))
	require.NoError(t, err)

	videos := catalog.Videos()
	audios := catalog.Audios()
	for _, pref := range []string{"", "z", "lofii"} {
		selector := background.NewSelectorWithRand(catalog, background.Preferences{Video: pref, Audio: pref}, rand.New(rand.NewPCG(1, 2)))
		for i := 0; i < 20; i++ {
			assert.Contains(t, mapValues(videos), selector.ResolveVideo())
			assert.Contains(t, mapValues(audios), selector.ResolveAudio())
		}
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	return buf
}

func Test_Selector_FallbackLogsNotice(t *testing.T) {
	catalog, err := background.LoadCatalog(writeCatalog(t, selectorVideos, selectorAudios))
	require.NoError(t, err)

	t.Run("no preference", func(t *testing.T) {
		logs := captureLogs(t)
		picked := background.NewSelector(catalog, background.Preferences{}).ResolveAudio()

		assert.Contains(t, logs.String(), "(I)")
		assert.Contains(t, logs.String(), "No background audio selected. Picking random background")
		assert.Contains(t, logs.String(), strconv.Quote(strings.TrimSuffix(picked.Filename, ".mp3")))
	})

	t.Run("unknown preference", func(t *testing.T) {
		logs := captureLogs(t)
		background.NewSelector(catalog, background.Preferences{Audio: "Lofii"}).ResolveAudio()

		assert.Contains(t, logs.String(), "(!)")
		assert.Contains(t, logs.String(), `Background audio "lofii" is not supported (did you mean "lofi"?). Picking random background`)
	})

	t.Run("matching preference", func(t *testing.T) {
		logs := captureLogs(t)
		background.NewSelector(catalog, background.Preferences{Audio: "chill"}).ResolveAudio()

		assert.NotContains(t, logs.String(), "Picking random background")
	})
}

func Test_Selector_FallbackCoversCatalog(t *testing.T) {
	catalog, err := background.LoadCatalog(writeCatalog(t, selectorVideos, selectorAudios))
	require.NoError(t, err)

	selector := background.NewSelectorWithRand(catalog, background.Preferences{}, rand.New(rand.NewPCG(7, 7)))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[selector.ResolveVideo().Filename] = true
	}

	assert.Equal(t, map[string]bool{"a.mp4": true, "b.mp4": true}, seen)
}

func Test_Selector_Resolve(t *testing.T) {
	catalog, err := background.LoadCatalog(writeCatalog(t, selectorVideos, selectorAudios))
	require.NoError(t, err)

	cfg := background.NewSelector(catalog, background.Preferences{Video: "b", Audio: "lofi"}).Resolve()
	assert.Equal(t, "b.mp4", cfg.Video.Filename)
	assert.Equal(t, background.DynamicVertical(10), cfg.Video.Position)
	assert.Equal(t, "lofi.mp3", cfg.Audio.Filename)
}

func mapValues[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}

	return out
}
