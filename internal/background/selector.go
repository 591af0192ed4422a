package background

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/hbomb79/backdrop/pkg/logger"
)

var log = logger.Get("Background")

// hintThreshold is the minimum similarity a catalog key needs to be
// suggested as a correction for an unknown preference.
const hintThreshold = 0.5

// Preferences holds the user's configured background choices. Values are
// case-insensitive catalog keys; empty values mean "pick one at random".
type Preferences struct {
	Video string
	Audio string
}

type Selector struct {
	catalog *Catalog
	prefs   Preferences
	intn    func(int) int
}

func NewSelector(catalog *Catalog, prefs Preferences) *Selector {
	return &Selector{catalog: catalog, prefs: prefs, intn: rand.IntN}
}

// NewSelectorWithRand behaves like NewSelector, but draws random
// fallbacks from the source provided.
func NewSelectorWithRand(catalog *Catalog, prefs Preferences, r *rand.Rand) *Selector {
	return &Selector{catalog: catalog, prefs: prefs, intn: r.IntN}
}

// ResolveVideo returns the video background matching the configured
// preference, or a random one if the preference is empty or unknown.
func (s *Selector) ResolveVideo() VideoBackground {
	key := s.resolveKey(VideoMode, s.prefs.Video)
	v, _ := s.catalog.Video(key)
	return v
}

// ResolveAudio returns the audio background matching the configured
// preference, or a random one if the preference is empty or unknown.
func (s *Selector) ResolveAudio() AudioBackground {
	key := s.resolveKey(AudioMode, s.prefs.Audio)
	a, _ := s.catalog.Audio(key)
	return a
}

// Resolve resolves both backgrounds for a single render job.
func (s *Selector) Resolve() Config {
	return Config{Video: s.ResolveVideo(), Audio: s.ResolveAudio()}
}

func (s *Selector) resolveKey(mode Mode, preference string) string {
	keys := s.catalog.Keys(mode)
	if len(keys) == 0 {
		panic(fmt.Sprintf("background selector used with an empty %s catalog", mode))
	}

	choice := strings.ToLower(strings.TrimSpace(preference))
	if choice == "" {
		picked := keys[s.intn(len(keys))]
		log.Emit(logger.INFO, "No background %s selected. Picking random background %q\n", mode, picked)
		return picked
	}

	for _, k := range keys {
		if k == choice {
			return k
		}
	}

	picked := keys[s.intn(len(keys))]
	if hint := closestKey(choice, keys); hint != "" {
		log.Emit(logger.WARNING, "Background %s %q is not supported (did you mean %q?). Picking random background %q\n", mode, choice, hint, picked)
	} else {
		log.Emit(logger.WARNING, "Background %s %q is not supported. Picking random background %q\n", mode, choice, picked)
	}

	return picked
}

func closestKey(choice string, keys []string) string {
	metric := metrics.NewLevenshtein()
	best, bestScore := "", hintThreshold
	for _, k := range keys {
		if score := strutil.Similarity(choice, k, metric); score >= bestScore {
			best, bestScore = k, score
		}
	}

	return best
}
