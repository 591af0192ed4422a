package background

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// commentKey is reserved in the catalog files for human readable notes.
const commentKey = "__comment"

//go:embed data/background_videos.json data/background_audios.json
var defaultData embed.FS

var ErrEmptyCatalog = errors.New("catalog contains no backgrounds")

// CatalogError is returned when a catalog source could not be read or
// one of its entries is malformed.
type CatalogError struct {
	Mode Mode
	Key  string
	Err  error
}

func (e *CatalogError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s catalog: %s", e.Mode, e.Err)
	}

	return fmt.Sprintf("%s catalog entry %q: %s", e.Mode, e.Key, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// CatalogSources points at the JSON files describing the available
// backgrounds. An empty path selects the catalog bundled with the binary.
type CatalogSources struct {
	VideoPath string
	AudioPath string
}

// Catalog is the immutable set of known video and audio backgrounds. It is
// loaded once and then shared read-only by the selector and the CLI.
type Catalog struct {
	videos map[string]VideoBackground
	audios map[string]AudioBackground
}

// LoadCatalog reads both catalog sources. Entries are arrays of fields:
//
//	video: [uri, filename, credit, vertical_offset | "center"]
//	audio: [uri, filename, credit]
//
// The reserved "__comment" entry is skipped.
func LoadCatalog(sources CatalogSources) (*Catalog, error) {
	validate := validator.New()

	videoRaw, err := readSource(VideoMode, sources.VideoPath, "data/background_videos.json")
	if err != nil {
		return nil, err
	}
	audioRaw, err := readSource(AudioMode, sources.AudioPath, "data/background_audios.json")
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{
		videos: make(map[string]VideoBackground, len(videoRaw)),
		audios: make(map[string]AudioBackground, len(audioRaw)),
	}

	for key, raw := range videoRaw {
		fields, err := decodeFields(raw, 4)
		if err != nil {
			return nil, &CatalogError{VideoMode, key, err}
		}

		pos, err := decodePosition(fields[3])
		if err != nil {
			return nil, &CatalogError{VideoMode, key, err}
		}

		bg := VideoBackground{Position: pos}
		if err := decodeStrings(fields[:3], &bg.URI, &bg.Filename, &bg.Credit); err != nil {
			return nil, &CatalogError{VideoMode, key, err}
		}
		if err := validate.Struct(bg); err != nil {
			return nil, &CatalogError{VideoMode, key, err}
		}
		if err := insertUnique(catalog.videos, key, bg); err != nil {
			return nil, &CatalogError{VideoMode, key, err}
		}
	}

	for key, raw := range audioRaw {
		fields, err := decodeFields(raw, 3)
		if err != nil {
			return nil, &CatalogError{AudioMode, key, err}
		}

		bg := AudioBackground{}
		if err := decodeStrings(fields, &bg.URI, &bg.Filename, &bg.Credit); err != nil {
			return nil, &CatalogError{AudioMode, key, err}
		}
		if err := validate.Struct(bg); err != nil {
			return nil, &CatalogError{AudioMode, key, err}
		}
		if err := insertUnique(catalog.audios, key, bg); err != nil {
			return nil, &CatalogError{AudioMode, key, err}
		}
	}

	if len(catalog.videos) == 0 {
		return nil, &CatalogError{Mode: VideoMode, Err: ErrEmptyCatalog}
	}
	if len(catalog.audios) == 0 {
		return nil, &CatalogError{Mode: AudioMode, Err: ErrEmptyCatalog}
	}

	return catalog, nil
}

// DefaultCatalog loads the catalog bundled with the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(CatalogSources{})
}

func (c *Catalog) Video(key string) (VideoBackground, bool) {
	v, ok := c.videos[key]
	return v, ok
}

func (c *Catalog) Audio(key string) (AudioBackground, bool) {
	a, ok := c.audios[key]
	return a, ok
}

// Videos returns a copy of the video backgrounds, keyed by name.
func (c *Catalog) Videos() map[string]VideoBackground {
	out := make(map[string]VideoBackground, len(c.videos))
	for k, v := range c.videos {
		out[k] = v
	}

	return out
}

// Audios returns a copy of the audio backgrounds, keyed by name.
func (c *Catalog) Audios() map[string]AudioBackground {
	out := make(map[string]AudioBackground, len(c.audios))
	for k, v := range c.audios {
		out[k] = v
	}

	return out
}

// Keys returns the sorted names of all backgrounds for the mode given.
func (c *Catalog) Keys(mode Mode) []string {
	var keys []string
	switch mode {
	case VideoMode:
		keys = mapKeys(c.videos)
	case AudioMode:
		keys = mapKeys(c.audios)
	}

	sort.Strings(keys)
	return keys
}

func readSource(mode Mode, path string, embedded string) (map[string]json.RawMessage, error) {
	var (
		content []byte
		err     error
	)
	if path == "" {
		content, err = defaultData.ReadFile(embedded)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &CatalogError{Mode: mode, Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, &CatalogError{Mode: mode, Err: fmt.Errorf("malformed catalog file: %w", err)}
	}

	delete(raw, commentKey)
	return raw, nil
}

func decodeFields(raw json.RawMessage, expected int) ([]json.RawMessage, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("entry is not an array: %w", err)
	}
	if len(fields) != expected {
		return nil, fmt.Errorf("expected %d fields, found %d", expected, len(fields))
	}

	return fields, nil
}

func decodeStrings(fields []json.RawMessage, targets ...*string) error {
	for i, target := range targets {
		if err := json.Unmarshal(fields[i], target); err != nil {
			return fmt.Errorf("field %d is not a string: %w", i, err)
		}
	}

	return nil
}

// decodePosition accepts either the literal "center" or a number
// describing the starting vertical offset of a scrolling background.
func decodePosition(raw json.RawMessage) (Position, error) {
	var anchor string
	if err := json.Unmarshal(raw, &anchor); err == nil {
		if anchor != CenterAnchor {
			return Position{}, fmt.Errorf("unsupported position anchor %q", anchor)
		}

		return Fixed(anchor), nil
	}

	var offset float64
	if err := json.Unmarshal(raw, &offset); err != nil {
		return Position{}, fmt.Errorf("position must be %q or a number: %w", CenterAnchor, err)
	}

	return DynamicVertical(offset), nil
}

func insertUnique[T any](m map[string]T, key string, value T) error {
	folded := strings.ToLower(key)
	if _, ok := m[folded]; ok {
		return fmt.Errorf("duplicate key (keys are case-insensitive)")
	}

	m[folded] = value
	return nil
}

func mapKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	return keys
}
