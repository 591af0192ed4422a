package background

import "fmt"

type Mode string

const (
	VideoMode Mode = "video"
	AudioMode Mode = "audio"
)

// CenterAnchor is the only fixed anchor understood by the
// catalog; any other position must be a numeric vertical offset.
const CenterAnchor = "center"

type PositionKind int

const (
	FixedPosition PositionKind = iota
	DynamicVerticalPosition
)

// Position describes where a background video should be placed
// on the final canvas. Fixed positions pin the clip to an anchor,
// while dynamic positions scroll the clip vertically over time.
type Position struct {
	Kind   PositionKind
	Anchor string
	Offset float64
}

// Placement is a Position evaluated at a point in time.
type Placement struct {
	Horizontal string
	Vertical   string
	Offset     float64
}

func Fixed(anchor string) Position { return Position{Kind: FixedPosition, Anchor: anchor} }

func DynamicVertical(offset float64) Position {
	return Position{Kind: DynamicVerticalPosition, Offset: offset}
}

// At evaluates the position at the elapsed time provided (in seconds). Fixed
// positions ignore the time entirely; dynamic positions return a vertical
// offset of Offset+elapsed, horizontally centered.
func (p Position) At(elapsed float64) Placement {
	if p.Kind == FixedPosition {
		return Placement{Horizontal: p.Anchor, Vertical: p.Anchor}
	}

	return Placement{Horizontal: CenterAnchor, Offset: p.Offset + elapsed}
}

func (p Position) String() string {
	if p.Kind == FixedPosition {
		return p.Anchor
	}

	return fmt.Sprintf("center+%gs", p.Offset)
}

type VideoBackground struct {
	URI      string `validate:"required,url"`
	Filename string `validate:"required"`
	Credit   string `validate:"required"`
	Position Position
}

type AudioBackground struct {
	URI      string `validate:"required,url"`
	Filename string `validate:"required"`
	Credit   string `validate:"required"`
}

// CacheName returns the name of the file this background is stored
// under locally. The credit prefix disambiguates same-named files
// from different sources.
func (v VideoBackground) CacheName() string { return cacheName(v.Credit, v.Filename) }

func (a AudioBackground) CacheName() string { return cacheName(a.Credit, a.Filename) }

func cacheName(credit, filename string) string {
	return fmt.Sprintf("%s-%s", credit, filename)
}

// Config is the pair of backgrounds resolved for a single render job.
type Config struct {
	Video VideoBackground
	Audio AudioBackground
}
