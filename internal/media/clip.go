package media

import (
	"encoding/json"
	"fmt"
)

// Anchor names accepted by Position. Unknown anchors fall back to center.
const (
	AnchorCenter = "center"
	AnchorBottom = "bottom"
	AnchorTop    = "top"
)

// Position places an overlay either at a symbolic anchor or at an explicit
// {x, y} coordinate pair. It unmarshals from both JSON shapes:
//
//	"center"
//	{"x": 10, "y": 20}
type Position struct {
	Anchor   string
	X, Y     float64
	Explicit bool
}

// AnchorPosition returns a symbolic position.
func AnchorPosition(anchor string) Position {
	return Position{Anchor: anchor}
}

// XY returns an explicit coordinate position.
func XY(x, y float64) Position {
	return Position{X: x, Y: y, Explicit: true}
}

// UnmarshalJSON accepts either a string anchor or an {x, y} object.
func (p *Position) UnmarshalJSON(data []byte) error {
	var anchor string
	if err := json.Unmarshal(data, &anchor); err == nil {
		*p = AnchorPosition(anchor)
		return nil
	}
	var coords struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("media: position must be an anchor string or an {x, y} object: %w", err)
	}
	if coords.X == nil || coords.Y == nil {
		return fmt.Errorf("media: position object requires both x and y")
	}
	*p = XY(*coords.X, *coords.Y)
	return nil
}

// TextOverlay burns text onto the clip. A zero Duration means the full clip.
type TextOverlay struct {
	Text     string
	Pos      Position
	Duration float64
}

// ImageOverlay composites an image onto the clip, scaled to ScaleHeight
// pixels tall with the aspect ratio preserved.
type ImageOverlay struct {
	Path        string
	Pos         Position
	Duration    float64
	ScaleHeight int
}

// Clip is a description of a composition: a source video plus the overlays
// and audio to apply. Building a clip performs no work; only Render touches
// the filesystem. Clips are values, so deriving one never mutates its parent.
type Clip struct {
	source string
	texts  []TextOverlay
	images []ImageOverlay
	audio  string
}

// NewClip starts a composition from the video at path.
func NewClip(path string) Clip {
	return Clip{source: path}
}

// Source returns the underlying video path.
func (c Clip) Source() string { return c.source }

// Texts returns the text overlays in application order.
func (c Clip) Texts() []TextOverlay { return c.texts }

// Images returns the image overlays in application order.
func (c Clip) Images() []ImageOverlay { return c.images }

// Audio returns the replacement audio path, or "" when the source track is kept.
func (c Clip) Audio() string { return c.audio }

// OverlayText returns a derived clip with text burned in at pos.
func (c Clip) OverlayText(text string, pos Position, duration float64) Clip {
	texts := make([]TextOverlay, len(c.texts), len(c.texts)+1)
	copy(texts, c.texts)
	c.texts = append(texts, TextOverlay{Text: text, Pos: pos, Duration: duration})
	return c
}

// OverlayImage returns a derived clip with the image at path composited in.
func (c Clip) OverlayImage(path string, pos Position, duration float64, scaleHeight int) Clip {
	images := make([]ImageOverlay, len(c.images), len(c.images)+1)
	copy(images, c.images)
	c.images = append(images, ImageOverlay{Path: path, Pos: pos, Duration: duration, ScaleHeight: scaleHeight})
	return c
}

// WithAudio returns a derived clip whose audio track is replaced by the file
// at path. Behavior on mismatched durations is left to the encoder.
func (c Clip) WithAudio(path string) Clip {
	c.audio = path
	return c
}
