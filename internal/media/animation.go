package media

import (
	"encoding/json"
	"fmt"
	"time"
)

// Animation is a decoded vector-animation description document (Lottie).
// Only the header fields the gallery needs are decoded; layers stay raw.
type Animation struct {
	Version   string            `json:"v"`
	FrameRate float64           `json:"fr"`
	InPoint   float64           `json:"ip"`
	OutPoint  float64           `json:"op"`
	Width     int               `json:"w"`
	Height    int               `json:"h"`
	Layers    []json.RawMessage `json:"layers"`

	// Playback configuration, set by the loader rather than the document.
	Loop     bool `json:"-"`
	Autoplay bool `json:"-"`
}

// Frames returns the number of frames in the animation.
func (a *Animation) Frames() int {
	return int(a.OutPoint - a.InPoint)
}

// Duration returns the playback time of one loop.
func (a *Animation) Duration() time.Duration {
	if a.FrameRate <= 0 {
		return 0
	}
	seconds := (a.OutPoint - a.InPoint) / a.FrameRate
	return time.Duration(seconds * float64(time.Second))
}

// DecodeAnimation parses an animation description document.
func DecodeAnimation(data []byte) (*Animation, error) {
	var anim Animation
	if err := json.Unmarshal(data, &anim); err != nil {
		return nil, fmt.Errorf("failed to decode animation document: %w", err)
	}

	if anim.FrameRate <= 0 {
		return nil, fmt.Errorf("animation document has no frame rate")
	}
	if anim.OutPoint <= anim.InPoint {
		return nil, fmt.Errorf("animation document has no frames")
	}

	return &anim, nil
}
