package game

import "math"

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
	KindHold
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

type HitObject struct {
	Kind     ObjectKind
	Pos      Vec2
	Time     float64 // ms
	EndTime  float64 // ms, spinners, holds and sliders once timed
	NewCombo bool
	HitSound uint8

	// sliders only
	PathType      byte // B, L, P or C
	ControlPoints []Vec2
	Slides        int
	Length        float64 // osu!pixels, one slide
	TickCount     int     // ticks per slide
	PathEnd       Vec2    // far end of the path
	EndPos        Vec2    // where the slider finishes after all slides
}

const (
	SoundWhistle = 2
	SoundClap    = 8
)

// IsKat reports whether a taiko hit is a rim (blue) hit.
func (h *HitObject) IsKat() bool {
	return h.HitSound&(SoundWhistle|SoundClap) != 0
}

// Column is the mania key column of the object, given the key count.
func (h *HitObject) Column(keys int) int {
	if keys <= 0 {
		return 0
	}
	col := int(math.Floor(h.Pos.X * float64(keys) / 512))
	return max(0, min(col, keys-1))
}

// Duration is the span between the start and end of the object.
func (h *HitObject) Duration() float64 {
	if h.EndTime > h.Time {
		return h.EndTime - h.Time
	}
	return 0
}

// Combo is the combo an object awards in osu!standard.
func (h *HitObject) Combo() int {
	if h.Kind != KindSlider {
		return 1
	}
	// head, ticks on every slide, one repeat/tail per slide
	return 1 + h.TickCount*h.Slides + h.Slides
}
