package game

import (
	"math"
	"sort"
)

type Beatmap struct {
	FormatVersion int
	Mode          Mode
	Title         string
	Artist        string
	Creator       string
	Version       string
	StackLeniency float64
	Difficulty    Difficulty
	TimingPoints  []TimingPoint
	HitObjects    []*HitObject
}

type ObjectCounts struct {
	Circles  int
	Sliders  int
	Spinners int
	Holds    int
}

func (c ObjectCounts) Total() int {
	return c.Circles + c.Sliders + c.Spinners + c.Holds
}

func (b *Beatmap) Counts() ObjectCounts {
	var c ObjectCounts
	for _, h := range b.HitObjects {
		switch h.Kind {
		case KindCircle:
			c.Circles++
		case KindSlider:
			c.Sliders++
		case KindSpinner:
			c.Spinners++
		case KindHold:
			c.Holds++
		}
	}
	return c
}

// MaxCombo is the osu!standard maximum combo.
func (b *Beatmap) MaxCombo() int {
	combo := 0
	for _, h := range b.HitObjects {
		combo += h.Combo()
	}
	return combo
}

// timingAt returns the beat length and slider velocity in effect at t.
func (b *Beatmap) timingAt(t float64) (beatLength, sv float64) {
	beatLength, sv = 1000, 1
	foundBeat := false
	for _, tp := range b.TimingPoints {
		if tp.Time > t+1e-3 {
			if !foundBeat && tp.Uninherited {
				// objects before the first timing point use the first one
				beatLength = tp.BeatLength
				foundBeat = true
			}
			break
		}
		if tp.Uninherited {
			beatLength = tp.BeatLength
			sv = 1
			foundBeat = true
		} else {
			sv = tp.SliderVelocity()
		}
	}
	if beatLength <= 0 || math.IsNaN(beatLength) {
		beatLength = 1000
	}
	return beatLength, sv
}

// maxTicks bounds the tick count of a single slide; broken maps can ask
// for millions.
const maxTicks = 32768

// TimeObjects sorts the hit objects and fills in slider end times, tick
// counts and end positions. It must run after timing points are set.
func (b *Beatmap) TimeObjects() {
	sort.SliceStable(b.TimingPoints, func(i, j int) bool {
		return b.TimingPoints[i].Time < b.TimingPoints[j].Time
	})
	sort.SliceStable(b.HitObjects, func(i, j int) bool {
		return b.HitObjects[i].Time < b.HitObjects[j].Time
	})

	for _, h := range b.HitObjects {
		if h.Kind != KindSlider {
			continue
		}
		if h.Slides < 1 {
			h.Slides = 1
		}
		beatLength, sv := b.timingAt(h.Time)
		scoringDistance := 100 * b.Difficulty.SliderMultiplier * sv
		velocity := scoringDistance / beatLength // px per ms
		if h.Length <= 0 {
			h.Length = pathLength(h.Pos, h.ControlPoints)
		}
		h.EndTime = h.Time + h.Length/velocity*float64(h.Slides)

		tickDistance := scoringDistance / b.Difficulty.SliderTickRate
		if b.FormatVersion < 8 {
			tickDistance /= sv
		}
		minDistanceFromEnd := velocity * 10
		h.TickCount = 0
		if tickDistance > 0 {
			for d := tickDistance; d < h.Length-minDistanceFromEnd && h.TickCount < maxTicks; d += tickDistance {
				h.TickCount++
			}
		}

		h.PathEnd = pointAt(h.Pos, h.ControlPoints, h.Length)
		h.EndPos = h.Pos
		if h.Slides%2 == 1 {
			h.EndPos = h.PathEnd
		}
	}
}

func pathLength(head Vec2, points []Vec2) float64 {
	total := 0.0
	prev := head
	for _, p := range points {
		total += p.Sub(prev).Len()
		prev = p
	}
	return total
}

// pointAt walks the control polygon and returns the point dist along it.
// Curved paths are approximated by their control polygon.
func pointAt(head Vec2, points []Vec2, dist float64) Vec2 {
	prev := head
	for _, p := range points {
		seg := p.Sub(prev)
		l := seg.Len()
		if l > 0 && dist <= l {
			return prev.Add(seg.Scale(dist / l))
		}
		dist -= l
		prev = p
	}
	return prev
}
