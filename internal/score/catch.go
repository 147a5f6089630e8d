package score

import (
	"math"

	"github.com/DAYGoodTime/rosu-native/internal/game"
)

const (
	catchDecayBase = 0.2
	catchStarScale = 0.153
	playfieldWidth = 512.0
)

type fruit struct {
	x    float64
	time float64
}

// catchFruits flattens the map into everything the catcher must reach:
// circles, slider heads, repeats and tails, and slider ticks as droplets.
func catchFruits(b *game.Beatmap) (fruits []fruit, nFruits, nDroplets int) {
	for _, h := range b.HitObjects {
		switch h.Kind {
		case game.KindCircle:
			fruits = append(fruits, fruit{h.Pos.X, h.Time})
			nFruits++
		case game.KindSlider:
			span := h.Duration() / float64(h.Slides)
			for s := 0; s <= h.Slides; s++ {
				x := h.Pos.X
				if s%2 == 1 {
					x = h.PathEnd.X
				}
				fruits = append(fruits, fruit{x, h.Time + span*float64(s)})
				nFruits++
			}
			nDroplets += h.TickCount * h.Slides
		}
	}
	return fruits, nFruits, nDroplets
}

func catchDifficulty(b *game.Beatmap, mods game.Mods) *Attributes {
	clock := mods.ClockRate()
	d := b.Difficulty.Adjusted(mods)
	counts := b.Counts()

	halfCatcher := 106.75 * (1 - 0.7*(d.CircleSize-5)/5) / 2
	fruits, nFruits, nDroplets := catchFruits(b)

	skill := newStrainSkill(catchDecayBase, 1)
	for i := 1; i < len(fruits); i++ {
		cur, prev := fruits[i], fruits[i-1]
		delta := (cur.time - prev.time) / clock
		strainTime := math.Max(delta, 40)
		dist := math.Max(0, math.Abs(cur.x-prev.x)-halfCatcher)
		skill.process(cur.time/clock, delta, dist/playfieldWidth*1000/strainTime+0.1)
	}

	preempt := game.ApproachRateToPreempt(d.ApproachRate) / clock
	return &Attributes{
		Mode:         game.ModeCatch,
		Mods:         mods,
		Stars:        math.Sqrt(weightedSum(skill.strainPeaks(), 0.9)) * catchStarScale,
		ApproachRate: game.PreemptToApproachRate(preempt),
		CircleSize:   d.CircleSize,
		HPDrainRate:  d.HPDrainRate,
		Circles:      counts.Circles,
		Sliders:      counts.Sliders,
		Spinners:     counts.Spinners,
		Fruits:       nFruits,
		Droplets:     nDroplets,
		MaxCombo:     nFruits + nDroplets,
	}
}

func catchPerformanceOf(attrs *Attributes, play Play) Performance {
	total := attrs.Objects()
	if total == 0 {
		return Performance{}
	}
	misses := max(0, min(play.Misses, total))
	remaining := total - misses
	caught := max(0, min(remaining, int(math.Round(play.Accuracy*float64(total)))))
	hits := game.HitCounts{N300: caught, N50: remaining - caught, NMiss: misses}

	t := float64(total)
	acc := float64(caught) / t
	combo := float64(clampCombo(play.Combo, attrs.MaxCombo))

	value := math.Pow(5*math.Max(1, attrs.Stars/0.0049)-4, 2) / 100000
	lenBonus := 0.95 + 0.3*math.Min(1, t/2500)
	if t > 2500 {
		lenBonus += math.Log10(t/2500) * 0.475
	}
	value *= lenBonus
	value *= math.Pow(0.97, float64(misses))
	if attrs.MaxCombo > 0 {
		value *= math.Min(math.Pow(combo, 0.8)/math.Pow(float64(attrs.MaxCombo), 0.8), 1)
	}

	ar := attrs.ApproachRate
	arFactor := 1.0
	if ar > 9 {
		arFactor += 0.1 * (ar - 9)
	}
	if ar > 10 {
		arFactor += 0.1 * (ar - 10)
	}
	if ar < 8 {
		arFactor += 0.025 * (8 - ar)
	}
	value *= arFactor

	if attrs.Mods.Has(game.Hidden) {
		if ar <= 10 {
			value *= 1.05 + 0.075*(10-ar)
		} else {
			value *= 1.01 + 0.04*(11-math.Min(ar, 11))
		}
	}
	if attrs.Mods.Has(game.Flashlight) {
		value *= 1.35 * lenBonus
	}
	value *= math.Pow(acc, 5.5)
	if attrs.Mods.Has(game.NoFail) {
		value *= 0.9
	}

	return Performance{
		PP:                 value,
		Difficulty:         value,
		EffectiveMissCount: float64(misses),
		Hits:               hits,
	}
}
