package score

import (
	"math"

	"github.com/DAYGoodTime/rosu-native/internal/game"
)

const (
	maniaOverallDecay    = 0.3
	maniaIndividualDecay = 0.125
	maniaStarScale       = 0.018
)

func maniaDifficulty(b *game.Beatmap, mods game.Mods) *Attributes {
	clock := mods.ClockRate()
	d := b.Difficulty.Adjusted(mods)
	counts := b.Counts()
	keys := int(math.Round(b.Difficulty.CircleSize))

	overall := newStrainSkill(maniaOverallDecay, 1)
	individual := make([]float64, max(keys, 1))
	holdEnds := make([]float64, max(keys, 1))
	var prevTime float64
	for i, h := range b.HitObjects {
		col := h.Column(keys)
		time := h.Time / clock
		if i == 0 {
			prevTime = time
		}
		delta := time - prevTime

		holdFactor := 1.0
		for c := range holdEnds {
			if c != col && holdEnds[c] > time {
				holdFactor = 1.25
				break
			}
		}
		// individual strain lives per column and decays on its own clock
		for c := range individual {
			individual[c] *= math.Pow(maniaIndividualDecay, delta/1000)
		}
		individual[col] += 2 * holdFactor
		if h.Kind == game.KindHold {
			holdEnds[col] = h.EndTime / clock
		}

		overall.process(time, delta, holdFactor+individual[col]*0.1)
		prevTime = time
	}

	greatWindow := (64 - 3*d.OverallDifficulty) / clock
	return &Attributes{
		Mode:              game.ModeMania,
		Mods:              mods,
		Stars:             weightedSum(overall.strainPeaks(), 0.9) * maniaStarScale,
		OverallDifficulty: d.OverallDifficulty,
		HPDrainRate:       d.HPDrainRate,
		CircleSize:        b.Difficulty.CircleSize,
		GreatWindow:       greatWindow,
		Circles:           counts.Circles,
		Holds:             counts.Holds,
		MaxCombo:          counts.Circles + 2*counts.Holds,
	}
}

func maniaPerformanceOf(attrs *Attributes, play Play) Performance {
	total := attrs.Objects()
	hits := game.HitCountsFor(play.Accuracy, total, play.Misses)
	if total == 0 {
		return Performance{Hits: hits}
	}
	diff := math.Pow(math.Max(attrs.Stars-0.15, 0.05), 2.2) *
		math.Max(0, 5*hits.Accuracy()-4) *
		(1 + 0.1*math.Min(1, float64(total)/1500))

	multiplier := 8.0
	if attrs.Mods.Has(game.NoFail) {
		multiplier *= 0.75
	}
	if attrs.Mods.Has(game.Easy) {
		multiplier *= 0.5
	}
	return Performance{
		PP:                 diff * multiplier,
		Difficulty:         diff,
		EffectiveMissCount: float64(hits.NMiss),
		Hits:               hits,
	}
}
