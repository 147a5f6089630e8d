package score

import (
	"math"

	"github.com/DAYGoodTime/rosu-native/internal/game"
)

const (
	taikoDecayBase  = 0.3
	taikoStarScale  = 0.02
	taikoColorBonus = 0.5
)

func taikoDifficulty(b *game.Beatmap, mods game.Mods) *Attributes {
	clock := mods.ClockRate()
	d := b.Difficulty.Adjusted(mods)
	counts := b.Counts()

	skill := newStrainSkill(taikoDecayBase, 1)
	var prev *game.HitObject
	for _, h := range b.HitObjects {
		if h.Kind != game.KindCircle {
			continue
		}
		if nil != prev {
			delta := (h.Time - prev.Time) / clock
			strainTime := math.Max(delta, minDeltaTime)
			value := 100 / strainTime
			if h.IsKat() != prev.IsKat() {
				value *= 1 + taikoColorBonus
			}
			skill.process(h.Time/clock, delta, value)
		}
		prev = h
	}

	greatWindow := (50 - 3*d.OverallDifficulty) / clock
	return &Attributes{
		Mode:              game.ModeTaiko,
		Mods:              mods,
		Stars:             weightedSum(skill.strainPeaks(), 0.9) * taikoStarScale,
		OverallDifficulty: d.OverallDifficulty,
		HPDrainRate:       d.HPDrainRate,
		GreatWindow:       greatWindow,
		Circles:           counts.Circles,
		Sliders:           counts.Sliders,
		Spinners:          counts.Spinners,
		MaxCombo:          counts.Circles,
	}
}

// taikoHits has no 50s: a 100 is worth half a 300.
func taikoHits(acc float64, total, misses int) game.HitCounts {
	if total <= 0 {
		return game.HitCounts{}
	}
	misses = max(0, min(misses, total))
	remaining := total - misses
	n300 := int(math.Round(2*acc*float64(total))) - remaining
	n300 = max(0, min(n300, remaining))
	return game.HitCounts{N300: n300, N100: remaining - n300, NMiss: misses}
}

func taikoPerformanceOf(attrs *Attributes, play Play) Performance {
	total := attrs.Objects()
	hits := taikoHits(play.Accuracy, total, play.Misses)
	if total == 0 {
		return Performance{Hits: hits}
	}
	t := float64(total)
	acc := (float64(hits.N300) + 0.5*float64(hits.N100)) / t
	misses := float64(hits.NMiss)

	diff := math.Pow(5*math.Max(1, attrs.Stars/0.115)-4, 2.25) / 1150
	lenBonus := 1 + 0.1*math.Min(1, t/1500)
	diff *= lenBonus
	diff *= math.Pow(0.986, misses)
	if attrs.Mods.Has(game.Easy) {
		diff *= 0.985
	}
	if attrs.Mods.Has(game.Hidden) {
		diff *= 1.025
	}
	if attrs.Mods.Has(game.Flashlight) {
		diff *= 1.05 * lenBonus
	}
	diff *= acc * acc

	accValue := 0.0
	if attrs.GreatWindow > 0 {
		accValue = math.Pow(60/attrs.GreatWindow, 1.1) * math.Pow(acc, 8) * math.Pow(attrs.Stars, 0.4) * 27
		accLen := math.Min(1.15, math.Pow(t/1500, 0.3))
		accValue *= accLen
		if attrs.Mods.Has(game.Hidden) && attrs.Mods.Has(game.Flashlight) {
			accValue *= math.Max(1.05, 1.075*accLen)
		}
	}

	multiplier := 1.13
	if attrs.Mods.Has(game.Hidden) {
		multiplier *= 1.075
	}
	if attrs.Mods.Has(game.Easy) {
		multiplier *= 0.975
	}
	pp := math.Pow(math.Pow(diff, 1.1)+math.Pow(accValue, 1.1), 1/1.1) * multiplier

	return Performance{
		PP:                 pp,
		Difficulty:         diff,
		EffectiveMissCount: misses,
		Hits:               hits,
	}
}
