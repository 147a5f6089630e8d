package score

import (
	"math"

	"github.com/DAYGoodTime/rosu-native/internal/game"
)

type osuPerformance struct {
	attrs *Attributes
	mods  game.Mods
	hits  game.HitCounts
	combo int
	acc   float64
	total float64

	effectiveMissCount float64
}

func osuPerformanceOf(attrs *Attributes, play Play) Performance {
	hits := game.HitCountsFor(play.Accuracy, attrs.Objects(), play.Misses)
	p := &osuPerformance{
		attrs: attrs,
		mods:  attrs.Mods,
		hits:  hits,
		combo: clampCombo(play.Combo, attrs.MaxCombo),
		acc:   hits.Accuracy(),
		total: float64(hits.Total()),
	}
	if p.total == 0 {
		return Performance{Hits: hits}
	}
	p.effectiveMissCount = p.missCount()

	multiplier := osuPerformanceBase
	if p.mods.Has(game.NoFail) {
		multiplier *= math.Max(0.9, 1-0.02*p.effectiveMissCount)
	}
	if p.mods.Has(game.SpunOut) {
		multiplier *= 1 - math.Pow(float64(attrs.Spinners)/p.total, 0.85)
	}
	if p.mods.Has(game.Relax) {
		od := attrs.OverallDifficulty
		okMultiplier := 1.0
		if od > 0 {
			okMultiplier = math.Max(0, 1-math.Pow(od/13.33, 1.8))
		}
		mehMultiplier := 1.0
		if od > 0 {
			mehMultiplier = math.Max(0, 1-math.Pow(od/13.33, 5))
		}
		p.effectiveMissCount = math.Min(
			p.effectiveMissCount+float64(hits.N100)*okMultiplier+float64(hits.N50)*mehMultiplier,
			p.total,
		)
	}

	aim := p.aimValue()
	speed := p.speedValue()
	acc := p.accValue()
	fl := p.flashlightValue()
	pp := math.Pow(
		math.Pow(aim, 1.1)+math.Pow(speed, 1.1)+math.Pow(acc, 1.1)+math.Pow(fl, 1.1),
		1/1.1,
	) * multiplier

	return Performance{
		PP:                 pp,
		Aim:                aim,
		Speed:              speed,
		Acc:                acc,
		Flashlight:         fl,
		EffectiveMissCount: p.effectiveMissCount,
		Hits:               hits,
	}
}

func clampCombo(combo, maxCombo int) int {
	if combo < 0 {
		return 0
	}
	if maxCombo > 0 && combo > maxCombo {
		return maxCombo
	}
	return combo
}

// missCount guesses how many slider breaks hide behind a dropped combo.
func (p *osuPerformance) missCount() float64 {
	comboBased := 0.0
	if p.attrs.Sliders > 0 {
		threshold := float64(p.attrs.MaxCombo) - 0.1*float64(p.attrs.Sliders)
		if float64(p.combo) < threshold {
			comboBased = threshold / math.Max(1, float64(p.combo))
		}
	}
	comboBased = math.Min(comboBased, p.total)
	return math.Max(float64(p.hits.NMiss), comboBased)
}

func (p *osuPerformance) lengthBonus() float64 {
	bonus := 0.95 + 0.4*math.Min(1, p.total/2000)
	if p.total > 2000 {
		bonus += math.Log10(p.total/2000) * 0.5
	}
	return bonus
}

func (p *osuPerformance) comboScaling() float64 {
	if p.attrs.MaxCombo <= 0 {
		return 1
	}
	return math.Min(math.Pow(float64(p.combo), 0.8)/math.Pow(float64(p.attrs.MaxCombo), 0.8), 1)
}

func (p *osuPerformance) aimValue() float64 {
	raw := p.attrs.Aim
	if p.mods.Has(game.TouchDevice) {
		raw = math.Pow(raw, 0.8)
	}
	value := osuBaseValue(raw)
	lenBonus := p.lengthBonus()
	value *= lenBonus

	if p.effectiveMissCount > 0 {
		value *= 0.97 * math.Pow(1-math.Pow(p.effectiveMissCount/p.total, 0.775), p.effectiveMissCount)
	}
	value *= p.comboScaling()

	ar := p.attrs.ApproachRate
	arFactor := 0.0
	if ar > 10.33 {
		arFactor = 0.3 * (ar - 10.33)
	} else if ar < 8 {
		arFactor = 0.05 * (8 - ar)
	}
	if p.mods.Has(game.Relax) {
		arFactor = 0
	}
	value *= 1 + arFactor*lenBonus

	if p.mods.Has(game.Hidden) {
		value *= 1 + 0.04*(12-ar)
	}

	if p.attrs.Sliders > 0 {
		estimateDifficult := float64(p.attrs.Sliders) * 0.15
		dropped := clampF(
			math.Min(float64(p.hits.N100+p.hits.N50+p.hits.NMiss), float64(p.attrs.MaxCombo-p.combo)),
			0, estimateDifficult,
		)
		nerf := (1-p.attrs.SliderFactor)*math.Pow(1-dropped/estimateDifficult, 3) + p.attrs.SliderFactor
		value *= nerf
	}

	value *= p.acc
	value *= 0.98 + math.Pow(p.attrs.OverallDifficulty, 2)/2500
	return value
}

func (p *osuPerformance) speedValue() float64 {
	if p.mods.Has(game.Relax) {
		return 0
	}
	value := osuBaseValue(p.attrs.Speed)
	lenBonus := p.lengthBonus()
	value *= lenBonus

	if p.effectiveMissCount > 0 {
		value *= 0.97 * math.Pow(1-math.Pow(p.effectiveMissCount/p.total, 0.775), math.Pow(p.effectiveMissCount, 0.875))
	}
	value *= p.comboScaling()

	ar := p.attrs.ApproachRate
	if ar > 10.33 {
		value *= 1 + 0.3*(ar-10.33)*lenBonus
	}
	if p.mods.Has(game.Hidden) {
		value *= 1 + 0.04*(12-ar)
	}

	od := p.attrs.OverallDifficulty
	value *= (0.95 + od*od/750) * math.Pow(p.acc, (14.5-math.Max(od, 8))/2)

	if n50 := float64(p.hits.N50); n50 >= p.total/500 {
		value *= math.Pow(0.99, n50-p.total/500)
	}
	return value
}

func (p *osuPerformance) accValue() float64 {
	if p.mods.Has(game.Relax) {
		return 0
	}
	circles := float64(p.attrs.Circles)
	better := 0.0
	if circles > 0 {
		better = (float64(p.hits.N300)-(p.total-circles))*6 + float64(p.hits.N100)*2 + float64(p.hits.N50)
		better = math.Max(0, better/(circles*6))
	}

	value := math.Pow(1.52163, p.attrs.OverallDifficulty) * math.Pow(better, 24) * 2.83
	value *= math.Min(1.15, math.Pow(circles/1000, 0.3))
	if p.mods.Has(game.Hidden) {
		value *= 1.08
	}
	if p.mods.Has(game.Flashlight) {
		value *= 1.02
	}
	return value
}

func (p *osuPerformance) flashlightValue() float64 {
	if !p.mods.Has(game.Flashlight) {
		return 0
	}
	value := p.attrs.Flashlight * p.attrs.Flashlight * 25
	if p.effectiveMissCount > 0 {
		value *= 0.97 * math.Pow(1-math.Pow(p.effectiveMissCount/p.total, 0.775), math.Pow(p.effectiveMissCount, 0.875))
	}
	value *= p.comboScaling()
	lenFactor := 0.7 + 0.1*math.Min(1, p.total/200)
	if p.total > 200 {
		lenFactor += 0.2 * math.Min(1, (p.total-200)/200)
	}
	value *= lenFactor
	value *= 0.5 + p.acc/2
	value *= 0.98 + math.Pow(p.attrs.OverallDifficulty, 2)/2500
	return value
}
