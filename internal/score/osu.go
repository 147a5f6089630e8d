package score

import (
	"math"

	"github.com/DAYGoodTime/rosu-native/internal/game"
)

const (
	normalisedRadius    = 50.0
	maxSliderRadius     = normalisedRadius * 2.4
	assumedSliderRadius = normalisedRadius * 1.8
	minDeltaTime        = 25.0

	aimMultiplier   = 23.55
	aimDecayBase    = 0.15
	speedMultiplier = 1375.0
	speedDecayBase  = 0.3
	flMultiplier    = 0.05
	flDecayBase     = 0.15

	osuDifficultyMultiplier = 0.0675
	osuPerformanceBase      = 1.14
)

type osuObject struct {
	kind       game.ObjectKind
	pos        game.Vec2 // scaled
	endPos     game.Vec2 // scaled
	time       float64   // clock adjusted
	travelDist float64
	travelTime float64
}

type osuDiffObject struct {
	idx        int
	base, last *osuObject
	start      float64
	delta      float64
	strainTime float64

	jumpDist    float64
	minJumpDist float64
	minJumpTime float64
	angle       float64
	hasAngle    bool
}

func osuScalingFactor(cs float64) (scaling, radius float64) {
	radius = 64 * (1 - 0.7*(cs-5)/5) / 2
	scaling = normalisedRadius / radius
	if radius < 30 {
		scaling *= 1 + math.Min(30-radius, 5)/50
	}
	return scaling, radius
}

func osuObjects(b *game.Beatmap, clock, scaling float64) []*osuObject {
	objects := make([]*osuObject, 0, len(b.HitObjects))
	for _, h := range b.HitObjects {
		o := &osuObject{
			kind:   h.Kind,
			pos:    h.Pos.Scale(scaling),
			endPos: h.Pos.Scale(scaling),
			time:   h.Time / clock,
		}
		if h.Kind == game.KindSlider {
			o.endPos = h.EndPos.Scale(scaling)
			// the cursor can idle inside the follow circle for part of the path
			o.travelDist = math.Max(0, h.Length*float64(h.Slides)*scaling-assumedSliderRadius)
			o.travelTime = math.Max(h.Duration()/clock, minDeltaTime)
		}
		objects = append(objects, o)
	}
	return objects
}

func osuDiffObjects(objects []*osuObject) []*osuDiffObject {
	if len(objects) < 2 {
		return nil
	}
	diffs := make([]*osuDiffObject, 0, len(objects)-1)
	for i := 1; i < len(objects); i++ {
		cur, last := objects[i], objects[i-1]
		d := &osuDiffObject{
			idx:   i - 1,
			base:  cur,
			last:  last,
			start: cur.time,
			delta: cur.time - last.time,
		}
		d.strainTime = math.Max(d.delta, minDeltaTime)
		d.minJumpTime = d.strainTime

		if cur.kind != game.KindSpinner && last.kind != game.KindSpinner {
			lastCursor := last.endPos
			d.jumpDist = cur.pos.Sub(lastCursor).Len()
			d.minJumpDist = d.jumpDist
			if last.kind == game.KindSlider {
				d.minJumpTime = math.Max(d.strainTime-last.travelTime, minDeltaTime)
				tailJump := cur.pos.Sub(last.endPos).Len()
				d.minJumpDist = math.Max(0, math.Min(d.jumpDist-(maxSliderRadius-assumedSliderRadius), tailJump-maxSliderRadius))
			}
			if i >= 2 {
				lastLast := objects[i-2]
				v1 := lastLast.endPos.Sub(last.pos)
				v2 := cur.pos.Sub(lastCursor)
				dot := v1.Dot(v2)
				det := v1.X*v2.Y - v1.Y*v2.X
				d.angle = math.Abs(math.Atan2(det, dot))
				d.hasAngle = true
			}
		}
		diffs = append(diffs, d)
	}
	return diffs
}

func wideAngleBonus(angle float64) float64 {
	return math.Pow(math.Sin(3.0/4*(clampF(angle, math.Pi/6, 5*math.Pi/6)-math.Pi/6)), 2)
}

func acuteAngleBonus(angle float64) float64 {
	return 1 - wideAngleBonus(angle)
}

func aimStrain(diffs []*osuDiffObject, cur *osuDiffObject, withSliders bool) float64 {
	if cur.base.kind == game.KindSpinner || cur.idx <= 1 || cur.last.kind == game.KindSpinner {
		return 0
	}
	last, lastLast := diffs[cur.idx-1], diffs[cur.idx-2]

	curVel := cur.jumpDist / cur.strainTime
	if withSliders && cur.last.kind == game.KindSlider {
		travelVel := cur.last.travelDist / cur.last.travelTime
		movementVel := cur.minJumpDist / cur.minJumpTime
		curVel = math.Max(curVel, movementVel+travelVel)
	}
	prevVel := last.jumpDist / last.strainTime
	if withSliders && last.last.kind == game.KindSlider {
		travelVel := last.last.travelDist / last.last.travelTime
		movementVel := last.minJumpDist / last.minJumpTime
		prevVel = math.Max(prevVel, movementVel+travelVel)
	}

	wide, acute, sliderBonus, velChange := 0.0, 0.0, 0.0, 0.0
	strain := curVel

	if math.Max(cur.strainTime, last.strainTime) < 1.25*math.Min(cur.strainTime, last.strainTime) &&
		cur.hasAngle && last.hasAngle && lastLast.hasAngle {
		angleBonus := math.Min(curVel, prevVel)
		wide = wideAngleBonus(cur.angle)
		acute = acuteAngleBonus(cur.angle)
		if cur.strainTime > 100 {
			acute = 0
		} else {
			acute *= acuteAngleBonus(last.angle) *
				math.Min(angleBonus, 125/cur.strainTime) *
				math.Pow(math.Sin(math.Pi/2*math.Min(1, (100-cur.strainTime)/25)), 2) *
				math.Pow(math.Sin(math.Pi/2*(clampF(cur.jumpDist, 50, 100)-50)/50), 2)
		}
		wide *= angleBonus * (1 - math.Min(wide, math.Pow(wideAngleBonus(last.angle), 3)))
		acute *= 0.5 + 0.5*(1-math.Min(acute, math.Pow(acuteAngleBonus(lastLast.angle), 3)))
	}

	if math.Max(prevVel, curVel) != 0 {
		prevVel = (last.jumpDist + last.last.travelDist) / last.strainTime
		curVel = (cur.jumpDist + cur.last.travelDist) / cur.strainTime
		if hi := math.Max(prevVel, curVel); hi > 0 {
			distRatio := math.Pow(math.Sin(math.Pi/2*math.Abs(prevVel-curVel)/hi), 2)
			overlapBuff := math.Min(125/math.Min(cur.strainTime, last.strainTime), math.Abs(prevVel-curVel))
			velChange = overlapBuff * distRatio
			velChange *= math.Pow(math.Min(cur.strainTime, last.strainTime)/math.Max(cur.strainTime, last.strainTime), 2)
		}
	}

	if cur.last.kind == game.KindSlider {
		sliderBonus = cur.last.travelDist / cur.last.travelTime
	}

	strain += math.Max(acute*1.95, wide*1.5+velChange*0.75)
	if withSliders {
		strain += sliderBonus * 1.35
	}
	return strain
}

func speedStrain(diffs []*osuDiffObject, cur *osuDiffObject, greatWindow float64) float64 {
	if cur.base.kind == game.KindSpinner {
		return 0
	}
	strainTime := cur.strainTime
	greatWindowFull := greatWindow * 2
	travel := 0.0
	if cur.idx > 0 {
		prev := diffs[cur.idx-1]
		if strainTime < greatWindowFull && prev.strainTime > strainTime {
			strainTime = lerp(prev.strainTime, strainTime, strainTime/greatWindowFull)
		}
		travel = prev.base.travelDist
	}
	strainTime /= clampF(strainTime/greatWindowFull/0.93, 0.92, 1)

	speedBonus := 1.0
	if strainTime < 75 {
		speedBonus += 0.75 * math.Pow((75-strainTime)/40, 2)
	}
	dist := math.Min(125, travel+cur.minJumpDist)
	return (speedBonus + speedBonus*math.Pow(dist/125, 3.5)) / strainTime
}

func flashlightStrain(diffs []*osuDiffObject, cur *osuDiffObject, scaling float64, hidden bool) float64 {
	if cur.base.kind == game.KindSpinner {
		return 0
	}
	smallDistNerf := 1.0
	cumulativeTime := 0.0
	result := 0.0
	lastObj := cur
	for i := 0; i < min(cur.idx, 10); i++ {
		prev := diffs[cur.idx-1-i]
		cumulativeTime += lastObj.strainTime
		if prev.base.kind != game.KindSpinner {
			jump := cur.base.pos.Sub(prev.base.endPos).Len()
			if i == 0 {
				smallDistNerf = math.Min(1, jump/75)
			}
			stackNerf := math.Min(1, prev.jumpDist/scaling/25)
			result += stackNerf * scaling * jump / cumulativeTime
		}
		lastObj = prev
	}
	result = math.Pow(smallDistNerf*result, 2)
	if hidden {
		result *= 1.2
	}
	return result
}

func osuDifficulty(b *game.Beatmap, mods game.Mods) *Attributes {
	clock := mods.ClockRate()
	d := b.Difficulty.Adjusted(mods)
	counts := b.Counts()

	greatWindow := game.GreatWindow(d.OverallDifficulty) / clock
	preempt := game.ApproachRateToPreempt(d.ApproachRate) / clock

	attrs := &Attributes{
		Mode:              game.ModeOsu,
		Mods:              mods,
		ApproachRate:      game.PreemptToApproachRate(preempt),
		OverallDifficulty: game.GreatWindowToOverallDifficulty(greatWindow),
		HPDrainRate:       d.HPDrainRate,
		CircleSize:        d.CircleSize,
		GreatWindow:       greatWindow,
		Circles:           counts.Circles,
		Sliders:           counts.Sliders,
		Spinners:          counts.Spinners,
		MaxCombo:          b.MaxCombo(),
		SliderFactor:      1,
	}

	scaling, _ := osuScalingFactor(d.CircleSize)
	diffs := osuDiffObjects(osuObjects(b, clock, scaling))

	aim := newStrainSkill(aimDecayBase, aimMultiplier)
	aimNoSliders := newStrainSkill(aimDecayBase, aimMultiplier)
	speed := newStrainSkill(speedDecayBase, speedMultiplier)
	flashlight := newStrainSkill(flDecayBase, flMultiplier)
	for _, cur := range diffs {
		aim.process(cur.start, cur.delta, aimStrain(diffs, cur, true))
		aimNoSliders.process(cur.start, cur.delta, aimStrain(diffs, cur, false))
		speed.process(cur.start, cur.delta, speedStrain(diffs, cur, greatWindow))
		if mods.Has(game.Flashlight) {
			flashlight.process(cur.start, cur.delta, flashlightStrain(diffs, cur, scaling, mods.Has(game.Hidden)))
		}
	}

	aimRating := math.Sqrt(reducedWeightedSum(aim.strainPeaks(), 10, 0.75, 0.9)*1.06) * osuDifficultyMultiplier
	aimNoSlidersRating := math.Sqrt(reducedWeightedSum(aimNoSliders.strainPeaks(), 10, 0.75, 0.9)*1.06) * osuDifficultyMultiplier
	speedRating := math.Sqrt(reducedWeightedSum(speed.strainPeaks(), 5, 0.75, 0.9)*1.04) * osuDifficultyMultiplier
	flRating := 0.0
	if mods.Has(game.Flashlight) {
		sum := 0.0
		for _, p := range flashlight.strainPeaks() {
			sum += p
		}
		flRating = math.Sqrt(sum*1.06) * osuDifficultyMultiplier
	}

	if aimRating > 0 {
		attrs.SliderFactor = aimNoSlidersRating / aimRating
	}
	if mods.Has(game.TouchDevice) {
		aimRating = math.Pow(aimRating, 0.8)
	}
	if mods.Has(game.Relax) {
		speedRating = 0
	}

	baseAim := osuBaseValue(aimRating)
	baseSpeed := osuBaseValue(speedRating)
	baseFL := flRating * flRating * 25
	basePerformance := math.Pow(
		math.Pow(baseAim, 1.1)+math.Pow(baseSpeed, 1.1)+math.Pow(baseFL, 1.1),
		1/1.1,
	)

	attrs.Aim = aimRating
	attrs.Speed = speedRating
	attrs.Flashlight = flRating
	if basePerformance > 1e-5 {
		attrs.Stars = math.Cbrt(osuPerformanceBase) * 0.027 *
			(math.Cbrt(100000/math.Pow(2, 1/1.1)*basePerformance) + 4)
	}
	return attrs
}

func osuBaseValue(rating float64) float64 {
	return math.Pow(5*math.Max(1, rating/osuDifficultyMultiplier)-4, 3) / 100000
}
