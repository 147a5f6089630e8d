package game

import "strconv"

// Mode is the ruleset a beatmap is written for.
type Mode uint8

const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

var ModeNames = map[Mode]string{
	ModeOsu:   "osu",
	ModeTaiko: "taiko",
	ModeCatch: "catch",
	ModeMania: "mania",
}

func (m Mode) String() string {
	if name, ok := ModeNames[m]; ok {
		return name
	}
	return "mode" + strconv.Itoa(int(m))
}

// Difficulty holds the [Difficulty] section of a beatmap.
type Difficulty struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Restrict clamps every value into the range the game accepts.
// Mania stores the key count in CircleSize, hence the wider bound.
func (d *Difficulty) Restrict(mode Mode) {
	d.HPDrainRate = clamp(d.HPDrainRate, 0, 10)
	d.OverallDifficulty = clamp(d.OverallDifficulty, 0, 10)
	d.ApproachRate = clamp(d.ApproachRate, 0, 10)
	if mode == ModeMania {
		d.CircleSize = clamp(d.CircleSize, 1, 18)
	} else {
		d.CircleSize = clamp(d.CircleSize, 0, 10)
	}
	d.SliderMultiplier = clamp(d.SliderMultiplier, 0.4, 3.6)
	d.SliderTickRate = clamp(d.SliderTickRate, 0.5, 8)
}

// Adjusted returns the settings after HR/EZ, without any clock rate.
func (d Difficulty) Adjusted(mods Mods) Difficulty {
	if mods.Has(HardRock) {
		d.CircleSize = min(d.CircleSize*1.3, 10)
		d.ApproachRate = min(d.ApproachRate*1.4, 10)
		d.OverallDifficulty = min(d.OverallDifficulty*1.4, 10)
		d.HPDrainRate = min(d.HPDrainRate*1.4, 10)
	}
	if mods.Has(Easy) {
		d.CircleSize /= 2
		d.ApproachRate /= 2
		d.OverallDifficulty /= 2
		d.HPDrainRate /= 2
	}
	return d
}

func ApproachRateToPreempt(ar float64) float64 {
	if ar < 5 {
		return 1200 + 600*(5-ar)/5
	}
	return 1200 - 750*(ar-5)/5
}

func PreemptToApproachRate(preempt float64) float64 {
	if preempt > 1200 {
		return 5 - (preempt-1200)*5/600
	}
	return 5 + (1200-preempt)*5/750
}

// GreatWindow is the osu!standard 300 hit window in ms, either side.
func GreatWindow(od float64) float64 {
	return 80 - 6*od
}

func GreatWindowToOverallDifficulty(window float64) float64 {
	return (80 - window) / 6
}
