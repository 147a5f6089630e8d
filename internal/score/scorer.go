package score

import (
	"github.com/DAYGoodTime/rosu-native/internal/game"
)

// Scorer turns a beatmap into difficulty attributes once, then prices any
// number of plays against those attributes.
type Scorer interface {
	Difficulty(b *game.Beatmap, mods game.Mods) (*Attributes, error)
	Performance(attrs *Attributes, play Play) (Performance, error)
}

// Play describes what happened in a play. Combo and Misses are clamped to
// what the beatmap allows; Accuracy is a fraction in [0, 1].
type Play struct {
	Combo    int
	Misses   int
	Accuracy float64
}

// Attributes are the mod-adjusted difficulty attributes of a beatmap.
type Attributes struct {
	Mode  game.Mode `json:"mode"`
	Mods  game.Mods `json:"mods"`
	Stars float64   `json:"stars"`

	// osu!standard ratings
	Aim          float64 `json:"aim,omitempty"`
	Speed        float64 `json:"speed,omitempty"`
	Flashlight   float64 `json:"flashlight,omitempty"`
	SliderFactor float64 `json:"slider_factor,omitempty"`

	ApproachRate      float64 `json:"ar"`
	OverallDifficulty float64 `json:"od"`
	HPDrainRate       float64 `json:"hp"`
	CircleSize        float64 `json:"cs"`
	// great hit window in ms after clock rate, either side
	GreatWindow float64 `json:"great_window"`

	Circles  int `json:"circles"`
	Sliders  int `json:"sliders"`
	Spinners int `json:"spinners"`
	Holds    int `json:"holds"`
	// catch only
	Fruits   int `json:"fruits,omitempty"`
	Droplets int `json:"droplets,omitempty"`
	MaxCombo int `json:"max_combo"`
}

// Objects is the number of judged objects for the ruleset.
func (a *Attributes) Objects() int {
	switch a.Mode {
	case game.ModeTaiko:
		return a.Circles
	case game.ModeCatch:
		return a.Fruits + a.Droplets
	}
	return a.Circles + a.Sliders + a.Spinners + a.Holds
}

// Performance is the pp of one play. Aim, Speed, Acc and Flashlight are
// only filled for osu!standard.
type Performance struct {
	PP         float64
	Aim        float64
	Speed      float64
	Acc        float64
	Flashlight float64
	// strain component for taiko, catch and mania
	Difficulty float64

	EffectiveMissCount float64
	Hits               game.HitCounts
}
