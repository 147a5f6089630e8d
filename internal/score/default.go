package score

import (
	"math"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/pkg/errors"
)

var (
	ErrUnknownMode  = errors.New("unknown ruleset")
	ErrNoAttributes = errors.New("no difficulty attributes")
	ErrNotFinite    = errors.New("value is negative or not finite")
)

type DefaultScorer struct{}

func (s *DefaultScorer) Difficulty(b *game.Beatmap, mods game.Mods) (*Attributes, error) {
	if nil == b {
		return nil, errors.New("nil beatmap")
	}
	var attrs *Attributes
	switch b.Mode {
	case game.ModeOsu:
		attrs = osuDifficulty(b, mods)
	case game.ModeTaiko:
		attrs = taikoDifficulty(b, mods)
	case game.ModeCatch:
		attrs = catchDifficulty(b, mods)
	case game.ModeMania:
		attrs = maniaDifficulty(b, mods)
	default:
		return nil, errors.Wrapf(ErrUnknownMode, "mode %d", b.Mode)
	}
	if err := finite("stars", attrs.Stars, attrs.Aim, attrs.Speed, attrs.Flashlight); nil != err {
		return nil, err
	}
	return attrs, nil
}

func (s *DefaultScorer) Performance(attrs *Attributes, play Play) (Performance, error) {
	if nil == attrs {
		return Performance{}, ErrNoAttributes
	}
	var p Performance
	switch attrs.Mode {
	case game.ModeOsu:
		p = osuPerformanceOf(attrs, play)
	case game.ModeTaiko:
		p = taikoPerformanceOf(attrs, play)
	case game.ModeCatch:
		p = catchPerformanceOf(attrs, play)
	case game.ModeMania:
		p = maniaPerformanceOf(attrs, play)
	default:
		return Performance{}, errors.Wrapf(ErrUnknownMode, "mode %d", attrs.Mode)
	}
	if err := finite("pp", p.PP, p.Aim, p.Speed, p.Acc, p.Flashlight, p.Difficulty); nil != err {
		return Performance{}, err
	}
	return p, nil
}

func finite(what string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errors.Wrapf(ErrNotFinite, "%s %v", what, v)
		}
	}
	return nil
}
