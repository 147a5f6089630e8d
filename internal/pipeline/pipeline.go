package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/parser"
	"github.com/DAYGoodTime/rosu-native/internal/score"
	"github.com/pkg/errors"
)

// Query is one pp calculation request. Accuracy is a fraction in [0, 1].
// MaxCombo is the combo the full combo estimate is priced at.
type Query struct {
	Path     string
	Mods     game.Mods
	Accuracy float64
	Misses   int
	Combo    int
	MaxCombo int
}

type Result struct {
	PP           float64
	PPAim        float64
	PPSpeed      float64
	PPAcc        float64
	PPFlashlight float64
	PPFC         float64
	MaxPP        float64
	Stars        float64

	Mode game.Mode
	// max combo of the beatmap itself, not of the query
	MapMaxCombo int
	Attributes  *score.Attributes
	Debug       string
}

// Cache stores difficulty attributes between runs. Get returns nil, nil on
// a miss.
type Cache interface {
	Get(ctx context.Context, path string, mods game.Mods) (*score.Attributes, error)
	Put(ctx context.Context, path string, mods game.Mods, attrs *score.Attributes) error
}

// Pipeline prices a query against its beatmap. Cache and Logger are
// optional.
type Pipeline struct {
	Parser parser.Parser
	Scorer score.Scorer
	Cache  Cache
	Logger *log.Logger
}

var discard = log.New(io.Discard, "", 0)

func (p *Pipeline) logger() *log.Logger {
	if nil == p.Logger {
		return discard
	}
	return p.Logger
}

// Validate rejects queries that can never be priced.
func Validate(q Query) error {
	switch {
	case "" == q.Path:
		return errors.New("empty beatmap path")
	case math.IsNaN(q.Accuracy) || q.Accuracy < 0 || q.Accuracy > 1:
		return errors.Errorf("accuracy %v outside [0, 1]", q.Accuracy)
	case q.Misses < 0 || q.Combo < 0 || q.MaxCombo < 0:
		return errors.New("negative count")
	case q.Combo > q.MaxCombo:
		return errors.Errorf("combo %d above max combo %d", q.Combo, q.MaxCombo)
	}
	return nil
}

// Run validates q, computes the difficulty attributes once and prices the
// play, its full combo variant and the perfect play against them.
//
// For rulesets other than osu!standard Run returns a valid result together
// with an error of kind UnsupportedRuleset.
func (p *Pipeline) Run(ctx context.Context, q Query) (*Result, error) {
	if err := Validate(q); nil != err {
		return nil, fail(InvalidInput, "validate", err)
	}
	attrs, err := p.Attributes(ctx, q.Path, q.Mods)
	if nil != err {
		return nil, err
	}
	return p.Price(q, attrs)
}

func price(s score.Scorer, q Query, attrs *score.Attributes) (*Result, error) {
	actual, err := s.Performance(attrs, score.Play{
		Combo:    q.Combo,
		Misses:   q.Misses,
		Accuracy: q.Accuracy,
	})
	if nil != err {
		return nil, fail(InternalComputationError, "performance", err)
	}
	fc, err := s.Performance(attrs, score.Play{
		Combo:    q.MaxCombo,
		Misses:   q.Misses,
		Accuracy: q.Accuracy,
	})
	if nil != err {
		return nil, fail(InternalComputationError, "full combo", err)
	}
	perfect, err := s.Performance(attrs, score.Play{
		Combo:    attrs.MaxCombo,
		Accuracy: 1,
	})
	if nil != err {
		return nil, fail(InternalComputationError, "max", err)
	}

	r := &Result{
		PP:           actual.PP,
		PPAim:        actual.Aim,
		PPSpeed:      actual.Speed,
		PPAcc:        actual.Acc,
		PPFlashlight: actual.Flashlight,
		PPFC:         fc.PP,
		MaxPP:        perfect.PP,
		Stars:        attrs.Stars,
		Mode:         attrs.Mode,
		MapMaxCombo:  attrs.MaxCombo,
		Attributes:   attrs,
		Debug:        Debug(q, attrs.Mode),
	}
	if err := checkFinite(r); nil != err {
		return nil, fail(InternalComputationError, "result", err)
	}

	if game.ModeOsu != r.Mode {
		r.PPAim, r.PPSpeed, r.PPAcc, r.PPFlashlight = 0, 0, 0, 0
		return r, fail(UnsupportedRuleset, "decompose", errors.Errorf("mode %s", r.Mode))
	}
	return r, nil
}

// Price runs the three performance calculations of q against attrs
// computed earlier for the same beatmap and mods. q is not validated.
func (p *Pipeline) Price(q Query, attrs *score.Attributes) (*Result, error) {
	r, err := price(p.Scorer, q, attrs)
	if nil != r {
		p.logger().Printf("%s %s: %.2fpp (fc %.2f, max %.2f, %.2f stars)", q.Path, q.Mods, r.PP, r.PPFC, r.MaxPP, r.Stars)
	}
	return r, err
}

// Attributes loads the difficulty attributes of the beatmap at path,
// from the cache when one is set.
func (p *Pipeline) Attributes(ctx context.Context, path string, mods game.Mods) (*score.Attributes, error) {
	if nil != p.Cache {
		attrs, err := p.Cache.Get(ctx, path, mods)
		switch {
		case nil != err:
			p.logger().Println("unable to read cached attributes", err)
		case nil != attrs:
			p.logger().Println("cached attributes for", path)
			return attrs, nil
		}
	}

	b, err := p.Parser.Parse(ctx, path)
	if nil != err {
		return nil, fail(MapParseError, "load", err)
	}
	attrs, err := p.Scorer.Difficulty(b, mods)
	if nil != err {
		return nil, fail(InternalComputationError, "difficulty", err)
	}

	if nil != p.Cache {
		if err := p.Cache.Put(ctx, path, mods, attrs); nil != err {
			p.logger().Println("unable to cache attributes", err)
		}
	}
	return attrs, nil
}

// Debug renders the diagnostic line attached to every result.
func Debug(q Query, mode game.Mode) string {
	s := fmt.Sprintf("mods %d combo %d miss %d acc %s max_combo %d",
		uint32(q.Mods), q.Combo, q.Misses, strconv.FormatFloat(q.Accuracy, 'f', -1, 64), q.MaxCombo)
	if game.ModeOsu != mode {
		s += " mode " + mode.String()
	}
	return s
}

func checkFinite(r *Result) error {
	for _, v := range []float64{r.PP, r.PPAim, r.PPSpeed, r.PPAcc, r.PPFlashlight, r.PPFC, r.MaxPP, r.Stars} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errors.Errorf("value %v is negative or not finite", v)
		}
	}
	return nil
}
