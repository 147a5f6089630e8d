// Command ppcalc prices a play on a beatmap from the command line.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/DAYGoodTime/rosu-native/internal/cache"
	"github.com/DAYGoodTime/rosu-native/internal/config"
	"github.com/DAYGoodTime/rosu-native/internal/parser"
	"github.com/DAYGoodTime/rosu-native/internal/pipeline"
	"github.com/DAYGoodTime/rosu-native/internal/render"
	"github.com/DAYGoodTime/rosu-native/internal/score"
	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		render.ForFile(os.Stderr).Error(err)
		os.Exit(1)
	}
}

func run(args []string) error {
	c, err := config.Parse(args)
	if nil != err {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if c.Verbose {
		logger = log.New(os.Stderr, "ppcalc: ", log.LstdFlags)
	}

	p := &pipeline.Pipeline{
		Parser: &parser.DefaultParser{},
		Scorer: &score.DefaultScorer{},
		Logger: logger,
	}
	if "" != c.Cache {
		attrsCache, err := cache.Open(c.Cache)
		if nil != err {
			return err
		}
		defer attrsCache.Close()
		p.Cache = cache.Paths{Cache: attrsCache}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	attrs, err := p.Attributes(ctx, c.Beatmap, c.Mods)
	if nil != err {
		return err
	}

	q := pipeline.Query{
		Path:     c.Beatmap,
		Mods:     c.Mods,
		Accuracy: c.Accuracy,
		Misses:   c.Misses,
		Combo:    c.Combo,
		MaxCombo: c.MaxCombo,
	}
	if q.MaxCombo < 0 {
		q.MaxCombo = attrs.MaxCombo
	}
	if q.Combo < 0 {
		q.Combo = q.MaxCombo
	}
	if err := pipeline.Validate(q); nil != err {
		return errors.WithMessage(err, "invalid play")
	}

	res, err := p.Price(q, attrs)
	if nil == res {
		return err
	}
	if nil != err {
		logger.Println(err)
	}

	r := render.ForFile(os.Stdout)
	if c.JSON {
		return r.JSON(q, res)
	}
	return r.Result(q, res)
}
