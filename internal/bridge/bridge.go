// Package bridge turns raw queries from the C boundary into pipeline runs
// and pipeline results into C heap results.
package bridge

import (
	"context"
	"io"
	"log"
	"math"
	"os"

	"github.com/DAYGoodTime/rosu-native/internal/ffi"
	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/parser"
	"github.com/DAYGoodTime/rosu-native/internal/pipeline"
	"github.com/DAYGoodTime/rosu-native/internal/score"
	"github.com/pkg/errors"
)

var logger = log.New(io.Discard, "rosu-native: ", log.LstdFlags)

// SetLogging routes diagnostics to stderr, or drops them.
func SetLogging(enabled bool) {
	if enabled {
		logger.SetOutput(os.Stderr)
		return
	}
	logger.SetOutput(io.Discard)
}

// newPipeline builds the pipeline for one call. Nothing survives between
// calls.
var newPipeline = func() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Parser: &parser.DefaultParser{},
		Scorer: &score.DefaultScorer{},
		Logger: logger,
	}
}

// Query converts raw into a pipeline query.
func Query(raw *ffi.RawQuery) (pipeline.Query, error) {
	if nil == raw {
		return pipeline.Query{}, errors.Wrap(ffi.ErrNullPointer, "query")
	}
	path, err := ffi.GoString(raw.Path)
	if nil != err {
		return pipeline.Query{}, errors.Wrap(err, "beatmap path")
	}
	for _, n := range []uintptr{raw.Miss, raw.Combo, raw.MaxCombo} {
		if uint64(n) > math.MaxInt32 {
			return pipeline.Query{}, errors.Errorf("count %d out of range", n)
		}
	}
	return pipeline.Query{
		Path:     path,
		Mods:     game.Mods(raw.Mods),
		Accuracy: raw.Acc,
		Misses:   int(raw.Miss),
		Combo:    int(raw.Combo),
		MaxCombo: int(raw.MaxCombo),
	}, nil
}

// Calculate runs one query. The result is nil unless status is StatusOK or
// StatusUnsupportedRuleset, and is owned by the caller, who releases it
// with ffi.FreeResult.
func Calculate(raw *ffi.RawQuery) (res *ffi.RawResult, status Status) {
	defer func() {
		if r := recover(); nil != r {
			logger.Println("recovered from panic:", r)
			res, status = nil, StatusInternalError
		}
	}()

	q, err := Query(raw)
	if nil != err {
		logger.Println("rejected query:", err)
		return nil, StatusInvalidInput
	}

	r, err := newPipeline().Run(context.Background(), q)
	status = StatusFor(err)
	if nil == r {
		logger.Println("calculation failed:", err)
		return nil, status
	}
	if nil != err {
		logger.Println(err)
	}

	res, err = Assemble(r)
	if nil != err {
		logger.Println("unable to assemble result:", err)
		return nil, StatusInternalError
	}
	return res, status
}

// Assemble copies r onto the C heap. Either everything is allocated or
// nothing is.
func Assemble(r *pipeline.Result) (*ffi.RawResult, error) {
	debug, err := ffi.CString(r.Debug)
	if nil != err {
		return nil, errors.Wrap(err, "debug text")
	}
	res, err := ffi.NewResult()
	if nil != err {
		ffi.FreeString(debug)
		return nil, errors.Wrap(err, "result")
	}
	res.PP = r.PP
	res.PPAcc = r.PPAcc
	res.PPAim = r.PPAim
	res.PPSpeed = r.PPSpeed
	res.PPFC = r.PPFC
	res.MaxPP = r.MaxPP
	res.MapStar = r.Stars
	res.DebugText = debug
	return res, nil
}

// Sample returns a zeroed result whose debug text is "OK".
func Sample() (*ffi.RawResult, error) {
	return Assemble(&pipeline.Result{Debug: "OK"})
}

// Hello returns an owned copy of text, or nil when text is nil or not
// valid UTF-8.
func Hello(text *byte) *byte {
	s, err := ffi.GoString(text)
	if nil != err {
		logger.Println("hello:", err)
		return nil
	}
	out, err := ffi.CString(s)
	if nil != err {
		logger.Println("hello:", err)
		return nil
	}
	return out
}
