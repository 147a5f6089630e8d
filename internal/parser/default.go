package parser

import (
	"bufio"
	"context"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/pkg/errors"
)

var (
	ErrInvalidHeader = errors.New("not an osu file")
	ErrNoHitObjects  = errors.New("beatmap has no hit objects")
)

const (
	// maps older than v5 had all times shifted
	earlyVersionOffset = 24
	maxLine            = 1024 * 1024
	// how often the context is polled while scanning
	checkEvery = 256
)

type section int

const (
	secNone section = iota
	secGeneral
	secMetadata
	secDifficulty
	secTimingPoints
	secHitObjects
)

var sections = map[string]section{
	"[general]":      secGeneral,
	"[metadata]":     secMetadata,
	"[difficulty]":   secDifficulty,
	"[timingpoints]": secTimingPoints,
	"[hitobjects]":   secHitObjects,
}

const (
	typeCircle  = 1
	typeSlider  = 2
	typeSpinner = 8
	typeHold    = 128
	typeCombo   = 4
)

// DefaultParser decodes .osu files.
type DefaultParser struct{}

func (p *DefaultParser) Parse(ctx context.Context, file string) (*game.Beatmap, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrap(err, "open beatmap")
	}
	defer f.Close()

	b, err := p.Decode(ctx, f)
	if nil != err {
		return nil, errors.Wrapf(err, "parse %s", file)
	}
	return b, nil
}

// Decode reads a beatmap from r.
func (p *DefaultParser) Decode(ctx context.Context, r io.Reader) (*game.Beatmap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var header string
	for sc.Scan() {
		header = strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if header != "" {
			break
		}
	}
	if err := sc.Err(); nil != err {
		return nil, errors.Wrap(err, "read header")
	}
	const prefix = "osu file format v"
	if !strings.HasPrefix(strings.ToLower(header), prefix) {
		return nil, errors.Wrapf(ErrInvalidHeader, "header %q", header)
	}
	version, err := strconv.Atoi(strings.TrimSpace(header[len(prefix):]))
	if nil != err {
		return nil, errors.Wrapf(ErrInvalidHeader, "version in %q", header)
	}

	b := &game.Beatmap{
		FormatVersion: version,
		StackLeniency: 0.7,
		Difficulty: game.Difficulty{
			HPDrainRate:       5,
			CircleSize:        5,
			OverallDifficulty: 5,
			ApproachRate:      5,
			SliderMultiplier:  1.4,
			SliderTickRate:    1,
		},
	}
	offset := 0.0
	if version < 5 {
		offset = earlyVersionOffset
	}

	sec := secNone
	seenAR := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo%checkEvery == 0 {
			if err := ctx.Err(); nil != err {
				return nil, err
			}
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			sec = sections[strings.ToLower(line)]
			continue
		}

		switch sec {
		case secGeneral:
			k, v := splitKeyVal(line)
			switch k {
			case "Mode":
				b.Mode = game.Mode(parseInt(v, 0))
			case "StackLeniency":
				b.StackLeniency = parseFloat(v, 0.7)
			}

		case secMetadata:
			k, v := splitKeyVal(line)
			switch k {
			case "Title":
				b.Title = v
			case "Artist":
				b.Artist = v
			case "Creator":
				b.Creator = v
			case "Version":
				b.Version = v
			}

		case secDifficulty:
			k, v := splitKeyVal(line)
			d := &b.Difficulty
			switch k {
			case "HPDrainRate":
				d.HPDrainRate = parseFloat(v, d.HPDrainRate)
			case "CircleSize":
				d.CircleSize = parseFloat(v, d.CircleSize)
			case "OverallDifficulty":
				d.OverallDifficulty = parseFloat(v, d.OverallDifficulty)
				if !seenAR {
					d.ApproachRate = d.OverallDifficulty
				}
			case "ApproachRate":
				d.ApproachRate = parseFloat(v, d.ApproachRate)
				seenAR = true
			case "SliderMultiplier":
				d.SliderMultiplier = parseFloat(v, d.SliderMultiplier)
			case "SliderTickRate":
				d.SliderTickRate = parseFloat(v, d.SliderTickRate)
			}

		case secTimingPoints:
			if tp, ok := parseTimingPoint(line, offset); ok {
				b.TimingPoints = append(b.TimingPoints, tp)
			}

		case secHitObjects:
			h, err := parseHitObject(line, offset)
			if nil != err {
				return nil, errors.Wrapf(err, "line %d", lineNo+1)
			}
			b.HitObjects = append(b.HitObjects, h)
		}
	}
	if err := sc.Err(); nil != err {
		return nil, errors.Wrap(err, "read beatmap")
	}
	if len(b.HitObjects) == 0 {
		return nil, ErrNoHitObjects
	}

	b.Difficulty.Restrict(b.Mode)
	b.TimeObjects()
	return b, nil
}

func parseTimingPoint(line string, offset float64) (game.TimingPoint, bool) {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return game.TimingPoint{}, false
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if nil != err {
		return game.TimingPoint{}, false
	}
	beatLength, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if nil != err || math.IsNaN(beatLength) || math.IsInf(beatLength, 0) {
		return game.TimingPoint{}, false
	}
	uninherited := beatLength > 0
	if len(parts) >= 7 {
		uninherited = strings.TrimSpace(parts[6]) == "1"
	}
	if uninherited && beatLength <= 0 {
		return game.TimingPoint{}, false
	}
	return game.TimingPoint{
		Time:        t + offset,
		BeatLength:  beatLength,
		Uninherited: uninherited,
	}, true
}

func parseHitObject(line string, offset float64) (*game.HitObject, error) {
	parts := strings.Split(line, ",")
	if len(parts) < 4 {
		return nil, errors.Errorf("hit object %q has too few fields", line)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	t, errT := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if nil != errX || nil != errY || nil != errT {
		return nil, errors.Errorf("hit object %q has a bad position or time", line)
	}
	flags := parseInt(parts[3], typeCircle)

	h := &game.HitObject{
		Pos:      game.Vec2{X: x, Y: y},
		Time:     t + offset,
		NewCombo: flags&typeCombo != 0,
	}
	if len(parts) >= 5 {
		h.HitSound = uint8(parseInt(parts[4], 0))
	}
	switch {
	case flags&typeHold != 0:
		h.Kind = game.KindHold
		h.EndTime = h.Time
		if len(parts) >= 6 {
			end := parts[5]
			if i := strings.IndexByte(end, ':'); i >= 0 {
				end = end[:i]
			}
			h.EndTime = math.Max(h.Time, parseFloat(end, h.Time)+offset)
		}

	case flags&typeSpinner != 0:
		h.Kind = game.KindSpinner
		h.EndTime = h.Time
		if len(parts) >= 6 {
			h.EndTime = math.Max(h.Time, parseFloat(parts[5], h.Time)+offset)
		}

	case flags&typeSlider != 0:
		h.Kind = game.KindSlider
		if len(parts) < 6 {
			return nil, errors.Errorf("slider %q has no path", line)
		}
		h.PathType, h.ControlPoints = parseSliderPath(parts[5])
		h.Slides = 1
		if len(parts) >= 7 {
			h.Slides = max(1, parseInt(parts[6], 1))
		}
		if len(parts) >= 8 {
			h.Length = math.Max(0, parseFloat(parts[7], 0))
		}

	default:
		h.Kind = game.KindCircle
	}
	return h, nil
}

// parseSliderPath splits "B|x:y|x:y" into the curve type and its points.
func parseSliderPath(spec string) (byte, []game.Vec2) {
	tokens := strings.Split(strings.TrimSpace(spec), "|")
	pathType := byte('B')
	if t := strings.TrimSpace(tokens[0]); len(t) == 1 {
		switch t[0] {
		case 'L', 'P', 'C', 'B':
			pathType = t[0]
		}
	}
	var points []game.Vec2
	for _, tok := range tokens[1:] {
		xy := strings.Split(tok, ":")
		if len(xy) != 2 {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if nil != errX || nil != errY {
			continue
		}
		points = append(points, game.Vec2{X: x, Y: y})
	}
	return pathType, points
}

func splitKeyVal(line string) (string, string) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

func parseInt(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if nil != err {
		return def
	}
	return v
}

func parseFloat(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if nil != err || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
