package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/pipeline"
	"github.com/DAYGoodTime/rosu-native/internal/score"
	"github.com/DAYGoodTime/rosu-native/internal/theme"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

type DefaultRenderer struct {
	Out   io.Writer
	Theme theme.Theme

	buffer strings.Builder
}

// ForFile renders to f, in colour only when f is a terminal.
func ForFile(f *os.File) *DefaultRenderer {
	var t theme.Theme = &theme.PlainTheme{}
	if term.IsTerminal(int(f.Fd())) {
		t = &theme.DefaultTheme{}
	}
	return &DefaultRenderer{Out: f, Theme: t}
}

func (r *DefaultRenderer) row(label, value string) {
	r.buffer.WriteString(r.Theme.Label(fmt.Sprintf("%-9s", label)))
	r.buffer.WriteString(" ")
	r.buffer.WriteString(value)
	r.buffer.WriteString("\n")
}

func pp(v float64) string {
	return humanize.CommafWithDigits(math.Round(v*100)/100, 2)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func (r *DefaultRenderer) Result(q pipeline.Query, res *pipeline.Result) error {
	a := res.Attributes
	r.row("beatmap", r.Theme.Value(q.Path))
	r.row("mode", fmt.Sprintf("%s  mods %s", res.Mode, q.Mods))
	r.row("stars", r.Theme.Stars(res.Stars, fmt.Sprintf("%.2f", res.Stars)))
	if nil != a {
		r.row("objects", r.objects(a))
		r.row("stats", fmt.Sprintf("AR %.2f  OD %.2f  CS %.2f  HP %.2f", a.ApproachRate, a.OverallDifficulty, a.CircleSize, a.HPDrainRate))
	}
	r.row("play", fmt.Sprintf("%s/%s combo  %s miss  %.2f%%",
		count(q.Combo), count(res.MapMaxCombo), count(q.Misses), q.Accuracy*100))
	r.row("pp", r.Theme.PP(pp(res.PP)))
	if game.ModeOsu == res.Mode {
		r.row("", fmt.Sprintf("aim %s  speed %s  acc %s  flashlight %s",
			pp(res.PPAim), pp(res.PPSpeed), pp(res.PPAcc), pp(res.PPFlashlight)))
	} else {
		r.row("", r.Theme.Warn("no breakdown for "+res.Mode.String()))
	}
	r.row("fc pp", r.Theme.PP(pp(res.PPFC))+fmt.Sprintf(" at %s combo", count(q.MaxCombo)))
	r.row("max pp", r.Theme.PP(pp(res.MaxPP)))
	return r.flush()
}

func (r *DefaultRenderer) objects(a *score.Attributes) string {
	switch a.Mode {
	case game.ModeCatch:
		return fmt.Sprintf("%s fruits  %s droplets", count(a.Fruits), count(a.Droplets))
	case game.ModeMania:
		return fmt.Sprintf("%s notes  %s holds", count(a.Circles), count(a.Holds))
	case game.ModeTaiko:
		return fmt.Sprintf("%s hits", count(a.Circles))
	}
	return fmt.Sprintf("%s circles  %s sliders  %s spinners", count(a.Circles), count(a.Sliders), count(a.Spinners))
}

type jsonResult struct {
	Beatmap      string            `json:"beatmap"`
	Mods         string            `json:"mods"`
	Accuracy     float64           `json:"acc"`
	Misses       int               `json:"miss"`
	Combo        int               `json:"combo"`
	MaxCombo     int               `json:"max_combo"`
	PP           float64           `json:"pp"`
	PPAim        float64           `json:"pp_aim"`
	PPSpeed      float64           `json:"pp_speed"`
	PPAcc        float64           `json:"pp_acc"`
	PPFlashlight float64           `json:"pp_flashlight"`
	PPFC         float64           `json:"pp_fc"`
	MaxPP        float64           `json:"max_pp"`
	Stars        float64           `json:"map_star"`
	Debug        string            `json:"debug_text"`
	Attributes   *score.Attributes `json:"attributes,omitempty"`
}

func (r *DefaultRenderer) JSON(q pipeline.Query, res *pipeline.Result) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Beatmap:      q.Path,
		Mods:         q.Mods.String(),
		Accuracy:     q.Accuracy,
		Misses:       q.Misses,
		Combo:        q.Combo,
		MaxCombo:     q.MaxCombo,
		PP:           res.PP,
		PPAim:        res.PPAim,
		PPSpeed:      res.PPSpeed,
		PPAcc:        res.PPAcc,
		PPFlashlight: res.PPFlashlight,
		PPFC:         res.PPFC,
		MaxPP:        res.MaxPP,
		Stars:        res.Stars,
		Debug:        res.Debug,
		Attributes:   res.Attributes,
	})
}

func (r *DefaultRenderer) Error(err error) {
	r.buffer.WriteString(r.Theme.Warn("error: "))
	r.buffer.WriteString(err.Error())
	r.buffer.WriteString("\n")
	r.flush()
}

func (r *DefaultRenderer) flush() error {
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	return err
}
