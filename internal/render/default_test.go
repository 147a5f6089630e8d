package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/pipeline"
	"github.com/DAYGoodTime/rosu-native/internal/score"
	"github.com/DAYGoodTime/rosu-native/internal/theme"
)

var (
	query = pipeline.Query{
		Path:     "songs/map.osu",
		Mods:     game.Hidden | game.HardRock,
		Accuracy: 0.985,
		Misses:   2,
		Combo:    1200,
		MaxCombo: 1500,
	}
	result = &pipeline.Result{
		PP:          1234.5678,
		PPAim:       600,
		PPSpeed:     500,
		PPAcc:       134.5,
		PPFC:        1400,
		MaxPP:       1500.25,
		Stars:       7.12,
		Mode:        game.ModeOsu,
		MapMaxCombo: 1500,
		Attributes:  &score.Attributes{Mode: game.ModeOsu, Circles: 1024, Sliders: 200, Spinners: 3},
		Debug:       "mods 24 combo 1200 miss 2 acc 0.985 max_combo 1500",
	}
)

func TestResultPlain(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out, Theme: &theme.PlainTheme{}}
	if err := r.Result(query, result); nil != err {
		t.Fatal(err)
	}
	s := out.String()
	for _, expected := range []string{
		"songs/map.osu",
		"mods HDHR",
		"7.12",
		"1,024 circles",
		"1,200/1,500 combo",
		"98.50%",
		"1,234.57",
		"aim 600  speed 500  acc 134.5",
		"1,500.25",
	} {
		if !strings.Contains(s, expected) {
			t.Logf("missing %q in\n%s", expected, s)
			t.Fail()
		}
	}
	if strings.Contains(s, "\033[") {
		t.Fatal("plain output contains escapes")
	}
}

func TestResultOtherMode(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out, Theme: &theme.PlainTheme{}}
	mania := *result
	mania.Mode = game.ModeMania
	mania.Attributes = &score.Attributes{Mode: game.ModeMania, Circles: 800, Holds: 120}
	r.Result(query, &mania)
	if s := out.String(); !strings.Contains(s, "no breakdown for mania") || !strings.Contains(s, "120 holds") {
		t.Fatal(s)
	}
}

func TestJSON(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out, Theme: &theme.DefaultTheme{}}
	if err := r.JSON(query, result); nil != err {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(out.Bytes(), &decoded); nil != err {
		t.Fatal(err)
	}
	if decoded["pp"] != 1234.5678 || decoded["mods"] != "HDHR" || decoded["debug_text"] != result.Debug {
		t.Fatal(decoded)
	}
}

func TestError(t *testing.T) {
	var out bytes.Buffer
	r := &DefaultRenderer{Out: &out, Theme: &theme.PlainTheme{}}
	r.Error(errors.New("boom"))
	if out.String() != "error: boom\n" {
		t.Fatalf("%q", out.String())
	}
}
