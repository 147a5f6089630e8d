package parser

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/testdata"
	"github.com/pkg/errors"
)

func TestParseStd(t *testing.T) {
	var psr Parser = &DefaultParser{}
	path, err := testdata.WriteMap(t.TempDir(), "std.osu", testdata.Std)
	if nil != err {
		t.Fatal(err)
	}
	b, err := psr.Parse(context.Background(), path)
	if nil != err {
		t.Fatal("unable to parse beatmap", err)
	}

	if b.Mode != game.ModeOsu || b.FormatVersion != 14 {
		t.Fatal("header", b.Mode, b.FormatVersion)
	}
	if b.Title != "Fixture Jumps" || b.Version != "Insane" {
		t.Fatal("metadata", b.Title, b.Version)
	}
	d := b.Difficulty
	if d.CircleSize != 4 || d.OverallDifficulty != 8 || d.ApproachRate != 9 || d.SliderMultiplier != 1.8 {
		t.Fatal("difficulty", d)
	}
	if len(b.TimingPoints) != 2 || !b.TimingPoints[0].Uninherited || b.TimingPoints[1].Uninherited {
		t.Fatal("timing points", b.TimingPoints)
	}

	c := b.Counts()
	if c.Circles != testdata.StdCircles || c.Sliders != testdata.StdSliders || c.Spinners != testdata.StdSpinners {
		t.Fatal("object counts", c)
	}
	if combo := b.MaxCombo(); combo != testdata.StdMaxCombo {
		t.Fatal("max combo", combo)
	}
	for i := 1; i < len(b.HitObjects); i++ {
		if b.HitObjects[i].Time < b.HitObjects[i-1].Time {
			t.Fatal("hit objects are not in time order")
		}
	}
}

func TestParseModes(t *testing.T) {
	maps := map[string]game.Mode{
		testdata.Taiko: game.ModeTaiko,
		testdata.Catch: game.ModeCatch,
		testdata.Mania: game.ModeMania,
	}
	psr := &DefaultParser{}
	for content, mode := range maps {
		b, err := psr.Decode(context.Background(), strings.NewReader(content))
		if nil != err {
			t.Fatal(mode, err)
		}
		if b.Mode != mode {
			t.Log("expected", mode, "got", b.Mode)
			t.Fail()
		}
	}
}

func TestParseHolds(t *testing.T) {
	b, err := (&DefaultParser{}).Decode(context.Background(), strings.NewReader(testdata.Mania))
	if nil != err {
		t.Fatal(err)
	}
	if b.Counts().Holds != 16 {
		t.Fatal("holds", b.Counts().Holds)
	}
	for _, h := range b.HitObjects {
		if h.Kind == game.KindHold && h.EndTime <= h.Time {
			t.Fatal("hold without a duration", h)
		}
	}
}

var badMaps = map[string]error{
	"":                                          ErrInvalidHeader,
	"not a beatmap\n":                           ErrInvalidHeader,
	"osu file format vX\n":                      ErrInvalidHeader,
	"osu file format v14\n[General]\nMode: 0\n": ErrNoHitObjects,
}

func TestDecodeErrors(t *testing.T) {
	psr := &DefaultParser{}
	for content, expected := range badMaps {
		_, err := psr.Decode(context.Background(), strings.NewReader(content))
		if !errors.Is(err, expected) {
			t.Logf("%q: expected %v, got %v", content, expected, err)
			t.Fail()
		}
	}
}

func TestDecodeBadHitObject(t *testing.T) {
	content := "osu file format v14\n[HitObjects]\n1,2\n"
	if _, err := (&DefaultParser{}).Decode(context.Background(), strings.NewReader(content)); nil == err {
		t.Fatal("expected an error for a truncated hit object")
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := (&DefaultParser{}).Parse(context.Background(), "/nonexistent/map.osu")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected a not-exist error, got", err)
	}
}

func TestEarlyVersionOffset(t *testing.T) {
	content := "osu file format v4\n[TimingPoints]\n0,500,4,1,0,100,1,0\n[HitObjects]\n256,192,1000,1,0\n"
	b, err := (&DefaultParser{}).Decode(context.Background(), strings.NewReader(content))
	if nil != err {
		t.Fatal(err)
	}
	if b.HitObjects[0].Time != 1000+earlyVersionOffset {
		t.Fatal("time", b.HitObjects[0].Time)
	}
}

func TestDecodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var sb strings.Builder
	sb.WriteString("osu file format v14\n[HitObjects]\n")
	for i := 0; i < 2*checkEvery; i++ {
		sb.WriteString("256,192,1000,1,0\n")
	}
	if _, err := (&DefaultParser{}).Decode(ctx, strings.NewReader(sb.String())); !errors.Is(err, context.Canceled) {
		t.Fatal("expected context.Canceled, got", err)
	}
}
