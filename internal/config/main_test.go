package config

import (
	"path/filepath"
	"testing"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/testdata"
)

func TestParse(t *testing.T) {
	path, err := testdata.WriteMap(t.TempDir(), "map.osu", testdata.Std)
	if nil != err {
		t.Fatal(err)
	}

	c, err := Parse([]string{path})
	if nil != err {
		t.Fatal(err)
	}
	if c.Beatmap != path || c.Mods != 0 || c.Accuracy != 1 || c.Combo != -1 || c.MaxCombo != -1 || c.JSON {
		t.Fatalf("defaults: %+v", *c)
	}

	c, err = Parse([]string{"-m", "hddt", "-a", "98.5", "-x", "2", "-c", "300", "--max-combo", "500", "--json", "--cache", "a.db", path})
	if nil != err {
		t.Fatal(err)
	}
	if c.Mods != game.Hidden|game.DoubleTime || c.Accuracy != 0.985 || c.Misses != 2 ||
		c.Combo != 300 || c.MaxCombo != 500 || !c.JSON || c.Cache != "a.db" {
		t.Fatalf("flags: %+v", *c)
	}

	c, _ = Parse([]string{"--mods", "24", "--acc", "0.9", path})
	if c.Mods != game.Hidden|game.HardRock || c.Accuracy != 0.9 {
		t.Fatalf("bitmask: %+v", *c)
	}
}

func TestParseErrors(t *testing.T) {
	path, _ := testdata.WriteMap(t.TempDir(), "map.osu", testdata.Std)
	for _, args := range [][]string{
		{},
		{filepath.Join(t.TempDir(), "missing.osu")},
		{"--mods", "ZZ", path},
		{"--miss", "-3", path},
	} {
		if _, err := Parse(args); nil == err {
			t.Logf("%q: expected an error", args)
			t.Fail()
		}
	}
}
