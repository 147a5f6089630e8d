package game

import (
	"math"
	"testing"
)

var modTests = map[string]Mods{
	"":       0,
	"NM":     0,
	"24":     Hidden | HardRock,
	"HDHR":   Hidden | HardRock,
	"hddt":   Hidden | DoubleTime,
	"EZHTFL": Easy | HalfTime | Flashlight,
}

func TestParseMods(t *testing.T) {
	for in, expected := range modTests {
		out, err := ParseMods(in)
		if nil != err || out != expected {
			t.Logf("%q: got %v (%v), expected %v", in, out, err, expected)
			t.Fail()
		}
	}
	for _, in := range []string{"HDX", "ZZ"} {
		if _, err := ParseMods(in); nil == err {
			t.Log("expected an error for", in)
			t.Fail()
		}
	}
}

func TestModsString(t *testing.T) {
	if s := (Hidden | HardRock).String(); s != "HDHR" {
		t.Fatal("got", s)
	}
	if s := Mods(0).String(); s != "NM" {
		t.Fatal("got", s)
	}
}

func TestClockRate(t *testing.T) {
	if r := (Hidden | DoubleTime).ClockRate(); r != 1.5 {
		t.Fatal("DT rate", r)
	}
	if r := Nightcore.ClockRate(); r != 1.5 {
		t.Fatal("NC rate", r)
	}
	if r := HalfTime.ClockRate(); r != 0.75 {
		t.Fatal("HT rate", r)
	}
	if r := Mods(0).ClockRate(); r != 1 {
		t.Fatal("NM rate", r)
	}
}

func TestHitCountsFor(t *testing.T) {
	perfect := HitCountsFor(1, 500, 0)
	if perfect != (HitCounts{N300: 500}) {
		t.Fatal("perfect play gave", perfect)
	}

	prev := -1.0
	for acc := 0.0; acc <= 1.0; acc += 0.01 {
		h := HitCountsFor(acc, 500, 3)
		if h.Total() != 500 || h.NMiss != 3 {
			t.Fatal("bad distribution", h)
		}
		if h.Accuracy() < prev {
			t.Fatalf("accuracy went down at %v: %v < %v", acc, h.Accuracy(), prev)
		}
		if math.Abs(h.Accuracy()-acc) > 0.02 && acc > 0.34 {
			t.Logf("accuracy %v approximated as %v", acc, h.Accuracy())
			t.Fail()
		}
		prev = h.Accuracy()
	}

	if h := HitCountsFor(0.9, 10, 50); h != (HitCounts{NMiss: 10}) {
		t.Fatal("misses were not clamped", h)
	}
	if h := HitCountsFor(1, 0, 0); h.Total() != 0 {
		t.Fatal("empty map gave", h)
	}
}

func TestAdjusted(t *testing.T) {
	d := Difficulty{CircleSize: 4, ApproachRate: 9, OverallDifficulty: 8, HPDrainRate: 5}
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	hr := d.Adjusted(HardRock)
	if !near(hr.CircleSize, 5.2) || hr.ApproachRate != 10 || hr.OverallDifficulty != 10 || !near(hr.HPDrainRate, 7) {
		t.Fatal("HR gave", hr)
	}
	ez := d.Adjusted(Easy)
	if ez.CircleSize != 2 || ez.ApproachRate != 4.5 {
		t.Fatal("EZ gave", ez)
	}
}

func TestPreemptRoundTrip(t *testing.T) {
	for ar := 0.0; ar <= 11; ar += 0.5 {
		back := PreemptToApproachRate(ApproachRateToPreempt(ar))
		if math.Abs(back-ar) > 1e-9 {
			t.Logf("AR %v came back as %v", ar, back)
			t.Fail()
		}
	}
}

func TestTimeObjects(t *testing.T) {
	b := &Beatmap{
		FormatVersion: 14,
		Difficulty:    Difficulty{SliderMultiplier: 1, SliderTickRate: 1},
		TimingPoints:  []TimingPoint{{Time: 0, BeatLength: 500, Uninherited: true}},
		HitObjects: []*HitObject{
			{Kind: KindCircle, Time: 2000},
			{
				Kind:          KindSlider,
				Time:          1000,
				Pos:           Vec2{100, 100},
				PathType:      'L',
				ControlPoints: []Vec2{{400, 100}},
				Slides:        1,
				Length:        300,
			},
		},
	}
	b.TimeObjects()

	if b.HitObjects[0].Kind != KindSlider {
		t.Fatal("objects were not sorted by time")
	}
	s := b.HitObjects[0]
	// 100px per beat at 500ms per beat
	if s.EndTime != 2500 {
		t.Fatal("slider end time", s.EndTime)
	}
	if s.TickCount != 2 {
		t.Fatal("slider ticks", s.TickCount)
	}
	if s.EndPos != (Vec2{400, 100}) {
		t.Fatal("slider end", s.EndPos)
	}
	if c := b.MaxCombo(); c != 1+(1+2+1) {
		t.Fatal("max combo", c)
	}
}
