package score

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/DAYGoodTime/rosu-native/internal/game"
	"github.com/DAYGoodTime/rosu-native/internal/parser"
	"github.com/DAYGoodTime/rosu-native/internal/testdata"
)

func decode(t *testing.T, content string) *game.Beatmap {
	t.Helper()
	b, err := (&parser.DefaultParser{}).Decode(context.Background(), strings.NewReader(content))
	if nil != err {
		t.Fatal("unable to parse fixture", err)
	}
	return b
}

var fixtures = map[game.Mode]string{
	game.ModeOsu:   testdata.Std,
	game.ModeTaiko: testdata.Taiko,
	game.ModeCatch: testdata.Catch,
	game.ModeMania: testdata.Mania,
}

func TestStdAttributes(t *testing.T) {
	var s Scorer = &DefaultScorer{}
	attrs, err := s.Difficulty(decode(t, testdata.Std), 0)
	if nil != err {
		t.Fatal(err)
	}
	if attrs.MaxCombo != testdata.StdMaxCombo {
		t.Fatal("max combo", attrs.MaxCombo)
	}
	if attrs.Circles != testdata.StdCircles || attrs.Sliders != testdata.StdSliders || attrs.Spinners != testdata.StdSpinners {
		t.Fatal("counts", attrs.Circles, attrs.Sliders, attrs.Spinners)
	}
	if attrs.Stars <= 0 || attrs.Aim <= 0 || attrs.Speed <= 0 {
		t.Fatal("ratings", attrs.Stars, attrs.Aim, attrs.Speed)
	}
	if attrs.SliderFactor <= 0 || attrs.SliderFactor > 1 {
		t.Fatal("slider factor", attrs.SliderFactor)
	}
	if math.Abs(attrs.ApproachRate-9) > 1e-9 || math.Abs(attrs.OverallDifficulty-8) > 1e-9 {
		t.Fatal("ar/od", attrs.ApproachRate, attrs.OverallDifficulty)
	}
}

func TestClockRateRaisesStars(t *testing.T) {
	s := &DefaultScorer{}
	b := decode(t, testdata.Std)
	nm, _ := s.Difficulty(b, 0)
	dt, _ := s.Difficulty(b, game.DoubleTime)
	ht, _ := s.Difficulty(b, game.HalfTime)
	if !(dt.Stars > nm.Stars && nm.Stars > ht.Stars) {
		t.Fatal("stars HT/NM/DT", ht.Stars, nm.Stars, dt.Stars)
	}
	if dt.ApproachRate <= nm.ApproachRate {
		t.Fatal("DT did not raise AR", dt.ApproachRate)
	}
}

func TestFlashlightOnlyWithMod(t *testing.T) {
	s := &DefaultScorer{}
	b := decode(t, testdata.Std)
	nm, _ := s.Difficulty(b, 0)
	fl, _ := s.Difficulty(b, game.Flashlight)
	if nm.Flashlight != 0 || fl.Flashlight <= 0 {
		t.Fatal("flashlight rating", nm.Flashlight, fl.Flashlight)
	}
}

func TestPerformanceOrdering(t *testing.T) {
	s := &DefaultScorer{}
	mods := []game.Mods{0, game.Hidden | game.HardRock, game.DoubleTime, game.Flashlight | game.Hidden, game.NoFail | game.Easy}
	for mode, content := range fixtures {
		b := decode(t, content)
		for _, m := range mods {
			attrs, err := s.Difficulty(b, m)
			if nil != err {
				t.Fatal(mode, m, err)
			}
			max, err := s.Performance(attrs, Play{Combo: attrs.MaxCombo, Accuracy: 1})
			if nil != err {
				t.Fatal(mode, m, err)
			}
			for _, acc := range []float64{0.9, 0.97, 1} {
				for _, miss := range []int{0, 3} {
					fc, err := s.Performance(attrs, Play{Combo: attrs.MaxCombo, Misses: miss, Accuracy: acc})
					if nil != err {
						t.Fatal(mode, m, err)
					}
					play, _ := s.Performance(attrs, Play{Combo: attrs.MaxCombo / 2, Misses: miss, Accuracy: acc})
					if fc.PP < 0 || max.PP < fc.PP {
						t.Logf("%v %v acc %v miss %v: max %v fc %v", mode, m, acc, miss, max.PP, fc.PP)
						t.Fail()
					}
					if play.PP > fc.PP {
						t.Logf("%v %v acc %v miss %v: broken combo %v beat full combo %v", mode, m, acc, miss, play.PP, fc.PP)
						t.Fail()
					}
				}
			}
		}
	}
}

func TestPerformanceDecomposition(t *testing.T) {
	s := &DefaultScorer{}
	for mode, content := range fixtures {
		attrs, _ := s.Difficulty(decode(t, content), 0)
		p, err := s.Performance(attrs, Play{Combo: attrs.MaxCombo, Accuracy: 0.98})
		if nil != err {
			t.Fatal(mode, err)
		}
		if p.PP <= 0 {
			t.Log(mode, "has no pp")
			t.Fail()
		}
		decomposed := p.Aim > 0 && p.Speed > 0 && p.Acc > 0
		if decomposed != (mode == game.ModeOsu) {
			t.Log(mode, "decomposition", p.Aim, p.Speed, p.Acc)
			t.Fail()
		}
	}
}

func TestMissesLowerPP(t *testing.T) {
	s := &DefaultScorer{}
	attrs, _ := s.Difficulty(decode(t, testdata.Std), 0)
	prev := math.Inf(1)
	for miss := 0; miss <= 20; miss += 5 {
		p, _ := s.Performance(attrs, Play{Combo: attrs.MaxCombo, Misses: miss, Accuracy: 0.95})
		if p.PP > prev {
			t.Fatalf("%d misses gave %v, more than %v", miss, p.PP, prev)
		}
		prev = p.PP
	}
}

func TestMissesClamped(t *testing.T) {
	s := &DefaultScorer{}
	attrs, _ := s.Difficulty(decode(t, testdata.Std), 0)
	p, err := s.Performance(attrs, Play{Combo: 0, Misses: 10000, Accuracy: 0})
	if nil != err {
		t.Fatal(err)
	}
	if p.Hits.NMiss != attrs.Objects() || p.PP < 0 {
		t.Fatal("clamped play", p.Hits, p.PP)
	}
}

func TestDeterministic(t *testing.T) {
	s := &DefaultScorer{}
	play := Play{Combo: 100, Misses: 2, Accuracy: 0.96}
	var first Performance
	for i := 0; i < 3; i++ {
		attrs, _ := s.Difficulty(decode(t, testdata.Std), game.Hidden|game.DoubleTime)
		p, _ := s.Performance(attrs, play)
		if i == 0 {
			first = p
			continue
		}
		if math.Float64bits(p.PP) != math.Float64bits(first.PP) {
			t.Fatal("run", i, "gave", p.PP, "first gave", first.PP)
		}
	}
}

func TestUnknownMode(t *testing.T) {
	s := &DefaultScorer{}
	b := decode(t, testdata.Std)
	b.Mode = 7
	if _, err := s.Difficulty(b, 0); nil == err {
		t.Fatal("expected an error for mode 7")
	}
	if _, err := s.Performance(nil, Play{}); nil == err {
		t.Fatal("expected an error for nil attributes")
	}
}

func TestStrainSkillSections(t *testing.T) {
	skill := newStrainSkill(0.15, 1)
	skill.process(0, 0, 1)
	skill.process(100, 100, 1)
	skill.process(900, 800, 1)
	peaks := skill.strainPeaks()
	// sections end at 0, 400, 800, 1200
	if len(peaks) != 4 {
		t.Fatal("peaks", peaks)
	}
	if peaks[0] != 0 && peaks[0] != 1 {
		t.Fatal("first peak", peaks[0])
	}
	if weightedSum([]float64{1, 2}, 0.5) != 2.5 {
		t.Fatal("weighted sum")
	}
}
