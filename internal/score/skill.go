package score

import (
	"math"
	"sort"
)

const sectionLength = 400.0

// strainSkill accumulates a decaying strain and records its peak in every
// fixed-length section of the map.
type strainSkill struct {
	decayBase  float64
	multiplier float64

	current     float64
	currentPeak float64
	sectionEnd  float64
	prevTime    float64
	started     bool
	peaks       []float64
}

func newStrainSkill(decayBase, multiplier float64) *strainSkill {
	return &strainSkill{decayBase: decayBase, multiplier: multiplier}
}

func (s *strainSkill) decay(ms float64) float64 {
	return math.Pow(s.decayBase, ms/1000)
}

// process adds one object starting at time, delta ms after the previous.
func (s *strainSkill) process(time, delta, value float64) {
	if !s.started {
		s.sectionEnd = math.Ceil(time/sectionLength) * sectionLength
		s.prevTime = time
		s.started = true
	}
	for time > s.sectionEnd {
		s.peaks = append(s.peaks, s.currentPeak)
		s.currentPeak = s.current * s.decay(s.sectionEnd-s.prevTime)
		s.sectionEnd += sectionLength
	}

	s.current *= s.decay(delta)
	s.current += value * s.multiplier
	s.currentPeak = math.Max(s.currentPeak, s.current)
	s.prevTime = time
}

func (s *strainSkill) strainPeaks() []float64 {
	peaks := make([]float64, 0, len(s.peaks)+1)
	peaks = append(peaks, s.peaks...)
	if s.started {
		peaks = append(peaks, s.currentPeak)
	}
	return peaks
}

func sortedDesc(peaks []float64) []float64 {
	out := make([]float64, 0, len(peaks))
	for _, p := range peaks {
		if p > 0 {
			out = append(out, p)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// weightedSum is the plain strain difficulty: peaks high to low, each
// weighted by decayWeight^i.
func weightedSum(peaks []float64, decayWeight float64) float64 {
	total, weight := 0.0, 1.0
	for _, p := range sortedDesc(peaks) {
		total += p * weight
		weight *= decayWeight
	}
	return total
}

// reducedWeightedSum dampens the hardest sections before weighting so a
// handful of outlier spikes do not define the whole map.
func reducedWeightedSum(peaks []float64, reducedSections int, baseline, decayWeight float64) float64 {
	strains := sortedDesc(peaks)
	for i := 0; i < min(len(strains), reducedSections); i++ {
		scale := math.Log10(lerp(1, 10, clampF(float64(i)/float64(reducedSections), 0, 1)))
		strains[i] *= lerp(baseline, 1, scale)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(strains)))

	total, weight := 0.0, 1.0
	for _, s := range strains {
		total += s * weight
		weight *= decayWeight
	}
	return total
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
