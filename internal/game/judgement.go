package game

// HitCounts is the judgement breakdown of a play.
type HitCounts struct {
	N300  int
	N100  int
	N50   int
	NMiss int
}

func (h HitCounts) Total() int {
	return h.N300 + h.N100 + h.N50 + h.NMiss
}

// Accuracy is the osu!standard weighted accuracy as a fraction.
func (h HitCounts) Accuracy() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	return float64(6*h.N300+2*h.N100+h.N50) / float64(6*total)
}

// HitCountsFor distributes nObjects into judgements so the weighted
// accuracy lands as close to acc as possible with exactly nMiss misses.
// nMiss is clamped to nObjects.
func HitCountsFor(acc float64, nObjects, nMiss int) HitCounts {
	if nObjects <= 0 {
		return HitCounts{}
	}
	nMiss = max(0, min(nMiss, nObjects))
	remaining := nObjects - nMiss
	if remaining == 0 {
		return HitCounts{NMiss: nMiss}
	}

	// start from all 100s, then upgrade to 300s (+4 each) or downgrade to 50s (-1 each)
	target := int(acc*6*float64(nObjects) + 0.5)
	base := 2 * remaining
	if target >= base {
		n300 := min(remaining, (target-base+2)/4)
		return HitCounts{N300: n300, N100: remaining - n300, NMiss: nMiss}
	}
	n50 := min(remaining, base-target)
	return HitCounts{N100: remaining - n50, N50: n50, NMiss: nMiss}
}
