package game

// TimingPoint is one line of [TimingPoints]. Uninherited points set the
// beat length; inherited ones only scale slider velocity.
type TimingPoint struct {
	Time        float64
	BeatLength  float64
	Uninherited bool
}

// SliderVelocity is the multiplier an inherited point applies.
func (tp TimingPoint) SliderVelocity() float64 {
	if tp.Uninherited || tp.BeatLength >= 0 {
		return 1
	}
	return clamp(-100/tp.BeatLength, 0.1, 10)
}
