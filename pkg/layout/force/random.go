package force

// lcg is the linear congruential generator the simulation draws from.
// The fixed seed makes every run over the same graph reproducible.
type lcg struct {
	s uint32
}

func newLCG() *lcg { return &lcg{s: 1} }

// Float64 returns the next value in [0, 1).
func (l *lcg) Float64() float64 {
	l.s = l.s*1664525 + 1013904223
	return float64(l.s) / 4294967296
}

// jiggle breaks exact coincidence with a tiny deterministic offset, so
// forces never divide by a zero distance.
func jiggle(random func() float64) float64 {
	return (random() - 0.5) * 1e-6
}
