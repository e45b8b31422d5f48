package refine

// Schedule is a monotone non-increasing linear decay from Start to Floor
// over Budget iterations. Used for the per-iteration move cap M, quota
// fraction alpha, and tabu tenure T.
type Schedule struct {
	Start  float64
	Floor  float64
	Budget int
}

// At returns the schedule's value at iteration iter, clamped to Floor.
func (s Schedule) At(iter int) float64 {
	if s.Budget <= 1 {
		return s.Floor
	}
	frac := float64(iter) / float64(s.Budget-1)
	if frac > 1 {
		frac = 1
	}
	v := s.Start - (s.Start-s.Floor)*frac
	if v < s.Floor {
		return s.Floor
	}
	return v
}

// AtInt rounds At down to an int, never below Floor rounded down.
func (s Schedule) AtInt(iter int) int {
	v := int(s.At(iter))
	floor := int(s.Floor)
	if v < floor {
		return floor
	}
	return v
}
