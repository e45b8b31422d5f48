package engine

import "fmt"

// effortPresets maps effort levels 0..5 to a total refinement budget.
var effortPresets = [6]int{300, 400, 500, 600, 800, 1000}

// Params carries the engine's configuration knobs. Partition passes it
// through resolveParams, which fills defaults and applies the
// effort/refinement precedence rule. Zero (or out-of-range) values of
// TabuTenure, InitialMoveCap, QuotaFraction, Perturbation, ILSRoundLength
// and StallLimit mean "use the default"; Budget 0 means "derive from
// Effort". K, Epsilon, Seed and Effort are used as given (an Effort
// outside 0..5 falls back to the default preset).
type Params struct {
	K       int     // number of blocks, 2 <= K <= 64
	Epsilon float64 // balance slack, 0 <= Epsilon <= 1
	Seed    int64   // RNG seed
	Budget  int     // total refinement iterations (0 = derive from Effort)

	Effort int // 0..5 preset selecting Budget when Budget == 0

	TabuTenure     int     // T
	InitialMoveCap int     // M0
	QuotaFraction  float64 // alpha0, in (0,1]
	Perturbation   float64 // rho0
	ILSRoundLength int     // r
	StallLimit     int     // consecutive no-move iterations before plateau
}

// Default returns the documented defaults tuned for k=64, epsilon=0.03.
func Default() Params {
	return Params{
		K:              64,
		Epsilon:        0.03,
		Seed:           1,
		Effort:         2,
		TabuTenure:     8,
		InitialMoveCap: 0, // resolved relative to n in resolveParams
		QuotaFraction:  0.5,
		Perturbation:   0.10,
		ILSRoundLength: 40,
		StallLimit:     6,
	}
}

// ParameterError reports a malformed Params.
type ParameterError struct{ Msg string }

func (e *ParameterError) Error() string { return "parameter error: " + e.Msg }

// resolved is Params after defaults and precedence have been applied,
// plus derived fields that need n (InitialMoveCap defaults to a fraction
// of n).
type resolved struct {
	Params
	budget int
}

// resolveParams fills in defaults, applies the effort/refinement precedence
// rule (an explicit Budget always wins over the Effort preset), and
// validates ranges. n is the vertex count, needed to size InitialMoveCap
// when it wasn't set explicitly.
func resolveParams(p Params, n int) (resolved, error) {
	def := Default()

	if p.K < 2 || p.K > 64 {
		return resolved{}, &ParameterError{Msg: fmt.Sprintf("k must be in [2,64], got %d", p.K)}
	}
	if p.Epsilon < 0 || p.Epsilon > 1 {
		return resolved{}, &ParameterError{Msg: fmt.Sprintf("epsilon must be in [0,1], got %f", p.Epsilon)}
	}

	budget := p.Budget
	if budget == 0 {
		effort := p.Effort
		if effort < 0 || effort > 5 {
			effort = def.Effort
		}
		budget = effortPresets[effort]
	}
	if budget < 1 {
		return resolved{}, &ParameterError{Msg: fmt.Sprintf("budget must be >= 1, got %d", budget)}
	}

	r := p
	if r.TabuTenure <= 0 {
		r.TabuTenure = def.TabuTenure
	}
	if r.QuotaFraction <= 0 || r.QuotaFraction > 1 {
		r.QuotaFraction = def.QuotaFraction
	}
	if r.Perturbation <= 0 {
		r.Perturbation = def.Perturbation
	}
	if r.ILSRoundLength <= 0 {
		r.ILSRoundLength = def.ILSRoundLength
	}
	if r.StallLimit <= 0 {
		r.StallLimit = def.StallLimit
	}
	if r.InitialMoveCap <= 0 {
		// Starts high and decays monotonically across refinement rounds.
		r.InitialMoveCap = n/4 + 1
	}

	return resolved{Params: r, budget: budget}, nil
}
