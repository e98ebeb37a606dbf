package models

import (
	"fmt"
	"math"
)

// SumTolerance is the rounding slack allowed on a percentage triple.
// Residuals inside the tolerance are absorbed into the draw component;
// anything larger indicates an upstream composition bug.
const SumTolerance = 1.0

// ProbabilityTriple holds win/draw/loss probabilities in percent.
// A valid triple has non-negative components summing to 100 within
// SumTolerance. Triples are ephemeral: recomputed per request, never
// the persisted source of truth for adjusted values.
type ProbabilityTriple struct {
	Home float64 `db:"home" json:"home"`
	Draw float64 `db:"draw" json:"draw"`
	Away float64 `db:"away" json:"away"`
}

// Sum returns the component total
func (p ProbabilityTriple) Sum() float64 {
	return p.Home + p.Draw + p.Away
}

// Max returns the largest component value
func (p ProbabilityTriple) Max() float64 {
	return math.Max(p.Home, math.Max(p.Draw, p.Away))
}

// Validate checks the triple invariant: non-negative components summing
// to 100 within SumTolerance
func (p ProbabilityTriple) Validate() error {
	if p.Home < 0 || p.Draw < 0 || p.Away < 0 {
		return fmt.Errorf("%w: negative component in %+v", ErrOutOfRange, p)
	}
	if diff := math.Abs(p.Sum() - 100); diff > SumTolerance {
		return fmt.Errorf("%w: components sum to %.3f", ErrOutOfRange, p.Sum())
	}
	return nil
}

// Normalized returns the triple rescaled so components sum to exactly 100.
// A zero-sum triple is returned unchanged.
func (p ProbabilityTriple) Normalized() ProbabilityTriple {
	total := p.Sum()
	if total == 0 {
		return p
	}
	return ProbabilityTriple{
		Home: p.Home / total * 100,
		Draw: p.Draw / total * 100,
		Away: p.Away / total * 100,
	}
}

// Rounded returns the triple with each component rounded to one decimal
func (p ProbabilityTriple) Rounded() ProbabilityTriple {
	return ProbabilityTriple{
		Home: math.Round(p.Home*10) / 10,
		Draw: math.Round(p.Draw*10) / 10,
		Away: math.Round(p.Away*10) / 10,
	}
}
