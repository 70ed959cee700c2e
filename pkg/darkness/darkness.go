// Package darkness implements the two ways a chosen line's pixels have
// their residual weight reduced after it is drawn.
package darkness

import "github.com/Fepozopo/threadloom/pkg/geometry"

// Mode reduces a single pixel's residual weight once a line crossing it
// has been chosen.
type Mode[S geometry.Scalar] interface {
	Compute(weight S) S
}

// Flat subtracts a fixed delta from the weight, floored at zero.
type Flat[S geometry.Scalar] struct {
	Delta S
}

func (f Flat[S]) Compute(weight S) S {
	v := weight - f.Delta
	if v < 0 {
		return 0
	}
	return v
}

// Percentage multiplies the weight by a retention ratio rho in [0,1].
type Percentage[S geometry.Scalar] struct {
	Rho S
}

func (p Percentage[S]) Compute(weight S) S {
	return p.Rho * weight
}
