// Package opt provides the weight update rule.
package opt

import "gonum.org/v1/gonum/mat"

// Optimizer updates a weight matrix from one layer's activations and the
// next layer's error terms.
type Optimizer interface {
	// StepInPlace applies the update for a single sample to w.
	StepInPlace(w *mat.Dense, in, delta mat.Vector)
}

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float64
}

// StepInPlace updates w in-place: w = w - lr * (in ⊗ delta)
// in must have one entry per row of w and delta one per column.
func (s SGD) StepInPlace(w *mat.Dense, in, delta mat.Vector) {
	w.RankOne(w, -s.LearningRate, in, delta)
}
