// Package loss provides the error measures used for training and reporting.
package loss

import "gonum.org/v1/gonum/floats"

// Loss is a loss function with derivative.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue []float64) float64

	// BackwardInPlace stores the gradient of the loss w.r.t. prediction in grad.
	BackwardInPlace(yPred, yTrue, grad []float64)
}

// SquaredError is half the summed squared error: 0.5 * sum((y_pred - y_true)^2).
// Its gradient is the raw output error y_pred - y_true, which is what
// online backpropagation feeds into the output layer.
type SquaredError struct{}

// Forward computes 0.5 * sum((y_pred - y_true)^2)
func (SquaredError) Forward(yPred, yTrue []float64) float64 {
	if len(yPred) != len(yTrue) {
		panic("SquaredError: prediction and target must have same length")
	}
	d := floats.Distance(yPred, yTrue, 2)
	return 0.5 * d * d
}

// BackwardInPlace computes grad = y_pred - y_true.
func (SquaredError) BackwardInPlace(yPred, yTrue, grad []float64) {
	if len(yPred) != len(yTrue) || len(yPred) != len(grad) {
		panic("SquaredError: slices must have same length")
	}
	floats.SubTo(grad, yPred, yTrue)
}

// MSE is the mean squared error. It only reports how far a prediction is
// from its target; training follows SquaredError.
type MSE struct{}

// Forward computes mean squared error: (1/n) * sum((y_pred - y_true)^2)
func (MSE) Forward(yPred, yTrue []float64) float64 {
	n := len(yPred)
	if n != len(yTrue) {
		panic("MSE: prediction and target must have same length")
	}
	if n == 0 {
		return 0
	}
	d := floats.Distance(yPred, yTrue, 2)
	return d * d / float64(n)
}
