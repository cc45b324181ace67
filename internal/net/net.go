// Package net provides the multilayer perceptron and its training loop.
package net

import (
	"fmt"
	"io"

	"github.com/FlavioCFOliveira/GoBackprop/internal/activations"
	"github.com/FlavioCFOliveira/GoBackprop/internal/layer"
	"github.com/FlavioCFOliveira/GoBackprop/internal/loss"
	"github.com/FlavioCFOliveira/GoBackprop/internal/opt"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Network is a fully connected feed-forward network trained one sample at a
// time by backpropagation.
//
// Every layer except the output carries a bias unit pinned to 1. Weight
// matrix i maps layer i's full activation vector (bias included) to layer
// i+1's units.
//
// A Network is not safe for concurrent use; see Guarded.
type Network struct {
	arch   []int
	lr     float64
	kind   activations.Kind
	act    activations.Activation
	loss   loss.Loss
	opt    opt.Optimizer
	layers []*layer.Layer

	// weights[i] is [layers[i].Len(), layers[i+1].Size()]
	weights []*mat.Dense

	// Pre-allocated gradient buffer for training
	lossGradBuf []float64
}

// New builds a network from cfg. Weights are drawn independently from
// cfg.Init.
func New(cfg Config) (*Network, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	arch := append([]int(nil), cfg.Architecture...)
	last := len(arch) - 1

	layers := make([]*layer.Layer, len(arch))
	for i, size := range arch {
		layers[i] = layer.New(size, i < last)
	}

	weights := make([]*mat.Dense, last)
	for i := range weights {
		rows, cols := layers[i].Len(), layers[i+1].Size()
		data := make([]float64, rows*cols)
		for j := range data {
			data[j] = cfg.Init.Rand()
		}
		weights[i] = mat.NewDense(rows, cols, data)
	}

	return &Network{
		arch:        arch,
		lr:          cfg.LearningRate,
		kind:        cfg.Activation,
		act:         cfg.Activation.Activation(),
		loss:        loss.SquaredError{},
		opt:         opt.SGD{LearningRate: cfg.LearningRate},
		layers:      layers,
		weights:     weights,
		lossGradBuf: make([]float64, arch[last]),
	}, nil
}

// Train runs one forward and one backward pass for a single sample,
// updating the weights in place.
func (n *Network) Train(input, target []float64) error {
	_, err := n.train(input, target)
	return err
}

// train is Train returning the MSE of the prediction made before the update.
func (n *Network) train(input, target []float64) (float64, error) {
	if err := n.checkInput(input); err != nil {
		return 0, err
	}
	if err := n.checkTarget(target); err != nil {
		return 0, err
	}

	n.forward(input)
	l := loss.MSE{}.Forward(n.output().Units(), target)
	n.backward(target)
	return l, nil
}

// Predict runs a forward pass and returns a copy of the output units.
func (n *Network) Predict(input []float64) ([]float64, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}
	n.forward(input)
	return append([]float64(nil), n.output().Units()...), nil
}

// Loss returns the mean squared error of the prediction for input.
func (n *Network) Loss(input, target []float64) (float64, error) {
	if err := n.checkTarget(target); err != nil {
		return 0, err
	}
	pred, err := n.Predict(input)
	if err != nil {
		return 0, err
	}
	return loss.MSE{}.Forward(pred, target), nil
}

// Evaluate returns the mean of the per-sample losses over a dataset.
func (n *Network) Evaluate(x, y [][]float64) (float64, error) {
	if err := n.checkDataset(x, y); err != nil {
		return 0, err
	}

	var total float64
	for i := range x {
		l, err := n.Loss(x[i], y[i])
		if err != nil {
			return 0, err
		}
		total += l
	}
	return total / float64(len(x)), nil
}

// forward recomputes every layer's activations from input, left to right.
func (n *Network) forward(input []float64) {
	n.layers[0].SetUnits(input)
	for i := 1; i < len(n.layers); i++ {
		n.layers[i].Forward(n.weights[i-1], n.layers[i-1], n.act)
	}
}

// backward computes every error term from the activations cached by the
// preceding forward pass, then applies the weight updates.
func (n *Network) backward(target []float64) {
	out := n.output()
	grad := n.lossGradBuf
	n.loss.BackwardInPlace(out.Units(), target, grad)
	out.OutputDelta(grad, n.act)

	// All error terms use the weights from before this update
	for i := len(n.layers) - 2; i > 0; i-- {
		n.layers[i].Backward(n.weights[i], n.layers[i+1], n.act)
	}

	for i, w := range n.weights {
		n.opt.StepInPlace(w, n.layers[i].Activations(), n.layers[i+1].Delta())
	}
}

func (n *Network) output() *layer.Layer {
	return n.layers[len(n.layers)-1]
}

func (n *Network) checkInput(input []float64) error {
	if want := n.arch[0]; len(input) != want {
		return errors.Wrapf(ErrDimensionMismatch, "input has %d values, want %d", len(input), want)
	}
	return nil
}

func (n *Network) checkTarget(target []float64) error {
	if want := n.arch[len(n.arch)-1]; len(target) != want {
		return errors.Wrapf(ErrDimensionMismatch, "target has %d values, want %d", len(target), want)
	}
	return nil
}

// checkDataset validates every sample before anything is trained or evaluated.
func (n *Network) checkDataset(x, y [][]float64) error {
	if len(x) == 0 {
		return ErrEmptyDataset
	}
	if len(x) != len(y) {
		return errors.Wrapf(ErrDimensionMismatch, "%d samples but %d targets", len(x), len(y))
	}
	for i := range x {
		if err := n.checkInput(x[i]); err != nil {
			return errors.WithMessagef(err, "sample %d", i)
		}
		if err := n.checkTarget(y[i]); err != nil {
			return errors.WithMessagef(err, "sample %d", i)
		}
	}
	return nil
}

// Architecture returns a copy of the layer sizes.
func (n *Network) Architecture() []int {
	return append([]int(nil), n.arch...)
}

// LearningRate returns the fixed learning rate.
func (n *Network) LearningRate() float64 {
	return n.lr
}

// Activation returns the activation kind used at every transition.
func (n *Network) Activation() activations.Kind {
	return n.kind
}

// NumLayers returns the number of layers, input and output included.
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// Bias returns the bias activation of layer i, or false for the output layer.
func (n *Network) Bias(i int) (float64, bool) {
	return n.layers[i].Bias()
}

// Weights returns deep copies of the weight matrices.
func (n *Network) Weights() []*mat.Dense {
	out := make([]*mat.Dense, len(n.weights))
	for i, w := range n.weights {
		out[i] = mat.DenseCopyOf(w)
	}
	return out
}

// SetWeights overwrites weight matrix i with w. The shape must match.
func (n *Network) SetWeights(i int, w mat.Matrix) error {
	if i < 0 || i >= len(n.weights) {
		return errors.Wrapf(ErrDimensionMismatch, "weight matrix %d out of range [0, %d)", i, len(n.weights))
	}
	wantR, wantC := n.weights[i].Dims()
	r, c := w.Dims()
	if r != wantR || c != wantC {
		return errors.Wrapf(ErrDimensionMismatch, "weight matrix %d is %dx%d, got %dx%d", i, wantR, wantC, r, c)
	}
	n.weights[i].Copy(w)
	return nil
}

// NumParams returns the number of learned weights, bias rows included.
func (n *Network) NumParams() int {
	total := 0
	for _, w := range n.weights {
		r, c := w.Dims()
		total += r * c
	}
	return total
}

// Summary writes a table of the network architecture to w.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: MLP")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Units (+bias)", "Param #")
	fmt.Fprintln(w, "=================================================================")

	for i, l := range n.layers {
		kind := "Hidden"
		switch {
		case i == 0:
			kind = "Input"
		case i == len(n.layers)-1:
			kind = "Output"
		}

		units := fmt.Sprintf("%d", l.Size())
		if l.HasBias() {
			units += " (+1)"
		}

		params := 0
		if i > 0 {
			r, c := n.weights[i-1].Dims()
			params = r * c
		}

		fmt.Fprintf(w, "%-25s %-20s %-10d\n", fmt.Sprintf("%s_%d", kind, i), units, params)
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", n.NumParams())
	fmt.Fprintf(w, "Activation: %s, learning rate: %g\n", n.kind, n.lr)
	fmt.Fprintln(w, "_________________________________________________________________")
}
