// Package layer provides the per-stage state of a bias-augmented perceptron.
package layer

import (
	"github.com/FlavioCFOliveira/GoBackprop/internal/activations"
	"gonum.org/v1/gonum/mat"
)

// BiasValue is the activation every bias unit is pinned to.
const BiasValue = 1.0

// Layer holds the activation and error vectors of one network stage.
//
// A layer has Size() computational units. Layers with a bias unit carry one
// extra slot at the end of the activation vector, so Len() = Size() + 1.
// Weight matrices feeding out of a layer have Len() rows; weight matrices
// feeding into it have Size() columns.
type Layer struct {
	size int
	bias bool

	// Reusable buffers, all sized at construction
	neurons  *mat.VecDense // [Len()], bias slot last
	errors   *mat.VecDense // [Len()], parallel to neurons
	delta    *mat.VecDense // view of errors[:size]
	netInput *mat.VecDense // [size], cached pre-activation from the last Forward
}

// New creates a layer with size units and, when bias is set, one bias unit.
// All activations and errors start at zero except the bias slot, which is 1.
func New(size int, bias bool) *Layer {
	n := size
	if bias {
		n++
	}

	l := &Layer{
		size:     size,
		bias:     bias,
		neurons:  mat.NewVecDense(n, nil),
		errors:   mat.NewVecDense(n, nil),
		netInput: mat.NewVecDense(size, nil),
	}
	l.delta = l.errors.SliceVec(0, size).(*mat.VecDense)
	l.ResetBias()
	return l
}

// Size returns the number of computational units (bias excluded).
func (l *Layer) Size() int {
	return l.size
}

// Len returns the length of the activation and error vectors (bias included).
func (l *Layer) Len() int {
	return l.neurons.Len()
}

// HasBias reports whether the layer carries a bias unit.
func (l *Layer) HasBias() bool {
	return l.bias
}

// Units returns the non-bias part of the activation vector.
// The slice aliases the layer's buffer.
func (l *Layer) Units() []float64 {
	return l.neurons.RawVector().Data[:l.size]
}

// Activations returns the full activation vector, bias slot included.
func (l *Layer) Activations() *mat.VecDense {
	return l.neurons
}

// Errors returns the full error vector.
func (l *Layer) Errors() *mat.VecDense {
	return l.errors
}

// Delta returns the non-bias part of the error vector.
func (l *Layer) Delta() *mat.VecDense {
	return l.delta
}

// NetInput returns the pre-activation values cached by the last Forward.
func (l *Layer) NetInput() *mat.VecDense {
	return l.netInput
}

// Bias returns the bias unit's activation, or false when there is none.
func (l *Layer) Bias() (float64, bool) {
	if !l.bias {
		return 0, false
	}
	return l.neurons.AtVec(l.size), true
}

// ResetBias pins the bias slot to BiasValue.
func (l *Layer) ResetBias() {
	if l.bias {
		l.neurons.SetVec(l.size, BiasValue)
	}
}

// SetUnits copies x into the non-bias activations. len(x) must equal Size().
func (l *Layer) SetUnits(x []float64) {
	if len(x) != l.size {
		panic(mat.ErrShape)
	}
	copy(l.Units(), x)
}

// Forward computes this layer's activations from prev through w.
// w has prev.Len() rows and l.Size() columns; the bias row of w is how the
// previous layer's bias unit reaches this layer.
func (l *Layer) Forward(w mat.Matrix, prev *Layer, act activations.Activation) {
	z := l.netInput
	z.MulVec(w.T(), prev.neurons)

	units := l.Units()
	for j := range units {
		units[j] = act.Activate(z.AtVec(j))
	}
	l.ResetBias()
}

// OutputDelta sets delta = grad ⊙ f'(netInput). grad is dL/d(output).
func (l *Layer) OutputDelta(grad []float64, act activations.Activation) {
	if len(grad) != l.size {
		panic(mat.ErrShape)
	}
	for j, g := range grad {
		l.delta.SetVec(j, g*act.Derivative(l.netInput.AtVec(j)))
	}
}

// Backward propagates next's delta through w into this layer's delta.
// Only the first Size() rows of w take part: a bias unit has no incoming
// error term.
func (l *Layer) Backward(w *mat.Dense, next *Layer, act activations.Activation) {
	rows, cols := w.Dims()
	if rows != l.Len() || cols != next.size {
		panic(mat.ErrShape)
	}

	units := w.Slice(0, l.size, 0, cols)
	l.delta.MulVec(units, next.delta)
	for j := 0; j < l.size; j++ {
		l.delta.SetVec(j, l.delta.AtVec(j)*act.Derivative(l.netInput.AtVec(j)))
	}
}
