package net

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FlavioCFOliveira/GoBackprop/internal/activations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts callback invocations.
type recorder struct {
	BaseCallback
	begins, ends int
	epochs       []int
	losses       []float64
}

func (r *recorder) OnTrainBegin(n *Network) { r.begins++ }
func (r *recorder) OnTrainEnd(n *Network)   { r.ends++ }
func (r *recorder) OnEpochEnd(epoch int, loss float64, n *Network) {
	r.epochs = append(r.epochs, epoch)
	r.losses = append(r.losses, loss)
}

func xorNetwork(t *testing.T) *Network {
	t.Helper()
	n, err := New(Config{
		Architecture: []int{2, 2, 1},
		LearningRate: 0.1,
		Activation:   activations.KindSigmoid,
		Init:         newLCG(4),
	})
	require.NoError(t, err)
	return n
}

// TestFitMatchesTrainLoop tests that Fit is the plain per-sample epoch loop.
func TestFitMatchesTrainLoop(t *testing.T) {
	a := xorNetwork(t)
	b := xorNetwork(t)

	for epoch := 0; epoch < 25; epoch++ {
		for i := range xorX {
			require.NoError(t, a.Train(xorX[i], xorY[i]))
		}
	}

	rec := &recorder{}
	_, err := b.Fit(xorX, xorY, 25, rec)
	require.NoError(t, err)

	assert.Equal(t, flatten(a.Weights()), flatten(b.Weights()))
	assert.Equal(t, 1, rec.begins)
	assert.Equal(t, 1, rec.ends)
	require.Len(t, rec.epochs, 25)
	assert.Equal(t, 0, rec.epochs[0])
	assert.Equal(t, 24, rec.epochs[24])
}

// TestFitXOR tests that Fit converges on XOR and reports a falling loss.
func TestFitXOR(t *testing.T) {
	n := xorNetwork(t)

	rec := &recorder{}
	final, err := n.Fit(xorX, xorY, 10000, rec)
	require.NoError(t, err)

	assert.Less(t, final, rec.losses[0])
	assert.Less(t, final, 0.01)

	mse, err := n.Evaluate(xorX, xorY)
	require.NoError(t, err)
	assert.Less(t, mse, 0.01)
}

// TestFitValidatesBeforeTraining tests that a bad sample aborts with no update.
func TestFitValidatesBeforeTraining(t *testing.T) {
	n := xorNetwork(t)
	before := flatten(n.Weights())

	x := [][]float64{{0, 0}, {0, 1}, {1, 0, 1}}
	y := [][]float64{{0}, {1}, {1}}

	_, err := n.Fit(x, y, 10)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "sample 2")
	assert.Equal(t, before, flatten(n.Weights()))

	_, err = n.Fit(nil, nil, 10)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	for _, epochs := range []int{0, -3} {
		_, err = n.Fit(xorX, xorY, epochs)
		assert.ErrorIs(t, err, ErrInvalidEpochs, "epochs=%d", epochs)
	}
	assert.Equal(t, before, flatten(n.Weights()))
}

// TestEarlyStopping tests that training stops once the loss plateaus.
func TestEarlyStopping(t *testing.T) {
	n := xorNetwork(t)

	var out bytes.Buffer
	// Only the first epoch counts as an improvement under this threshold
	es := NewEarlyStopping(3, 1e9)
	es.Out = &out
	rec := &recorder{}

	_, err := n.Fit(xorX, xorY, 100, es, rec)
	require.NoError(t, err)

	assert.True(t, es.ShouldStop())
	assert.Len(t, rec.epochs, 4)
	assert.Contains(t, out.String(), "Early stopping at epoch 3")
}

// TestEarlyStoppingImproving tests that steady improvement never stops training.
func TestEarlyStoppingImproving(t *testing.T) {
	es := NewEarlyStopping(2, 0)
	es.OnTrainBegin(nil)
	for i, l := range []float64{1, 0.9, 0.8, 0.7} {
		es.OnEpochEnd(i, l, nil)
	}
	assert.False(t, es.ShouldStop())

	es.OnEpochEnd(4, 0.7, nil)
	es.OnEpochEnd(5, 0.75, nil)
	assert.True(t, es.ShouldStop())
}

// TestEarlyStoppingDisabled tests that a non-positive patience never stops training.
func TestEarlyStoppingDisabled(t *testing.T) {
	n := xorNetwork(t)

	for _, patience := range []int{0, -1} {
		es := NewEarlyStopping(patience, 1e9)
		rec := &recorder{}

		_, err := n.Fit(xorX, xorY, 5, es, rec)
		require.NoError(t, err)
		assert.False(t, es.ShouldStop(), "patience=%d", patience)
		assert.Len(t, rec.epochs, 5, "patience=%d", patience)
	}
}

// TestLogger tests interval logging.
func TestLogger(t *testing.T) {
	var out bytes.Buffer
	logger := Logger{Interval: 2, Out: &out}

	for epoch, l := range []float64{0.5, 0.4, 0.3, 0.2} {
		logger.OnEpochEnd(epoch, l, nil)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{"Epoch 0: loss = 0.500000", "Epoch 2: loss = 0.300000"}, lines)

	var silent bytes.Buffer
	Logger{Out: &silent}.OnEpochEnd(0, 1, nil)
	assert.Empty(t, silent.String())
}
