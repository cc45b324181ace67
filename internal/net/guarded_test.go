package net

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGuardedConcurrentUse tests that one shared network survives parallel callers.
func TestGuardedConcurrentUse(t *testing.T) {
	n, err := New(Config{Architecture: []int{2, 4, 1}, LearningRate: 0.1, Init: newLCG(8)})
	require.NoError(t, err)
	g := NewGuarded(n)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s := (w + i) % len(xorX)
				if i%3 == 0 {
					out, err := g.Predict(xorX[s])
					if err != nil {
						errs <- err
						return
					}
					if len(out) != 1 || !allFinite(out) {
						errs <- ErrDimensionMismatch
						return
					}
					continue
				}
				if err := g.Train(xorX[s], xorY[s]); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	_, err = g.Evaluate(xorX, xorY)
	require.NoError(t, err)

	require.NoError(t, g.Do(func(n *Network) error {
		for i := 0; i < n.NumLayers()-1; i++ {
			b, ok := n.Bias(i)
			assert.True(t, ok)
			assert.Equal(t, 1.0, b)
		}
		return nil
	}))
}
