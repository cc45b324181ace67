package net

import "github.com/pkg/errors"

// Fit trains on every (x[i], y[i]) pair in order, once per epoch, and
// returns the mean loss of the last epoch. Each sample's loss is measured
// on the prediction made just before its update.
//
// All samples are validated before the first update. Training stops early
// when a callback implementing Stopper asks for it.
func (n *Network) Fit(x, y [][]float64, epochs int, callbacks ...Callback) (float64, error) {
	if err := n.checkDataset(x, y); err != nil {
		return 0, err
	}
	if epochs <= 0 {
		return 0, errors.Wrapf(ErrInvalidEpochs, "got %d", epochs)
	}

	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	defer func() {
		for _, cb := range callbacks {
			cb.OnTrainEnd(n)
		}
	}()

	var epochLoss float64
	for epoch := 0; epoch < epochs; epoch++ {
		for _, cb := range callbacks {
			cb.OnEpochBegin(epoch, n)
		}

		total := 0.0
		for i := range x {
			l, err := n.train(x[i], y[i])
			if err != nil {
				return 0, errors.WithMessagef(err, "epoch %d, sample %d", epoch, i)
			}
			total += l
		}
		epochLoss = total / float64(len(x))

		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, epochLoss, n)
		}
		if stopRequested(callbacks) {
			break
		}
	}
	return epochLoss, nil
}

func stopRequested(callbacks []Callback) bool {
	for _, cb := range callbacks {
		if s, ok := cb.(Stopper); ok && s.ShouldStop() {
			return true
		}
	}
	return false
}
