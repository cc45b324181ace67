package net

import (
	"fmt"
	"io"
	"math"
	"os"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(n *Network)
	OnTrainEnd(n *Network)
	OnEpochBegin(epoch int, n *Network)
	OnEpochEnd(epoch int, loss float64, n *Network)
}

// Stopper is implemented by callbacks that can end training early.
type Stopper interface {
	ShouldStop() bool
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(n *Network)                        {}
func (c BaseCallback) OnTrainEnd(n *Network)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, n *Network)             {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, n *Network) {}

// EarlyStopping stops training when the epoch loss has stopped improving
// for Patience epochs. A Patience of zero or less never stops.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64

	// Out receives the stop message. Nil writes to stdout.
	Out io.Writer

	bestLoss     float64
	numBadEpochs int
	Stopped      bool
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		bestLoss:  math.MaxFloat64,
	}
}

func (c *EarlyStopping) OnTrainBegin(n *Network) {
	c.bestLoss = math.MaxFloat64
	c.numBadEpochs = 0
	c.Stopped = false
}

func (c *EarlyStopping) OnEpochEnd(epoch int, loss float64, n *Network) {
	if loss < c.bestLoss-c.Threshold {
		c.bestLoss = loss
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.Patience > 0 && c.numBadEpochs >= c.Patience {
		fmt.Fprintf(writerOrStdout(c.Out), "\nEarly stopping at epoch %d: loss %.6f did not improve for %d epochs\n", epoch, loss, c.Patience)
		c.Stopped = true
	}
}

// ShouldStop reports whether the patience has run out.
func (c *EarlyStopping) ShouldStop() bool {
	return c.Stopped
}

// Logger logs training progress to console.
type Logger struct {
	BaseCallback
	Interval int

	// Out receives the progress lines. Nil writes to stdout.
	Out io.Writer
}

func (c Logger) OnEpochEnd(epoch int, loss float64, n *Network) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		fmt.Fprintf(writerOrStdout(c.Out), "Epoch %d: loss = %.6f\n", epoch, loss)
	}
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
