// Package goneuron re-exports the perceptron engine for use outside this module.
package goneuron

import (
	"github.com/FlavioCFOliveira/GoBackprop/internal/activations"
	"github.com/FlavioCFOliveira/GoBackprop/internal/net"
)

// Re-export common types and errors for easier access
type (
	Network        = net.Network
	Config         = net.Config
	Sampler        = net.Sampler
	Guarded        = net.Guarded
	Dataset        = net.Dataset
	Callback       = net.Callback
	ActivationKind = activations.Kind
)

var (
	ErrInvalidArchitecture = net.ErrInvalidArchitecture
	ErrDimensionMismatch   = net.ErrDimensionMismatch
	ErrInvalidLearningRate = net.ErrInvalidLearningRate
	ErrUnknownActivation   = net.ErrUnknownActivation
	ErrEmptyDataset        = net.ErrEmptyDataset
	ErrInvalidEpochs       = net.ErrInvalidEpochs
)

// Activations
const (
	HyperbolicTangent = activations.KindHyperbolicTangent
	Sigmoid           = activations.KindSigmoid
)

// New builds a network with the given layer sizes, learning rate and activation.
func New(architecture []int, learningRate float64, kind ActivationKind) (*Network, error) {
	return net.New(net.Config{
		Architecture: architecture,
		LearningRate: learningRate,
		Activation:   kind,
	})
}

// NewFromConfig builds a network from a full configuration.
func NewFromConfig(cfg Config) (*Network, error) {
	return net.New(cfg)
}

// NewGuarded wraps n for use from several goroutines.
func NewGuarded(n *Network) *Guarded {
	return net.NewGuarded(n)
}

// ParseArchitecture parses layer sizes such as "2 2 1".
func ParseArchitecture(s string) ([]int, error) {
	return net.ParseArchitecture(s)
}

// ParseActivation maps "sigmoid" or "tanh" to an activation kind.
func ParseActivation(name string) (ActivationKind, error) {
	return activations.ParseKind(name)
}

// Callbacks
func Logger(interval int) net.Logger {
	return net.Logger{Interval: interval}
}

func EarlyStopping(patience int, minDelta float64) *net.EarlyStopping {
	return net.NewEarlyStopping(patience, minDelta)
}

func CSVLogger(filename string, append bool) *net.CSVLogger {
	return net.NewCSVLogger(filename, append)
}

// Data
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	return net.LoadCSV(filename, labelCols, hasHeader)
}

// LoadCSVFor loads a dataset whose column counts must fit n.
func LoadCSVFor(n *Network, filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	return net.LoadCSVFor(n, filename, labelCols, hasHeader)
}
