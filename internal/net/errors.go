package net

import "github.com/pkg/errors"

var (
	// ErrInvalidArchitecture is returned when the layer sizes cannot form a network.
	ErrInvalidArchitecture = errors.New("invalid architecture")

	// ErrDimensionMismatch is returned when a vector or matrix does not fit the layer it targets.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidLearningRate is returned for a negative or non-finite learning rate.
	ErrInvalidLearningRate = errors.New("invalid learning rate")

	// ErrUnknownActivation is returned for an activation kind outside the built-in set.
	ErrUnknownActivation = errors.New("unknown activation")

	// ErrEmptyDataset is returned when training or evaluation is given no samples.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInvalidEpochs is returned when Fit is asked for fewer than one epoch.
	ErrInvalidEpochs = errors.New("invalid epoch count")
)
