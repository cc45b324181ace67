package net

import (
	"math"
	"strconv"
	"strings"

	"github.com/FlavioCFOliveira/GoBackprop/internal/activations"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultLearningRate is used when Config.LearningRate is zero.
const DefaultLearningRate = 0.01

// Sampler draws one initial weight per call.
// distuv.Uniform and the other gonum distributions satisfy it.
type Sampler interface {
	Rand() float64
}

// Config describes a network to build.
type Config struct {
	// Architecture lists the unit count of every layer, input first.
	Architecture []int

	// LearningRate scales every weight update. Zero selects DefaultLearningRate.
	LearningRate float64

	// Activation is applied at every layer transition.
	// The zero value is KindHyperbolicTangent.
	Activation activations.Kind

	// Init draws the initial weights. Nil selects Uniform(-1, 1).
	// Tests inject a seeded sampler here to get reproducible weights.
	Init Sampler
}

func (c Config) withDefaults() Config {
	if c.LearningRate == 0 {
		c.LearningRate = DefaultLearningRate
	}
	if c.Init == nil {
		c.Init = distuv.Uniform{Min: -1, Max: 1}
	}
	return c
}

// Validate checks the configuration without applying defaults.
func (c Config) Validate() error {
	if len(c.Architecture) < 2 {
		return errors.Wrapf(ErrInvalidArchitecture, "need at least 2 layers, got %d", len(c.Architecture))
	}
	for i, size := range c.Architecture {
		if size <= 0 {
			return errors.Wrapf(ErrInvalidArchitecture, "layer %d has size %d", i, size)
		}
	}
	lr := c.LearningRate
	if lr < 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return errors.Wrapf(ErrInvalidLearningRate, "%v", lr)
	}
	if !c.Activation.Valid() {
		return errors.Wrapf(ErrUnknownActivation, "%v", c.Activation)
	}
	return nil
}

// ParseArchitecture parses layer sizes such as "2 2 1" or "2,2,1".
func ParseArchitecture(s string) ([]int, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(parts) == 0 {
		return nil, errors.Wrap(ErrInvalidArchitecture, "no layer sizes")
	}

	arch := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidArchitecture, "layer %d: %q is not an integer", i, p)
		}
		arch[i] = n
	}
	return arch, nil
}
