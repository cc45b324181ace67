package activations

import (
	"fmt"
	"strings"
)

// Kind selects one of the built-in activations.
// The zero value is KindHyperbolicTangent.
type Kind int

const (
	KindHyperbolicTangent Kind = iota
	KindSigmoid
)

// String returns the flag-friendly name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHyperbolicTangent:
		return "tanh"
	case KindSigmoid:
		return "sigmoid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k names a built-in activation.
func (k Kind) Valid() bool {
	return k == KindHyperbolicTangent || k == KindSigmoid
}

// Activation returns the strategy for k, or nil for an unknown kind.
func (k Kind) Activation() Activation {
	switch k {
	case KindHyperbolicTangent:
		return Tanh{}
	case KindSigmoid:
		return Sigmoid{}
	default:
		return nil
	}
}

// ParseKind maps a name such as "sigmoid" or "tanh" to its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tanh", "hyperbolictangent", "hyperbolic-tangent":
		return KindHyperbolicTangent, nil
	case "sigmoid", "logistic":
		return KindSigmoid, nil
	default:
		return 0, fmt.Errorf("unknown activation %q", name)
	}
}
