package net

import "sync"

// Guarded serializes access to a Network so one instance can be shared
// between goroutines. Train and Predict both overwrite the network's
// activation and error buffers, so every call takes the same lock.
type Guarded struct {
	mu sync.Mutex
	n  *Network
}

// NewGuarded wraps n. The caller must stop using n directly.
func NewGuarded(n *Network) *Guarded {
	return &Guarded{n: n}
}

// Train calls Network.Train under the lock.
func (g *Guarded) Train(input, target []float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n.Train(input, target)
}

// Predict calls Network.Predict under the lock.
func (g *Guarded) Predict(input []float64) ([]float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n.Predict(input)
}

// Evaluate calls Network.Evaluate under the lock.
func (g *Guarded) Evaluate(x, y [][]float64) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n.Evaluate(x, y)
}

// Do runs fn with exclusive access to the wrapped network.
func (g *Guarded) Do(fn func(n *Network) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.n)
}
