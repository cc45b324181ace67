package net

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// lcg is a 64-bit linear congruential sampler producing values in [-1, 1).
// It makes weight initialization reproducible in tests.
type lcg struct {
	state uint64
}

func newLCG(seed uint64) *lcg {
	return &lcg{state: seed}
}

func (g *lcg) Rand() float64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return float64(g.state>>11)/float64(uint64(1)<<53)*2 - 1
}

// constant returns the same value on every draw.
type constant float64

func (c constant) Rand() float64 { return float64(c) }

func flatten(ws []*mat.Dense) []float64 {
	var out []float64
	for _, w := range ws {
		r, c := w.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				out = append(out, w.At(i, j))
			}
		}
	}
	return out
}

// setFlat loads weights written by flatten back into n.
func setFlat(n *Network, x []float64) {
	offset := 0
	for i, w := range n.weights {
		r, c := w.Dims()
		m := mat.NewDense(r, c, append([]float64(nil), x[offset:offset+r*c]...))
		if err := n.SetWeights(i, m); err != nil {
			panic(err)
		}
		offset += r * c
	}
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

var (
	xorX = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	xorY = [][]float64{{0}, {1}, {1}, {0}}
)
