package filter

import (
	"github.com/tphakala/simd/f64"
)

// Bank is a polyphase decomposition of a prototype lowpass filter.
// Sub-filter p holds prototype taps p, p+Up, p+2·Up, ... in order.
// A Bank is immutable after construction.
type Bank struct {
	// Phases holds Up sub-filters of Order taps each.
	Phases [][]float64

	// Prototype is the full filter the bank was decomposed from.
	Prototype []float64

	Up    int
	Down  int
	Order int
}

// DesignBank designs the prototype for an up/down ratio and decomposes it.
func DesignBank(up, down int, spec Spec) (*Bank, error) {
	proto, err := DesignPrototype(up, down, spec)
	if err != nil {
		return nil, err
	}

	return &Bank{
		Phases:    Decompose(proto, up),
		Prototype: proto,
		Up:        up,
		Down:      down,
		Order:     spec.Order,
	}, nil
}

// Decompose distributes prototype taps round-robin into n sub-filters:
// tap k goes to sub-filter k mod n. The sub-filter lengths sum to len(prototype).
func Decompose(prototype []float64, n int) [][]float64 {
	phases := make([][]float64, n)
	per := (len(prototype) + n - 1) / n
	for p := range phases {
		phases[p] = make([]float64, 0, per)
	}
	for k, c := range prototype {
		phases[k%n] = append(phases[k%n], c)
	}
	return phases
}

// TotalTaps returns the prototype length.
func (b *Bank) TotalTaps() int {
	return len(b.Prototype)
}

// Center returns the prototype's center of symmetry in upsampled samples.
func (b *Bank) Center() float64 {
	return float64(len(b.Prototype)-1) / 2
}

// PhaseGain returns the DC gain (tap sum) of sub-filter p.
func (b *Bank) PhaseGain(p int) float64 {
	return f64.Sum(b.Phases[p])
}
