//
// adder.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package synth

import (
	"fmt"

	"github.com/markkurossi/qcla/circuit"
)

// GidneyAdder emits an in-place ripple-carry adder b += a (mod
// 2^len) built from the Gidney logical-AND gates. The carry chain
// runs through an ancilla register that the adder restores and
// releases itself; the construction produces no garbage. The adder
// emits its gates unconditionally: the carry chain pairs every AND
// with a later ANDInv and pruning one without the other would leave
// the pair out of sync.
func (s *State) GidneyAdder(a, b Register) error {
	if len(a) != len(b) {
		return fmt.Errorf("invalid adder arguments: a=%d, b=%d",
			len(a), len(b))
	}
	n := len(a)
	if n == 0 {
		return nil
	}
	if n == 1 {
		s.emit(circuit.CX, []*Cell{a[0]}, b[0])
		return nil
	}

	anc := s.Alloc(n-1, "gidney_anc*")

	// Forward pass: anc[i] ends up holding the carry into position
	// i+1. The CX pair folds the incoming carry into the digit pair
	// so that the AND of the modified digits is carry-out XOR
	// carry-in; the trailing CX cancels the carry-in term.
	s.emit(circuit.AND, []*Cell{a[0], b[0]}, anc[0])
	for i := 1; i < n-1; i++ {
		s.emit(circuit.CX, []*Cell{anc[i-1]}, a[i])
		s.emit(circuit.CX, []*Cell{anc[i-1]}, b[i])
		s.emit(circuit.AND, []*Cell{a[i], b[i]}, anc[i])
		s.emit(circuit.CX, []*Cell{anc[i-1]}, anc[i])
	}

	// Top digit: sum only, the carry out of it is dropped.
	s.emit(circuit.CX, []*Cell{anc[n-2]}, b[n-1])
	s.emit(circuit.CX, []*Cell{a[n-1]}, b[n-1])

	// Backward pass: unwind the carry chain and complete the sum
	// digits.
	for i := n - 2; i >= 1; i-- {
		s.emit(circuit.CX, []*Cell{anc[i-1]}, anc[i])
		s.emit(circuit.ANDInv, []*Cell{a[i], b[i]}, anc[i])
		s.emit(circuit.CX, []*Cell{anc[i-1]}, a[i])
		s.emit(circuit.CX, []*Cell{a[i]}, b[i])
	}
	s.emit(circuit.ANDInv, []*Cell{a[0], b[0]}, anc[0])
	s.emit(circuit.CX, []*Cell{a[0]}, b[0])

	return s.Release(anc)
}
