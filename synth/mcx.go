//
// mcx.go
//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package synth

import (
	"fmt"

	"github.com/markkurossi/qcla/circuit"
)

// The multi-controlled X strategies. Some control values are
// statically known to be zero (because some of the input values are
// known to be zero); emissions controlled by such a cell are skipped
// since the conjunction is provably zero.

// X emits a NOT gate on the target cell.
func (s *State) X(t *Cell) {
	s.emit(circuit.X, nil, t)
}

// CX emits a controlled NOT gate. The emission is skipped when the
// control is fresh.
func (s *State) CX(c, t *Cell) {
	if c.Fresh() {
		s.skipped++
		return
	}
	s.emit(circuit.CX, []*Cell{c}, t)
}

// MCX emits a multi-controlled X gate, XOR-accumulating the
// conjunction of the controls into the target. Two controls use the
// Toffoli construction that works on any target; wider fan-in uses
// the general multi-control gate, lowered into a Gidney AND cascade
// at decomposition time. The emission is skipped when any control is
// fresh.
func (s *State) MCX(controls []*Cell, t *Cell) error {
	if len(controls) == 0 {
		return fmt.Errorf("MCX: no controls")
	}
	if Fresh(controls...) {
		s.skipped++
		return nil
	}
	switch len(controls) {
	case 1:
		s.emit(circuit.CX, controls, t)
	case 2:
		s.emit(circuit.CCX, controls, t)
	default:
		s.emit(circuit.MCX, controls, t)
	}
	return nil
}

// AndInto computes the conjunction of the controls into the fresh
// target cell. Two controls use the cheapest 2-input strategy, the
// Gidney logical AND; wider fan-in uses the general multi-control
// gate. The emission is skipped when any control is fresh: the
// target is then guaranteed zero without synthesizing a gate.
func (s *State) AndInto(controls []*Cell, t *Cell) error {
	if len(controls) < 2 {
		return fmt.Errorf("AndInto: got %d controls, expected >= 2",
			len(controls))
	}
	if !t.Fresh() {
		panic(fmt.Sprintf("AndInto: target %s not fresh", t))
	}
	if Fresh(controls...) {
		s.skipped++
		return nil
	}
	if len(controls) == 2 {
		s.emit(circuit.AND, controls, t)
	} else {
		s.emit(circuit.MCX, controls, t)
	}
	return nil
}

// AncGate emits the composite gate computing AND(a, b) into the
// fresh target when the b cell already holds a XOR b. The composite
// wraps the Gidney AND between two CX gates on the b line and
// declares the line permeable, so that computing the generate seed
// after the propagate seed does not create a cycle for the
// dependency analysis. The emission is skipped when a is fresh.
func (s *State) AncGate(a, b, t *Cell) {
	if !t.Fresh() {
		panic(fmt.Sprintf("AncGate: target %s not fresh", t))
	}
	if a.Fresh() {
		s.skipped++
		return
	}
	s.emit(circuit.ANDX, []*Cell{a, b}, t)
}
