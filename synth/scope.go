//
// scope.go
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

// Scope implements a scoped-allocation block. Registers allocated
// while the scope is open are local to it: at Close, the recorded
// operations targeting local cells are inverted and appended in
// reverse order, returning every local cell to zero before the cells
// are released. Registers holding results are excluded with Keep.
type Scope struct {
	s      *State
	start  int
	locals []Register
	kept   map[*Cell]bool
}

// Scope opens a new scoped-allocation block.
func (s *State) Scope() *Scope {
	scope := &Scope{
		s:     s,
		start: len(s.gates),
		kept:  make(map[*Cell]bool),
	}
	s.scopes = append(s.scopes, scope)
	return scope
}

// Keep excludes the register from the uncomputation at Close. The
// caller owns the register thereafter.
func (sc *Scope) Keep(reg Register) {
	for _, c := range reg {
		sc.kept[c] = true
	}
}

// Close uncomputes and releases the scope's local cells. The
// recorded in-scope operations whose target is a local cell are
// appended, inverted, in reverse order. Before emitting anything,
// Close verifies that the replay is sound: no later in-scope
// operation may have overwritten a non-local control of an inverted
// operation, where overwriting is judged by the gates' per-line
// permeability metadata. On a violation nothing is emitted or
// released; a leaked cell is safer than silent corruption.
func (sc *Scope) Close() error {
	s := sc.s
	if len(s.scopes) == 0 || s.scopes[len(s.scopes)-1] != sc {
		return fmt.Errorf("scope not innermost")
	}

	local := make(map[circuit.Qubit]bool)
	var cells []*Cell
	for _, reg := range sc.locals {
		for _, c := range reg {
			if !sc.kept[c] {
				local[c.id] = true
				cells = append(cells, c)
			}
		}
	}

	gates := s.gates[sc.start:]
	inverted := make([]bool, len(gates))
	for idx, g := range gates {
		inverted[idx] = local[g.Target]
	}

	// Soundness: an inverted gate must see its non-local controls
	// unchanged when the replay runs. Local controls are restored by
	// the replay itself.
	for idx, g := range gates {
		if !inverted[idx] {
			continue
		}
		for _, q := range g.Controls {
			if local[q] {
				continue
			}
			for j := idx + 1; j < len(gates); j++ {
				if inverted[j] {
					continue
				}
				if gates[j].WritesQubit(q) {
					return fmt.Errorf(
						"cannot uncompute %s: %s overwrites %s",
						g, gates[j], q)
				}
			}
		}
	}

	var count int
	for idx := len(gates) - 1; idx >= 0; idx-- {
		if inverted[idx] {
			s.gates = append(s.gates, gates[idx].Inverse())
			count++
		}
	}

	for _, c := range cells {
		c.val = Zero
	}
	s.scopes = s.scopes[:len(s.scopes)-1]

	if s.Params.Diagnostics && count > 0 {
		fmt.Printf(" - Uncompute: %d gates, %d cells\n", count, len(cells))
	}
	return nil
}
