//
// synth.go
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

// Params specify synthesis parameters.
type Params struct {
	Verbose     bool
	Diagnostics bool
}

// NewParams returns a new synthesis params object, initialized with
// the default values.
func NewParams() *Params {
	return &Params{}
}

// State implements the reversible gate synthesis state: it records
// the ordered operation sequence and tracks the statically known
// cell values used for gate pruning.
type State struct {
	Params  *Params
	alloc   *Allocator
	gates   []circuit.Gate
	inputs  circuit.IO
	outputs circuit.IO
	regs    circuit.IO
	scopes  []*Scope
	skipped int
}

// NewState creates a new synthesis state.
func NewState(params *Params) *State {
	if params == nil {
		params = NewParams()
	}
	return &State{
		Params: params,
		alloc:  NewAllocator(),
	}
}

// Input allocates an input register of size cells. Input cells hold
// unknown values.
func (s *State) Input(size int, name string) Register {
	reg := s.register(size, name)
	for _, c := range reg {
		c.val = Unknown
	}
	s.inputs = append(s.inputs, s.regs[len(s.regs)-1])
	return reg
}

// Alloc allocates a scratch or output register of size cells. The
// cells start fresh. While a scope is open, the register is local to
// it and will be uncomputed and released at scope exit unless kept.
func (s *State) Alloc(size int, tag string) Register {
	reg := s.register(size, tag)
	if len(s.scopes) > 0 {
		scope := s.scopes[len(s.scopes)-1]
		scope.locals = append(scope.locals, reg)
	}
	return reg
}

func (s *State) register(size int, name string) Register {
	reg := s.alloc.Cells(size, name)
	arg := circuit.IOArg{
		Name: name,
		Type: fmt.Sprintf("u%d", size),
		Size: size,
	}
	if size > 0 {
		arg.Base = reg[0].id
	} else {
		arg.Base = s.alloc.next
	}
	s.regs = append(s.regs, arg)
	return reg
}

// Output marks the register as a circuit output.
func (s *State) Output(reg Register) {
	for _, arg := range s.regs {
		if len(reg) > 0 && arg.Base == reg[0].id && arg.Size == len(reg) {
			s.outputs = append(s.outputs, arg)
			return
		}
	}
	if len(reg) == 0 {
		s.outputs = append(s.outputs, circuit.IOArg{
			Name: "empty",
			Type: "u0",
		})
	}
}

// ZeroPad pads the argument registers x and y with fresh cells so
// that the resulting registers have the same number of cells.
func (s *State) ZeroPad(x, y Register) (Register, Register) {
	if len(x) == len(y) {
		return x, y
	}

	max := len(x)
	if len(y) > max {
		max = len(y)
	}

	rx := make(Register, max)
	copy(rx, x)
	for i := len(x); i < max; i++ {
		rx[i] = s.Alloc(1, "pad*")[0]
	}

	ry := make(Register, max)
	copy(ry, y)
	for i := len(y); i < max; i++ {
		ry[i] = s.Alloc(1, "pad*")[0]
	}

	return rx, ry
}

// Release returns the register's cells to the allocator. Every cell
// must be statically known to hold zero; a cell that is not provably
// restored is leaked instead.
func (s *State) Release(reg Register) error {
	for _, c := range reg {
		if c.val != Zero {
			return fmt.Errorf("release of cell %s: not in zero state", c)
		}
	}
	return nil
}

// NumGates returns the number of emitted gates.
func (s *State) NumGates() int {
	return len(s.gates)
}

// Skipped returns the number of gate emissions pruned by the
// freshness analysis.
func (s *State) Skipped() int {
	return s.skipped
}

// emit records the gate and propagates the statically known values
// into the target cell.
func (s *State) emit(op circuit.Operation, controls []*Cell, target *Cell) {
	gate := circuit.Gate{
		Op:     op,
		Target: target.id,
	}
	if len(controls) > 0 {
		gate.Controls = make([]circuit.Qubit, len(controls))
		for idx, c := range controls {
			gate.Controls[idx] = c.id
		}
	}
	s.gates = append(s.gates, gate)

	switch op {
	case circuit.X:
		switch target.val {
		case Zero:
			target.val = One
		case One:
			target.val = Zero
		}

	case circuit.CX:
		c := controls[0]
		if c.val == Zero {
			// Identity on the target.
		} else if c.val == One && target.val != Unknown {
			target.val ^= 3 // Zero <-> One
		} else {
			target.val = Unknown
		}

	case circuit.CCX, circuit.MCX:
		v := One
		for _, c := range controls {
			if c.val == Zero {
				v = Zero
				break
			}
			if c.val == Unknown {
				v = Unknown
			}
		}
		if v == Zero {
			// Identity on the target.
		} else if v == One && target.val != Unknown {
			target.val ^= 3
		} else {
			target.val = Unknown
		}

	case circuit.AND:
		target.val = and(controls[0].val, controls[1].val)

	case circuit.ANDX:
		a := controls[0]
		b := controls[1]
		// The middle line holds a XOR b.
		target.val = and(a.val, xor(a.val, b.val))

	case circuit.ANDInv, circuit.ANDXInv:
		target.val = Zero
	}
}

func and(a, b CellValue) CellValue {
	if a == Zero || b == Zero {
		return Zero
	}
	if a == One && b == One {
		return One
	}
	return Unknown
}

func xor(a, b CellValue) CellValue {
	if a == Unknown || b == Unknown {
		return Unknown
	}
	if a == b {
		return Zero
	}
	return One
}

// Compile freezes the recorded operation sequence into a circuit.
func (s *State) Compile() *circuit.Circuit {
	result := &circuit.Circuit{
		NumQubits: s.alloc.Count(),
		Inputs:    s.inputs,
		Outputs:   s.outputs,
		Regs:      s.regs,
		Gates:     make([]circuit.Gate, len(s.gates)),
	}
	copy(result.Gates, s.gates)
	for _, g := range result.Gates {
		result.Stats[g.Op]++
	}
	return result
}
