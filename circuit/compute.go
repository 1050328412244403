//
// compute.go
//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
)

// Run evaluates the circuit in-place over the argument classical
// state. The state must have one byte per qubit, each 0 or 1. The
// evaluation checks the Gidney AND preconditions: an AND target must
// be zero and an ANDInv target must hold the conjunction of its
// controls.
func (c *Circuit) Run(state []byte) error {
	if len(state) < c.NumQubits {
		return fmt.Errorf("invalid state: got %d qubits, expected %d",
			len(state), c.NumQubits)
	}
	for idx, gate := range c.Gates {
		if err := gate.eval(state); err != nil {
			return fmt.Errorf("gate %d %s: %s", idx, gate, err)
		}
	}
	return nil
}

func (g Gate) eval(state []byte) error {
	switch g.Op {
	case X:
		state[g.Target] ^= 1

	case CX:
		state[g.Target] ^= state[g.Controls[0]]

	case CCX:
		state[g.Target] ^= state[g.Controls[0]] & state[g.Controls[1]]

	case MCX:
		v := byte(1)
		for _, c := range g.Controls {
			v &= state[c]
		}
		state[g.Target] ^= v

	case AND:
		if state[g.Target] != 0 {
			return fmt.Errorf("AND target not in zero state")
		}
		state[g.Target] = state[g.Controls[0]] & state[g.Controls[1]]

	case ANDInv:
		if state[g.Target] != state[g.Controls[0]]&state[g.Controls[1]] {
			return fmt.Errorf("ANDInv target out of sync")
		}
		state[g.Target] = 0

	case ANDX:
		// The middle line holds a XOR b; the original b is a XOR
		// (a XOR b).
		b := state[g.Controls[0]] ^ state[g.Controls[1]]
		if state[g.Target] != 0 {
			return fmt.Errorf("ANDX target not in zero state")
		}
		state[g.Target] = state[g.Controls[0]] & b

	case ANDXInv:
		b := state[g.Controls[0]] ^ state[g.Controls[1]]
		if state[g.Target] != state[g.Controls[0]]&b {
			return fmt.Errorf("ANDXInv target out of sync")
		}
		state[g.Target] = 0

	default:
		return fmt.Errorf("invalid gate %s", g.Op)
	}
	return nil
}

// State evaluates the circuit with the argument input register
// values and returns the full final state, one byte per qubit. All
// non-input qubits start from zero.
func (c *Circuit) State(inputs []uint64) ([]byte, error) {
	if len(inputs) != len(c.Inputs) {
		return nil, fmt.Errorf("invalid inputs: got %d, expected %d",
			len(inputs), len(c.Inputs))
	}
	state := make([]byte, c.NumQubits)
	for idx, io := range c.Inputs {
		for bit := 0; bit < io.Size; bit++ {
			if inputs[idx]&(1<<bit) != 0 {
				state[io.Qubit(bit)] = 1
			}
		}
	}
	if err := c.Run(state); err != nil {
		return nil, err
	}
	return state, nil
}

// Compute evaluates the circuit with the argument input register
// values and returns the output register values.
func (c *Circuit) Compute(inputs []uint64) ([]uint64, error) {
	state, err := c.State(inputs)
	if err != nil {
		return nil, err
	}
	result := make([]uint64, len(c.Outputs))
	for idx, io := range c.Outputs {
		for bit := 0; bit < io.Size; bit++ {
			if state[io.Qubit(bit)] != 0 {
				result[idx] |= 1 << bit
			}
		}
	}
	return result, nil
}
