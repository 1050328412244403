//
// lower.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

// Decompose lowers the circuit into the elementary gate set X, CX,
// CCX, AND, ANDInv. MCX gates expand into a cascade of Gidney AND
// gates over freshly allocated ancilla qubits, ending in a Toffoli,
// followed by the ANDInv unwind. ANDX gates expand into their CX,
// AND, CX sandwich.
func (c *Circuit) Decompose() *Circuit {
	result := &Circuit{
		NumQubits: c.NumQubits,
		Inputs:    c.Inputs,
		Outputs:   c.Outputs,
		Regs:      c.Regs,
	}
	next := Qubit(c.NumQubits)

	for _, g := range c.Gates {
		switch g.Op {
		case MCX:
			if len(g.Controls) <= 2 {
				lg := g
				if len(g.Controls) == 1 {
					lg.Op = CX
				} else {
					lg.Op = CCX
				}
				result.add(lg)
				continue
			}
			// Reduce the first len-1 controls into one ancilla.
			acc := g.Controls[0]
			var temps []Gate
			for i := 1; i < len(g.Controls)-1; i++ {
				t := next
				next++
				and := Gate{
					Op:       AND,
					Controls: []Qubit{acc, g.Controls[i]},
					Target:   t,
				}
				result.add(and)
				temps = append(temps, and)
				acc = t
			}
			result.add(Gate{
				Op:       CCX,
				Controls: []Qubit{acc, g.Controls[len(g.Controls)-1]},
				Target:   g.Target,
			})
			for i := len(temps) - 1; i >= 0; i-- {
				result.add(temps[i].Inverse())
			}

		case ANDX, ANDXInv:
			a := g.Controls[0]
			b := g.Controls[1]
			result.add(Gate{Op: CX, Controls: []Qubit{a}, Target: b})
			inner := Gate{Op: AND, Controls: []Qubit{a, b}, Target: g.Target}
			if g.Op == ANDXInv {
				inner.Op = ANDInv
			}
			result.add(inner)
			result.add(Gate{Op: CX, Controls: []Qubit{a}, Target: b})

		default:
			result.add(g)
		}
	}
	result.NumQubits = int(next)
	return result
}

func (c *Circuit) add(g Gate) {
	c.Gates = append(c.Gates, g)
	c.Stats[g.Op]++
}
