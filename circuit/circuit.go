//
// circuit.go
//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"

	"github.com/markkurossi/text/superscript"
)

// Qubit specifies a qubit ID.
type Qubit uint32

// ID returns the qubit ID as integer.
func (q Qubit) ID() int {
	return int(q)
}

func (q Qubit) String() string {
	return fmt.Sprintf("q%d", q)
}

// Operation specifies gate function.
type Operation byte

// Gate functions. AND and ANDInv implement the Gidney logical-AND:
// AND computes the conjunction of its two controls into a target that
// must be in the zero state; ANDInv is its measurement-based inverse,
// returning the target to zero. ANDX wraps AND between two CX gates
// on the middle line: the middle line enters holding a XOR b, the
// inner CX restores b, AND writes a AND b into the target and the
// outer CX re-establishes a XOR b. The middle line is therefore
// transparent for dependency analysis. MCX is the general
// multi-controlled X; Decompose lowers it to an AND cascade.
const (
	X Operation = iota
	CX
	CCX
	MCX
	AND
	ANDInv
	ANDX
	ANDXInv
)

// Stats holds statistics about circuit operations.
type Stats [ANDXInv + 1]int

// Count returns the total number of operations.
func (stats Stats) Count() int {
	var count int
	for _, v := range stats {
		count += v
	}
	return count
}

func (op Operation) String() string {
	switch op {
	case X:
		return "X"
	case CX:
		return "CX"
	case CCX:
		return "CCX"
	case MCX:
		return "MCX"
	case AND:
		return "AND"
	case ANDInv:
		return "ANDInv"
	case ANDX:
		return "ANDX"
	case ANDXInv:
		return "ANDXInv"
	default:
		return fmt.Sprintf("{Operation %d}", op)
	}
}

// Gate specifies a reversible gate.
type Gate struct {
	Op       Operation
	Controls []Qubit
	Target   Qubit
}

func (g Gate) String() string {
	return fmt.Sprintf("%v %v %v", g.Op, g.Controls, g.Target)
}

// Label returns a render label for the gate. Multi-controlled X
// gates are labeled X<n> where n is the control count in
// superscript.
func (g Gate) Label() string {
	switch g.Op {
	case X, CX, CCX, MCX:
		if n := len(g.Controls); n > 0 {
			return "X" + superscript.Itoa(n)
		}
		return "X"
	default:
		return g.Op.String()
	}
}

// Qubits returns the gate lines: controls first, target last.
func (g Gate) Qubits() []Qubit {
	result := make([]Qubit, 0, len(g.Controls)+1)
	result = append(result, g.Controls...)
	return append(result, g.Target)
}

// internalWrites lists the lines a composite gate writes during its
// decomposition, in addition to the target.
func (g Gate) internalWrites() []Qubit {
	switch g.Op {
	case ANDX, ANDXInv:
		return g.Controls[1:2]
	default:
		return nil
	}
}

// Permeable reports whether the gate is transparent on qubit q for
// dependency analysis: q's value is unchanged once the gate has run,
// even when the gate's internal decomposition writes it. The ANDX
// gates declare their middle line permeable.
func (g Gate) Permeable(q Qubit) bool {
	if q == g.Target {
		return false
	}
	for _, c := range g.Controls {
		if c == q {
			return true
		}
	}
	return false
}

// WritesQubit reports whether running the gate can leave qubit q
// changed. Internally written lines declared permeable are excluded.
func (g Gate) WritesQubit(q Qubit) bool {
	if q == g.Target {
		return true
	}
	for _, w := range g.internalWrites() {
		if w == q && !g.Permeable(w) {
			return true
		}
	}
	return false
}

// QFree reports whether the gate maps classical states to classical
// states. All gates of this set are qfree; the flag is metadata for
// uncomputation analysis.
func (g Gate) QFree() bool {
	return true
}

// Inverse returns the inverse gate.
func (g Gate) Inverse() Gate {
	inv := Gate{
		Op:       g.Op,
		Controls: g.Controls,
		Target:   g.Target,
	}
	switch g.Op {
	case AND:
		inv.Op = ANDInv
	case ANDInv:
		inv.Op = AND
	case ANDX:
		inv.Op = ANDXInv
	case ANDXInv:
		inv.Op = ANDX
	}
	return inv
}

// IOArg describes a circuit register.
type IOArg struct {
	Name string
	Type string
	Base Qubit
	Size int
}

func (io IOArg) String() string {
	if len(io.Name) > 0 {
		return io.Name + ":" + io.Type
	}
	return io.Type
}

// Qubit returns the register's idx'th qubit. Register qubits are
// allocated contiguously.
func (io IOArg) Qubit(idx int) Qubit {
	return io.Base + Qubit(idx)
}

// Label returns a render label for the register's idx'th qubit.
func (io IOArg) Label(idx int) string {
	return io.Name + superscript.Itoa(idx)
}

// IO specifies circuit registers.
type IO []IOArg

// Size computes the total register size in qubits.
func (io IO) Size() int {
	var sum int
	for _, a := range io {
		sum += a.Size
	}
	return sum
}

func (io IO) String() string {
	var str = ""
	for i, a := range io {
		if i > 0 {
			str += ", "
		}
		str += a.String()
	}
	return str
}

// Circuit specifies a reversible circuit.
type Circuit struct {
	NumQubits int
	Inputs    IO
	Outputs   IO
	Regs      IO
	Gates     []Gate
	Stats     Stats
}

func (c *Circuit) String() string {
	var stats string

	for k := X; k <= ANDXInv; k++ {
		v := c.Stats[k]
		if v == 0 {
			continue
		}
		if len(stats) > 0 {
			stats += " "
		}
		stats += fmt.Sprintf("%s=%d", k, v)
	}
	return fmt.Sprintf("#gates=%d (%s) #q=%d", len(c.Gates), stats,
		c.NumQubits)
}

// Cost computes the relative computational cost of the circuit. The
// weights count T gates: the Gidney AND takes 4, the Toffoli 7 and
// the measurement-based ANDInv none.
func (c *Circuit) Cost() int {
	cost := (c.Stats[AND] + c.Stats[ANDX]) * 4
	cost += c.Stats[CCX] * 7
	for _, g := range c.Gates {
		if g.Op == MCX {
			// Lowered into len(controls)-2 ANDs and one Toffoli.
			cost += (len(g.Controls)-2)*4 + 7
		}
	}
	return cost
}

// Dump prints a debug dump of the circuit.
func (c *Circuit) Dump() {
	fmt.Printf("circuit %s\n", c)
	for id, gate := range c.Gates {
		fmt.Printf("%04d\t%s\n", id, gate)
	}
}

// Inverse returns the inverse circuit: the reversed gate list with
// every gate inverted.
func (c *Circuit) Inverse() *Circuit {
	inv := &Circuit{
		NumQubits: c.NumQubits,
		Inputs:    c.Inputs,
		Outputs:   c.Outputs,
		Regs:      c.Regs,
		Gates:     make([]Gate, len(c.Gates)),
	}
	for idx, g := range c.Gates {
		ig := g.Inverse()
		inv.Gates[len(c.Gates)-1-idx] = ig
		inv.Stats[ig.Op]++
	}
	return inv
}
