//
// dot.go
//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

// Dot creates graphviz dot output of the circuit.
func (c *Circuit) Dot(out io.Writer) {
	fmt.Fprintf(out, "digraph circuit\n{\n")
	fmt.Fprintf(out, "  overlap=scale;\n")
	fmt.Fprintf(out, "  node\t[fontname=\"Helvetica\"];\n")
	fmt.Fprintf(out, "  {\n    node [shape=plaintext];\n")
	for q := 0; q < c.NumQubits; q++ {
		fmt.Fprintf(out, "    q%d\t[label=\"%s\"];\n", q, c.qubitLabel(Qubit(q)))
	}
	fmt.Fprintf(out, "  }\n")

	fmt.Fprintf(out, "  {\n    node [shape=box];\n")
	for idx, gate := range c.Gates {
		fmt.Fprintf(out, "    g%d\t[label=\"%s\"];\n", idx, gate.Label())
	}
	fmt.Fprintf(out, "  }\n")

	// Edges follow the last-writer chain per qubit so that the graph
	// renders the gate dependency DAG.
	last := make(map[Qubit]string)
	for q := 0; q < c.NumQubits; q++ {
		last[Qubit(q)] = fmt.Sprintf("q%d", q)
	}
	for idx, gate := range c.Gates {
		node := fmt.Sprintf("g%d", idx)
		for _, q := range gate.Qubits() {
			fmt.Fprintf(out, "  %s -> %s;\n", last[q], node)
		}
		for _, q := range gate.Qubits() {
			if gate.WritesQubit(q) {
				last[q] = node
			}
		}
	}
	fmt.Fprintf(out, "}\n")
}

func (c *Circuit) qubitLabel(q Qubit) string {
	for _, reg := range c.Regs {
		if q >= reg.Base && int(q-reg.Base) < reg.Size {
			return reg.Label(int(q - reg.Base))
		}
	}
	return q.String()
}
