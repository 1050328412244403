//
// qasm.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"fmt"
	"io"
)

// MarshalQASM marshals the circuit as OpenQASM 2.0. The circuit is
// decomposed first; the Gidney AND gates are emitted as Toffolis
// since QASM has no logical-AND primitive.
func (c *Circuit) MarshalQASM(out io.Writer) error {
	lowered := c.Decompose()

	fmt.Fprintf(out, "OPENQASM 2.0;\n")
	fmt.Fprintf(out, "include \"qelib1.inc\";\n")
	fmt.Fprintf(out, "qreg q[%d];\n", lowered.NumQubits)

	for idx, g := range lowered.Gates {
		switch g.Op {
		case X:
			fmt.Fprintf(out, "x q[%d];\n", g.Target)

		case CX:
			fmt.Fprintf(out, "cx q[%d],q[%d];\n", g.Controls[0], g.Target)

		case CCX, AND, ANDInv:
			fmt.Fprintf(out, "ccx q[%d],q[%d],q[%d];\n",
				g.Controls[0], g.Controls[1], g.Target)

		default:
			return fmt.Errorf("gate %d: %s not lowered", idx, g.Op)
		}
	}
	return nil
}
