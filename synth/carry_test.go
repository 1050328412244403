//
// carry_test.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package synth

import (
	"testing"

	"github.com/markkurossi/qcla/circuit"
	"github.com/stretchr/testify/require"
)

// refCarries returns the ripple-carry chain of a+b over n digits:
// element i holds the carry into position i.
func refCarries(a, b uint64, n int) []byte {
	carries := make([]byte, n+1)
	var carry byte
	for i := 0; i < n; i++ {
		ab := byte(a>>i) & 1
		bb := byte(b>>i) & 1
		carries[i] = carry
		carry = ab&bb | ab&carry | bb&carry
	}
	carries[n] = carry
	return carries
}

func carryCircuit(t *testing.T, bits, radixBase, radixExponent int) (
	*circuit.Circuit, int) {

	s := NewState(nil)
	a := s.Input(bits, "a")
	b := s.Input(bits, "b")

	c, err := s.CalcCarry(a, b, radixBase, radixExponent)
	if err != nil {
		t.Fatalf("CalcCarry: %s", err)
	}
	return s.Compile(), len(c)
}

func TestCalcCarryRipple(t *testing.T) {
	for bits := 1; bits <= 6; bits++ {
		circ, numCarries := carryCircuit(t, bits, 2, 0)
		if numCarries != bits-1 {
			t.Fatalf("bits=%d: got %d carries, expected %d",
				bits, numCarries, bits-1)
		}

		limit := uint64(1) << bits
		for a := uint64(0); a < limit; a++ {
			for b := uint64(0); b < limit; b++ {
				result, err := circ.Compute([]uint64{a, b})
				if err != nil {
					t.Fatalf("Compute: %s", err)
				}
				ref := refCarries(a, b, bits)
				var expected uint64
				for i := 0; i < numCarries; i++ {
					expected |= uint64(ref[i+1]) << i
				}
				if result[0] != expected {
					t.Errorf("carries(%d+%d): got %b, expected %b",
						a, b, result[0], expected)
				}
			}
		}
	}
}

// TestCalcCarryRadix verifies that coarser radix/exponent settings
// sample exactly the radix-2 reference carries: result cell i holds
// the carry into position R*(i+1), R = base^exponent.
func TestCalcCarryRadix(t *testing.T) {
	assert := require.New(t)

	for bits := 1; bits <= 9; bits++ {
		for _, base := range []int{2, 3, 4} {
			for exp := 0; exp <= 2; exp++ {
				circ, numCarries := carryCircuit(t, bits, base, exp)

				R := 1
				for i := 0; i < exp && R <= bits; i++ {
					R *= base
				}
				expectedLen := (bits+R-1)/R - 1
				if expectedLen < 0 {
					expectedLen = 0
				}
				assert.Equal(expectedLen, numCarries,
					"bits=%d base=%d exp=%d", bits, base, exp)

				limit := uint64(1) << bits
				step := uint64(1)
				if bits > 6 {
					step = 7
				}
				for a := uint64(0); a < limit; a += step {
					for b := uint64(0); b < limit; b += step {
						result, err := circ.Compute([]uint64{a, b})
						assert.NoError(err)

						ref := refCarries(a, b, bits)
						var expected uint64
						for i := 0; i < numCarries; i++ {
							expected |= uint64(ref[R*(i+1)]) << i
						}
						assert.Equal(expected, result[0],
							"carries(%d+%d) bits=%d base=%d exp=%d",
							a, b, bits, base, exp)
					}
				}
			}
		}
	}
}

// TestCalcCarryGarbage verifies that every scratch cell is restored
// to zero and the b register is bit-identical to its pre-call value.
func TestCalcCarryGarbage(t *testing.T) {
	for _, cfg := range [][]int{{4, 2, 0}, {4, 2, 1}, {8, 2, 2}, {9, 3, 1}} {
		bits, base, exp := cfg[0], cfg[1], cfg[2]
		circ, _ := carryCircuit(t, bits, base, exp)

		limit := uint64(1) << bits
		for a := uint64(0); a < limit; a += 3 {
			for b := uint64(0); b < limit; b += 3 {
				state, err := circ.State([]uint64{a, b})
				if err != nil {
					t.Fatalf("State: %s", err)
				}

				kept := make([]bool, circ.NumQubits)
				for _, io := range circ.Inputs {
					for bit := 0; bit < io.Size; bit++ {
						kept[io.Qubit(bit)] = true
					}
				}
				for _, io := range circ.Outputs {
					for bit := 0; bit < io.Size; bit++ {
						kept[io.Qubit(bit)] = true
					}
				}
				for q := 0; q < circ.NumQubits; q++ {
					if !kept[q] && state[q] != 0 {
						t.Errorf("bits=%d base=%d exp=%d: scratch q%d not zero",
							bits, base, exp, q)
					}
				}
				for idx, io := range circ.Inputs {
					inputs := []uint64{a, b}
					for bit := 0; bit < io.Size; bit++ {
						expected := byte(inputs[idx]>>bit) & 1
						if state[io.Qubit(bit)] != expected {
							t.Errorf("input %s not restored", io.Name)
						}
					}
				}
			}
		}
	}
}

// TestCalcCarryPruning verifies that a zero-padded operand produces
// identical outputs with fewer or equal synthesized gates.
func TestCalcCarryPruning(t *testing.T) {
	full, numCarries := carryCircuit(t, 4, 2, 0)

	s := NewState(nil)
	a := s.Input(2, "a")
	b := s.Input(4, "b")
	a, b = s.ZeroPad(a, b)

	c, err := s.CalcCarry(a, b, 2, 0)
	if err != nil {
		t.Fatalf("CalcCarry: %s", err)
	}
	if len(c) != numCarries {
		t.Fatalf("got %d carries, expected %d", len(c), numCarries)
	}
	pruned := s.Compile()

	if len(pruned.Gates) > len(full.Gates) {
		t.Errorf("pruned circuit has more gates: %d > %d",
			len(pruned.Gates), len(full.Gates))
	}
	if s.Skipped() == 0 {
		t.Errorf("no gates pruned for zero-padded operand")
	}

	for a := uint64(0); a < 4; a++ {
		for b := uint64(0); b < 16; b++ {
			expected, err := full.Compute([]uint64{a, b})
			if err != nil {
				t.Fatalf("Compute: %s", err)
			}
			got, err := pruned.Compute([]uint64{a, b})
			if err != nil {
				t.Fatalf("pruned Compute: %s", err)
			}
			if got[0] != expected[0] {
				t.Errorf("carries(%d+%d): got %b, expected %b",
					a, b, got[0], expected[0])
			}
		}
	}
}

// TestCalcCarryInverse verifies that the inverse of the full emitted
// sequence restores every cell, the output register included.
func TestCalcCarryInverse(t *testing.T) {
	circ, _ := carryCircuit(t, 4, 2, 1)
	inv := circ.Inverse()

	for a := uint64(0); a < 16; a++ {
		for b := uint64(0); b < 16; b++ {
			initial := make([]byte, circ.NumQubits)
			for idx, val := range []uint64{a, b} {
				io := circ.Inputs[idx]
				for bit := 0; bit < io.Size; bit++ {
					initial[io.Qubit(bit)] = byte(val>>bit) & 1
				}
			}

			state := make([]byte, len(initial))
			copy(state, initial)
			if err := circ.Run(state); err != nil {
				t.Fatalf("Run: %s", err)
			}
			if err := inv.Run(state); err != nil {
				t.Fatalf("inverse Run: %s", err)
			}
			for q := range state {
				if state[q] != initial[q] {
					t.Errorf("inverse(%d,%d): q%d not restored", a, b, q)
				}
			}
		}
	}
}

// TestCalcCarryExample checks the reference scenario: a=3, b=6.
func TestCalcCarryExample(t *testing.T) {
	// The full carry chain of 3+6 is 0110.
	circ, numCarries := carryCircuit(t, 4, 2, 0)
	result, err := circ.Compute([]uint64{3, 6})
	if err != nil {
		t.Fatalf("Compute: %s", err)
	}
	if numCarries != 3 || result[0] != 0b110 {
		t.Errorf("exponent 0: got %d carries %b, expected 3 carries 110",
			numCarries, result[0])
	}

	// Exponent 1 samples the carry into position 2.
	circ, numCarries = carryCircuit(t, 4, 2, 1)
	result, err = circ.Compute([]uint64{3, 6})
	if err != nil {
		t.Fatalf("Compute: %s", err)
	}
	if numCarries != 1 || result[0] != 1 {
		t.Errorf("exponent 1: got %d carries %b, expected 1 carry 1",
			numCarries, result[0])
	}

	// Exponent 2 on an 8-bit pair leaves a single carry.
	_, numCarries = carryCircuit(t, 8, 2, 2)
	if numCarries != 1 {
		t.Errorf("exponent 2: got %d carries, expected 1", numCarries)
	}
}

func TestCalcCarryErrors(t *testing.T) {
	s := NewState(nil)
	a := s.Input(4, "a")
	b := s.Input(4, "b")

	if _, err := s.CalcCarry(a, b, 1, 0); err == nil {
		t.Errorf("radix base 1 accepted")
	}
	if _, err := s.CalcCarry(a, b, 0, 0); err == nil {
		t.Errorf("radix base 0 accepted")
	}
	if _, err := s.CalcCarry(a, b, 2, -1); err == nil {
		t.Errorf("negative radix exponent accepted")
	}
	if s.NumGates() != 0 {
		t.Errorf("invalid radix emitted %d gates", s.NumGates())
	}
}

// TestCalcCarryOverlap verifies the truncation policy: the engine
// operates over the overlapping prefix of unequal registers.
func TestCalcCarryOverlap(t *testing.T) {
	s := NewState(nil)
	a := s.Input(2, "a")
	b := s.Input(4, "b")

	c, err := s.CalcCarry(a, b, 2, 0)
	if err != nil {
		t.Fatalf("CalcCarry: %s", err)
	}
	if len(c) != 3 {
		t.Fatalf("got %d carries, expected 3", len(c))
	}
}
