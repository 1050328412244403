//
// scope_test.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package synth

import (
	"testing"

	"github.com/markkurossi/qcla/circuit"
)

func TestScopeUncompute(t *testing.T) {
	s := NewState(nil)
	a := s.Input(1, "a")
	b := s.Input(1, "b")

	scope := s.Scope()
	tmp := s.Alloc(1, "tmp*")
	if err := s.AndInto([]*Cell{a[0], b[0]}, tmp[0]); err != nil {
		t.Fatalf("AndInto: %s", err)
	}
	if err := scope.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	if s.NumGates() != 2 {
		t.Fatalf("got %d gates, expected AND+ANDInv", s.NumGates())
	}
	if !tmp[0].Fresh() {
		t.Errorf("uncomputed cell not fresh")
	}

	circ := s.Compile()
	for av := uint64(0); av < 2; av++ {
		for bv := uint64(0); bv < 2; bv++ {
			state, err := circ.State([]uint64{av, bv})
			if err != nil {
				t.Fatalf("State: %s", err)
			}
			if state[tmp[0].ID()] != 0 {
				t.Errorf("local cell not restored for a=%d, b=%d", av, bv)
			}
		}
	}
}

func TestScopeKeep(t *testing.T) {
	s := NewState(nil)
	a := s.Input(1, "a")
	b := s.Input(1, "b")

	scope := s.Scope()
	res := s.Alloc(1, "res*")
	scope.Keep(res)
	if err := s.AndInto([]*Cell{a[0], b[0]}, res[0]); err != nil {
		t.Fatalf("AndInto: %s", err)
	}
	if err := scope.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	if s.NumGates() != 1 {
		t.Fatalf("kept register was uncomputed: %d gates", s.NumGates())
	}

	s.Output(res)
	circ := s.Compile()
	for av := uint64(0); av < 2; av++ {
		for bv := uint64(0); bv < 2; bv++ {
			result, err := circ.Compute([]uint64{av, bv})
			if err != nil {
				t.Fatalf("Compute: %s", err)
			}
			if result[0] != av&bv {
				t.Errorf("AND(%d,%d)=%d", av, bv, result[0])
			}
		}
	}
}

// TestScopeDependencyViolation verifies that reverse-replay refuses
// to run when a later operation has overwritten a control of an
// operation to be inverted.
func TestScopeDependencyViolation(t *testing.T) {
	s := NewState(nil)
	a := s.Input(1, "a")
	b := s.Input(1, "b")

	scope := s.Scope()
	tmp := s.Alloc(1, "tmp*")
	if err := s.AndInto([]*Cell{a[0], b[0]}, tmp[0]); err != nil {
		t.Fatalf("AndInto: %s", err)
	}
	s.CX(a[0], b[0])

	numGates := s.NumGates()
	if err := scope.Close(); err == nil {
		t.Fatalf("Close accepted an overwritten control")
	}
	if s.NumGates() != numGates {
		t.Errorf("failed Close emitted gates")
	}
}

// TestScopeSeedOrdering verifies the cycle-breaking seed order:
// writing the propagate value into b first and computing the generate
// with the composite gate keeps the replay dependency-free, because
// the composite is permeable on the b line.
func TestScopeSeedOrdering(t *testing.T) {
	s := NewState(nil)
	a := s.Input(1, "a")
	b := s.Input(1, "b")

	scope := s.Scope()
	g := s.Alloc(1, "g*")
	s.CX(a[0], b[0])
	s.AncGate(a[0], b[0], g[0])
	if err := scope.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}
	s.CX(a[0], b[0])

	circ := s.Compile()
	for av := uint64(0); av < 2; av++ {
		for bv := uint64(0); bv < 2; bv++ {
			state, err := circ.State([]uint64{av, bv})
			if err != nil {
				t.Fatalf("State: %s", err)
			}
			expected := []byte{byte(av), byte(bv), 0}
			for q, v := range expected {
				if state[q] != v {
					t.Errorf("a=%d b=%d: q%d=%d, expected %d",
						av, bv, q, state[q], v)
				}
			}
		}
	}
}

func TestScopeNesting(t *testing.T) {
	s := NewState(nil)

	outer := s.Scope()
	inner := s.Scope()

	if err := outer.Close(); err == nil {
		t.Fatalf("closed outer scope before inner")
	}
	if err := inner.Close(); err != nil {
		t.Fatalf("Close inner: %s", err)
	}
	if err := outer.Close(); err != nil {
		t.Fatalf("Close outer: %s", err)
	}
}

// Uncomputing a local whose gate reads another local is fine: the
// replay restores the local controls itself.
func TestScopeLocalControls(t *testing.T) {
	s := NewState(nil)
	a := s.Input(1, "a")
	b := s.Input(1, "b")

	scope := s.Scope()
	t0 := s.Alloc(1, "t0*")
	t1 := s.Alloc(1, "t1*")
	if err := s.AndInto([]*Cell{a[0], b[0]}, t0[0]); err != nil {
		t.Fatalf("AndInto: %s", err)
	}
	if err := s.AndInto([]*Cell{t0[0], a[0]}, t1[0]); err != nil {
		t.Fatalf("AndInto: %s", err)
	}
	if err := scope.Close(); err != nil {
		t.Fatalf("Close: %s", err)
	}

	circ := s.Compile()
	for av := uint64(0); av < 2; av++ {
		for bv := uint64(0); bv < 2; bv++ {
			state, err := circ.State([]uint64{av, bv})
			if err != nil {
				t.Fatalf("State: %s", err)
			}
			for _, q := range []circuit.Qubit{t0[0].ID(), t1[0].ID()} {
				if state[q] != 0 {
					t.Errorf("a=%d b=%d: local %s not restored", av, bv, q)
				}
			}
		}
	}
}
