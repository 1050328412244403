//
// carry.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// This file implements carry synthesis with a generalized Brent-Kung
// parallel-prefix tree. The tree works over two arrays: P holds the
// per-position PROPAGATE status (the digit pair passes an incoming
// carry through) and G the per-position GENERATE status (the digit
// pair alone produces a carry). Positions are grouped by radix, the
// group-level problem is solved recursively and the group carries
// are expanded back down to the remaining positions.

package synth

import (
	"fmt"
)

// calcPGroup returns the PROPAGATE status of a group of entries: the
// conjunction of all member propagates. If any member is fresh, the
// group can never propagate and the new cell is returned without
// synthesizing a gate.
func (s *State) calcPGroup(p []*Cell) (*Cell, error) {
	np := s.Alloc(1, "p_group*")[0]
	if Fresh(p...) {
		s.skipped++
		return np, nil
	}
	if err := s.AndInto(p, np); err != nil {
		return nil, err
	}
	return np, nil
}

// calcGGroup computes the GENERATE status of a group into its last
// member: the group generates a carry if some member generates one
// and every following member propagates it through. The loop must
// run in increasing order so that every step reads generate values
// no step of this pass has overwritten yet.
func (s *State) calcGGroup(p, g []*Cell) (*Cell, error) {
	last := g[len(g)-1]
	for i := 0; i < len(g)-1; i++ {
		controls := make([]*Cell, 0, len(g)-i)
		controls = append(controls, g[i])
		controls = append(controls, p[i+1:]...)

		if err := s.MCX(controls, last); err != nil {
			return nil, err
		}
	}
	return last, nil
}

// propagateCarry back-fills the true CARRY status into every entry
// of G, assuming G[0] already holds the carry status of the span.
// The carry into position i arises from the generate status of any
// position j < i, provided every position strictly between j and i
// propagates. The loop runs in decreasing order: computing position
// i needs the GENERATE status, not the CARRY status, of every j < i,
// so the highest positions must be overwritten first.
func (s *State) propagateCarry(p, g []*Cell) error {
	for i := len(g) - 1; i >= 1; i-- {
		for j := 0; j < i; j++ {
			controls := make([]*Cell, 0, i-j+1)
			controls = append(controls, g[j])
			controls = append(controls, p[j+1:i+1]...)

			if err := s.MCX(controls, g[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

// carryTree recursively calculates the layers of the Brent-Kung
// tree. P and G hold the per-position PROPAGATE and GENERATE status;
// radix is the group size per layer. kOut cancels the expansion
// early: with kOut > 0 the tree returns the group-level carries
// without propagating them back down, so only every radix^kOut-th
// position of G receives a properly calculated carry value. G is
// mutated in place and returned.
func (s *State) carryTree(p, g []*Cell, radix, kOut int) ([]*Cell, error) {
	if radix < 2 {
		return nil, fmt.Errorf("invalid radix base %d (needs integer > 1)",
			radix)
	}

	// Recursion cancellation condition.
	if len(g) == 0 {
		return nil, nil
	}

	// Group the positions and calculate the group GENERATE and
	// PROPAGATE status. The 0-th group needs no propagate value:
	// neither calcGGroup nor propagateCarry takes the 0-th position
	// of their span into consideration and position 0 already holds
	// true carry information.
	numGroups := len(g) / radix
	groupedP := make([]*Cell, 0, numGroups)
	groupedG := make([]*Cell, 0, numGroups)

	for i := 0; i < numGroups; i++ {
		lo := radix * i
		hi := radix * (i + 1)

		if i == 0 {
			groupedP = append(groupedP, nil)
		} else {
			gp, err := s.calcPGroup(p[lo:hi])
			if err != nil {
				return nil, err
			}
			groupedP = append(groupedP, gp)
		}

		gg, err := s.calcGGroup(p[lo:hi], g[lo:hi])
		if err != nil {
			return nil, err
		}
		groupedG = append(groupedG, gg)
	}

	// Evaluate the group-level carries.
	groupedCarry, err := s.carryTree(groupedP, groupedG, radix, kOut-1)
	if err != nil {
		return nil, err
	}

	if kOut > 0 {
		return groupedCarry, nil
	}

	// With radix > 2 the carry must also be propagated within the
	// first group. For radix 2 the first group is just position 0,
	// which holds the carry by construction, and position 1, which
	// received the carry from this group's generate computation.
	end := radix - 1
	if end > len(g) {
		end = len(g)
	}
	if err := s.propagateCarry(p[:end], g[:end]); err != nil {
		return nil, err
	}

	// Propagate the group carries to the remaining positions. The
	// last span is not necessarily of full size.
	for i := 1; i <= numGroups; i++ {
		lo := radix*i - 1
		hi := radix*(i+1) - 1
		if lo >= len(g) {
			break
		}
		if hi > len(g) {
			hi = len(g)
		}
		if err := s.propagateCarry(p[lo:hi], g[lo:hi]); err != nil {
			return nil, err
		}
	}

	// G now contains the carry positions.
	return g, nil
}

// CalcCarry computes the carry status of the sum of two equal-length
// registers a and b. The result register contains the carry status
// of every radixBase^radixExponent-th digit: result cell i holds the
// carry into position R*(i+1) where R = radixBase^radixExponent.
// With R = 1 the result holds the full carry chain of positions
// 1..len(b)-1; the carry out of the last position is never computed
// since no caller needs it.
//
// The b register temporarily holds the propagate seeds during the
// computation and is restored before return. Every intermediate
// value beyond the result register is uncomputed.
func (s *State) CalcCarry(a, b Register, radixBase, radixExponent int) (
	Register, error) {

	if radixBase < 2 {
		return nil, fmt.Errorf("invalid radix base %d (needs integer > 1)",
			radixBase)
	}
	if radixExponent < 0 {
		return nil, fmt.Errorf("invalid radix exponent %d (needs integer >= 0)",
			radixExponent)
	}

	// R is the distance between digits receiving a carry value. The
	// clamp keeps the power from overflowing; any R > len(b) yields
	// an empty result.
	R := 1
	for i := 0; i < radixExponent && R <= len(b); i++ {
		R *= radixBase
	}

	numCarries := (len(b)+R-1)/R - 1
	if numCarries < 0 {
		numCarries = 0
	}

	scope := s.Scope()

	// The result register. If b divides into k blocks of size R,
	// only k-1 cells are needed: the carry out of the last block has
	// no consumer.
	c := s.Alloc(numCarries, "carry*")
	scope.Keep(c)

	// The GENERATE array interleaves scratch and result cells: in
	// every block of R positions the first R-1 generate values are
	// garbage to be uncomputed and the last one is the carry the
	// caller keeps.
	g := make([]*Cell, 0, numCarries*R)
	if R > 1 {
		anc := s.Alloc(numCarries*(R-1), "bk_ancilla*")
		var ai int
		for i := 0; i < numCarries; i++ {
			for j := 0; j < R-1; j++ {
				g = append(g, anc[ai])
				ai++
			}
			g = append(g, c[i])
		}
	} else {
		for _, cell := range c {
			g = append(g, cell)
		}
	}

	// Seed the GENERATE and PROPAGATE status of each digit:
	//
	//	g_i = a_i AND b_i
	//	p_i = a_i XOR b_i
	//
	// with the propagate written into b in place. Computing the
	// generate with a plain AND before the XOR would leave the
	// uncomputation analysis with a cycle between the two writes on
	// the same pair of cells. Instead the XOR runs first and the
	// generate comes from the composite AncGate, which is permeable
	// on the b line, so the dependency graph stays acyclic.
	m := len(g)
	if len(a) < m {
		m = len(a)
	}
	if len(b) < m {
		m = len(b)
	}
	for i := 0; i < m; i++ {
		s.CX(a[i], b[i])
		s.AncGate(a[i], b[i], g[i])
	}

	// Compute the carries with the Brent-Kung tree over the seeds.
	p := make([]*Cell, len(g))
	for i := 0; i < len(g); i++ {
		p[i] = b[i]
	}
	if _, err := s.carryTree(p, g, radixBase, radixExponent); err != nil {
		return nil, err
	}

	// Uncompute the garbage: the early tree layers leave GENERATE
	// entries that hold no carry value, and the group PROPAGATE
	// cells are never part of the result.
	if err := scope.Close(); err != nil {
		return nil, err
	}

	// Restore the original b value.
	for i := 0; i < m; i++ {
		s.CX(a[i], b[i])
	}

	if s.Params.Diagnostics {
		fmt.Printf(" - CalcCarry: n=%d R=%d gates=%d skipped=%d\n",
			len(b), R, len(s.gates), s.skipped)
	}

	s.Output(c)
	return c, nil
}
