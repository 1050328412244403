//
// allocator.go
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

// CellValue defines the statically known cell values.
type CellValue uint8

// Possible cell values. A cell whose value is statically Zero is
// fresh: no emitted gate has written it and gate synthesis
// controlled by it can be skipped.
const (
	Unknown CellValue = iota
	Zero
	One
)

func (v CellValue) String() string {
	switch v {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "?"
	}
}

// Cell is an addressable unit of reversible state. Cells are
// borrowed by the synthesis routines, never owned: the allocating
// register or scope controls the cell lifetime.
type Cell struct {
	id  circuit.Qubit
	val CellValue
	tag string
}

func (c *Cell) String() string {
	return fmt.Sprintf("%s{%s, %s}", c.tag, c.id, c.val)
}

// ID returns the cell's qubit ID.
func (c *Cell) ID() circuit.Qubit {
	return c.id
}

// Value returns the cell's statically known value.
func (c *Cell) Value() CellValue {
	return c.val
}

// Fresh reports whether the cell is statically guaranteed to hold
// zero.
func (c *Cell) Fresh() bool {
	return c.val == Zero
}

// Register is an ordered sequence of cells, index 0 least
// significant. Sub-registers are plain slices sharing the cells.
type Register []*Cell

// Qubits returns the register's qubit IDs.
func (r Register) Qubits() []circuit.Qubit {
	result := make([]circuit.Qubit, len(r))
	for idx, c := range r {
		result[idx] = c.id
	}
	return result
}

// Fresh reports whether any argument cell is statically guaranteed to
// hold zero, making a conjunction over the cells provably zero. Nil
// entries are not-applicable placeholders and are skipped.
func Fresh(cells ...*Cell) bool {
	for _, c := range cells {
		if c != nil && c.Fresh() {
			return true
		}
	}
	return false
}

// Allocator implements cell and register allocation.
type Allocator struct {
	block    []Cell
	ofs      int
	next     circuit.Qubit
	numCells uint64
}

// NewAllocator creates a new cell allocator.
func NewAllocator() *Allocator {
	return new(Allocator)
}

// Cells allocates a register of count cells with contiguous qubit
// IDs. The cells start fresh.
func (alloc *Allocator) Cells(count int, tag string) Register {
	alloc.numCells += uint64(count)
	result := make(Register, count)
	for i := 0; i < count; i++ {
		if alloc.ofs == 0 {
			alloc.ofs = 8192
			alloc.block = make([]Cell, alloc.ofs)
		}
		alloc.ofs--
		c := &alloc.block[alloc.ofs]

		c.id = alloc.next
		c.val = Zero
		c.tag = tag
		alloc.next++

		result[i] = c
	}
	return result
}

// Count returns the number of allocated cells.
func (alloc *Allocator) Count() int {
	return int(alloc.next)
}

// Debug prints debugging information about the cell allocator.
func (alloc *Allocator) Debug() {
	fmt.Printf("synth.Allocator: #cells=%v\n", alloc.numCells)
}
