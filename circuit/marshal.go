//
// marshal.go
//
// Copyright (c) 2024-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// MAGIC is a magic number for the qcla circuit format version 0.
	MAGIC = 0x71636c00 // qcl0
)

var (
	bo = binary.BigEndian
)

// Marshal marshals the circuit in the qcla binary circuit format.
func (c *Circuit) Marshal(out io.Writer) error {
	var data = []interface{}{
		uint32(MAGIC),
		uint32(len(c.Gates)),
		uint32(c.NumQubits),
		uint32(len(c.Inputs)),
		uint32(len(c.Outputs)),
	}
	for _, v := range data {
		if err := binary.Write(out, bo, v); err != nil {
			return err
		}
	}
	for _, arg := range c.Inputs {
		if err := marshalIOArg(out, arg); err != nil {
			return err
		}
	}
	for _, arg := range c.Outputs {
		if err := marshalIOArg(out, arg); err != nil {
			return err
		}
	}

	for _, g := range c.Gates {
		data = []interface{}{
			byte(g.Op),
			uint32(len(g.Controls)),
		}
		for _, v := range data {
			if err := binary.Write(out, bo, v); err != nil {
				return err
			}
		}
		for _, ctrl := range g.Controls {
			if err := binary.Write(out, bo, uint32(ctrl)); err != nil {
				return err
			}
		}
		if err := binary.Write(out, bo, uint32(g.Target)); err != nil {
			return err
		}
	}
	return nil
}

func marshalIOArg(out io.Writer, arg IOArg) error {
	if err := marshalString(out, arg.Name); err != nil {
		return err
	}
	if err := marshalString(out, arg.Type); err != nil {
		return err
	}
	var data = []interface{}{
		uint32(arg.Base),
		uint32(arg.Size),
	}
	for _, v := range data {
		if err := binary.Write(out, bo, v); err != nil {
			return err
		}
	}
	return nil
}

func marshalString(out io.Writer, val string) error {
	bytes := []byte(val)
	if err := binary.Write(out, bo, uint32(len(bytes))); err != nil {
		return err
	}
	_, err := out.Write(bytes)
	return err
}

// MarshalFormat marshals the circuit in the specified format.
func (c *Circuit) MarshalFormat(out io.Writer, format string) error {
	switch format {
	case "qclc":
		return c.Marshal(out)
	case "qasm":
		return c.MarshalQASM(out)
	default:
		return fmt.Errorf("unsupported circuit format: %s", format)
	}
}
