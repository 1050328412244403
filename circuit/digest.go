//
// digest.go
//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"bytes"

	"golang.org/x/crypto/blake2b"
)

// Digest computes a content digest over the marshalled circuit. Two
// circuits with the same registers and gate sequence have the same
// digest.
func (c *Circuit) Digest() [blake2b.Size256]byte {
	var buf bytes.Buffer

	// Marshal can't fail on bytes.Buffer.
	c.Marshal(&buf)

	return blake2b.Sum256(buf.Bytes())
}
