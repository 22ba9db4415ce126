// Package stl implements the STL grammar and record validators: the
// binary/textual format detector, a line-cursor state machine for the
// ASCII grammar, and a fixed-stride byte-cursor scanner for binary
// triangle records. Geometric checks (vertex sign, winding order)
// run per facet in both encodings; every deviation goes through the
// diag.Collector owned by the run.
package stl

import (
	"fmt"

	"fortio.org/safecast"
)

// Binary STL framing: an ignored 80-byte header, a 4-byte
// little-endian triangle count, then count fixed-size records of
// 12+12+12+12+2 bytes (normal, v1, v2, v3, attribute).
const (
	HeaderSize = 80
	CountSize  = 4
	RecordSize = 50
)

// Format is the detected encoding of a candidate file.
type Format uint8

const (
	FormatASCII Format = iota
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatASCII:
		return "ASCII"
	case FormatBinary:
		return "binary"
	}
	return "unknown"
}

func u32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
