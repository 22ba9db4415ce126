package stl

import (
	"encoding/binary"
)

// Detect classifies content as binary or textual STL. A file is binary
// iff the size equation 80 + 4 + 50*triangleCount == len(content)
// holds exactly, with the count read little-endian right after the
// assumed 80-byte header. Files too short to carry a count are
// textual.
//
// This is a heuristic, not a format marker: a textual file whose size
// coincidentally satisfies the equation is classified as binary. That
// limitation is deliberate and covered by tests; do not "fix" it here
// without revisiting the ingest contract.
func Detect(content []byte) Format {
	if len(content) < HeaderSize+CountSize {
		return FormatASCII
	}
	count := binary.LittleEndian.Uint32(content[HeaderSize : HeaderSize+CountSize])
	expected := uint64(HeaderSize+CountSize) + uint64(RecordSize)*uint64(count)
	if expected == uint64(len(content)) {
		return FormatBinary
	}
	return FormatASCII
}
