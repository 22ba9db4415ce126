package stl

import (
	"encoding/binary"
	"fmt"
	"math"

	"stlgate/internal/diag"
	"stlgate/internal/geom"
	"stlgate/internal/source"
)

// record is one decoded 50-byte triangle record.
type record struct {
	normal geom.Vec3
	verts  [3]geom.Vec3
	attr   uint16
	nan    bool
}

// ValidateBinary scans the fixed-stride triangle records of file. The
// content is already in memory; the scan is a sequential cursor walk,
// no facet slice is materialized. The returned error is either nil or
// the run's terminal *diag.Abort.
func ValidateBinary(file *source.File, sink *diag.Collector) error {
	content := file.Content

	if len(content) < HeaderSize+CountSize {
		return eofError(file, sink, len(content))
	}
	// Header content carries no validated information; only the
	// count matters.
	count := binary.LittleEndian.Uint32(content[HeaderSize : HeaderSize+CountSize])

	off := HeaderSize + CountSize
	for i := uint32(0); i < count; i++ {
		// An implausible declared count must surface as a clean
		// diagnostic, never as a slice fault.
		if len(content)-off < RecordSize {
			return eofError(file, sink, off)
		}
		rec := decodeRecord(content[off : off+RecordSize])
		span := source.Span{File: file.ID, Start: u32(off), End: u32(off + RecordSize)}

		if err := checkRecord(rec, span, sink); err != nil {
			return err
		}
		off += RecordSize
	}
	return nil
}

// checkRecord applies the per-record checks in their fixed order:
// vertex sign (soft), winding (soft), NaN (hard), attribute (hard).
func checkRecord(rec record, span source.Span, sink *diag.Collector) error {
	negative := false
	for _, v := range rec.verts {
		if v.X < 0 || v.Y < 0 || v.Z < 0 {
			negative = true
			break
		}
	}
	if negative {
		if err := sink.Soft(diag.GeoNegativeVertex, span,
			"not all vertices of this facet have positive values", ""); err != nil {
			return err
		}
	}

	if !geom.CounterClockwise(rec.verts[0], rec.verts[1], rec.verts[2], rec.normal) {
		if err := sink.Soft(diag.GeoWindingOrder, span,
			"vertices of this facet are not ordered counterclockwise", ""); err != nil {
			return err
		}
	}

	if rec.nan {
		return sink.Fail(diag.BinNaNCoordinate, span,
			"file contains NaN values in normal or vertex coordinates", "")
	}

	if rec.attr != 0 {
		return sink.Fail(diag.BinAttributeNotZero, span,
			fmt.Sprintf("attribute byte count should be '0', but got '%d'", rec.attr), "")
	}
	return nil
}

func decodeRecord(buf []byte) record {
	var rec record
	rec.normal = decodeVec(buf[0:12])
	for i := range rec.verts {
		rec.verts[i] = decodeVec(buf[12+12*i : 24+12*i])
	}
	rec.attr = binary.LittleEndian.Uint16(buf[48:50])
	rec.nan = rec.normal.IsNaN() || rec.verts[0].IsNaN() || rec.verts[1].IsNaN() || rec.verts[2].IsNaN()
	return rec
}

func decodeVec(buf []byte) geom.Vec3 {
	return geom.Vec3{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12]))),
	}
}

func eofError(file *source.File, sink *diag.Collector, off int) error {
	end := u32(len(file.Content))
	span := source.Span{File: file.ID, Start: u32(off), End: end}
	return sink.Fail(diag.BinUnexpectedEOF, span, "unexpected end of input", "")
}
