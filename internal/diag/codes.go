package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Textual grammar (hard errors)
	TxtExpectedSolid       Code = 1000
	TxtExpectedFacetNormal Code = 1001
	TxtExpectedOuterLoop   Code = 1002
	TxtExpectedVertex      Code = 1003
	TxtExpectedEndloop     Code = 1004
	TxtExpectedEndfacet    Code = 1005
	TxtExpectedEndsolid    Code = 1006
	TxtUnexpectedEOF       Code = 1007

	// Textual cosmetics (warnings)
	TxtEmptyLine        Code = 1100
	TxtMissingSolidName Code = 1101

	// Geometric soft violations (severity depends on policy)
	GeoNegativeVertex       Code = 2000
	GeoWindingOrder         Code = 2001
	GeoEndsolidNameMismatch Code = 2002

	// Binary corruption (hard errors in every mode)
	BinNaNCoordinate    Code = 3000
	BinAttributeNotZero Code = 3001
	BinUnexpectedEOF    Code = 3002
)

// ID returns a stable short identifier used in JSON output and tests.
func (c Code) ID() string {
	switch c {
	case TxtExpectedSolid:
		return "TXT1000"
	case TxtExpectedFacetNormal:
		return "TXT1001"
	case TxtExpectedOuterLoop:
		return "TXT1002"
	case TxtExpectedVertex:
		return "TXT1003"
	case TxtExpectedEndloop:
		return "TXT1004"
	case TxtExpectedEndfacet:
		return "TXT1005"
	case TxtExpectedEndsolid:
		return "TXT1006"
	case TxtUnexpectedEOF:
		return "TXT1007"
	case TxtEmptyLine:
		return "TXT1100"
	case TxtMissingSolidName:
		return "TXT1101"
	case GeoNegativeVertex:
		return "GEO2000"
	case GeoWindingOrder:
		return "GEO2001"
	case GeoEndsolidNameMismatch:
		return "GEO2002"
	case BinNaNCoordinate:
		return "BIN3000"
	case BinAttributeNotZero:
		return "BIN3001"
	case BinUnexpectedEOF:
		return "BIN3002"
	}
	return fmt.Sprintf("STL%04d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}

// Soft reports whether the code's severity is decided by the policy
// (strict vs. tolerant) instead of being fixed. Exactly three kinds of
// violation are soft: negative vertex coordinates, winding order, and
// a mismatched endsolid name.
func (c Code) Soft() bool {
	switch c {
	case GeoNegativeVertex, GeoWindingOrder, GeoEndsolidNameMismatch:
		return true
	}
	return false
}
