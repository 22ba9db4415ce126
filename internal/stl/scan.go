package stl

import (
	"strconv"
	"strings"

	"stlgate/internal/geom"
)

// matchFloat reports whether s is a float token of the relaxed STL
// grammar: optional minus (no plus), optional integer digits, optional
// fraction with at least one digit, optional exponent with at least
// one digit. Equivalent to the pattern -?\d*(\.\d+)?([Ee][+-]?\d+)?
// anchored at both ends, so the empty string and a bare "-" both
// match.
func matchFloat(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// floatValue parses a grammar-valid token into a value for the
// geometric checks. Tokens with no digits (the pattern admits "" and
// "-") decode to 0.
func floatValue(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseTriple matches `<keyword> <f> <f> <f>` against a normalized
// line and returns the decoded vector. ok is false when the keyword or
// any of the exactly-three float fields fails to match.
func parseTriple(text, keyword string) (geom.Vec3, bool) {
	rest, found := strings.CutPrefix(text, keyword+" ")
	if !found {
		return geom.Vec3{}, false
	}
	fields := strings.Split(rest, " ")
	if len(fields) != 3 {
		return geom.Vec3{}, false
	}
	var c [3]float64
	for i, f := range fields {
		if !matchFloat(f) {
			return geom.Vec3{}, false
		}
		c[i] = floatValue(f)
	}
	return geom.Vec3{X: c[0], Y: c[1], Z: c[2]}, true
}

// normalizeLine collapses runs of whitespace to a single space and
// strips both ends, so the grammar only ever sees single-space
// separators.
func normalizeLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
