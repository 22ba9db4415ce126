package driver_test

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stlgate/internal/driver"
	"stlgate/internal/stl"
)

const validCube = `solid cube
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid cube
`

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// validBinary is one well-formed ccw triangle with zero attribute.
func validBinary(t *testing.T) []byte {
	t.Helper()
	buf := make([]byte, 84, 134)
	binary.LittleEndian.PutUint32(buf[80:84], 1)
	for _, c := range []float32{
		0, 0, 1, // normal
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
	}
	return binary.LittleEndian.AppendUint16(buf, 0)
}

func TestValidate_ASCIIPass(t *testing.T) {
	path := writeFile(t, "cube.stl", []byte(validCube))

	res, err := driver.Validate(path, driver.Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Outcome.Pass {
		t.Fatalf("Outcome = %+v, want pass", res.Outcome)
	}
	if res.Outcome.Format != "ASCII" {
		t.Errorf("Format = %q, want ASCII", res.Outcome.Format)
	}
	if res.Outcome.Errors != 0 || res.Outcome.Warnings != 0 {
		t.Errorf("counts = %d/%d", res.Outcome.Errors, res.Outcome.Warnings)
	}
}

func TestValidate_BinaryPass(t *testing.T) {
	path := writeFile(t, "cube.stl", validBinary(t))

	res, err := driver.Validate(path, driver.Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Outcome.Pass || res.Outcome.Format != "binary" {
		t.Errorf("Outcome = %+v", res.Outcome)
	}
	if res.Format != stl.FormatBinary {
		t.Errorf("detected format = %v", res.Format)
	}
}

func TestValidate_FailCarriesFirstError(t *testing.T) {
	path := writeFile(t, "bad.stl", []byte("cube\nendsolid cube\n"))

	res, err := driver.Validate(path, driver.Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Outcome.Pass {
		t.Fatalf("invalid file passed")
	}
	if res.Outcome.FirstError != "line 1: Expected 'solid' but got 'cube'." {
		t.Errorf("FirstError = %q", res.Outcome.FirstError)
	}
	if res.Outcome.Errors != 1 {
		t.Errorf("Errors = %d, want 1", res.Outcome.Errors)
	}
}

func TestValidate_TolerantModeChangesVerdict(t *testing.T) {
	content := []byte("solid cube\nendsolid cubism\n")
	path := writeFile(t, "mismatch.stl", content)

	strict, err := driver.Validate(path, driver.Options{})
	if err != nil {
		t.Fatalf("Validate strict: %v", err)
	}
	if strict.Outcome.Pass {
		t.Errorf("name mismatch passed in strict mode")
	}

	tolerant, err := driver.Validate(path, driver.Options{Tolerant: true})
	if err != nil {
		t.Fatalf("Validate tolerant: %v", err)
	}
	if !tolerant.Outcome.Pass || tolerant.Outcome.Warnings != 1 {
		t.Errorf("tolerant Outcome = %+v", tolerant.Outcome)
	}
}

func TestValidate_VerboseWarningsRendered(t *testing.T) {
	path := writeFile(t, "anon.stl", []byte("solid\nendsolid\n"))

	var out strings.Builder
	res, err := driver.Validate(path, driver.Options{Verbose: true, WarnWriter: &out})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Outcome.Pass {
		t.Fatalf("Outcome = %+v", res.Outcome)
	}
	if !strings.Contains(out.String(), "Warning on line 1:") {
		t.Errorf("verbose output = %q", out.String())
	}
}

func TestValidate_Idempotent(t *testing.T) {
	path := writeFile(t, "cube.stl", []byte(validCube))

	a, err := driver.Validate(path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := driver.Validate(path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Outcome != b.Outcome {
		t.Errorf("outcomes differ: %+v vs %+v", a.Outcome, b.Outcome)
	}
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := driver.Validate(filepath.Join(t.TempDir(), "nope.stl"), driver.Options{})
	if err == nil {
		t.Fatalf("missing file produced a verdict")
	}
}

// The detector routes a coincidentally-sized textual file to the
// binary validator; the run then judges it as binary data.
func TestValidate_CoincidentalSizeGoesBinary(t *testing.T) {
	content := make([]byte, 134)
	copy(content, "solid coincidence\n")
	for i := 18; i < len(content); i++ {
		content[i] = ' '
	}
	binary.LittleEndian.PutUint32(content[80:84], 1)
	path := writeFile(t, "trap.stl", content)

	res, err := driver.Validate(path, driver.Options{})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Format != stl.FormatBinary {
		t.Errorf("Format = %v, want binary routing", res.Format)
	}
	if res.Outcome.Format != "binary" {
		t.Errorf("Outcome.Format = %q", res.Outcome.Format)
	}
}
