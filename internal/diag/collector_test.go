package diag_test

import (
	"errors"
	"strings"
	"testing"

	"stlgate/internal/diag"
	"stlgate/internal/source"
)

func makeFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.stl", []byte(content))
	return fs.Get(id)
}

func TestCollector_WarnCountsWithoutVerbose(t *testing.T) {
	f := makeFile(t, "solid\nendsolid\n")
	var out strings.Builder
	c := diag.NewCollector(f, diag.CollectorOptions{WarnWriter: &out})

	c.Warn(diag.TxtMissingSolidName, source.Span{End: 5}, "solid <string>", "solid")

	if c.Warnings() != 1 {
		t.Errorf("Warnings() = %d, want 1", c.Warnings())
	}
	if out.Len() != 0 {
		t.Errorf("warning rendered without verbose: %q", out.String())
	}
}

func TestCollector_VerboseRendersWarning(t *testing.T) {
	f := makeFile(t, "solid\nendsolid\n")
	var out strings.Builder
	c := diag.NewCollector(f, diag.CollectorOptions{Verbose: true, WarnWriter: &out})

	c.Warn(diag.TxtMissingSolidName, source.Span{End: 5}, "solid <string>", "solid")

	want := "Warning on line 1: Expected 'solid <string>' but got 'solid'.\n"
	if out.String() != want {
		t.Errorf("rendered = %q, want %q", out.String(), want)
	}
}

func TestCollector_FailCapturesFirstError(t *testing.T) {
	f := makeFile(t, "banana\n")
	c := diag.NewCollector(f, diag.CollectorOptions{})

	err := c.Fail(diag.TxtExpectedSolid, source.Span{End: 6}, "solid", "banana")
	if err == nil {
		t.Fatalf("Fail returned nil")
	}
	var abort *diag.Abort
	if !errors.As(err, &abort) {
		t.Fatalf("Fail returned %T, want *diag.Abort", err)
	}
	if abort.Rendered != "line 1: Expected 'solid' but got 'banana'." {
		t.Errorf("Rendered = %q", abort.Rendered)
	}
	if c.FirstError() != abort.Rendered {
		t.Errorf("FirstError = %q", c.FirstError())
	}
	if c.Errors() != 1 {
		t.Errorf("Errors() = %d, want 1", c.Errors())
	}
}

func TestCollector_SoftDispatch(t *testing.T) {
	tests := []struct {
		name     string
		strict   bool
		wantFail bool
	}{
		{"tolerant demotes to warning", false, false},
		{"strict promotes to error", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := makeFile(t, "vertex -1 0 0\n")
			c := diag.NewCollector(f, diag.CollectorOptions{Strict: tt.strict})

			err := c.Soft(diag.GeoNegativeVertex, source.Span{End: 13}, "not all vertices have positive values", "")
			if (err != nil) != tt.wantFail {
				t.Fatalf("Soft() error = %v, wantFail %v", err, tt.wantFail)
			}
			if tt.wantFail {
				if c.Errors() != 1 || c.Warnings() != 0 {
					t.Errorf("counts = %d errors, %d warnings", c.Errors(), c.Warnings())
				}
			} else {
				if c.Errors() != 0 || c.Warnings() != 1 {
					t.Errorf("counts = %d errors, %d warnings", c.Errors(), c.Warnings())
				}
			}
		})
	}
}

func TestCollector_HardCodesIgnoreTolerantMode(t *testing.T) {
	f := makeFile(t, "data")
	c := diag.NewCollector(f, diag.CollectorOptions{Strict: false, Binary: true})

	err := c.Soft(diag.BinNaNCoordinate, source.Span{Start: 84, End: 134},
		"file contains NaN values in normal or vertex coordinates", "")
	if err == nil {
		t.Fatalf("NaN downgraded by tolerant mode")
	}
}

func TestCollector_BinaryLocationsUseByteOffsets(t *testing.T) {
	f := makeFile(t, "data")
	c := diag.NewCollector(f, diag.CollectorOptions{Binary: true})

	err := c.Fail(diag.BinAttributeNotZero, source.Span{Start: 132, End: 134},
		"attribute byte count should be '0', but got '7'", "")
	var abort *diag.Abort
	if !errors.As(err, &abort) {
		t.Fatalf("Fail returned %T", err)
	}
	want := "byte offset 132: attribute byte count should be '0', but got '7'"
	if abort.Rendered != want {
		t.Errorf("Rendered = %q, want %q", abort.Rendered, want)
	}
}

func TestBag_CountsAndSort(t *testing.T) {
	b := diag.NewBag(10)
	b.Add(diag.New(diag.SevWarning, diag.TxtEmptyLine, source.Span{Start: 20, End: 21}, "line is empty"))
	b.Add(diag.New(diag.SevError, diag.TxtExpectedEndsolid, source.Span{Start: 5, End: 10}, "x"))

	if b.Count(diag.SevWarning) != 1 || b.Count(diag.SevError) != 1 {
		t.Errorf("Count mismatch: %d warnings, %d errors",
			b.Count(diag.SevWarning), b.Count(diag.SevError))
	}

	b.Sort()
	if b.Items()[0].Code != diag.TxtExpectedEndsolid {
		t.Errorf("Sort() did not order by span start")
	}
}

func TestBag_Limit(t *testing.T) {
	b := diag.NewBag(1)
	if !b.Add(diag.New(diag.SevWarning, diag.TxtEmptyLine, source.Span{}, "one")) {
		t.Fatalf("first Add rejected")
	}
	if b.Add(diag.New(diag.SevWarning, diag.TxtEmptyLine, source.Span{}, "two")) {
		t.Errorf("Add beyond cap accepted")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}
