package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"stlgate/internal/diagfmt"
	"stlgate/internal/driver"
)

func TestBuildReport_Pass(t *testing.T) {
	r := diagfmt.BuildReport("models/cube.stl", driver.Outcome{
		Pass: true, Warnings: 2, Format: "ASCII",
	})

	if r.EventOutcomeInformation != "pass" {
		t.Errorf("EventOutcomeInformation = %q", r.EventOutcomeInformation)
	}
	want := `format="STL (Standard Tessellation Language)"; version="ASCII"; result="errors: 0; warnings: 2"`
	if r.EventOutcomeDetailNote != want {
		t.Errorf("EventOutcomeDetailNote = %q, want %q", r.EventOutcomeDetailNote, want)
	}
	if r.Stdout == nil || *r.Stdout != "models/cube.stl validates." {
		t.Errorf("Stdout = %v", r.Stdout)
	}
}

func TestBuildReport_Fail(t *testing.T) {
	r := diagfmt.BuildReport("bad.stl", driver.Outcome{
		Pass: false, Errors: 1, Warnings: 0,
		FirstError: "line 1: Expected 'solid' but got 'cube'.",
		Format:     "ASCII",
	})

	if r.EventOutcomeInformation != "fail" {
		t.Errorf("EventOutcomeInformation = %q", r.EventOutcomeInformation)
	}
	want := "STL file validation failed, errors: 1, warnings: 0, first error on line 1: Expected 'solid' but got 'cube'."
	if r.EventOutcomeDetailNote != want {
		t.Errorf("EventOutcomeDetailNote = %q", r.EventOutcomeDetailNote)
	}
	if r.Stdout != nil {
		t.Errorf("Stdout = %q, want null", *r.Stdout)
	}
}

func TestWriteReport_NullStdoutOnFail(t *testing.T) {
	var buf strings.Builder
	err := diagfmt.WriteReport(&buf, diagfmt.BuildReport("x.stl", driver.Outcome{Errors: 1, Format: "binary"}))
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if v, present := decoded["stdout"]; !present || v != nil {
		t.Errorf("stdout field = %v (present=%v), want explicit null", v, present)
	}
	if decoded["eventOutcomeInformation"] != "fail" {
		t.Errorf("eventOutcomeInformation = %v", decoded["eventOutcomeInformation"])
	}
}
