package source

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_AddVirtual(t *testing.T) {
	fs := NewFileSet()
	content := []byte("solid cube\nendsolid cube\n")
	id := fs.AddVirtual("cube.stl", content)

	f := fs.Get(id)
	if f.Path != "cube.stl" {
		t.Errorf("Path = %q, want %q", f.Path, "cube.stl")
	}
	if f.Flags&FileVirtual == 0 {
		t.Errorf("virtual flag not set")
	}
	if f.Hash != sha256.Sum256(content) {
		t.Errorf("content hash mismatch")
	}
	if len(f.LineIdx) != 2 {
		t.Errorf("LineIdx has %d entries, want 2", len(f.LineIdx))
	}
}

func TestFileSet_Load_ByteExact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw.stl")
	// CRLF and a stray CR must survive loading untouched.
	raw := []byte("solid a\r\nendsolid a\r")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := fs.Get(id).Content; string(got) != string(raw) {
		t.Errorf("content rewritten on load: %q", got)
	}
}

func TestFileSet_Load_Missing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.stl")); err == nil {
		t.Errorf("Load of missing file succeeded")
	}
}

func TestFileSet_GetByPath(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a/./b.stl", []byte("x"))

	f, ok := fs.GetByPath("a/b.stl")
	if !ok {
		t.Fatalf("GetByPath failed for normalized path")
	}
	if f.ID != id {
		t.Errorf("ID = %d, want %d", f.ID, id)
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.stl", []byte("one\ntwo\nthree"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFile_Line(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.stl", []byte("ab\ncd\nef\n"))
	f := fs.Get(id)

	for _, tt := range []struct {
		off  uint32
		want uint32
	}{{0, 1}, {2, 1}, {3, 2}, {5, 2}, {6, 3}} {
		if got := f.Line(tt.off); got != tt.want {
			t.Errorf("Line(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}
