package source

import "testing"

func TestSpan_Basics(t *testing.T) {
	s := Span{File: 1, Start: 4, End: 9}
	if s.Empty() {
		t.Errorf("non-empty span reported empty")
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if s.String() != "1:4-9" {
		t.Errorf("String() = %q", s.String())
	}

	if !(Span{Start: 3, End: 3}).Empty() {
		t.Errorf("empty span not reported empty")
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 0, Start: 10, End: 20}
	b := Span{File: 0, Start: 5, End: 15}
	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Errorf("Cover() = %+v", got)
	}

	other := Span{File: 1, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files changed span: %+v", got)
	}
}
