package main

import "testing"

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"yes", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
