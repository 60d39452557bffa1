package services

import "testing"

func TestNormalizeAction(t *testing.T) {
	cases := []struct {
		raw  string
		want taskAction
		ok   bool
	}{
		{"start", actionStart, true},
		{"working", actionStart, true},
		{"accept", actionStart, true},
		{"complete", actionComplete, true},
		{"done", actionComplete, true},
		{"finish", actionComplete, true},
		{"START", actionStart, true},
		{"  Done  ", actionComplete, true},
		{"", "", false},
		{"restart", "", false},
		{"startle", "", false},
	}

	for _, tc := range cases {
		got, ok := normalizeAction(tc.raw)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("normalizeAction(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
