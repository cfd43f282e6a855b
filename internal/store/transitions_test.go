package store

import "testing"

func TestValidTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		valid  bool
	}{
		{"arrive", "upcoming", true},
		{"arrive", "arrived", false},
		{"arrive", "completed", false},
		{"start", "arrived", true},
		{"start", "upcoming", false},
		{"start", "in_consultation", false},
		{"complete", "in_consultation", true},
		{"complete", "arrived", false},
		{"complete", "completed", false},
		{"cancel", "upcoming", true},
		{"cancel", "arrived", true},
		{"cancel", "in_consultation", false},
		{"cancel", "cancelled", false},
		{"no_show", "upcoming", true},
		{"no_show", "arrived", true},
		{"no_show", "in_consultation", true},
		{"no_show", "completed", false},
		{"unknown", "upcoming", false},
	}

	for _, tt := range cases {
		if got := ValidTransition(tt.action, tt.from); got != tt.valid {
			t.Fatalf("ValidTransition(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

func TestTargetStatusCoversEveryAction(t *testing.T) {
	for action := range transitionMap {
		if _, ok := TargetStatus[action]; !ok {
			t.Errorf("action %q has no target status", action)
		}
	}
	for action := range TargetStatus {
		if _, ok := transitionMap[action]; !ok {
			t.Errorf("target status for unknown action %q", action)
		}
	}
}
