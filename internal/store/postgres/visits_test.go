package postgres

import (
	"reflect"
	"testing"

	"github.com/gbmsdev99/xclinic/internal/store"
)

func TestTransitionStampColumns(t *testing.T) {
	cases := []struct {
		action string
		cols   []string
	}{
		{"arrive", []string{"arrived_at"}},
		{"start", []string{"consultation_start_time"}},
		{"complete", []string{"consultation_end_time", "completed_at"}},
		{"cancel", []string{"cancelled_at"}},
		{"no_show", nil},
	}

	for _, tt := range cases {
		t.Run(tt.action, func(t *testing.T) {
			got, ok := transitionStamps[tt.action]
			if !ok {
				t.Fatalf("no stamp entry for action %q", tt.action)
			}
			if !reflect.DeepEqual(got, tt.cols) {
				t.Errorf("columns for %q = %v, want %v", tt.action, got, tt.cols)
			}
		})
	}
}

func TestTransitionStampsCoverEveryAction(t *testing.T) {
	for action := range store.TargetStatus {
		if _, ok := transitionStamps[action]; !ok {
			t.Errorf("action %q has no stamp entry", action)
		}
	}
	for action := range transitionStamps {
		if _, ok := store.TargetStatus[action]; !ok {
			t.Errorf("stamp entry %q is not a known action", action)
		}
	}
}
