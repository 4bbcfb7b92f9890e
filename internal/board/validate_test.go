package board

import (
	"testing"

	"github.com/javiermolinar/weekboard/internal/period"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		clock        string
		dest         period.Period
		wantTime     string
		wantAdjusted bool
	}{
		{"afternoon to morning uses default", "14:00", period.Morning, "09:00", true},
		{"same period keeps time", "09:00", period.Morning, "09:00", false},
		{"same period keeps minutes", "10:45", period.Morning, "10:45", false},
		{"evening to dawn", "23:30", period.Dawn, "04:00", true},
		{"dawn stays dawn", "03:15", period.Dawn, "03:15", false},
		{"morning to evening", "06:00", period.Evening, "19:00", true},
		{"last minute of afternoon to evening", "17:59", period.Evening, "19:00", true},
		{"boundary belongs to later period", "18:00", period.Evening, "18:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := mk("a", 0, tt.clock)
			got := Validate(*tk, 1, tt.dest)

			if got.Time.String() != tt.wantTime {
				t.Errorf("Time = %s, want %s", got.Time, tt.wantTime)
			}
			if got.WasAdjusted != tt.wantAdjusted {
				t.Errorf("WasAdjusted = %v, want %v", got.WasAdjusted, tt.wantAdjusted)
			}
			if period.Classify(got.Time) != got.Period {
				t.Errorf("time %s does not classify as %s", got.Time, got.Period)
			}
		})
	}
}

func TestValidate_InvalidDestination(t *testing.T) {
	tk := mk("a", 0, "14:00")
	for _, dest := range []period.Period{period.Period(-1), period.Period(9)} {
		if got := Validate(*tk, 1, dest); got != (Resolution{}) {
			t.Errorf("Validate(%d) = %+v, want zero Resolution", int(dest), got)
		}
	}
}

func TestValidate_AlwaysConsistent(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 29, 59} {
			tk := mk("a", 0, period.NewClock(h, m).String())
			for _, dest := range period.All() {
				got := Validate(*tk, 0, dest)
				if got.Period != dest {
					t.Fatalf("%s -> %s: period %s", tk.Time, dest, got.Period)
				}
				if period.Classify(got.Time) != dest {
					t.Fatalf("%s -> %s: time %s classifies as %s", tk.Time, dest, got.Time, period.Classify(got.Time))
				}
				if got.WasAdjusted != (tk.Period() != dest) {
					t.Fatalf("%s -> %s: WasAdjusted = %v", tk.Time, dest, got.WasAdjusted)
				}
			}
		}
	}
}
