// Package board is the period-consistent scheduling engine behind the week board:
// it validates drops, applies moves and edits optimistically, persists them and
// rolls them back when the store refuses.
package board

import (
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

// Resolution is the outcome of validating a task against a destination period.
type Resolution struct {
	Period      period.Period
	Time        period.Clock
	WasAdjusted bool
}

// Validate decides which time a task keeps when placed in dest on the given day.
// A time already inside dest is kept; anything else is replaced by dest's default.
// The returned time always classifies as dest. The result does not depend on day.
//
// dest must be a valid period. For an invalid one Validate returns the zero
// Resolution, which callers must not apply.
func Validate(t task.Task, day int, dest period.Period) Resolution {
	if !dest.Valid() {
		return Resolution{}
	}
	if t.Period() == dest {
		return Resolution{Period: dest, Time: t.Time}
	}
	return Resolution{Period: dest, Time: dest.Default(), WasAdjusted: true}
}
