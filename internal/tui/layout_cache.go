package tui

import (
	"github.com/javiermolinar/weekboard/internal/board"
	"github.com/javiermolinar/weekboard/internal/period"
	"github.com/javiermolinar/weekboard/internal/task"
)

const (
	labelWidth  = 11 // period label column
	gridTop     = 3  // title, day headers, rule
	footerLines = 2  // status, help
	minColWidth = 8
)

// LayoutCache stores the board geometry and the styles derived from the window size.
//
// Columns: a label column, then for each day a separator followed by ColW
// content cells. Rows: the title, the day headers and a rule, then for each
// period RowH content lines closed by a rule, then the footer.
type LayoutCache struct {
	Width  int
	Height int

	ColW int
	RowH int
}

func (m Model) buildLayoutCache(width, height int) LayoutCache {
	l := LayoutCache{
		Width:  max(0, width),
		Height: max(0, height),
	}
	l.ColW = max(minColWidth, (l.Width-labelWidth-task.DaysPerWeek)/task.DaysPerWeek)
	l.RowH = max(1, (l.Height-gridTop-footerLines-period.Count)/period.Count)
	return l
}

// DayX returns the column of a day's separator. Content starts one column later.
func (l LayoutCache) DayX(day int) int {
	return labelWidth + day*(l.ColW+1)
}

// PeriodY returns the first content line of a period row.
func (l LayoutCache) PeriodY(p period.Period) int {
	return gridTop + int(p)*(l.RowH+1)
}

// GridBottom returns the first line below the grid.
func (l LayoutCache) GridBottom() int {
	return gridTop + period.Count*(l.RowH+1)
}

// HitTest maps a screen position to a board cell. A separator column counts
// as part of the day to its right and a rule line as part of the period above.
func (l LayoutCache) HitTest(x, y int) board.Target {
	if x < labelWidth || y < gridTop || y >= l.GridBottom() {
		return board.Target{}
	}
	day := (x - labelWidth) / (l.ColW + 1)
	if day >= task.DaysPerWeek {
		return board.Target{}
	}
	p := period.Period((y - gridTop) / (l.RowH + 1))
	return board.CellTarget(day, p)
}

// LineAt returns the content line of the cell under y, or -1 on a rule line.
func (l LayoutCache) LineAt(y int) int {
	if y < gridTop || y >= l.GridBottom() {
		return -1
	}
	line := (y - gridTop) % (l.RowH + 1)
	if line == l.RowH {
		return -1
	}
	return line
}

// visibleRange returns the slice of a cell's n tasks that fits in rowH lines
// while keeping focus in view. more is true when a "+N more" line is needed.
func visibleRange(n, rowH, focus int) (start, end int, more bool) {
	if n <= rowH {
		return 0, n, false
	}
	shown := rowH - 1
	more = true
	if shown < 1 {
		shown = 1
		more = false
	}
	if focus >= shown {
		start = min(focus-shown+1, n-shown)
	}
	return start, start + shown, more
}
