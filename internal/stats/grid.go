package stats

import "github.com/rathiarpitaoffice-hue/Growth-update/internal/datekey"

// Cell is one slot of a 7-column month calendar. Blank cells pad the first
// week so day 1 lands on its weekday column.
type Cell struct {
	Day   int
	Blank bool
}

// MonthGrid returns the leading blanks followed by days 1..N of ym.
func MonthGrid(ym datekey.YearMonth) []Cell {
	lead := datekey.FirstWeekday(ym)
	days := datekey.DaysInMonth(ym)
	cells := make([]Cell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Day: d})
	}
	return cells
}

// Weeks splits a grid into rows of seven. The last row may be shorter.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}
	return rows
}
