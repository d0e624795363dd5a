package tui

import (
	"github.com/alfredjeanlab/issueboard/internal/board"
	"github.com/alfredjeanlab/issueboard/internal/model"
)

const (
	// StackWidth is the narrowest terminal that shows columns side by side.
	StackWidth = 72

	// CardHeight is the rendered height of one card: border, title, two
	// description lines, assignee, border.
	CardHeight = 6

	headerHeight = 1
	statusHeight = 1
)

type columnBox struct {
	status  model.Status
	bounds  board.Rect
	visible int // cards drawn
	hidden  int // cards that did not fit
}

type cardBox struct {
	id     string
	col    int
	row    int
	bounds board.Rect
}

// Layout is the screen geometry of one frame. It doubles as the board's
// hit tester: cards are reported above the column that contains them.
type Layout struct {
	Width, Height int
	Stacked       bool

	columns []columnBox
	cards   []cardBox
}

var _ board.HitTester = (*Layout)(nil)

// ComputeLayout places cols on a width × height screen.
func ComputeLayout(width, height int, cols []board.Column) Layout {
	l := Layout{Width: width, Height: height, Stacked: width < StackWidth}
	bodyTop := headerHeight
	bodyHeight := height - headerHeight - statusHeight
	if width <= 0 || bodyHeight <= 0 || len(cols) == 0 {
		return l
	}

	n := len(cols)
	for i, col := range cols {
		var r board.Rect
		if l.Stacked {
			h, off := split(bodyHeight, n, i)
			r = board.Rect{X: 0, Y: bodyTop + off, W: width, H: h}
		} else {
			w, off := split(width, n, i)
			r = board.Rect{X: off, Y: bodyTop, W: w, H: bodyHeight}
		}
		box := columnBox{status: col.Status, bounds: r}

		// Border top, column header, border bottom.
		avail := r.H - 3
		fit := 0
		if avail > 0 && r.W > 4 {
			fit = avail / CardHeight
			if len(col.Issues) > fit && fit > 0 && avail%CardHeight == 0 {
				fit-- // keep a line for the overflow marker
			}
		}
		box.visible = min(fit, len(col.Issues))
		box.hidden = len(col.Issues) - box.visible

		for row := 0; row < box.visible; row++ {
			l.cards = append(l.cards, cardBox{
				id:  col.Issues[row].ID,
				col: i,
				row: row,
				bounds: board.Rect{
					X: r.X + 1,
					Y: r.Y + 2 + row*CardHeight,
					W: r.W - 2,
					H: CardHeight,
				},
			})
		}
		l.columns = append(l.columns, box)
	}
	return l
}

// split divides total into n parts, spreading the remainder over the
// first parts, and returns the size and offset of part i.
func split(total, n, i int) (size, offset int) {
	base, extra := total/n, total%n
	size = base
	if i < extra {
		size++
	}
	offset = i*base + min(i, extra)
	return size, offset
}

// RegionsAt returns the card and column under p, card first.
func (l *Layout) RegionsAt(p board.Point) []board.Region {
	var out []board.Region
	for _, c := range l.cards {
		if c.bounds.Contains(p) {
			out = append(out, board.Region{Bounds: c.bounds})
		}
	}
	for _, c := range l.columns {
		if c.bounds.Contains(p) {
			out = append(out, board.Region{Bounds: c.bounds, Column: c.status, Tagged: true})
		}
	}
	return out
}

// CardAt returns the id of the card under p.
func (l *Layout) CardAt(p board.Point) (string, bool) {
	for _, c := range l.cards {
		if c.bounds.Contains(p) {
			return c.id, true
		}
	}
	return "", false
}

// CardBounds returns where the card for id is drawn.
func (l *Layout) CardBounds(id string) (board.Rect, bool) {
	for _, c := range l.cards {
		if c.id == id {
			return c.bounds, true
		}
	}
	return board.Rect{}, false
}

// ColumnBounds returns the rectangle of the column for s.
func (l *Layout) ColumnBounds(s model.Status) (board.Rect, bool) {
	for _, c := range l.columns {
		if c.status == s {
			return c.bounds, true
		}
	}
	return board.Rect{}, false
}

func (l *Layout) column(i int) (columnBox, bool) {
	if i < 0 || i >= len(l.columns) {
		return columnBox{}, false
	}
	return l.columns[i], true
}
