package board

import "github.com/alfredjeanlab/issueboard/internal/model"

// Icon is the status glyph shown in column headers and badges.
type Icon int

const (
	IconNone Icon = iota
	IconClock
	IconWarning
	IconCheck
)

// Glyph returns the terminal rendering of the icon; IconNone renders as "".
func (i Icon) Glyph() string {
	switch i {
	case IconClock:
		return "◷"
	case IconWarning:
		return "⚠"
	case IconCheck:
		return "✓"
	}
	return ""
}

func (i Icon) String() string {
	switch i {
	case IconClock:
		return "clock"
	case IconWarning:
		return "warning"
	case IconCheck:
		return "check"
	}
	return "none"
}

// Presentation is how a status is drawn: an icon, a foreground color name
// and a background tint name.
type Presentation struct {
	Icon       Icon
	Color      string
	Background string
}

// Classify maps a status to its presentation. Unknown statuses get the
// gray fallback with no icon.
func Classify(s model.Status) Presentation {
	switch s {
	case model.StatusOpen:
		return Presentation{Icon: IconClock, Color: "yellow", Background: "yellow-3"}
	case model.StatusInProgress:
		return Presentation{Icon: IconWarning, Color: "blue", Background: "blue-3"}
	case model.StatusClosed:
		return Presentation{Icon: IconCheck, Color: "green", Background: "green-3"}
	}
	return Presentation{Icon: IconNone, Color: "gray", Background: "gray-3"}
}
