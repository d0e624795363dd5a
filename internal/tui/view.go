package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/alfredjeanlab/issueboard/internal/board"
	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/ui"
)

const skeletonCards = 3

func color(name string) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(ui.ColorCode(name)))
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(color("blue"))
	mutedStyle    = lipgloss.NewStyle().Foreground(color("gray"))
	successStyle  = lipgloss.NewStyle().Foreground(color("green"))
	errorStyle    = lipgloss.NewStyle().Foreground(color("red"))
	borderNormal  = color("gray-3")
	borderHover   = color("blue")
	borderSelect  = color("yellow")
	skeletonStyle = lipgloss.NewStyle().Foreground(color("gray-3"))
)

// fit pads or truncates s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// descriptionLines wraps text into at most two lines of width cells,
// ending the second with an ellipsis when text was cut.
func descriptionLines(text string, width int) [2]string {
	var out [2]string
	text = strings.Join(strings.Fields(text), " ")
	if text == "" || width <= 0 {
		return out
	}
	wrapped := strings.Split(ansi.Wordwrap(text, width, ""), "\n")
	for i := 0; i < len(out) && i < len(wrapped); i++ {
		out[i] = ansi.Truncate(wrapped[i], width, "…")
	}
	if len(wrapped) > len(out) {
		out[1] = ansi.Truncate(out[1]+" …", width, "…")
	}
	return out
}

func statusBadge(s model.Status) string {
	p := board.Classify(s)
	return lipgloss.NewStyle().Foreground(color(p.Color)).Render(s.Label())
}

func avatar(issue *model.Issue) string {
	if issue.Assignee == "" {
		return "?"
	}
	r := []rune(strings.ToUpper(issue.Assignee))
	mark := string(r[0])
	if issue.AssigneeImage != "" {
		mark = "◉" + mark
	}
	return mark
}

type cardState int

const (
	cardNormal cardState = iota
	cardSelected
	cardDimmed
)

// renderCard draws issue as CardHeight lines of exactly width cells.
func renderCard(issue *model.Issue, width int, state cardState) []string {
	inner := width - 2
	if inner < 1 {
		return nil
	}
	badge := statusBadge(issue.Status)
	titleWidth := inner - ansi.StringWidth(badge) - 1
	var title string
	if titleWidth >= 4 {
		title = fit(lipgloss.NewStyle().Bold(true).Render(issue.Title), titleWidth) + " " + badge
	} else {
		title = fit(issue.Title, inner)
	}
	desc := descriptionLines(issue.Description, inner)
	assignee := "Assigned to " + avatar(issue)
	if issue.Assignee != "" {
		assignee += " " + issue.Assignee
	}

	body := strings.Join([]string{
		fit(title, inner),
		fit(mutedStyle.Render(desc[0]), inner),
		fit(mutedStyle.Render(desc[1]), inner),
		fit(assignee, inner),
	}, "\n")

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderNormal).
		Width(inner)
	switch state {
	case cardSelected:
		style = style.BorderForeground(borderSelect)
	case cardDimmed:
		style = style.Faint(true)
	}
	return strings.Split(style.Render(body), "\n")
}

func renderColumnHeader(col board.Column, width int) string {
	p := col.Presentation
	name := col.Title
	if g := p.Icon.Glyph(); g != "" {
		name = lipgloss.NewStyle().Foreground(color(p.Color)).Render(g) + " " + name
	}
	count := lipgloss.NewStyle().Foreground(color(p.Color)).Background(color(p.Background)).Render(" " + strconv.Itoa(col.Count()) + " ")
	gap := width - ansi.StringWidth(name) - ansi.StringWidth(count)
	if gap < 1 {
		return fit(name, width)
	}
	return lipgloss.NewStyle().Bold(true).Render(name) + strings.Repeat(" ", gap) + count
}

// renderColumn draws one column inside box using the given body lines.
func renderColumn(box columnBox, header string, body []string, border lipgloss.Color) string {
	inner := box.bounds.W - 2
	height := box.bounds.H - 2
	if inner < 1 || height < 1 {
		return strings.Repeat("\n", max(box.bounds.H-1, 0))
	}
	lines := append([]string{fit(header, inner)}, body...)
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = fit(lines[i], inner)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", inner))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(inner).
		Render(strings.Join(lines, "\n"))
}

func joinColumns(l *Layout, rendered []string) string {
	if l.Stacked {
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumns(snap board.Snapshot) string {
	rendered := make([]string, 0, len(snap.Columns))
	for i, col := range snap.Columns {
		box, ok := m.layout.column(i)
		if !ok {
			continue
		}
		var body []string
		for row := 0; row < box.visible; row++ {
			issue := col.Issues[row]
			state := cardNormal
			switch {
			case issue.ID == snap.DraggedID:
				state = cardDimmed
			case i == m.cursorCol && row == m.cursorRow && snap.DraggedID == "":
				state = cardSelected
			}
			body = append(body, renderCard(issue, box.bounds.W-2, state)...)
		}
		if box.hidden > 0 {
			body = append(body, mutedStyle.Render(fmt.Sprintf("+%d more", box.hidden)))
		}
		border := borderNormal
		if snap.HasHover && snap.Hovered == col.Status {
			border = borderHover
		}
		rendered = append(rendered, renderColumn(box, renderColumnHeader(col, box.bounds.W-2), body, border))
	}
	return joinColumns(m.layout, rendered)
}

// renderSkeleton draws placeholder columns before the first fetch lands.
func (m Model) renderSkeleton() string {
	rendered := make([]string, 0, len(model.Statuses))
	for i := range model.Statuses {
		box, ok := m.layout.column(i)
		if !ok {
			continue
		}
		inner := box.bounds.W - 2
		var body []string
		for c := 0; c < skeletonCards; c++ {
			body = append(body,
				"",
				skeletonStyle.Render(strings.Repeat("░", max(inner*2/3, 1))),
				skeletonStyle.Render(strings.Repeat("░", max(inner-2, 1))),
				skeletonStyle.Render(strings.Repeat("░", max(inner/2, 1))),
				"",
			)
		}
		header := skeletonStyle.Render(strings.Repeat("▒", min(10, max(inner, 1))))
		rendered = append(rendered, renderColumn(box, header, body, borderNormal))
	}
	return joinColumns(m.layout, rendered)
}

func (m Model) renderError(err error) string {
	height := m.height - headerHeight - statusHeight
	msg := "Could not load issues"
	if err != nil {
		msg += ": " + err.Error()
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color("red")).
		Padding(0, 1).
		Width(min(60, max(m.width-4, 10))).
		Render(errorStyle.Render(msg) + "\n" + mutedStyle.Render("Retrying on the next poll. Press r to refresh now."))
	return lipgloss.Place(m.width, max(height, 1), lipgloss.Center, lipgloss.Center, panel)
}

func (m Model) renderHeader(snap board.Snapshot) string {
	title := headerStyle.Render("issueboard")
	var counts []string
	for _, col := range snap.Columns {
		counts = append(counts, fmt.Sprintf("%s %d", col.Title, col.Count()))
	}
	right := ""
	switch snap.State {
	case board.StateLoading:
		right = mutedStyle.Render("loading…")
	case board.StateReady:
		right = mutedStyle.Render(strings.Join(counts, " · "))
	case board.StateFailed:
		right = errorStyle.Render("offline")
	}
	gap := m.width - ansi.StringWidth(title) - ansi.StringWidth(right)
	if gap < 1 {
		return fit(title, m.width)
	}
	return title + strings.Repeat(" ", gap) + right
}

func (m Model) renderStatus(snap board.Snapshot) string {
	if n := len(snap.Notifications); n > 0 {
		latest := snap.Notifications[n-1]
		style := successStyle
		if latest.Level == board.LevelError {
			style = errorStyle
		}
		return fit(style.Render(latest.Message), m.width)
	}
	var parts []string
	parts = append(parts, "drag cards with the mouse")
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return fit(mutedStyle.Render(strings.Join(parts, " · ")), m.width)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	snap := m.board.Snapshot()

	var body string
	switch snap.State {
	case board.StateLoading:
		body = m.renderSkeleton()
	case board.StateFailed:
		body = m.renderError(snap.Err)
	default:
		body = m.renderColumns(snap)
	}

	out := strings.Join([]string{m.renderHeader(snap), body, m.renderStatus(snap)}, "\n")

	if snap.Preview != nil && snap.State == board.StateReady {
		width := m.previewWidth(snap.DraggedID)
		out = spliceOverlay(out, renderCard(snap.Preview, width, cardNormal), snap.PreviewAt.X, snap.PreviewAt.Y)
	}
	return out
}

func (m Model) previewWidth(id string) int {
	if r, ok := m.layout.CardBounds(id); ok {
		return r.W
	}
	if box, ok := m.layout.column(0); ok {
		return box.bounds.W - 2
	}
	return 24
}
