// Package tui is the terminal kanban board. It renders a board.Board with
// lipgloss, feeds terminal mouse events into the board's drag session and
// runs fetches and status updates as bubbletea commands.
//
// Layout rows: one header line, the columns, one status line. Columns sit
// side by side, or stack vertically when the terminal is narrower than
// StackWidth.
package tui
