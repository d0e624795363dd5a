// Package board is the headless kanban engine behind the terminal board.
//
// It owns the local issue collection, partitions it into status columns,
// runs the pointer-driven drag session and applies status changes
// optimistically through a MutationClient. Nothing in this package does
// I/O except MutationClient.Execute, and every other method must be called
// from a single goroutine (the bubbletea Update loop).
package board
