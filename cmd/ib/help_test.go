package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorizeHelpOutput_NoColorIsIdentity(t *testing.T) {
	in := "Issues:\n  list        List issues\n\nFlags:\n      --page int   page number (default 1)\n"
	if got := colorizeHelpOutput(in); got != in {
		t.Errorf("colorizeHelpOutput changed text without color:\n%q\nwant\n%q", got, in)
	}
}

func TestRootHelpListsGroups(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.HelpFunc()(rootCmd, nil)

	out := buf.String()
	for _, want := range []string{"Issues:", "Views:", "System:", "board", "move", "remote"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}
