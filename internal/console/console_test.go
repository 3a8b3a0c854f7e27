package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, PlainStyler{})

	c.Println(Success, "Found %d jobs", 3)
	c.Print(Progress, "Getting job descriptions... %d/%d", 1, 3)
	c.Raw("")
	c.Clear()

	want := "Found 3 jobs\nGetting job descriptions... 1/3\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

type bracketStyler struct{}

func (bracketStyler) Style(k Kind, s string) string {
	if k == Plain {
		return s
	}
	return "[" + s + "]"
}

func TestConsole_UsesStyler(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, bracketStyler{})
	c.Println(Failure, "boom")
	c.Println(Plain, "calm")
	if buf.String() != "[boom]\ncalm\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestHeadingMarker_WrapsWithANSI(t *testing.T) {
	mark := HeadingMarker()
	got := mark("Responsibilities")
	if !strings.Contains(got, "Responsibilities") {
		t.Fatalf("marker dropped the heading text: %q", got)
	}
	if !strings.HasPrefix(got, "\x1b[") || got == "Responsibilities" {
		t.Errorf("expected an ANSI escape around the heading, got %q", got)
	}
}
