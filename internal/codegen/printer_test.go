package codegen_test

import (
	"testing"

	"robotblocks/internal/codegen"
)

func TestPrinter_Nesting(t *testing.T) {
	p := codegen.NewPrinter("    ")
	p.Line("def f():")
	p.Suite(func() {
		p.Comment("first\nsecond")
		p.Line("if x:")
		p.Suite(func() {})
		p.Linef("return %d", 1)
	})

	want := "def f():\n" +
		"    # first\n" +
		"    # second\n" +
		"    if x:\n" +
		"        pass\n" +
		"    return 1\n"
	if got := p.String(); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrinter_CommentOnlySuiteGetsPass(t *testing.T) {
	p := codegen.NewPrinter("  ")
	p.Line("while True:")
	p.Suite(func() { p.Comment("nothing yet") })

	want := "while True:\n  # nothing yet\n  pass\n"
	if got := p.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
