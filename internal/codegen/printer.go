package codegen

import (
	"fmt"
	"strings"
)

// Printer accumulates Python source. It owns indentation and line endings so
// block renderers only ever produce single-line text.
type Printer struct {
	buf    strings.Builder
	indent string
	depth  int
	stmts  int // statements written, for empty-suite detection
}

// NewPrinter returns a printer indenting by unit per level.
func NewPrinter(unit string) *Printer {
	return &Printer{indent: unit}
}

// Line writes one statement at the current depth.
func (p *Printer) Line(text string) {
	p.write(text)
	p.stmts++
}

// Linef is Line with formatting.
func (p *Printer) Linef(format string, args ...any) {
	p.Line(fmt.Sprintf(format, args...))
}

// Comment writes text as `# ` lines. Comments do not count as statements.
func (p *Printer) Comment(text string) {
	for _, l := range strings.Split(text, "\n") {
		p.write(strings.TrimRight("# "+l, " \t"))
	}
}

// Suite writes body one level deeper, adding `pass` when body produced no
// statement.
func (p *Printer) Suite(body func()) {
	p.depth++
	before := p.stmts
	body()
	if p.stmts == before {
		p.Line("pass")
	}
	p.depth--
}

// Len is the number of bytes written so far.
func (p *Printer) Len() int { return p.buf.Len() }

func (p *Printer) String() string { return p.buf.String() }

func (p *Printer) write(text string) {
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.indent)
	}
	p.buf.WriteString(text)
	p.buf.WriteByte('\n')
}
