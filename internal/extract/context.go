package extract

import "github.com/charmbracelet/x/ansi"

// ContextParser strips CI-execution-environment framing from a raw line
// and reports the job/step labels currently in effect.
//
// ParseLine returns the per-line context, the cleaned line, and skip.
// skip is true for framing-only lines (job banners, workflow commands)
// that must not reach dispatch; the returned LineContext may still carry
// a job/step update for such lines.
type ContextParser interface {
	ParseLine(line string) (ctx LineContext, clean string, skip bool)
}

// PlainContextParser is the identity mapping for output that carries no
// CI framing. It never classifies a line as noise.
type PlainContextParser struct{}

func NewPlainContextParser() *PlainContextParser { return &PlainContextParser{} }

func (p *PlainContextParser) ParseLine(line string) (LineContext, string, bool) {
	return LineContext{}, ansi.Strip(line), false
}
