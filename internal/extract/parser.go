package extract

import "regexp"

// ToolParser is the capability interface implemented once per source
// toolchain. Dispatch is confidence-ranked: CanParse returns a graded
// score in [0,1] rather than a boolean, so a fully-structured
// single-line diagnostic (~0.95) beats a continuation-only pattern
// (~0.8) when both match the same text.
//
// Parsers that never accumulate across lines are stateless and safe to
// share between concurrent extraction calls. Parsers carrying
// accumulator state (Go, Python, Rust) must be instantiated per
// concurrent caller; each documents this on its type.
type ToolParser interface {
	// ID is the stable toolchain identifier stamped into Source.
	ID() string
	// Priority breaks confidence ties; higher wins.
	Priority() int
	// CanParse scores how strongly this parser's patterns match the
	// line. 0 means no match.
	CanParse(line string, ctx *ParseContext) float64
	// Parse extracts a record, or returns nil when the line begins a
	// multi-line block (the parser is then Accumulating).
	Parse(line string, ctx *ParseContext) *ExtractedError
	// NoiseRules exposes this parser's noise classification as a
	// (fast-prefix, regex) pair so the registry can pool checks once
	// per scan instead of re-invoking every parser.
	NoiseRules() (prefixes []string, patterns []*regexp.Regexp)
	// IsNoise reports whether the line carries no diagnostic value for
	// this toolchain.
	IsNoise(line string) bool

	// SupportsMultiLine reports whether this toolchain's diagnostics
	// can span several lines.
	SupportsMultiLine() bool
	// Accumulating reports whether a block is currently open.
	Accumulating() bool
	// ContinueMultiLine offers the next line to an open block. A false
	// return ends the block without consuming the line; the caller
	// re-dispatches it.
	ContinueMultiLine(line string, ctx *ParseContext) bool
	// FinishMultiLine closes an open block and returns its record, or
	// nil if the block produced nothing.
	FinishMultiLine(ctx *ParseContext) *ExtractedError
	// Reset discards all accumulator state.
	Reset()
}

// singleLine provides the no-op multi-line protocol for stateless
// parsers whose diagnostics never span lines.
type singleLine struct{}

func (singleLine) SupportsMultiLine() bool                      { return false }
func (singleLine) Accumulating() bool                           { return false }
func (singleLine) ContinueMultiLine(string, *ParseContext) bool { return false }
func (singleLine) FinishMultiLine(*ParseContext) *ExtractedError {
	return nil
}
func (singleLine) Reset() {}

// noNoise is embedded by parsers that contribute no noise rules.
type noNoise struct{}

func (noNoise) NoiseRules() ([]string, []*regexp.Regexp) { return nil, nil }
func (noNoise) IsNoise(string) bool                      { return false }
