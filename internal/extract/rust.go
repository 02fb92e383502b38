package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// RustParser extracts rustc/cargo diagnostics. A diagnostic is a small
// block: the error/warning header, a " --> file:line:col" location
// line, then the source snippet and any notes. RustParser therefore
// carries accumulator state: one instance must not be shared across
// concurrent extraction calls.
//
//	error[E0308]: mismatched types
//	 --> src/main.rs:4:5
//	  |
//	4 |     "hello"
//	  |     ^^^^^^^ expected `i32`, found `&str`
type RustParser struct {
	acc *accumulator

	message  string
	code     string
	column   int
	severity Severity
}

var (
	rustHeaderPattern  = regexp.MustCompile(`^(error|warning)(?:\[(E\d+)\])?: (.+)$`)
	rustLocPattern     = regexp.MustCompile(`^\s*-->\s+(.+?):(\d+):(\d+)`)
	rustGutterPattern  = regexp.MustCompile(`^\s*(\d+\s*)?\|`)
	rustNotePattern    = regexp.MustCompile(`^\s*=\s+(note|help|warning):`)
	rustSummaryPattern = regexp.MustCompile(`^(error|warning): (aborting due to|\d+ warnings? emitted|could not compile)`)
)

var rustNoisePrefixes = []string{
	"compiling ",
	"checking ",
	"finished ",
	"updating crates.io",
	"locking ",
}

func NewRustParser(limits Limits) *RustParser {
	limits = limits.normalize()
	return &RustParser{
		acc: newAccumulator(limits.AccumulatorMaxLines, limits.AccumulatorMaxBytes),
	}
}

func (p *RustParser) ID() string    { return "rust" }
func (p *RustParser) Priority() int { return 90 }

func (p *RustParser) NoiseRules() ([]string, []*regexp.Regexp) {
	return rustNoisePrefixes, []*regexp.Regexp{rustSummaryPattern}
}

func (p *RustParser) IsNoise(line string) bool {
	f := noiseFilter{prefixes: rustNoisePrefixes, patterns: []*regexp.Regexp{rustSummaryPattern}}
	return f.Match(line)
}

func (p *RustParser) CanParse(line string, ctx *ParseContext) float64 {
	if rustSummaryPattern.MatchString(line) {
		return 0
	}
	if m := rustHeaderPattern.FindStringSubmatch(line); m != nil {
		if m[2] != "" {
			// A coded header is unambiguously rustc.
			return 0.9
		}
		return 0.85
	}
	return 0
}

func (p *RustParser) Parse(line string, ctx *ParseContext) *ExtractedError {
	m := rustHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	p.severity = SeverityError
	if m[1] == "warning" {
		p.severity = SeverityWarning
	}
	p.code = m[2]
	p.message = m[3]
	p.acc.start(line, ctx)
	return nil
}

func (p *RustParser) SupportsMultiLine() bool { return true }
func (p *RustParser) Accumulating() bool      { return p.acc.active }

func (p *RustParser) ContinueMultiLine(line string, ctx *ParseContext) bool {
	if !p.acc.active {
		return false
	}

	if strings.TrimSpace(line) == "" {
		if p.acc.sawMember {
			return false
		}
		p.acc.append(line)
		return true
	}

	if m := rustLocPattern.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		if p.acc.file == "" {
			p.column, _ = strconv.Atoi(m[3])
		}
		p.acc.setLocation(m[1], n)
		p.acc.sawMember = true
		p.acc.append(line)
		return true
	}
	if rustGutterPattern.MatchString(line) || rustNotePattern.MatchString(line) {
		p.acc.sawMember = true
		p.acc.append(line)
		return true
	}

	return false
}

func (p *RustParser) FinishMultiLine(ctx *ParseContext) *ExtractedError {
	if !p.acc.active {
		return nil
	}
	defer p.Reset()

	return &ExtractedError{
		Message:    p.message,
		File:       p.acc.file,
		Line:       p.acc.line,
		Column:     p.column,
		Severity:   p.severity,
		Category:   CategoryCompile,
		Source:     p.ID(),
		RuleID:     p.code,
		StackTrace: p.acc.text(),
		Raw:        p.acc.text(),
		Workflow:   p.acc.workflow,
	}
}

func (p *RustParser) Reset() {
	p.acc.reset()
	p.message = ""
	p.code = ""
	p.column = 0
	p.severity = ""
}
