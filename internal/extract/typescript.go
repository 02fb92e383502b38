package extract

import (
	"regexp"
	"strconv"
)

// TscParser extracts TypeScript compiler diagnostics. Both the classic
// paren form and the newer pretty form are single-line, so the parser is
// stateless and safe to share across concurrent extraction calls.
//
//	src/app.ts(12,5): error TS2345: Argument of type ...
//	src/app.ts:12:5 - error TS2345: Argument of type ...
type TscParser struct {
	singleLine
	noNoise
}

var (
	tscParenPattern = regexp.MustCompile(`^(.+\.(?:ts|tsx|mts|cts))\((\d+),(\d+)\): (error|warning) (TS\d+): (.+)$`)
	tscColonPattern = regexp.MustCompile(`^(.+\.(?:ts|tsx|mts|cts)):(\d+):(\d+) - (error|warning) (TS\d+): (.+)$`)
)

func NewTscParser() *TscParser { return &TscParser{} }

func (p *TscParser) ID() string    { return "tsc" }
func (p *TscParser) Priority() int { return 85 }

func (p *TscParser) CanParse(line string, ctx *ParseContext) float64 {
	if tscParenPattern.MatchString(line) {
		return 0.95
	}
	if tscColonPattern.MatchString(line) {
		return 0.93
	}
	return 0
}

func (p *TscParser) Parse(line string, ctx *ParseContext) *ExtractedError {
	m := tscParenPattern.FindStringSubmatch(line)
	if m == nil {
		m = tscColonPattern.FindStringSubmatch(line)
	}
	if m == nil {
		return nil
	}
	lineNum, _ := strconv.Atoi(m[2])
	col, _ := strconv.Atoi(m[3])
	sev := SeverityError
	if m[4] == "warning" {
		sev = SeverityWarning
	}
	return &ExtractedError{
		Message:  m[6],
		File:     m[1],
		Line:     lineNum,
		Column:   col,
		Severity: sev,
		Category: CategoryTypecheck,
		Source:   p.ID(),
		RuleID:   m[5],
		Raw:      line,
	}
}
