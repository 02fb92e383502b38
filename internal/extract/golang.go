package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// GoParser extracts Go compiler diagnostics, go test failure blocks
// (including testify and gotestsum formats), and runtime panic unwinds.
//
// Test failures and panics span multiple lines, so GoParser carries
// accumulator state: one instance must not be shared across concurrent
// extraction calls.
type GoParser struct {
	acc  *accumulator
	mode goBlockMode

	// header captured at block start.
	testName string
	message  string
}

type goBlockMode int

const (
	goBlockNone goBlockMode = iota
	goBlockTest
	goBlockPanic
)

var (
	// file.go:12:5: message
	goCompilePattern = regexp.MustCompile(`^([\w~./\-]+\.go):(\d+):(\d+): (.+)$`)

	// file.go:12: message (column is optional in gc output)
	goCompileNoColPattern = regexp.MustCompile(`^([\w~./\-]+\.go):(\d+): (.+)$`)

	// --- FAIL: TestName (0.01s)
	goTestFailPattern = regexp.MustCompile(`^---\s*FAIL:\s*(\S+)\s*\([\d.]+s\)`)

	// gotestsum: === FAIL: package TestName (0.01s)
	gotestsumFailPattern = regexp.MustCompile(`^===\s*FAIL:\s*(\S+)\s+(\S+)\s*\([\d.]+s\)`)

	// panic: message / fatal error: message
	goPanicPattern = regexp.MustCompile(`^(?:panic|fatal error): (.+)$`)

	// members of a panic unwind
	goPanicMemberPattern = regexp.MustCompile(`^(goroutine \d+|created by |\[signal|exit status |\S+\.\S+\(.*\)$)`)

	// first location inside a block
	goTestLocPattern  = regexp.MustCompile(`([\w\-]+_test\.go):(\d+)`)
	goPanicLocPattern = regexp.MustCompile(`^\s+([\w~./\-]+\.go):(\d+)`)

	// testify error message inside a failure block
	goTestifyErrorPattern = regexp.MustCompile(`Error:\s+(.+)`)
)

var goNoisePrefixes = []string{
	"ok ",
	"--- pass",
	"=== run",
	"=== pause",
	"=== cont",
	"=== name",
	"go: downloading",
	"go: finding",
}

var goNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^PASS$`),
	regexp.MustCompile(`^\?\s+\S+\s+\[no test files\]$`),
	regexp.MustCompile(`^coverage: [\d.]+% of statements`),
}

// NewGoParser returns a parser with accumulator caps from limits.
func NewGoParser(limits Limits) *GoParser {
	limits = limits.normalize()
	return &GoParser{
		acc: newAccumulator(limits.AccumulatorMaxLines, limits.AccumulatorMaxBytes),
	}
}

func (p *GoParser) ID() string    { return "go" }
func (p *GoParser) Priority() int { return 100 }

func (p *GoParser) NoiseRules() ([]string, []*regexp.Regexp) {
	return goNoisePrefixes, goNoisePatterns
}

func (p *GoParser) IsNoise(line string) bool {
	f := noiseFilter{prefixes: goNoisePrefixes, patterns: goNoisePatterns}
	return f.Match(line)
}

func (p *GoParser) CanParse(line string, ctx *ParseContext) float64 {
	switch {
	case goCompilePattern.MatchString(line):
		return 0.95
	case goCompileNoColPattern.MatchString(line):
		return 0.93
	case goTestFailPattern.MatchString(line),
		gotestsumFailPattern.MatchString(line),
		goPanicPattern.MatchString(line):
		// Block headers only begin accumulation, so they rank below any
		// fully-structured single-line diagnostic.
		return 0.8
	}
	return 0
}

func (p *GoParser) Parse(line string, ctx *ParseContext) *ExtractedError {
	if m := goCompilePattern.FindStringSubmatch(line); m != nil {
		lineNum, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		return &ExtractedError{
			Message:  m[4],
			File:     m[1],
			Line:     lineNum,
			Column:   col,
			Severity: SeverityError,
			Category: CategoryCompile,
			Source:   p.ID(),
			Raw:      line,
		}
	}
	if m := goCompileNoColPattern.FindStringSubmatch(line); m != nil {
		lineNum, _ := strconv.Atoi(m[2])
		return &ExtractedError{
			Message:  m[3],
			File:     m[1],
			Line:     lineNum,
			Severity: SeverityError,
			Category: CategoryCompile,
			Source:   p.ID(),
			Raw:      line,
		}
	}
	if m := gotestsumFailPattern.FindStringSubmatch(line); m != nil {
		p.beginBlock(goBlockTest, line, ctx)
		p.testName = m[2]
		return nil
	}
	if m := goTestFailPattern.FindStringSubmatch(line); m != nil {
		p.beginBlock(goBlockTest, line, ctx)
		p.testName = m[1]
		return nil
	}
	if m := goPanicPattern.FindStringSubmatch(line); m != nil {
		p.beginBlock(goBlockPanic, line, ctx)
		p.message = m[1]
		return nil
	}
	return nil
}

func (p *GoParser) beginBlock(mode goBlockMode, header string, ctx *ParseContext) {
	p.mode = mode
	p.testName = ""
	p.message = ""
	p.acc.start(header, ctx)
}

func (p *GoParser) SupportsMultiLine() bool { return true }
func (p *GoParser) Accumulating() bool      { return p.acc.active }

func (p *GoParser) ContinueMultiLine(line string, ctx *ParseContext) bool {
	if !p.acc.active {
		return false
	}

	if strings.TrimSpace(line) == "" {
		// Blank lines are tolerated until a clear member has been seen,
		// after which a blank legitimately ends the block.
		if p.acc.sawMember {
			return false
		}
		p.acc.append(line)
		return true
	}

	if !p.isBlockMember(line) {
		return false
	}

	p.acc.sawMember = true
	p.acc.append(line)
	p.captureDetails(line)
	return true
}

func (p *GoParser) isBlockMember(line string) bool {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return true
	}
	if p.mode == goBlockPanic {
		return goPanicMemberPattern.MatchString(line)
	}
	// Nested subtest results stay inside a test failure block.
	return strings.HasPrefix(line, "--- FAIL:") || strings.HasPrefix(line, "=== ")
}

func (p *GoParser) captureDetails(line string) {
	switch p.mode {
	case goBlockTest:
		if m := goTestLocPattern.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			p.acc.setLocation(m[1], n)
		}
		if p.message == "" {
			if m := goTestifyErrorPattern.FindStringSubmatch(line); m != nil {
				p.message = strings.TrimSpace(m[1])
			}
		}
	case goBlockPanic:
		if m := goPanicLocPattern.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[2])
			p.acc.setLocation(m[1], n)
		}
	}
}

func (p *GoParser) FinishMultiLine(ctx *ParseContext) *ExtractedError {
	if !p.acc.active {
		return nil
	}
	defer p.Reset()

	res := &ExtractedError{
		File:       p.acc.file,
		Line:       p.acc.line,
		Severity:   SeverityError,
		Source:     p.ID(),
		StackTrace: p.acc.text(),
		Raw:        p.acc.text(),
		Workflow:   p.acc.workflow,
	}

	switch p.mode {
	case goBlockTest:
		res.Category = CategoryTest
		res.Message = p.message
		if res.Message == "" {
			res.Message = fmt.Sprintf("Test %s failed", p.testName)
		} else if p.testName != "" {
			res.Message = fmt.Sprintf("%s: %s", p.testName, res.Message)
		}
	case goBlockPanic:
		res.Category = CategoryRuntime
		res.Message = "panic: " + p.message
	default:
		return nil
	}
	return res
}

func (p *GoParser) Reset() {
	p.acc.reset()
	p.mode = goBlockNone
	p.testName = ""
	p.message = ""
}
