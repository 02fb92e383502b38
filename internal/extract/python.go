package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// PythonParser extracts Python interpreter tracebacks and single-line
// exceptions. Tracebacks span several lines, so PythonParser carries
// accumulator state: one instance must not be shared across concurrent
// extraction calls.
//
//	Traceback (most recent call last):
//	  File "app/main.py", line 14, in <module>
//	    run()
//	ValueError: invalid literal for int()
type PythonParser struct {
	acc *accumulator

	// message holds the exception line once seen; the block then drains
	// any chained-exception continuation before finishing.
	message string
}

var (
	pyTracebackPattern = regexp.MustCompile(`^Traceback \(most recent call last\):`)

	//   File "app/main.py", line 14, in <module>
	pyFramePattern = regexp.MustCompile(`^\s+File "([^"]+)", line (\d+)`)

	// ValueError: message — also matches dotted exception classes.
	pyExceptionPattern = regexp.MustCompile(`^([A-Za-z_][\w.]*(?:Error|Exception|Warning|Interrupt|Exit)): (.+)$`)

	// Chained-exception separators keep the block open.
	pyChainPattern = regexp.MustCompile(`^(During handling of the above exception|The above exception was the direct cause)`)
)

var pythonNoisePrefixes = []string{
	"collecting ",
	"collected ",
	"platform ",
	"rootdir:",
	"plugins:",
	"cachedir:",
}

func NewPythonParser(limits Limits) *PythonParser {
	limits = limits.normalize()
	return &PythonParser{
		acc: newAccumulator(limits.AccumulatorMaxLines, limits.AccumulatorMaxBytes),
	}
}

func (p *PythonParser) ID() string    { return "python" }
func (p *PythonParser) Priority() int { return 80 }

func (p *PythonParser) NoiseRules() ([]string, []*regexp.Regexp) {
	return pythonNoisePrefixes, nil
}

func (p *PythonParser) IsNoise(line string) bool {
	f := noiseFilter{prefixes: pythonNoisePrefixes}
	return f.Match(line)
}

func (p *PythonParser) CanParse(line string, ctx *ParseContext) float64 {
	if pyTracebackPattern.MatchString(line) {
		// Block header only, ranked below structured single-line hits.
		return 0.8
	}
	if pyExceptionPattern.MatchString(line) {
		// Bare exception without a traceback; still worth a record.
		return 0.75
	}
	return 0
}

func (p *PythonParser) Parse(line string, ctx *ParseContext) *ExtractedError {
	if pyTracebackPattern.MatchString(line) {
		p.message = ""
		p.acc.start(line, ctx)
		return nil
	}
	if m := pyExceptionPattern.FindStringSubmatch(line); m != nil {
		return &ExtractedError{
			Message:  m[1] + ": " + m[2],
			Severity: SeverityError,
			Category: CategoryRuntime,
			Source:   p.ID(),
			Raw:      line,
		}
	}
	return nil
}

func (p *PythonParser) SupportsMultiLine() bool { return true }
func (p *PythonParser) Accumulating() bool      { return p.acc.active }

func (p *PythonParser) ContinueMultiLine(line string, ctx *ParseContext) bool {
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

	if m := pyFramePattern.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[2])
		p.acc.setLocation(m[1], n)
		p.acc.sawMember = true
		p.acc.append(line)
		return true
	}

	// Source-context lines inside a frame are indented.
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		p.acc.sawMember = true
		p.acc.append(line)
		return true
	}

	if pyChainPattern.MatchString(line) {
		p.acc.append(line)
		return true
	}

	if m := pyExceptionPattern.FindStringSubmatch(line); m != nil {
		// The exception line is the last member of the unwind.
		if p.message == "" {
			p.message = m[1] + ": " + m[2]
		}
		p.acc.sawMember = true
		p.acc.append(line)
		return true
	}

	return false
}

func (p *PythonParser) FinishMultiLine(ctx *ParseContext) *ExtractedError {
	if !p.acc.active {
		return nil
	}
	defer p.Reset()

	message := p.message
	if message == "" {
		message = "Unhandled Python exception"
	}
	return &ExtractedError{
		Message:    message,
		File:       p.acc.file,
		Line:       p.acc.line,
		Severity:   SeverityError,
		Category:   CategoryRuntime,
		Source:     p.ID(),
		StackTrace: p.acc.text(),
		Raw:        p.acc.text(),
		Workflow:   p.acc.workflow,
	}
}

func (p *PythonParser) Reset() {
	p.acc.reset()
	p.message = ""
}
