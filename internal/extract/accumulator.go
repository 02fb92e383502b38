package extract

// accumulator is the shared multi-line buffer used by stateful parsers.
// It is bounded by a maximum line count and byte size: once a cap is
// reached new content stops being appended, but the owner keeps
// reporting lines as consumed until the block's natural end so scan
// position stays synchronized. The resulting record is truncated, never
// corrupted.
type accumulator struct {
	active    bool
	lines     []string
	bytes     int
	truncated bool

	// sawMember flips once a clear block-member marker has been seen;
	// after that a blank line legitimately ends the block.
	sawMember bool

	// first-seen location for the block.
	file string
	line int

	// workflow captured at block start so the record reflects the
	// context in effect when the block opened.
	workflow *WorkflowContext

	maxLines int
	maxBytes int
}

func newAccumulator(maxLines, maxBytes int) *accumulator {
	return &accumulator{maxLines: maxLines, maxBytes: maxBytes}
}

// start opens a block with its header line.
func (a *accumulator) start(header string, ctx *ParseContext) {
	a.reset()
	a.active = true
	if ctx != nil && ctx.Workflow != nil {
		a.workflow = ctx.Workflow.Clone()
	}
	a.append(header)
}

// append adds a line to the buffer, respecting the caps. The first
// line to hit a cap latches the buffer: later lines are dropped even
// when they would fit, so the kept prefix never has interior gaps.
func (a *accumulator) append(line string) {
	if a.truncated {
		return
	}
	if len(a.lines) >= a.maxLines || a.bytes+len(line) > a.maxBytes {
		a.truncated = true
		return
	}
	a.lines = append(a.lines, line)
	a.bytes += len(line) + 1
}

// setLocation records the first file/line seen in the block; later
// locations are ignored.
func (a *accumulator) setLocation(file string, line int) {
	if a.file == "" {
		a.file = file
		a.line = line
	}
}

func (a *accumulator) text() string {
	out := ""
	for i, l := range a.lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	if a.truncated {
		out += "\n... (truncated)"
	}
	return out
}

func (a *accumulator) reset() {
	*a = accumulator{maxLines: a.maxLines, maxBytes: a.maxBytes}
}
