package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActContextParser_PipeLine(t *testing.T) {
	p := NewActContextParser()

	lc, clean, skip := p.ParseLine("[Job/Step] | message")
	assert.False(t, skip)
	assert.False(t, lc.Noise)
	assert.Equal(t, "Job", lc.Job)
	assert.Equal(t, "Step", lc.Step)
	assert.Equal(t, "message", clean)
}

func TestActContextParser_NestedBrackets(t *testing.T) {
	p := NewActContextParser()

	// The label match must extend to the last ']' before the pipe.
	lc, clean, skip := p.ParseLine("[build [matrix-1]/compile] | main.go:3:2: undefined: foo")
	assert.False(t, skip)
	assert.Equal(t, "build [matrix-1]", lc.Job)
	assert.Equal(t, "compile", lc.Step)
	assert.Equal(t, "main.go:3:2: undefined: foo", clean)
}

func TestActContextParser_StatusLineIsNoise(t *testing.T) {
	p := NewActContextParser()

	lc, clean, skip := p.ParseLine("[CI/test] ⭐ Run Main go test ./...")
	assert.True(t, skip)
	assert.True(t, lc.Noise)
	assert.Equal(t, "CI", lc.Job)
	assert.Equal(t, "test", lc.Step)
	assert.Empty(t, clean)
}

func TestActContextParser_BracketedOutputPassesThrough(t *testing.T) {
	p := NewActContextParser()

	// A bracket prefix with neither pipe nor status marker is tool
	// output, not framing: it must survive to dispatch and must not be
	// mistaken for a job label.
	line := "[ERROR] src/Main.java:[10,5] cannot find symbol"
	lc, clean, skip := p.ParseLine(line)
	assert.False(t, skip)
	assert.False(t, lc.Noise)
	assert.Empty(t, lc.Job)
	assert.Equal(t, line, clean)
}

func TestActContextParser_NoPrefix(t *testing.T) {
	p := NewActContextParser()

	lc, clean, skip := p.ParseLine("plain output line")
	assert.False(t, skip)
	assert.Empty(t, lc.Job)
	assert.Equal(t, "plain output line", clean)
}

func TestActContextParser_StripsANSI(t *testing.T) {
	p := NewActContextParser()

	_, clean, _ := p.ParseLine("[CI/test] | \x1b[31merror text\x1b[0m")
	assert.Equal(t, "error text", clean)
}

func TestActionsContextParser_StripsTimestamp(t *testing.T) {
	p := NewActionsContextParser()

	lc, clean, skip := p.ParseLine("2026-01-26T14:49:40.7760945Z --- FAIL: TestName (0.01s)")
	assert.False(t, skip)
	assert.False(t, lc.Noise)
	assert.Equal(t, "--- FAIL: TestName (0.01s)", clean)
}

func TestActionsContextParser_JobPrefix(t *testing.T) {
	p := NewActionsContextParser()

	lc, clean, _ := p.ParseLine("Test\tRun tests\t2026-01-26T14:49:40.7760945Z content here")
	assert.Equal(t, "Test", lc.Job)
	assert.Equal(t, "Run tests", lc.Step)
	assert.Equal(t, "content here", clean)
}

func TestActionsContextParser_WorkflowCommandsAreNoise(t *testing.T) {
	p := NewActionsContextParser()

	for _, line := range []string{
		"2026-01-26T14:49:40.7760945Z ::debug::Evaluating condition",
		"2026-01-26T14:49:40.7760945Z ::group::Run go test",
		"2026-01-26T14:49:40.7760945Z ::endgroup::",
		"2026-01-26T14:49:40.7760945Z ##[debug]internal state",
	} {
		lc, clean, skip := p.ParseLine(line)
		assert.True(t, skip, "line should be skipped: %s", line)
		assert.True(t, lc.Noise)
		assert.Empty(t, clean)
	}
}

func TestPlainContextParser_Identity(t *testing.T) {
	p := NewPlainContextParser()

	lc, clean, skip := p.ParseLine("anything at all")
	assert.False(t, skip)
	assert.False(t, lc.Noise)
	assert.Empty(t, lc.Job)
	assert.Equal(t, "anything at all", clean)
}

func TestSplitJobStep_PlainLabel(t *testing.T) {
	job, step := splitJobStep("Job/Step")
	assert.Equal(t, "Job", job)
	assert.Equal(t, "Step", step)
}

func TestSplitJobStep_SlashInsideBrackets(t *testing.T) {
	job, step := splitJobStep("build [a/b]/compile")
	assert.Equal(t, "build [a/b]", job)
	assert.Equal(t, "compile", step)
}

func TestSplitJobStep_NoStep(t *testing.T) {
	job, step := splitJobStep("solo-job")
	assert.Equal(t, "solo-job", job)
	assert.Empty(t, step)
}
