package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoParser_CompileError(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	line := "internal/server/server.go:42:7: undefined: handleRequest"
	assert.InDelta(t, 0.95, p.CanParse(line, nil), 0.001)

	rec := p.Parse(line, nil)
	require.NotNil(t, rec)
	assert.Equal(t, "undefined: handleRequest", rec.Message)
	assert.Equal(t, "internal/server/server.go", rec.File)
	assert.Equal(t, 42, rec.Line)
	assert.Equal(t, 7, rec.Column)
	assert.Equal(t, SeverityError, rec.Severity)
	assert.Equal(t, CategoryCompile, rec.Category)
	assert.Equal(t, "go", rec.Source)
}

func TestGoParser_CompileErrorWithoutColumn(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	line := "main.go:10: missing return"
	assert.InDelta(t, 0.93, p.CanParse(line, nil), 0.001)

	rec := p.Parse(line, nil)
	require.NotNil(t, rec)
	assert.Equal(t, "missing return", rec.Message)
	assert.Equal(t, 10, rec.Line)
	assert.Zero(t, rec.Column)
}

func TestGoParser_TestFailureBlock(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	header := "--- FAIL: TestBroadcast (0.01s)"
	assert.InDelta(t, 0.8, p.CanParse(header, nil), 0.001)

	require.Nil(t, p.Parse(header, nil))
	require.True(t, p.Accumulating())

	members := []string{
		"    broadcast_test.go:203:",
		"        Error Trace:\t/work/broadcast_test.go:203",
		"        Error:      \texpected 3 subscribers, got 2",
	}
	for _, m := range members {
		assert.True(t, p.ContinueMultiLine(m, nil), "should consume %q", m)
	}

	// A non-member line ends the block without being consumed.
	assert.False(t, p.ContinueMultiLine("FAIL", nil))

	rec := p.FinishMultiLine(nil)
	require.NotNil(t, rec)
	assert.Equal(t, CategoryTest, rec.Category)
	assert.Equal(t, "broadcast_test.go", rec.File)
	assert.Equal(t, 203, rec.Line)
	assert.Contains(t, rec.Message, "TestBroadcast")
	assert.Contains(t, rec.Message, "expected 3 subscribers, got 2")
	for _, m := range members {
		assert.Contains(t, rec.StackTrace, m)
	}
	assert.False(t, p.Accumulating())
}

func TestGoParser_GotestsumFormat(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	require.Nil(t, p.Parse("=== FAIL: campaigns/runtime TestTriggered (0.20s)", nil))
	require.True(t, p.Accumulating())

	rec := p.FinishMultiLine(nil)
	require.NotNil(t, rec)
	assert.Contains(t, rec.Message, "TestTriggered")
}

func TestGoParser_PanicBlock(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	require.Nil(t, p.Parse("panic: runtime error: index out of range [3] with length 2", nil))
	require.True(t, p.Accumulating())

	members := []string{
		"goroutine 17 [running]:",
		"main.processBatch(0xc000010010)",
		"\t/work/internal/batch.go:88 +0x1a4",
		"created by main.run",
	}
	for _, m := range members {
		assert.True(t, p.ContinueMultiLine(m, nil), "should consume %q", m)
	}

	rec := p.FinishMultiLine(nil)
	require.NotNil(t, rec)
	assert.Equal(t, CategoryRuntime, rec.Category)
	assert.Contains(t, rec.Message, "index out of range")
	assert.Equal(t, "/work/internal/batch.go", rec.File)
	assert.Equal(t, 88, rec.Line)
}

func TestGoParser_BlankEndsBlockAfterMember(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	require.Nil(t, p.Parse("--- FAIL: TestX (0.00s)", nil))
	assert.True(t, p.ContinueMultiLine("    x_test.go:1: boom", nil))
	assert.False(t, p.ContinueMultiLine("", nil), "blank after a member ends the block")
}

func TestGoParser_BlankToleratedBeforeMember(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	require.Nil(t, p.Parse("panic: boom", nil))
	assert.True(t, p.ContinueMultiLine("", nil), "blank before any member is tolerated")
	assert.True(t, p.ContinueMultiLine("goroutine 1 [running]:", nil))
}

func TestGoParser_AccumulatorTruncation(t *testing.T) {
	p := NewGoParser(Limits{AccumulatorMaxLines: 3, AccumulatorMaxBytes: 1024})

	require.Nil(t, p.Parse("panic: boom", nil))
	for i := 0; i < 10; i++ {
		// Still consumed past the cap so scan position stays in sync.
		assert.True(t, p.ContinueMultiLine("\t/work/file.go:1 +0x1", nil))
	}

	rec := p.FinishMultiLine(nil)
	require.NotNil(t, rec)
	assert.Contains(t, rec.StackTrace, "truncated")
	assert.LessOrEqual(t, len(strings.Split(rec.StackTrace, "\n")), 5)
}

func TestGoParser_AccumulatorByteCapLatches(t *testing.T) {
	p := NewGoParser(Limits{AccumulatorMaxLines: 50, AccumulatorMaxBytes: 40})

	require.Nil(t, p.Parse("--- FAIL: TestX (0.01s)", nil))

	// The oversized member hits the byte cap; the short member after it
	// would fit but must not be appended out of order.
	big := "    " + strings.Repeat("y", 60)
	assert.True(t, p.ContinueMultiLine(big, nil))
	assert.True(t, p.ContinueMultiLine("    ok", nil))

	rec := p.FinishMultiLine(nil)
	require.NotNil(t, rec)
	assert.NotContains(t, rec.StackTrace, "    ok")
	assert.Equal(t, "--- FAIL: TestX (0.01s)\n... (truncated)", rec.StackTrace)
}

func TestGoParser_Noise(t *testing.T) {
	assert.True(t, (&GoParser{}).IsNoise("ok  \tgithub.com/pkg/example\t0.015s"))
	assert.True(t, (&GoParser{}).IsNoise("=== RUN   TestX"))
	assert.True(t, (&GoParser{}).IsNoise("PASS"))
	assert.True(t, (&GoParser{}).IsNoise("go: downloading golang.org/x/sys v0.39.0"))
	assert.False(t, (&GoParser{}).IsNoise("--- FAIL: TestX (0.01s)"))
}

func TestGoParser_Reset(t *testing.T) {
	p := NewGoParser(DefaultLimits())

	require.Nil(t, p.Parse("panic: boom", nil))
	require.True(t, p.Accumulating())
	p.Reset()
	assert.False(t, p.Accumulating())
	assert.Nil(t, p.FinishMultiLine(nil))
}
