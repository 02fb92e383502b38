package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	breadcrumbs []string
	messages    []string
}

func (f *fakeSink) Breadcrumb(message string) { f.breadcrumbs = append(f.breadcrumbs, message) }
func (f *fakeSink) Message(message string)    { f.messages = append(f.messages, message) }

func TestReporter_SendsSamplesAndSummary(t *testing.T) {
	sink := &fakeSink{}
	r := NewReporter(sink)

	r.ReportUnknownPatterns([]string{"error: [PATH].go broke", "FATAL: [REDACTED]"}, 5)

	assert.Equal(t, []string{"error: [PATH].go broke", "FATAL: [REDACTED]"}, sink.breadcrumbs)
	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "5 unknown error pattern(s)")
	assert.Contains(t, sink.messages[0], "2 new")
}

func TestReporter_SuppressesRepeatedSamples(t *testing.T) {
	sink := &fakeSink{}
	r := NewReporter(sink)

	r.ReportUnknownPatterns([]string{"error: same shape"}, 1)
	r.ReportUnknownPatterns([]string{"error: same shape", "error: new shape"}, 2)

	// The repeated sample stays suppressed inside the TTL window; the
	// summary message still goes out per call.
	assert.Equal(t, []string{"error: same shape", "error: new shape"}, sink.breadcrumbs)
	require.Len(t, sink.messages, 2)
	assert.Contains(t, sink.messages[1], "1 new")
}

func TestReporter_NoUnknownsNoTraffic(t *testing.T) {
	sink := &fakeSink{}
	NewReporter(sink).ReportUnknownPatterns(nil, 0)

	assert.Empty(t, sink.breadcrumbs)
	assert.Empty(t, sink.messages)
}
