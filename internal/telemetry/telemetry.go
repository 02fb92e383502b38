// Package telemetry hands sanitized unknown-pattern summaries to an
// error-reporting sink as breadcrumbs plus one summary message. Raw log
// content never passes through here; callers redact first.
package telemetry

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/keenanwest/triage/internal/logging"
)

const (
	// DefaultExpiration is how long a reported sample suppresses
	// re-reporting of the same pattern.
	DefaultExpiration = 1 * time.Hour
	// DefaultCleanupInterval controls expired-entry sweeping.
	DefaultCleanupInterval = 10 * time.Minute
)

// Sink receives breadcrumbs and summary messages. The production sink
// is the external error reporter; tests substitute their own.
type Sink interface {
	Breadcrumb(message string)
	Message(message string)
}

// Reporter forwards bounded unknown-pattern summaries to a Sink,
// TTL-caching sample keys so a pattern repeated across calls inside the
// window is reported once.
type Reporter struct {
	sink Sink
	seen *gocache.Cache
}

// NewReporter builds a reporter over the sink.
func NewReporter(sink Sink) *Reporter {
	return &Reporter{
		sink: sink,
		seen: gocache.New(DefaultExpiration, DefaultCleanupInterval),
	}
}

// ReportUnknownPatterns sends each previously-unseen sample as a
// breadcrumb, then one summary message with the total count. samples
// must already be sanitized and bounded by the caller.
func (r *Reporter) ReportUnknownPatterns(samples []string, total int) {
	if total == 0 {
		return
	}

	fresh := 0
	for _, s := range samples {
		if _, dup := r.seen.Get(s); dup {
			continue
		}
		r.seen.Set(s, struct{}{}, gocache.DefaultExpiration)
		r.sink.Breadcrumb(s)
		fresh++
	}

	logging.Debug("unknown patterns reported", "total", total, "fresh", fresh)
	r.sink.Message(fmt.Sprintf("extraction saw %d unknown error pattern(s), %d new", total, fresh))
}

// LogSink writes breadcrumbs and messages to the debug log. It is the
// default sink when no external reporter is wired.
type LogSink struct{}

func (LogSink) Breadcrumb(message string) {
	logging.Debug("unknown pattern sample", "sample", message)
}

func (LogSink) Message(message string) {
	logging.Info(message)
}
