package extract

import (
	"strings"

	"github.com/keenanwest/triage/internal/logging"
)

// Extractor is the top-level driver for one extraction pipeline. It
// owns the per-call mutable state: the sticky workflow context, the
// bounded dedup set, and whichever parser currently holds an open
// multi-line block.
//
// An Extractor must not be shared across concurrent calls. The scan is
// single-threaded and synchronous with bounded per-line work; callers
// needing cancellation wrap Extract with an external timeout and treat
// it as atomic.
type Extractor struct {
	registry *Registry
	limits   Limits

	workflow WorkflowContext
	active   ToolParser
}

// NewExtractor builds an Extractor over the registry. Zero limits are
// filled with defaults.
func NewExtractor(registry *Registry, limits Limits) *Extractor {
	return &Extractor{
		registry: registry,
		limits:   limits.normalize(),
	}
}

// Extract scans one buffer of combined CI output and returns the
// ordered diagnostics. Dedicated-parser results appear in stream order;
// fallback results are appended after them. Extract never fails on
// malformed input: unparseable lines simply contribute nothing.
func (e *Extractor) Extract(output string, contextParser ContextParser) []*ExtractedError {
	seen := newDedupSet(e.limits.DedupCapacity)
	pctx := &ParseContext{Workflow: &e.workflow}

	var results []*ExtractedError
	var unmatched []string

	emit := func(rec *ExtractedError) {
		if rec == nil {
			return
		}
		if rec.Workflow == nil {
			rec.Workflow = e.workflow.Clone()
		}
		if seen.Insert(rec.DedupKey()) {
			results = append(results, rec)
		}
	}

	for _, raw := range strings.Split(output, "\n") {
		// Oversized lines are rejected before any regex sees them.
		if len(raw) > e.limits.MaxLineLength {
			continue
		}

		lc, clean, skip := contextParser.ParseLine(raw)
		if lc.Job != "" {
			e.workflow.Job = lc.Job
			e.workflow.Step = lc.Step
		}
		if skip || lc.Noise {
			continue
		}

		// An open block gets first refusal, before the pooled noise
		// check, so blank-line tolerance inside blocks works.
		if e.active != nil {
			if e.active.ContinueMultiLine(clean, pctx) {
				continue
			}
			emit(e.active.FinishMultiLine(pctx))
			e.active = nil
			// The ending line was not consumed; fall through and
			// re-offer it as a fresh dispatch candidate.
		}

		if e.registry.IsNoise(clean) {
			continue
		}

		parser := e.registry.FindParser(clean, pctx)
		if parser == nil {
			unmatched = append(unmatched, clean)
			continue
		}

		rec := parser.Parse(clean, pctx)
		if rec == nil && parser.Accumulating() {
			logging.Debug("multi-line block started", "parser", parser.ID())
			e.active = parser
			continue
		}
		emit(rec)
	}

	// End of stream: force-flush any pending block.
	if e.active != nil {
		emit(e.active.FinishMultiLine(pctx))
		e.active = nil
	}

	// Legacy whole-text pass over the lines no dedicated parser
	// claimed, excluding toolchains a dedicated parser owns.
	results = append(results, runFallback(
		strings.Join(unmatched, "\n"),
		e.registry.ownedSources(),
		seen,
	)...)

	return results
}

// Reset clears the workflow context and every parser's accumulator
// state so the Extractor can be reused for an independent call.
func (e *Extractor) Reset() {
	e.workflow = WorkflowContext{}
	e.active = nil
	e.registry.Reset()
}
