// Package extract turns raw CI run output into structured, deduplicated
// diagnostics. The pipeline is a single synchronous line scan: a
// ContextParser strips CI-environment framing, a Registry of ToolParsers
// performs confidence-ranked dispatch, and the Extractor owns all
// per-call mutable state (workflow context, dedup set, any active
// multi-line accumulator).
package extract

import (
	"fmt"
	"strings"
)

// Severity classifies how serious a diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category classifies which kind of tooling produced a diagnostic.
type Category string

const (
	CategoryCompile   Category = "compile"
	CategoryTest      Category = "test"
	CategoryLint      Category = "lint"
	CategoryTypecheck Category = "typecheck"
	CategoryRuntime   Category = "runtime"
	CategoryInfra     Category = "infrastructure"
)

// WorkflowContext is the sticky (job, step) label pair attached to
// emitted errors. The Extractor owns one instance per call and mutates
// it in place; it is always cloned when stamped onto an ExtractedError
// so later context changes cannot mutate already-emitted records.
type WorkflowContext struct {
	Job  string `json:"job,omitempty"`
	Step string `json:"step,omitempty"`
}

// Clone returns an independent copy for stamping onto a record.
func (w WorkflowContext) Clone() *WorkflowContext {
	c := w
	return &c
}

// ExtractedError is one structured diagnostic. Records are immutable
// once emitted; (Message, File, Line) forms the dedup identity.
type ExtractedError struct {
	Message        string           `json:"message"`
	File           string           `json:"file,omitempty"`
	Line           int              `json:"line,omitempty"`
	Column         int              `json:"column,omitempty"`
	Severity       Severity         `json:"severity"`
	Category       Category         `json:"category"`
	Source         string           `json:"source"`
	RuleID         string           `json:"rule_id,omitempty"`
	StackTrace     string           `json:"stack_trace,omitempty"`
	Raw            string           `json:"raw,omitempty"`
	Workflow       *WorkflowContext `json:"workflow,omitempty"`
	UnknownPattern bool             `json:"unknown_pattern,omitempty"`
}

// DedupKey returns the identity used for duplicate suppression.
// Severity, category, and column are intentionally excluded, so two
// records differing only in column collapse into one.
func (e *ExtractedError) DedupKey() string {
	return fmt.Sprintf("%s|%s|%d", e.Message, e.File, e.Line)
}

// String returns a compact human-readable form.
func (e *ExtractedError) String() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&sb, ":%d", e.Column)
			}
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.RuleID != "" {
		fmt.Fprintf(&sb, " (%s)", e.RuleID)
	}
	return sb.String()
}

// ParseContext is the per-call mutable carrier handed to every
// ToolParser invocation. One instance exists per extraction call and is
// never shared across calls.
type ParseContext struct {
	// Workflow points at the Extractor's current workflow context.
	// Parsers that need to stamp a record at block start must Clone it.
	Workflow *WorkflowContext
}

// LineContext is the per-line result of context parsing.
type LineContext struct {
	Job   string
	Step  string
	Noise bool
}
