// Package report aggregates extracted diagnostics by file, category,
// and workflow job, and renders them for human or machine consumers.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/keenanwest/triage/internal/extract"
)

// Report is the grouped view over one extraction call's output.
type Report struct {
	Errors []*extract.ExtractedError `json:"errors"`
}

// New builds a report over the given records.
func New(errs []*extract.ExtractedError) *Report {
	return &Report{Errors: errs}
}

// ByFile groups records by file path; records without a file are
// grouped under the empty key.
func (r *Report) ByFile() map[string][]*extract.ExtractedError {
	groups := make(map[string][]*extract.ExtractedError)
	for _, e := range r.Errors {
		groups[e.File] = append(groups[e.File], e)
	}
	return groups
}

// ByCategory groups records by category.
func (r *Report) ByCategory() map[extract.Category][]*extract.ExtractedError {
	groups := make(map[extract.Category][]*extract.ExtractedError)
	for _, e := range r.Errors {
		groups[e.Category] = append(groups[e.Category], e)
	}
	return groups
}

// ByJob groups records by workflow job label.
func (r *Report) ByJob() map[string][]*extract.ExtractedError {
	groups := make(map[string][]*extract.ExtractedError)
	for _, e := range r.Errors {
		job := ""
		if e.Workflow != nil {
			job = e.Workflow.Job
		}
		groups[job] = append(groups[job], e)
	}
	return groups
}

// CountBySeverity tallies records per severity.
func (r *Report) CountBySeverity() map[extract.Severity]int {
	counts := make(map[extract.Severity]int)
	for _, e := range r.Errors {
		counts[e.Severity]++
	}
	return counts
}

// JSON marshals the record slice for machine consumers.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.Errors, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

var (
	fileStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	categoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	summaryStyle  = lipgloss.NewStyle().Bold(true)
)

// Render produces a styled terminal summary, wrapped to width.
func (r *Report) Render(width int) string {
	if width <= 0 {
		width = 80
	}
	if len(r.Errors) == 0 {
		return summaryStyle.Render("No errors found.") + "\n"
	}

	var sb strings.Builder
	byFile := r.ByFile()

	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, f := range files {
		header := f
		if header == "" {
			header = "(no file)"
		}
		sb.WriteString(fileStyle.Render(header))
		sb.WriteString("\n")
		for _, e := range byFile[f] {
			sb.WriteString(renderError(e, width))
		}
		sb.WriteString("\n")
	}

	counts := r.CountBySeverity()
	sb.WriteString(summaryStyle.Render(fmt.Sprintf(
		"%d problems (%d errors, %d warnings, %d info)",
		len(r.Errors),
		counts[extract.SeverityError],
		counts[extract.SeverityWarning],
		counts[extract.SeverityInfo],
	)))
	sb.WriteString("\n")
	return sb.String()
}

func renderError(e *extract.ExtractedError, width int) string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf("%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
	}

	sev := string(e.Severity)
	switch e.Severity {
	case extract.SeverityError:
		sev = errorStyle.Render(sev)
	case extract.SeverityWarning:
		sev = warningStyle.Render(sev)
	default:
		sev = infoStyle.Render(sev)
	}

	tag := categoryStyle.Render(fmt.Sprintf("[%s/%s]", e.Category, e.Source))
	line := fmt.Sprintf("  %-7s %s %s %s", loc, sev, tag, e.Message)
	if e.RuleID != "" {
		line += fmt.Sprintf("  (%s)", e.RuleID)
	}
	return wordwrap.String(line, width) + "\n"
}
