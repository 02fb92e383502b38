package extract

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ActContextParser handles the local-runner log format produced by
// nektos/act: every line is prefixed with a bracketed [Job/Step] label,
// command output follows a pipe marker, and the runner's own status
// lines use emoji markers instead of the pipe.
//
//	[CI/build] | go: downloading golang.org/x/sys
//	[CI/build] ⭐ Run Main go test ./...
//
// Job and step names may themselves contain brackets, so the prefix
// match extends to the last ']' before the pipe or emoji marker, never
// the first.
type ActContextParser struct{}

func NewActContextParser() *ActContextParser { return &ActContextParser{} }

// actMarkers are the status emojis act prints between the bracket prefix
// and its own message.
var actMarkers = []string{"⭐", "🚀", "✅", "❌", "🏁", "⚙", "🐳", "💬", "☁", "🧪", "❓", "⚠", "🗑", "📦"}

func (p *ActContextParser) ParseLine(line string) (LineContext, string, bool) {
	line = ansi.Strip(line)
	if !strings.HasPrefix(line, "[") {
		return LineContext{}, line, false
	}

	// Command output: [Job/Step] | text. The label is everything up to
	// the last ']' before the pipe.
	if pipe := strings.Index(line, "|"); pipe >= 0 {
		prefix := line[:pipe]
		if end := strings.LastIndex(prefix, "]"); end > 0 {
			job, step := splitJobStep(line[1:end])
			clean := line[pipe+1:]
			clean = strings.TrimPrefix(clean, " ")
			return LineContext{Job: job, Step: step}, clean, false
		}
	}

	// Runner status line: [Job/Step] ⭐ Run Main ... — framing only, but
	// it still updates the active job/step labels. Bracket-prefixed
	// lines with neither pipe nor marker are not framing (a bare maven
	// "[ERROR] ..." headline, say) and pass through untouched.
	if end := p.markerBracketEnd(line); end > 0 {
		job, step := splitJobStep(line[1:end])
		return LineContext{Job: job, Step: step, Noise: true}, "", true
	}

	return LineContext{}, line, false
}

// markerBracketEnd locates the closing bracket of the label on a status
// line: the last ']' before a known emoji marker. Returns -1 when no
// marker is present.
func (p *ActContextParser) markerBracketEnd(line string) int {
	for _, m := range actMarkers {
		if idx := strings.Index(line, m); idx > 0 {
			if end := strings.LastIndex(line[:idx], "]"); end > 0 {
				return end
			}
		}
	}
	return -1
}

// splitJobStep splits a "Job/Step" label at the first '/' that sits
// outside any nested brackets, so "build [a/b]/compile" yields the job
// "build [a/b]" and the step "compile".
func splitJobStep(label string) (job, step string) {
	depth := 0
	for i, r := range label {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				return label[:i], label[i+1:]
			}
		}
	}
	return label, ""
}
