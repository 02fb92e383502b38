package extract

import (
	"regexp"

	"github.com/charmbracelet/x/ansi"
)

// Sanitizer produces redacted structural summaries of unknown-pattern
// lines, safe for outbound diagnostics. Redaction is an ordered chain:
// credentials and other sensitive material first, then a final pass
// that replaces every path with a placeholder while preserving its file
// extension, so a parser author still sees "something ending in .go"
// without the real path.
type Sanitizer struct {
	maxSamples   int
	maxSampleLen int
}

// sanitizeRule is one substitution in the chain. Order matters: the
// path rule must run last or it would mangle the more specific matches.
type sanitizeRule struct {
	re   *regexp.Regexp
	repl string
}

var sanitizeRules = []sanitizeRule{
	// Provider-specific token prefixes (GitHub, Slack, AWS, GitLab,
	// OpenAI-style keys).
	{regexp.MustCompile(`\b(?:ghp|gho|ghu|ghs|ghr|glpat|sk|pk)_[A-Za-z0-9_]{8,}\b`), "[TOKEN]"},
	{regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{8,}\b`), "[TOKEN]"},
	{regexp.MustCompile(`\b(?:AKIA|ASIA)[A-Z0-9]{16}\b`), "[TOKEN]"},
	{regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._\-]{8,}`), "Bearer [TOKEN]"},
	// Generic key=value credentials.
	{regexp.MustCompile(`(?i)\b(api[_-]?key|token|secret|password|passwd|auth)\s*[=:]\s*\S+`), "$1=[REDACTED]"},
	// Embedded URL credentials and connection strings.
	{regexp.MustCompile(`\b([a-z][a-z0-9+.\-]*)://[^/\s:@]+:[^@\s]+@`), "$1://[REDACTED]@"},
	// Emails and addresses.
	{regexp.MustCompile(`\b[\w.+\-]+@[\w.\-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), "[IP]"},
	// Home directories.
	{regexp.MustCompile(`(?:/home/|/Users/|C:\\Users\\)[\w.\-]+`), "[HOME]"},
	// Long hex and base64 blobs.
	{regexp.MustCompile(`\b[0-9a-fA-F]{32,}\b`), "[HEX]"},
	{regexp.MustCompile(`\b[A-Za-z0-9+/]{40,}={0,2}\b`), "[B64]"},
}

// sanitizePathRule replaces the path portion of any remaining string
// with a placeholder, keeping the extension.
var sanitizePathRule = sanitizeRule{
	regexp.MustCompile(`(?:[\w.\-\[\]]+/)+[\w.\-\[\]]+\.(\w{1,5})\b`),
	"[PATH].$1",
}

// NewSanitizer caps the number of samples per call and each sample's
// length. Zero values get conservative defaults.
func NewSanitizer(maxSamples, maxSampleLen int) *Sanitizer {
	if maxSamples <= 0 {
		maxSamples = 10
	}
	if maxSampleLen <= 0 {
		maxSampleLen = 200
	}
	return &Sanitizer{maxSamples: maxSamples, maxSampleLen: maxSampleLen}
}

// Sanitize redacts one line and truncates it to the sample length.
func (s *Sanitizer) Sanitize(line string) string {
	line = ansi.Strip(line)
	for _, rule := range sanitizeRules {
		line = rule.re.ReplaceAllString(line, rule.repl)
	}
	line = sanitizePathRule.re.ReplaceAllString(line, sanitizePathRule.repl)
	return ansi.Truncate(line, s.maxSampleLen, "…")
}

// Summarize collects bounded, redacted samples from the unknown-pattern
// records in errs, plus the total unknown count (which may exceed the
// number of samples).
func (s *Sanitizer) Summarize(errs []*ExtractedError) (samples []string, total int) {
	for _, e := range errs {
		if !e.UnknownPattern {
			continue
		}
		total++
		if len(samples) < s.maxSamples {
			samples = append(samples, s.Sanitize(e.Raw))
		}
	}
	return samples, total
}
