package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// EslintParser extracts ESLint diagnostics in the unix and compact
// output formats. Both are single-line, so the parser is stateless and
// safe to share across concurrent extraction calls.
//
//	src/app.js:10:5: Unexpected var, use let or const instead. [Error/no-var]
//	src/app.js: line 10, col 5, Error - Unexpected var. (no-var)
type EslintParser struct {
	singleLine
}

var (
	// unix format: file:line:col: message [Severity/rule]
	eslintUnixPattern = regexp.MustCompile(`^(.+\.(?:js|jsx|ts|tsx|mjs|cjs|vue|svelte)):(\d+):(\d+): (.+?)(?:\s+\[(\w+)/([^\]]+)\])?$`)

	// compact format: file: line N, col M, Severity - message (rule)
	eslintCompactPattern = regexp.MustCompile(`^(.+\.(?:js|jsx|ts|tsx|mjs|cjs|vue|svelte)): line (\d+), col (\d+), (\w+) - (.+)$`)

	// ruleIDPattern right-anchors a trailing rule identifier: a
	// lowercase alphanumeric token possibly segmented by '/', '-', '@'.
	// The message itself may contain '/' and '-', so scanning anchors
	// from the end rather than the first separator.
	ruleIDPattern = regexp.MustCompile(`\(([a-z0-9@][a-z0-9@/\-]*)\)$`)
)

var eslintNoisePrefixes = []string{
	"✖ ",
	"✨ ",
	"eslint --fix",
}

var eslintNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*\d+ problems? \(\d+ errors?, \d+ warnings?\)`),
}

func NewEslintParser() *EslintParser { return &EslintParser{} }

func (p *EslintParser) ID() string    { return "eslint" }
func (p *EslintParser) Priority() int { return 75 }

func (p *EslintParser) NoiseRules() ([]string, []*regexp.Regexp) {
	return eslintNoisePrefixes, eslintNoisePatterns
}

func (p *EslintParser) IsNoise(line string) bool {
	f := noiseFilter{prefixes: eslintNoisePrefixes, patterns: eslintNoisePatterns}
	return f.Match(line)
}

func (p *EslintParser) CanParse(line string, ctx *ParseContext) float64 {
	if eslintUnixPattern.MatchString(line) {
		return 0.9
	}
	if eslintCompactPattern.MatchString(line) {
		return 0.88
	}
	return 0
}

func (p *EslintParser) Parse(line string, ctx *ParseContext) *ExtractedError {
	if m := eslintUnixPattern.FindStringSubmatch(line); m != nil {
		lineNum, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		message, rule := m[4], m[6]
		sev := p.severity(m[5], rule)
		if rule == "" {
			message, rule = splitTrailingRule(message)
			sev = p.severity("", rule)
		}
		return &ExtractedError{
			Message:  message,
			File:     m[1],
			Line:     lineNum,
			Column:   col,
			Severity: sev,
			Category: CategoryLint,
			Source:   p.ID(),
			RuleID:   rule,
			Raw:      line,
		}
	}
	if m := eslintCompactPattern.FindStringSubmatch(line); m != nil {
		lineNum, _ := strconv.Atoi(m[2])
		col, _ := strconv.Atoi(m[3])
		message, rule := splitTrailingRule(m[5])
		return &ExtractedError{
			Message:  message,
			File:     m[1],
			Line:     lineNum,
			Column:   col,
			Severity: p.severity(m[4], rule),
			Category: CategoryLint,
			Source:   p.ID(),
			RuleID:   rule,
			Raw:      line,
		}
	}
	return nil
}

// severity prefers the explicit label when present, then falls back to
// the rule-prefix / tool-name table.
func (p *EslintParser) severity(label, rule string) Severity {
	switch strings.ToLower(label) {
	case "error":
		return SeverityError
	case "warning", "warn":
		return SeverityWarning
	case "info":
		return SeverityInfo
	}
	return inferSeverity(p.ID(), rule)
}

// splitTrailingRule separates a right-anchored "(rule/id)" suffix from a
// message, returning the message unchanged when no rule is present.
func splitTrailingRule(message string) (string, string) {
	message = strings.TrimSpace(message)
	if m := ruleIDPattern.FindStringSubmatch(message); m != nil {
		return strings.TrimSpace(strings.TrimSuffix(message, m[0])), m[1]
	}
	return message, ""
}
