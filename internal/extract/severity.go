package extract

import "strings"

// severityByRulePrefix maps rule-identifier prefixes to a severity for
// toolchains that do not label severity explicitly. Longest prefix wins.
var severityByRulePrefix = map[string]Severity{
	"prettier":   SeverityWarning,
	"stylistic":  SeverityWarning,
	"style":      SeverityWarning,
	"format":     SeverityWarning,
	"jsdoc":      SeverityWarning,
	"import":     SeverityWarning,
	"deprecat":   SeverityWarning,
	"todo":       SeverityInfo,
	"no-console": SeverityWarning,
}

// severityByTool maps a toolchain id to its default severity when a
// diagnostic carries neither an explicit severity nor a known rule.
var severityByTool = map[string]Severity{
	"eslint": SeverityError,
	"tsc":    SeverityError,
	"go":     SeverityError,
	"python": SeverityError,
	"rust":   SeverityError,
	"infra":  SeverityError,
}

// inferSeverity resolves a severity from the rule-prefix table, then the
// per-tool table. Unknown identifiers default to error: downgrading a
// real failure silently is worse than over-reporting.
func inferSeverity(tool, ruleID string) Severity {
	if ruleID != "" {
		rule := strings.ToLower(ruleID)
		best := ""
		var sev Severity
		for prefix, s := range severityByRulePrefix {
			if strings.HasPrefix(rule, prefix) && len(prefix) > len(best) {
				best = prefix
				sev = s
			}
		}
		if best != "" {
			return sev
		}
	}
	if s, ok := severityByTool[tool]; ok {
		return s
	}
	return SeverityError
}
