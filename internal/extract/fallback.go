package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// The legacy fallback pass covers toolchains that have no dedicated
// Tool Parser. It runs over the whole cleaned text after the line scan,
// merging into the same dedup space; pattern groups whose toolchain id
// is owned by a dedicated parser are skipped so two independent
// strategies never emit the same diagnostic twice.

// fallbackPattern is one whole-text rule for a toolchain without a
// dedicated parser. Submatch layout: file, line, [column,] message —
// indices give the capture positions, 0 meaning absent.
type fallbackPattern struct {
	source   string
	category Category
	re       *regexp.Regexp
	fileIdx  int
	lineIdx  int
	colIdx   int
	msgIdx   int
}

var fallbackPatterns = []fallbackPattern{
	// gcc/clang: file.c:10:5: error: message
	{
		source: "cc", category: CategoryCompile,
		re:      regexp.MustCompile(`(?m)^([\w~./\-]+\.(?:c|cc|cpp|cxx|h|hpp)):(\d+):(\d+): (?:fatal )?error: (.+)$`),
		fileIdx: 1, lineIdx: 2, colIdx: 3, msgIdx: 4,
	},
	// .NET: file.cs(10,5): error CS1002: message
	{
		source: "dotnet", category: CategoryCompile,
		re:      regexp.MustCompile(`(?m)^(.+\.cs)\((\d+),(\d+)\): error (CS\d+: .+)$`),
		fileIdx: 1, lineIdx: 2, colIdx: 3, msgIdx: 4,
	},
	// Maven: [ERROR] file.java:[10,5] message
	{
		source: "maven", category: CategoryCompile,
		re:      regexp.MustCompile(`(?m)^\[ERROR\] (.+\.java):\[(\d+),(\d+)\] (.+)$`),
		fileIdx: 1, lineIdx: 2, colIdx: 3, msgIdx: 4,
	},
	// Ruff: file.py:10:5: E501 message
	{
		source: "ruff", category: CategoryLint,
		re:      regexp.MustCompile(`(?m)^(.+\.py):(\d+):(\d+): ([A-Z]\d+ .+)$`),
		fileIdx: 1, lineIdx: 2, colIdx: 3, msgIdx: 4,
	},
	// pytest summary: FAILED tests/test_app.py::test_name - message
	{
		source: "pytest", category: CategoryTest,
		re:      regexp.MustCompile(`(?m)^FAILED (\S+?)(?:::\S+)?(?: - (.+))?$`),
		fileIdx: 1, msgIdx: 2,
	},
	// Jest: ● Test name › case
	{
		source: "jest", category: CategoryTest,
		re:     regexp.MustCompile(`(?m)^\s*● (.+)$`),
		msgIdx: 1,
	},
	// Terraform: Error: message
	{
		source: "terraform", category: CategoryInfra,
		re:     regexp.MustCompile(`(?m)^Error: (.+)$`),
		msgIdx: 1,
	},
}

// fallbackUnknownPattern is the most generic catch-all: an
// error-looking headline that matched nothing else. Hits are flagged
// unknownPattern and summarized (redacted) for telemetry.
var fallbackUnknownPattern = regexp.MustCompile(`(?mi)^\s*(?:error|fatal|failure)\b[:\s]\s*(.+)$`)

// runFallback extracts from the whole text for toolchains without a
// dedicated parser. owned holds dedicated toolchain ids to exclude;
// seen is the call's shared dedup space.
func runFallback(text string, owned map[string]bool, seen *dedupSet) []*ExtractedError {
	var out []*ExtractedError
	claimed := make(map[string]bool)

	for _, fp := range fallbackPatterns {
		if owned[fp.source] {
			continue
		}
		for _, m := range fp.re.FindAllStringSubmatch(text, -1) {
			rec := &ExtractedError{
				Severity: SeverityError,
				Category: fp.category,
				Source:   fp.source,
				Raw:      strings.TrimSpace(m[0]),
			}
			if fp.fileIdx > 0 {
				rec.File = m[fp.fileIdx]
			}
			if fp.lineIdx > 0 {
				rec.Line, _ = strconv.Atoi(m[fp.lineIdx])
			}
			if fp.colIdx > 0 {
				rec.Column, _ = strconv.Atoi(m[fp.colIdx])
			}
			if fp.msgIdx > 0 && fp.msgIdx < len(m) {
				rec.Message = strings.TrimSpace(m[fp.msgIdx])
			}
			if rec.Message == "" {
				rec.Message = rec.Raw
			}
			claimed[rec.Raw] = true
			if seen.Insert(rec.DedupKey()) {
				out = append(out, rec)
			}
		}
	}

	// Generic error-looking lines nothing claimed become unknown-pattern
	// records so their (redacted) shape can reach telemetry.
	for _, m := range fallbackUnknownPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSpace(m[0])
		if claimed[raw] {
			continue
		}
		rec := &ExtractedError{
			Message:        strings.TrimSpace(m[1]),
			Severity:       SeverityError,
			Category:       CategoryInfra,
			Source:         "unknown",
			Raw:            raw,
			UnknownPattern: true,
		}
		if seen.Insert(rec.DedupKey()) {
			out = append(out, rec)
		}
	}

	return out
}
