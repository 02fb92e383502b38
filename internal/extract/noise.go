package extract

import (
	"regexp"
	"strings"
)

// noiseFilter classifies lines with no diagnostic value. Lookup is
// two-tier: an O(1)-ish lowercase prefix scan first, then a regex
// fallback for patterns that cannot be prefix-matched.
type noiseFilter struct {
	prefixes []string
	patterns []*regexp.Regexp
}

// Match reports whether the line carries no diagnostic value.
func (f *noiseFilter) Match(line string) bool {
	lower := strings.ToLower(strings.TrimLeft(line, " \t"))
	for _, p := range f.prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, re := range f.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// add merges another (prefix, regex) rule pair into the filter.
func (f *noiseFilter) add(prefixes []string, patterns []*regexp.Regexp) {
	f.prefixes = append(f.prefixes, prefixes...)
	f.patterns = append(f.patterns, patterns...)
}

// sharedNoisePrefixes are progress and bookkeeping lines common to all
// toolchains. Checked lowercase.
var sharedNoisePrefixes = []string{
	"downloading ",
	"download ",
	"compiling ",
	"fetching ",
	"resolving ",
	"extracting ",
	"installing ",
	"added ",
	"audited ",
	"up to date",
	"npm notice",
	"npm timing",
	"yarn install",
	"$ ",
	"> ",
	"receiving objects:",
	"resolving deltas:",
	"remote:",
	"unpacking objects:",
}

// sharedNoisePatterns cover markers that cannot be prefix-matched:
// all-whitespace lines, mid-line workflow commands, and literal <nil>
// debug dumps.
var sharedNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*$`),
	regexp.MustCompile(`^\s*<nil>\s*$`),
	regexp.MustCompile(`::(debug|group|endgroup)::`),
	regexp.MustCompile(`^\s*[-=_*#]{4,}\s*$`),
	regexp.MustCompile(`^\s*\d+%\s*[|▕].*[|▏]`),
}

func newSharedNoiseFilter() *noiseFilter {
	return &noiseFilter{
		prefixes: sharedNoisePrefixes,
		patterns: sharedNoisePatterns,
	}
}
