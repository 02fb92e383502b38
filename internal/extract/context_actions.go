package extract

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ActionsContextParser handles hosted GitHub Actions logs: an ISO-8601
// timestamp prefixes every line, downloaded multi-job logs carry a
// "Job\tStep\ttimestamp" prefix, and workflow commands (::debug::,
// ::group::, ::endgroup::) carry no diagnostic value.
type ActionsContextParser struct{}

func NewActionsContextParser() *ActionsContextParser { return &ActionsContextParser{} }

var (
	// 2026-01-26T14:49:40.7760945Z
	actionsTimestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z\s?`)

	// JobName\tStepName\t2026-01-26T...
	actionsJobPrefixPattern = regexp.MustCompile(`^([^\t]+)\t([^\t]+)\t\d{4}-\d{2}-\d{2}T\S+\s?`)
)

// actionsCommandPrefixes are workflow-command markers classified as
// noise once the timestamp has been stripped.
var actionsCommandPrefixes = []string{
	"::debug::",
	"::group::",
	"::endgroup::",
	"##[debug]",
	"##[group]",
	"##[endgroup]",
	"##[command]",
}

func (p *ActionsContextParser) ParseLine(line string) (LineContext, string, bool) {
	line = ansi.Strip(line)

	lc := LineContext{}
	if m := actionsJobPrefixPattern.FindStringSubmatch(line); m != nil {
		lc.Job = m[1]
		lc.Step = m[2]
		line = line[len(m[0]):]
	} else {
		line = actionsTimestampPattern.ReplaceAllString(line, "")
	}

	for _, prefix := range actionsCommandPrefixes {
		if strings.HasPrefix(line, prefix) {
			lc.Noise = true
			return lc, "", true
		}
	}

	return lc, line, false
}
