package extract

import (
	"regexp"
	"strings"
)

// GenericParser catches infrastructure failures that belong to no
// single toolchain: npm, make, docker, and shell exit statuses. It is
// stateless and safe to share across concurrent extraction calls.
//
// Its confidence scores sit below every dedicated parser so it only
// wins lines nothing more specific claims.
type GenericParser struct {
	singleLine
	noNoise
}

var (
	npmErrPattern      = regexp.MustCompile(`^npm ERR! (.+)$`)
	makeErrPattern     = regexp.MustCompile(`^make(?:\[\d+\])?: \*\*\* \[(.+)\] Error (\d+)`)
	dockerErrPattern   = regexp.MustCompile(`^ERROR \[([^\]]+)\] (.+)$`)
	exitCodePattern    = regexp.MustCompile(`(?i)^(?:.+: )?command failed with exit code (\d+)`)
	bareErrorPattern   = regexp.MustCompile(`^(?:Error|ERROR): (.+)$`)
	killedProcPattern  = regexp.MustCompile(`(?i)^(?:.*\b)?(killed|oomkilled|out of memory)\b`)
	processExitPattern = regexp.MustCompile(`^(?:exit status|exit code) ([1-9]\d*)$`)
)

func NewGenericParser() *GenericParser { return &GenericParser{} }

func (p *GenericParser) ID() string    { return "infra" }
func (p *GenericParser) Priority() int { return 10 }

func (p *GenericParser) CanParse(line string, ctx *ParseContext) float64 {
	switch {
	case npmErrPattern.MatchString(line),
		makeErrPattern.MatchString(line),
		dockerErrPattern.MatchString(line):
		return 0.7
	case exitCodePattern.MatchString(line),
		killedProcPattern.MatchString(line):
		return 0.65
	case bareErrorPattern.MatchString(line),
		processExitPattern.MatchString(line):
		return 0.6
	}
	return 0
}

func (p *GenericParser) Parse(line string, ctx *ParseContext) *ExtractedError {
	message := ""
	switch {
	case npmErrPattern.MatchString(line):
		m := npmErrPattern.FindStringSubmatch(line)
		message = "npm: " + m[1]
	case makeErrPattern.MatchString(line):
		m := makeErrPattern.FindStringSubmatch(line)
		message = "make target " + m[1] + " failed with error " + m[2]
	case dockerErrPattern.MatchString(line):
		m := dockerErrPattern.FindStringSubmatch(line)
		message = "docker build step " + m[1] + " failed: " + m[2]
	case exitCodePattern.MatchString(line), processExitPattern.MatchString(line):
		message = strings.TrimSpace(line)
	case killedProcPattern.MatchString(line):
		message = "process killed: " + strings.TrimSpace(line)
	case bareErrorPattern.MatchString(line):
		m := bareErrorPattern.FindStringSubmatch(line)
		message = m[1]
	default:
		return nil
	}
	return &ExtractedError{
		Message:  message,
		Severity: inferSeverity(p.ID(), ""),
		Category: CategoryInfra,
		Source:   p.ID(),
		Raw:      line,
	}
}
