package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSharedNoiseFilter_Prefixes(t *testing.T) {
	f := newSharedNoiseFilter()

	for _, line := range []string{
		"Downloading golang.org/x/sys v0.39.0",
		"  downloading something (leading whitespace, mixed case)",
		"npm notice New minor version of npm available!",
		"$ make build",
		"> next build",
		"remote: Counting objects: 100% (12/12), done.",
	} {
		assert.True(t, f.Match(line), "should be noise: %q", line)
	}
}

func TestSharedNoiseFilter_Patterns(t *testing.T) {
	f := newSharedNoiseFilter()

	for _, line := range []string{
		"",
		"   \t  ",
		"<nil>",
		"prefix ::debug::mid-line command",
		"================================",
		"----------------",
	} {
		assert.True(t, f.Match(line), "should be noise: %q", line)
	}
}

func TestSharedNoiseFilter_KeepsDiagnostics(t *testing.T) {
	f := newSharedNoiseFilter()

	for _, line := range []string{
		"main.go:3:2: undefined: foo",
		"panic: runtime error: nil pointer dereference",
		"Error: something broke",
	} {
		assert.False(t, f.Match(line), "should not be noise: %q", line)
	}
}

func TestNoiseFilter_Add(t *testing.T) {
	f := &noiseFilter{}
	f.add([]string{"custom "}, nil)

	assert.True(t, f.Match("Custom progress line"))
	assert.False(t, f.Match("other line"))
}
