package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericParser_NpmError(t *testing.T) {
	p := NewGenericParser()

	line := "npm ERR! code ELIFECYCLE"
	assert.InDelta(t, 0.7, p.CanParse(line, nil), 0.001)

	rec := p.Parse(line, nil)
	require.NotNil(t, rec)
	assert.Equal(t, "npm: code ELIFECYCLE", rec.Message)
	assert.Equal(t, CategoryInfra, rec.Category)
	assert.Equal(t, "infra", rec.Source)
}

func TestGenericParser_MakeError(t *testing.T) {
	p := NewGenericParser()

	rec := p.Parse("make: *** [build] Error 2", nil)
	require.NotNil(t, rec)
	assert.Equal(t, "make target build failed with error 2", rec.Message)

	rec = p.Parse("make[2]: *** [all] Error 1", nil)
	require.NotNil(t, rec)
	assert.Equal(t, "make target all failed with error 1", rec.Message)
}

func TestGenericParser_DockerError(t *testing.T) {
	p := NewGenericParser()

	rec := p.Parse("ERROR [builder 4/7] RUN go build ./...", nil)
	require.NotNil(t, rec)
	assert.Equal(t, "docker build step builder 4/7 failed: RUN go build ./...", rec.Message)
}

func TestGenericParser_ExitStatuses(t *testing.T) {
	p := NewGenericParser()

	assert.InDelta(t, 0.65, p.CanParse("Command failed with exit code 137", nil), 0.001)
	assert.InDelta(t, 0.6, p.CanParse("exit status 1", nil), 0.001)

	rec := p.Parse("exit status 1", nil)
	require.NotNil(t, rec)
	assert.Equal(t, "exit status 1", rec.Message)

	// A zero exit status is not a failure.
	assert.Zero(t, p.CanParse("exit status 0", nil))
}

func TestGenericParser_KilledProcess(t *testing.T) {
	p := NewGenericParser()

	rec := p.Parse("Killed", nil)
	require.NotNil(t, rec)
	assert.Equal(t, "process killed: Killed", rec.Message)
}

func TestGenericParser_BareError(t *testing.T) {
	p := NewGenericParser()

	assert.InDelta(t, 0.6, p.CanParse("Error: spawn ENOMEM", nil), 0.001)

	rec := p.Parse("ERROR: build step failed", nil)
	require.NotNil(t, rec)
	assert.Equal(t, "build step failed", rec.Message)
}

func TestGenericParser_IgnoresOrdinaryOutput(t *testing.T) {
	p := NewGenericParser()
	assert.Zero(t, p.CanParse("compiled 14 files successfully", nil))
	assert.Zero(t, p.CanParse("", nil))
}
