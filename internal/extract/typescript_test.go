package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTscParser_ParenFormat(t *testing.T) {
	p := NewTscParser()

	line := "src/components/App.tsx(48,13): error TS2345: Argument of type 'string' is not assignable to parameter of type 'number'."
	assert.InDelta(t, 0.95, p.CanParse(line, nil), 0.001)

	rec := p.Parse(line, nil)
	require.NotNil(t, rec)
	assert.Equal(t, "src/components/App.tsx", rec.File)
	assert.Equal(t, 48, rec.Line)
	assert.Equal(t, 13, rec.Column)
	assert.Equal(t, SeverityError, rec.Severity)
	assert.Equal(t, CategoryTypecheck, rec.Category)
	assert.Equal(t, "TS2345", rec.RuleID)
	assert.Contains(t, rec.Message, "not assignable")
}

func TestTscParser_ColonFormat(t *testing.T) {
	p := NewTscParser()

	line := "src/index.ts:12:5 - error TS2304: Cannot find name 'foo'."
	assert.InDelta(t, 0.93, p.CanParse(line, nil), 0.001)

	rec := p.Parse(line, nil)
	require.NotNil(t, rec)
	assert.Equal(t, "src/index.ts", rec.File)
	assert.Equal(t, 12, rec.Line)
	assert.Equal(t, "TS2304", rec.RuleID)
}

func TestTscParser_Warning(t *testing.T) {
	p := NewTscParser()

	rec := p.Parse("src/a.ts(1,1): warning TS6133: 'x' is declared but its value is never read.", nil)
	require.NotNil(t, rec)
	assert.Equal(t, SeverityWarning, rec.Severity)
}

func TestTscParser_RejectsOtherToolchains(t *testing.T) {
	p := NewTscParser()

	assert.Zero(t, p.CanParse("main.go:3:2: undefined: foo", nil))
	assert.Zero(t, p.CanParse("src/app.js:10:5: Unexpected var. [Error/no-var]", nil))
}

func TestTscParser_Stateless(t *testing.T) {
	p := NewTscParser()
	assert.False(t, p.SupportsMultiLine())
	assert.False(t, p.Accumulating())
}
