package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEslintParser_UnixFormat(t *testing.T) {
	p := NewEslintParser()

	line := "src/app.js:10:5: Unexpected var, use let or const instead. [Error/no-var]"
	assert.InDelta(t, 0.9, p.CanParse(line, nil), 0.001)

	rec := p.Parse(line, nil)
	require.NotNil(t, rec)
	assert.Equal(t, "src/app.js", rec.File)
	assert.Equal(t, 10, rec.Line)
	assert.Equal(t, 5, rec.Column)
	assert.Equal(t, SeverityError, rec.Severity)
	assert.Equal(t, CategoryLint, rec.Category)
	assert.Equal(t, "no-var", rec.RuleID)
	assert.Equal(t, "Unexpected var, use let or const instead.", rec.Message)
}

func TestEslintParser_CompactFormat(t *testing.T) {
	p := NewEslintParser()

	line := "src/util.jsx: line 3, col 1, Warning - Missing JSDoc comment. (jsdoc/require-jsdoc)"
	assert.InDelta(t, 0.88, p.CanParse(line, nil), 0.001)

	rec := p.Parse(line, nil)
	require.NotNil(t, rec)
	assert.Equal(t, "src/util.jsx", rec.File)
	assert.Equal(t, 3, rec.Line)
	assert.Equal(t, SeverityWarning, rec.Severity)
	assert.Equal(t, "jsdoc/require-jsdoc", rec.RuleID)
	assert.Equal(t, "Missing JSDoc comment.", rec.Message)
}

func TestSplitTrailingRule_MessageWithSlashes(t *testing.T) {
	// The message itself contains '/' and '-'; the rule match must
	// anchor from the end.
	msg, rule := splitTrailingRule("Unexpected require of src/foo-bar/baz. (import/no-commonjs)")
	assert.Equal(t, "Unexpected require of src/foo-bar/baz.", msg)
	assert.Equal(t, "import/no-commonjs", rule)
}

func TestSplitTrailingRule_ScopedPlugin(t *testing.T) {
	msg, rule := splitTrailingRule("Prefer await to then. (@typescript-eslint/no-floating-promises)")
	assert.Equal(t, "Prefer await to then.", msg)
	assert.Equal(t, "@typescript-eslint/no-floating-promises", rule)
}

func TestSplitTrailingRule_NoRule(t *testing.T) {
	msg, rule := splitTrailingRule("Parsing error: Unexpected token")
	assert.Equal(t, "Parsing error: Unexpected token", msg)
	assert.Empty(t, rule)
}

func TestEslintParser_SeverityFallbackTable(t *testing.T) {
	// jsdoc-prefixed rules downgrade to warning via the prefix table;
	// unknown rules stay error.
	assert.Equal(t, SeverityWarning, inferSeverity("eslint", "jsdoc/require-returns"))
	assert.Equal(t, SeverityError, inferSeverity("eslint", "some-brand-new-rule"))
	assert.Equal(t, SeverityError, inferSeverity("completely-unknown-tool", ""))
}

func TestEslintParser_SummaryIsNoise(t *testing.T) {
	p := NewEslintParser()
	assert.True(t, p.IsNoise("  3 problems (2 errors, 1 warning)"))
	assert.False(t, p.IsNoise("src/app.js:10:5: Unexpected var. [Error/no-var]"))
}
