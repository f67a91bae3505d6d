package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewkit/reviewkit/models"
)

func TestSyntaxAnalyzer_ValidCode(t *testing.T) {
	analyzer := NewSyntaxAnalyzer()

	code := `class Greeter:
    def greet(self, name):
        return "hello " + name

def main():
    g = Greeter()
    print(g.greet("world"))
`

	check := analyzer.Check(context.Background(), code, "python")

	assert.Equal(t, models.StatusOK, check.Status)
	assert.True(t, check.Valid)
	assert.Empty(t, check.Errors)
	assert.Equal(t, 2, check.Functions)
	assert.Equal(t, 1, check.Classes)
}

func TestSyntaxAnalyzer_InvalidCode(t *testing.T) {
	analyzer := NewSyntaxAnalyzer()

	// Unbalanced parenthesis on line 2.
	code := "x = 1\nprint(x\ny = 2\n"

	check := analyzer.Check(context.Background(), code, "python")

	assert.Equal(t, models.StatusOK, check.Status)
	assert.False(t, check.Valid)
	require.NotEmpty(t, check.Errors)
	for _, syntaxErr := range check.Errors {
		assert.Greater(t, syntaxErr.Line, 0)
		assert.NotEmpty(t, syntaxErr.Message)
	}
}

func TestSyntaxAnalyzer_UnsupportedLanguage(t *testing.T) {
	analyzer := NewSyntaxAnalyzer()

	check := analyzer.Check(context.Background(), "puts 'hello'", "ruby")

	assert.Equal(t, models.StatusDegraded, check.Status)
	assert.False(t, check.Valid)
	assert.NotEmpty(t, check.Error)
}

func TestSyntaxAnalyzer_EmptyCode(t *testing.T) {
	analyzer := NewSyntaxAnalyzer()

	check := analyzer.Check(context.Background(), "", "python")

	assert.Equal(t, models.StatusOK, check.Status)
	assert.True(t, check.Valid)
	assert.Zero(t, check.Functions)
	assert.Zero(t, check.Classes)
}
