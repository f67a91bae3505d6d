package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reviewkit/reviewkit/models"
)

func TestComplexityEstimator_StraightLineCode(t *testing.T) {
	estimator := NewComplexityEstimator()

	info := estimator.Estimate(context.Background(), "x = 1\ny = 2\n", "python")

	assert.Equal(t, models.StatusOK, info.Status)
	assert.Equal(t, 1, info.CyclomaticComplexity)
	assert.Equal(t, 3, info.Lines)
	assert.Zero(t, info.Functions)
}

func TestComplexityEstimator_BranchingConstructs(t *testing.T) {
	estimator := NewComplexityEstimator()

	code := `def process(items):
    for item in items:
        if item > 0:
            print(item)
        elif item < 0:
            print(-item)
    while False:
        pass
    try:
        risky()
    except ValueError:
        pass
`

	info := estimator.Estimate(context.Background(), code, "python")

	assert.Equal(t, models.StatusOK, info.Status)
	// 1 base + for + if + elif + while + try
	assert.Equal(t, 6, info.CyclomaticComplexity)
	assert.Equal(t, 1, info.Functions)
	assert.Zero(t, info.Classes)
	assert.GreaterOrEqual(t, info.MaxNestingDepth, 2)
}

func TestComplexityEstimator_CountsStructure(t *testing.T) {
	estimator := NewComplexityEstimator()

	code := `class A:
    def one(self):
        pass

    def two(self):
        pass

class B:
    pass
`

	info := estimator.Estimate(context.Background(), code, "python")

	assert.Equal(t, 2, info.Functions)
	assert.Equal(t, 2, info.Classes)
}

func TestComplexityEstimator_UnsupportedLanguage(t *testing.T) {
	estimator := NewComplexityEstimator()

	info := estimator.Estimate(context.Background(), "func main() {}", "go")

	assert.Equal(t, models.StatusDegraded, info.Status)
	assert.NotEmpty(t, info.Error)
	// Size metrics still reported for degraded results.
	assert.Equal(t, 1, info.Lines)
	assert.Equal(t, 1, info.CyclomaticComplexity)
}
