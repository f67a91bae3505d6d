package analysis

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/reviewkit/reviewkit/languages"
	"github.com/reviewkit/reviewkit/models"
)

// branchingNodes are the constructs that increment the cyclomatic estimate.
// The score is a whole-submission structural approximation: it starts at 1
// and increments once per branching, looping or exception-handling construct
// encountered in a full pre-order walk.
var branchingNodes = map[string]struct{}{
	"if_statement":           {},
	"elif_clause":            {},
	"while_statement":        {},
	"for_statement":          {},
	"try_statement":          {},
	"conditional_expression": {},
}

// nestingNodes contribute to the maximum nesting depth.
var nestingNodes = map[string]struct{}{
	"if_statement":    {},
	"while_statement": {},
	"for_statement":   {},
	"try_statement":   {},
	"with_statement":  {},
}

// ComplexityEstimator derives size metrics and a cyclomatic-complexity-like
// score from a full parse of the submission.
type ComplexityEstimator struct {
	parser *sitter.Parser
}

// NewComplexityEstimator creates a complexity estimator for Python source.
func NewComplexityEstimator() *ComplexityEstimator {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &ComplexityEstimator{parser: parser}
}

// Estimate walks the syntax tree and returns the complexity info. A
// traversal failure is reported in the result's Error field and never aborts
// the aggregator.
func (e *ComplexityEstimator) Estimate(ctx context.Context, code, language string) models.ComplexityInfo {
	info := models.ComplexityInfo{
		Lines:                len(strings.Split(code, "\n")),
		CyclomaticComplexity: 1,
	}

	if !languages.IsParseable(language) {
		info.Status = models.StatusDegraded
		info.Error = fmt.Sprintf("complexity estimation not supported for language %q", language)
		return info
	}

	tree, err := e.parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		info.Status = models.StatusErrored
		info.Error = fmt.Sprintf("parse failed: %v", err)
		return info
	}
	defer tree.Close()

	info.Status = models.StatusOK
	walkComplexity(tree.RootNode(), 0, &info)
	return info
}

// walkComplexity visits every node exactly once, pre-order.
func walkComplexity(node *sitter.Node, depth int, info *models.ComplexityInfo) {
	nodeType := node.Type()

	switch nodeType {
	case "function_definition":
		info.Functions++
	case "class_definition":
		info.Classes++
	}

	if _, ok := branchingNodes[nodeType]; ok {
		info.CyclomaticComplexity++
	}

	if _, ok := nestingNodes[nodeType]; ok {
		depth++
		if depth > info.MaxNestingDepth {
			info.MaxNestingDepth = depth
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkComplexity(node.Child(i), depth, info)
	}
}
