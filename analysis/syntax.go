// Package analysis implements the analyzer-side checks of the review
// pipeline: syntax validation, structural complexity estimation and the
// heuristic security scan, composed by the Aggregator.
package analysis

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/reviewkit/reviewkit/languages"
	"github.com/reviewkit/reviewkit/models"
)

// SyntaxAnalyzer parses source into a syntax tree and reports validity plus
// basic structural counts. It uses Tree-sitter, which produces a tree even
// for invalid input, so parse errors are collected from ERROR and missing
// nodes rather than from a failed parse call.
type SyntaxAnalyzer struct {
	parser *sitter.Parser
}

// NewSyntaxAnalyzer creates a syntax analyzer for Python source.
func NewSyntaxAnalyzer() *SyntaxAnalyzer {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	return &SyntaxAnalyzer{parser: parser}
}

// Check parses the code and returns a result object. It never returns a Go
// error to the caller: parse failures become an invalid result, unsupported
// languages a degraded one.
func (a *SyntaxAnalyzer) Check(ctx context.Context, code, language string) models.SyntaxCheck {
	if !languages.IsParseable(language) {
		return models.SyntaxCheck{
			Status: models.StatusDegraded,
			Error:  fmt.Sprintf("syntax validation not supported for language %q", language),
		}
	}

	tree, err := a.parser.ParseCtx(ctx, nil, []byte(code))
	if err != nil {
		return models.SyntaxCheck{
			Status: models.StatusErrored,
			Error:  fmt.Sprintf("parse failed: %v", err),
		}
	}
	defer tree.Close()

	check := models.SyntaxCheck{
		Status: models.StatusOK,
		Valid:  true,
		Errors: []models.SyntaxError{},
	}

	root := tree.RootNode()
	collectStructure(root, &check)

	if root.HasError() {
		check.Valid = false
		collectParseErrors(root, []byte(code), &check.Errors)
		if len(check.Errors) == 0 {
			check.Errors = append(check.Errors, models.SyntaxError{Line: 1, Message: "invalid syntax"})
		}
	}

	return check
}

// collectStructure counts function-like and class-like declarations across
// the whole tree.
func collectStructure(node *sitter.Node, check *models.SyntaxCheck) {
	switch node.Type() {
	case "function_definition":
		check.Functions++
	case "class_definition":
		check.Classes++
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectStructure(node.Child(i), check)
	}
}

// collectParseErrors walks the tree and records one error per ERROR or
// missing node, anchored to its 1-based line number.
func collectParseErrors(node *sitter.Node, src []byte, errs *[]models.SyntaxError) {
	if node.Type() == "ERROR" {
		*errs = append(*errs, models.SyntaxError{
			Line:    int(node.StartPoint().Row) + 1,
			Message: fmt.Sprintf("invalid syntax near %q", truncate(node.Content(src), 40)),
		})
		return
	}
	if node.IsMissing() {
		*errs = append(*errs, models.SyntaxError{
			Line:    int(node.StartPoint().Row) + 1,
			Message: fmt.Sprintf("missing %s", node.Type()),
		})
		return
	}
	if !node.HasError() {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectParseErrors(node.Child(i), src, errs)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
