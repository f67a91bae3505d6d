package review_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/reviewkit/reviewkit/models"
	"github.com/reviewkit/reviewkit/review"
)

var _ = Describe("ComplexityBucketScore", func() {
	DescribeTable("mapping cyclomatic complexity to a score",
		func(cyclomatic int, expected float64) {
			Expect(review.ComplexityBucketScore(cyclomatic)).To(Equal(expected))
		},
		Entry("trivial code", 1, 9.0),
		Entry("upper edge of the first bucket", 5, 9.0),
		Entry("moderate complexity", 8, 7.0),
		Entry("upper edge of the second bucket", 10, 7.0),
		Entry("high complexity", 13, 5.0),
		Entry("upper edge of the third bucket", 15, 5.0),
		Entry("excessive complexity", 20, 3.0),
	)
})

var _ = Describe("SynthesizeMetrics", func() {
	It("uses the documented defaults when nothing is known", func() {
		metrics := review.SynthesizeMetrics(nil, nil)

		Expect(*metrics.ComplexityScore).To(Equal(7.0))
		Expect(*metrics.MaintainabilityScore).To(Equal(7.0))
		Expect(*metrics.SecurityScore).To(Equal(8.0))
		Expect(*metrics.PerformanceScore).To(Equal(7.0))
		Expect(metrics.PylintScore).To(BeNil())
		Expect(metrics.CriticalIssues).To(BeZero())
		Expect(metrics.Suggestions).To(BeZero())
	})

	It("overlays model sub-scores only in structured mode", func() {
		structured := &models.AIReview{
			StructuredAnalysis: true,
			CodeMetrics: &models.AICodeMetrics{
				MaintainabilityScore: models.Score(4.5),
				SecurityScore:        models.Score(6.0),
			},
		}
		metrics := review.SynthesizeMetrics(structured, nil)
		Expect(*metrics.MaintainabilityScore).To(Equal(4.5))
		Expect(*metrics.SecurityScore).To(Equal(6.0))
		Expect(*metrics.PerformanceScore).To(Equal(7.0))

		degraded := &models.AIReview{
			StructuredAnalysis: false,
			CodeMetrics: &models.AICodeMetrics{
				MaintainabilityScore: models.Score(1.0),
			},
		}
		metrics = review.SynthesizeMetrics(degraded, nil)
		Expect(*metrics.MaintainabilityScore).To(Equal(7.0))
	})

	It("always recomputes the complexity score from the heuristic bucket", func() {
		aiReview := &models.AIReview{
			StructuredAnalysis: true,
			CodeMetrics:        &models.AICodeMetrics{MaintainabilityScore: models.Score(2.0)},
		}
		static := &models.StaticAnalysisResult{
			Complexity: models.ComplexityInfo{
				Status:               models.StatusOK,
				CyclomaticComplexity: 20,
			},
		}

		metrics := review.SynthesizeMetrics(aiReview, static)

		Expect(*metrics.ComplexityScore).To(Equal(3.0))
	})

	It("keeps the default complexity score when the estimate failed", func() {
		static := &models.StaticAnalysisResult{
			Complexity: models.ComplexityInfo{Status: models.StatusErrored, Error: "parse failed"},
		}

		metrics := review.SynthesizeMetrics(nil, static)

		Expect(*metrics.ComplexityScore).To(Equal(7.0))
	})

	It("tallies model issues by severity and counts suggestions", func() {
		aiReview := &models.AIReview{
			StructuredAnalysis: true,
			Issues: []models.AIIssue{
				{Severity: "critical", Title: "a"},
				{Severity: "major", Title: "b"},
				{Severity: "major", Title: "c"},
				{Severity: "minor", Title: "d"},
				{Severity: "bogus", Title: "e"},
			},
			Suggestions: []models.AISuggestion{{Title: "s1"}, {Title: "s2"}},
		}

		metrics := review.SynthesizeMetrics(aiReview, nil)

		Expect(metrics.CriticalIssues).To(Equal(1))
		Expect(metrics.MajorIssues).To(Equal(2))
		Expect(metrics.MinorIssues).To(Equal(2))
		Expect(metrics.Suggestions).To(Equal(2))
	})

	It("counts security findings as vulnerabilities", func() {
		static := &models.StaticAnalysisResult{
			Security: []models.SecurityFinding{
				{Line: 1, Message: "m"},
				{Line: 9, Message: "m"},
			},
		}

		metrics := review.SynthesizeMetrics(nil, static)

		Expect(metrics.SecurityVulnerabilities).To(Equal(2))
	})
})

var _ = Describe("BuildSummary", func() {
	It("returns the generic sentence for empty input", func() {
		Expect(review.BuildSummary(nil, nil)).To(Equal("Code analysis completed."))
	})

	It("congratulates when nothing critical or major was found", func() {
		summary := review.BuildSummary(nil, &models.Metrics{})
		Expect(summary).To(ContainSubstring("Great job!"))
	})

	It("concatenates the model summary with issue-count sentences", func() {
		aiReview := &models.AIReview{Summary: "Decent module."}
		metrics := &models.Metrics{CriticalIssues: 1, MinorIssues: 3}

		summary := review.BuildSummary(aiReview, metrics)

		Expect(summary).To(HavePrefix("Decent module."))
		Expect(summary).To(ContainSubstring("1 critical issue(s)"))
		Expect(summary).To(ContainSubstring("3 minor issue(s)"))
		Expect(summary).NotTo(ContainSubstring("Great job!"))
	})
})

var _ = Describe("NormalizeFeedback", func() {
	It("generates items in the fixed order with vocabulary defaults", func() {
		aiReview := &models.AIReview{
			StructuredAnalysis: true,
			Issues: []models.AIIssue{
				{Severity: "invalid", Category: "nonsense", Title: "", Description: "d", Confidence: 0},
			},
			Suggestions: []models.AISuggestion{
				{Category: "performance", Title: "Cache it", Description: "memoize"},
			},
		}
		static := &models.StaticAnalysisResult{
			SyntaxCheck: models.SyntaxCheck{
				Status: models.StatusOK,
				Valid:  false,
				Errors: []models.SyntaxError{{Line: 7, Message: "invalid syntax"}},
			},
			Security: []models.SecurityFinding{
				{Line: 2, Message: "Use of eval() can be dangerous", Code: "eval(x)"},
			},
		}

		items := review.NormalizeFeedback(aiReview, static)

		Expect(items).To(HaveLen(4))

		Expect(items[0].Severity).To(Equal(models.SeverityMinor))
		Expect(items[0].Category).To(Equal(models.CategoryStyle))
		Expect(items[0].Title).To(Equal("Code Issue"))
		Expect(items[0].Confidence).To(Equal(0.8))

		Expect(items[1].Severity).To(Equal(models.SeveritySuggestion))
		Expect(items[1].Category).To(Equal(models.CategoryPerformance))
		Expect(items[1].Suggestion).To(Equal("memoize"))

		Expect(items[2].Severity).To(Equal(models.SeverityCritical))
		Expect(items[2].Category).To(Equal(models.CategoryBug))
		Expect(items[2].LineNumber).To(Equal(7))
		Expect(items[2].Confidence).To(Equal(1.0))

		Expect(items[3].Severity).To(Equal(models.SeverityMajor))
		Expect(items[3].Category).To(Equal(models.CategorySecurity))
		Expect(items[3].LineNumber).To(Equal(2))
		Expect(items[3].CodeSnippet).To(Equal("eval(x)"))
		Expect(items[3].Confidence).To(Equal(0.9))
	})

	It("ignores model content in degraded mode", func() {
		degraded := &models.AIReview{
			StructuredAnalysis: false,
			Issues:             []models.AIIssue{{Title: "ghost"}},
		}

		items := review.NormalizeFeedback(degraded, nil)

		Expect(items).To(BeEmpty())
	})
})
