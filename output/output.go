// Package output renders review results for the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/reviewkit/reviewkit/models"
)

var (
	green  = color.New(color.FgHiGreen).SprintFunc()
	yellow = color.New(color.FgHiYellow).SprintFunc()
	red    = color.New(color.FgHiRed).SprintFunc()
	cyan   = color.New(color.FgHiCyan).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

// SeverityColor colors a severity label by its urgency.
func SeverityColor(severity models.Severity) string {
	s := string(severity)
	switch severity {
	case models.SeverityCritical:
		return red(s)
	case models.SeverityMajor:
		return yellow(s)
	case models.SeverityMinor:
		return cyan(s)
	case models.SeveritySuggestion:
		return gray(s)
	default:
		return s
	}
}

// StatusColor colors a lifecycle status.
func StatusColor(status models.ReviewStatus) string {
	s := string(status)
	switch status {
	case models.StatusCompleted:
		return green(s)
	case models.StatusFailed:
		return red(s)
	case models.StatusAnalyzing:
		return yellow(s)
	default:
		return s
	}
}

// UI writes rendered results to an output stream.
type UI struct {
	Out io.Writer
}

// New creates a UI writing to stdout.
func New() *UI {
	return &UI{Out: os.Stdout}
}

// Table creates a tablewriter with consistent borderless styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// PrintRecord renders a review record header.
func (u *UI) PrintRecord(record *models.ReviewRecord) {
	fmt.Fprintf(u.Out, "Review %s  %s\n", record.ID, StatusColor(record.Status))
	name := record.Submission.OriginalFilename
	if name == "" {
		name = "(pasted text)"
	}
	fmt.Fprintf(u.Out, "  %s  %s  %d lines  %d bytes\n",
		name, record.Submission.Language, record.Submission.LineCount, record.Submission.Size)
	if record.Summary != "" {
		fmt.Fprintf(u.Out, "  %s\n", record.Summary)
	}
	if record.ErrorMessage != "" {
		fmt.Fprintf(u.Out, "  %s %s\n", red("error:"), record.ErrorMessage)
	}
}

// PrintFeedback renders the feedback set as a table, assumed to already be
// in presentation order.
func (u *UI) PrintFeedback(items []models.FeedbackItem) error {
	if len(items) == 0 {
		fmt.Fprintln(u.Out, "No feedback items.")
		return nil
	}

	table := u.Table([]string{"SEVERITY", "CATEGORY", "LINE", "TITLE", "DESCRIPTION"})
	for _, item := range items {
		line := ""
		if item.LineNumber > 0 {
			line = fmt.Sprintf("%d", item.LineNumber)
		}
		if err := table.Append([]string{
			SeverityColor(item.Severity),
			string(item.Category),
			line,
			item.Title,
			truncate(item.Description, 70),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintMetrics renders the metrics record as a table.
func (u *UI) PrintMetrics(metrics *models.Metrics) error {
	table := u.Table([]string{"METRIC", "VALUE"})

	rows := [][]string{
		{"complexity_score", scoreCell(metrics.ComplexityScore)},
		{"maintainability_score", scoreCell(metrics.MaintainabilityScore)},
		{"security_score", scoreCell(metrics.SecurityScore)},
		{"performance_score", scoreCell(metrics.PerformanceScore)},
		{"pylint_score", scoreCell(metrics.PylintScore)},
		{"critical_issues", fmt.Sprintf("%d", metrics.CriticalIssues)},
		{"major_issues", fmt.Sprintf("%d", metrics.MajorIssues)},
		{"minor_issues", fmt.Sprintf("%d", metrics.MinorIssues)},
		{"suggestions", fmt.Sprintf("%d", metrics.Suggestions)},
		{"security_vulnerabilities", fmt.Sprintf("%d", metrics.SecurityVulnerabilities)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// scoreCell formats a nullable score; absence renders as unknown, not zero.
func scoreCell(score *float64) string {
	if score == nil {
		return gray("unknown")
	}
	return fmt.Sprintf("%.1f", *score)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
