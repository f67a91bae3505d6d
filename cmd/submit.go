package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/reviewkit/reviewkit/languages"
	"github.com/reviewkit/reviewkit/models"
	"github.com/reviewkit/reviewkit/output"
)

var (
	submitText      string
	submitStdin     bool
	submitGlob      string
	submitLanguage  string
	submitNoAnalyze bool
)

var submitCmd = &cobra.Command{
	Use:   "submit [files...]",
	Short: "Submit code for review and run the analysis pipeline",
	Long: `Submit creates review records from files, a glob pattern, pasted text
or stdin, then runs the full analysis pipeline on each unless --no-analyze
is given.`,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitText, "text", "", "submit pasted code text instead of files")
	submitCmd.Flags().BoolVar(&submitStdin, "stdin", false, "read code text from stdin")
	submitCmd.Flags().StringVar(&submitGlob, "glob", "", "submit all files matching a doublestar pattern (e.g. 'src/**/*.py')")
	submitCmd.Flags().StringVarP(&submitLanguage, "language", "l", "", "declared language (default: detected from filename, else python)")
	submitCmd.Flags().BoolVar(&submitNoAnalyze, "no-analyze", false, "create records without running analysis")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	submissions, err := collectSubmissions(args)
	if err != nil {
		return err
	}
	if len(submissions) == 0 {
		return fmt.Errorf("nothing to submit: provide files, --glob, --text or --stdin")
	}

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	var ids []string
	for _, sub := range submissions {
		record := models.NewReviewRecord(sub)
		if err := p.store.CreateReview(record); err != nil {
			return err
		}
		logger.Infof("created review %s for %s", record.ShortID(), displayName(sub))
		ids = append(ids, record.ID)
	}

	if submitNoAnalyze {
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	}

	result, err := p.controller.AnalyzeBatch(cmd.Context(), ids)
	if err != nil {
		return err
	}

	ui := output.New()
	for _, id := range ids {
		record, err := p.store.GetReview(id)
		if err != nil {
			return err
		}
		ui.PrintRecord(record)

		items, err := p.store.FeedbackForReview(id)
		if err != nil {
			return err
		}
		if err := ui.PrintFeedback(items); err != nil {
			return err
		}
		fmt.Println()
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d submission(s) failed analysis", len(result.Failed), len(ids))
	}
	return nil
}

// collectSubmissions expands args, glob, text and stdin into submissions.
func collectSubmissions(args []string) ([]models.Submission, error) {
	var subs []models.Submission

	paths := args
	if submitGlob != "" {
		matches, err := doublestar.FilepathGlob(submitGlob)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", submitGlob, err)
		}
		paths = append(paths, matches...)
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		subs = append(subs, models.NewSubmission(
			models.SubmissionFile,
			filepath.Base(path),
			fileLanguage(path),
			string(content),
		))
	}

	if submitText != "" {
		subs = append(subs, models.NewSubmission(models.SubmissionText, "", textLanguage(), submitText))
	}

	if submitStdin {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		subs = append(subs, models.NewSubmission(models.SubmissionText, "", textLanguage(), string(content)))
	}

	return subs, nil
}

func fileLanguage(path string) string {
	if submitLanguage != "" {
		return languages.Normalize(submitLanguage)
	}
	if detected := languages.DetectFromFilename(path); detected != "" {
		return detected
	}
	return "python"
}

func textLanguage() string {
	if submitLanguage != "" {
		return languages.Normalize(submitLanguage)
	}
	return "python"
}

func displayName(sub models.Submission) string {
	if sub.OriginalFilename != "" {
		return sub.OriginalFilename
	}
	return fmt.Sprintf("%d bytes of %s text", sub.Size, sub.Language)
}
