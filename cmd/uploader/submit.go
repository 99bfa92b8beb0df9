package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"grantdocs/internal/catalog"
	"grantdocs/internal/client"
	"grantdocs/internal/wizard"
)

// submitOptions are the flag values of one non-interactive upload.
type submitOptions struct {
	title      string
	fiscalYear string
	source     string
	grantType  string
	remarks    string

	// files holds the paths given per category, indexed like wizard.Draft.Files.
	files [catalog.NumCategories][]string
}

var submitOpts submitOptions

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Upload one document set without the interactive wizard",
	Long: `Runs the same two wizard steps from flags and submits once.

Example:
  uploader submit --title "Q1 Report" --fiscal-year 2024-2025 \
    --source "Federal Government" --grant-type "Current Expenditure" \
    --a4 q1.pdf --nepali q1-np.docx`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runSubmit(ctx, cmd.OutOrStdout(), newClient(), submitOpts)
	},
}

func init() {
	f := submitCmd.Flags()
	f.StringVar(&submitOpts.title, "title", "", "document title (required)")
	f.StringVar(&submitOpts.fiscalYear, "fiscal-year", "", "fiscal year id, e.g. 2024-2025 (required)")
	f.StringVar(&submitOpts.source, "source", "", "funding source: "+strings.Join(catalog.Sources, ", ")+" (required)")
	f.StringVar(&submitOpts.grantType, "grant-type", "", "grant type: "+strings.Join(catalog.GrantTypes, ", ")+" (required)")
	f.StringVar(&submitOpts.remarks, "remarks", "", "optional remarks")

	flagNames := [catalog.NumCategories]string{
		catalog.CategoryA4:     "a4",
		catalog.CategoryNepali: "nepali",
		catalog.CategoryExtra:  "extra",
		catalog.CategoryOther:  "other",
	}
	for _, c := range catalog.Categories() {
		f.StringSliceVar(&submitOpts.files[c], flagNames[c], nil, c.Label()+" to attach (repeatable)")
	}
}

// runSubmit drives a wizard.Machine through both steps and submits the
// draft. A failed submission prints the wizard notice and returns an error.
func runSubmit(ctx context.Context, out io.Writer, sub wizard.Submitter, o submitOptions) error {
	m := wizard.New(sub)
	defer m.Close()

	fields := []struct {
		field wizard.Field
		value string
	}{
		{wizard.FieldTitle, o.title},
		{wizard.FieldFiscalYear, o.fiscalYear},
		{wizard.FieldSource, o.source},
		{wizard.FieldGrantType, o.grantType},
		{wizard.FieldRemarks, o.remarks},
	}
	for _, f := range fields {
		m.Dispatch(wizard.SetField{Field: f.field, Value: f.value})
	}

	if err := m.Next(); err != nil {
		return fmt.Errorf("%w (missing: %s)", err, fieldLabels(m.State().Draft.Missing()))
	}

	for _, c := range catalog.Categories() {
		if len(o.files[c]) == 0 {
			continue
		}
		files := make([]wizard.LocalFile, 0, len(o.files[c]))
		for _, p := range o.files[c] {
			lf, err := client.LocalFile(p)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Label(), err)
			}
			files = append(files, lf)
		}
		m.Dispatch(wizard.AddFiles{Category: c, Files: files})
	}

	total := m.State().Draft.TotalFiles()
	logger.Info("submit_started", zap.String("title", o.title), zap.Int("files", total))

	if err := m.Submit(ctx); err != nil {
		logger.Warn("submit_failed", zap.Error(err))
		notice := m.State().Notice
		if notice == "" {
			notice = wizard.NoticeFor(err)
		}
		return errors.New(notice)
	}

	fmt.Fprintf(out, "Files uploaded successfully (%d file(s)).\n", total)
	return nil
}

func fieldLabels(fs []wizard.Field) string {
	labels := make([]string, len(fs))
	for i, f := range fs {
		labels[i] = f.Label()
	}
	return strings.Join(labels, ", ")
}
