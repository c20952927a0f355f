package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-converter/internal/converter"
	"github.com/insightdelivered/statement-converter/internal/writer"
)

type convertFlags struct {
	format    string
	outputDir string
	layout    string
	workers   int
}

func newConvertCommand(root *rootFlags) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Convert statement PDFs (or extracted .txt) to xlsx and/or csv",
		Example: `  statement-converter convert statement.pdf
  statement-converter convert --format both --output-dir out/ *.pdf
  statement-converter convert --format csv --layout side-by-side statement.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, flags, args)
		},
	}
	cmd.Flags().StringVarP(&flags.format, "format", "f", "xlsx", "output format: xlsx, csv or both")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "output directory (default: next to each input)")
	cmd.Flags().StringVar(&flags.layout, "layout", "", "csv layout: sections or side-by-side (default: DEFAULT_CSV_LAYOUT)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "concurrent conversions (default: CONVERT_WORKERS)")
	return cmd
}

func runConvert(cmd *cobra.Command, root *rootFlags, flags *convertFlags, args []string) error {
	cfg, log, err := root.setup(cmd)
	if err != nil {
		return err
	}

	targets, err := parseFormat(flags.format)
	if err != nil {
		return err
	}
	layoutName := flags.layout
	if layoutName == "" {
		layoutName = cfg.DefaultCSVLayout
	}
	layout, err := writer.ParseLayout(layoutName)
	if err != nil {
		return err
	}
	workers := flags.workers
	if workers <= 0 {
		workers = cfg.ConvertWorkers
	}

	if flags.outputDir != "" {
		if err := os.MkdirAll(flags.outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	docs := make([]converter.Document, 0, len(args))
	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	svc := converter.NewService(log, nil)
	results := svc.ConvertBatch(cmd.Context(), docs, converter.Options{Targets: targets, Layout: layout}, workers)

	out := cmd.OutOrStdout()
	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", args[i], res.Err)
			continue
		}

		var written []string
		for _, target := range targets {
			path := outputPath(args[i], flags.outputDir, target)
			if err := os.WriteFile(path, res.Outputs[target], 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			written = append(written, path)
		}

		st := res.Statement
		fmt.Fprintf(out, "OK   %s: account %s, %d deposits, %d ATM withdrawals, %d checks, %d card purchases -> %s\n",
			args[i],
			st.AccountInfo.AccountNumber,
			len(st.Deposits),
			len(st.ATMWithdrawals),
			len(st.ChecksPaid),
			len(st.CardPurchases),
			strings.Join(written, ", "),
		)
		if n := len(res.Report.Skipped); n > 0 {
			fmt.Fprintf(out, "     %d unparseable rows skipped\n", n)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, len(results))
	}
	return nil
}

// parseFormat maps the --format flag to render targets.
func parseFormat(format string) ([]writer.Target, error) {
	if strings.EqualFold(format, "both") {
		return []writer.Target{writer.TargetTableSet, writer.TargetDelimitedText}, nil
	}
	target, err := writer.ParseTarget(format)
	if err != nil {
		return nil, err
	}
	return []writer.Target{target}, nil
}

// readDocument loads an input file. PDFs are extracted by the converter;
// any other file is treated as already extracted statement text.
func readDocument(path string) (converter.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return converter.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc := converter.Document{Name: filepath.Base(path)}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		doc.Data = data
		return doc, nil
	}
	if len(data) == 0 {
		return doc, fmt.Errorf("%s: %w", path, converter.ErrEmptyDocument)
	}
	doc.Text = string(data)
	return doc, nil
}

func outputPath(input, outputDir string, target writer.Target) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, base+"."+target.Extension())
}
