package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-converter/internal/converter"
	"github.com/insightdelivered/statement-converter/internal/models"
	"github.com/insightdelivered/statement-converter/internal/parser"
)

type parseFlags struct {
	text   bool
	report bool
}

type parseOutput struct {
	Statement *models.Statement `json:"statement"`
	Report    *parser.Report    `json:"report"`
}

func newParseCommand(root *rootFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement and print it as JSON",
		Long: `Parses a statement PDF, or a text file holding already extracted
statement text, and prints the statement record as JSON on stdout.

With --text the flattened document text is printed instead, which is
useful when a layout is not recognized. With --report skipped rows are
included alongside the record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, root, flags, args[0])
		},
	}
	cmd.Flags().BoolVar(&flags.text, "text", false, "print the extracted text instead of parsing it")
	cmd.Flags().BoolVar(&flags.report, "report", false, "include the parse report (skipped rows)")
	return cmd
}

func runParse(cmd *cobra.Command, root *rootFlags, flags *parseFlags, path string) error {
	_, log, err := root.setup(cmd)
	if err != nil {
		return err
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	if flags.text {
		text, _, err := converter.DocumentText(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}

	res, err := converter.NewService(log, nil).Convert(cmd.Context(), doc, converter.Options{})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if flags.report {
		return enc.Encode(parseOutput{Statement: res.Statement, Report: res.Report})
	}
	return enc.Encode(res.Statement)
}
