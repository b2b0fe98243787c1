package cmd

import (
	"strings"

	"github.com/KaramelBytes/staylens-cli/internal/review"
	"github.com/spf13/cobra"
)

var (
	ingOutputPath string
	ingReportPath string
	ingDelimiter  string
	ingExpect     []string
	ingMaxReasons int
	ingJSON       bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Validate and normalize a review export, emitting cleaned CSV and a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ingMaxReasons > 0 {
			cfg = effectiveConfig()
			cfg.ReportMaxReasons = ingMaxReasons
		}
		res, err := runPipeline(args[0], ingDelimiter, "", false, normalizeExpect(ingExpect))
		if err != nil {
			return err
		}
		if len(res.StructuralErrors) > 0 {
			return structuralFailure(res.StructuralErrors)
		}

		if err := writeOutput(ingOutputPath, review.ToCSV(res.Rows)); err != nil {
			return err
		}
		var report string
		if ingJSON {
			report, err = renderJSON(res.Report)
			if err != nil {
				return err
			}
		} else {
			report = res.Report.Text()
		}
		if ingReportPath == "" && ingOutputPath == "" {
			// Both on stdout: separate the artifacts.
			report = "\n" + report
		}
		return writeOutput(ingReportPath, report)
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingOutputPath, "output", "o", "", "write cleaned CSV to this path (default stdout)")
	ingestCmd.Flags().StringVar(&ingReportPath, "report", "", "write the preprocessing report to this path (default stdout)")
	ingestCmd.Flags().StringVar(&ingDelimiter, "delimiter", "", "field delimiter: ','|';'|'tab' (default: sniff)")
	ingestCmd.Flags().StringSliceVar(&ingExpect, "expect", nil, "reference header names the file must contain (advisory check)")
	ingestCmd.Flags().IntVar(&ingMaxReasons, "max-reasons", 0, "cap on per-row removal reasons in the report (overrides config)")
	ingestCmd.Flags().BoolVar(&ingJSON, "json", false, "emit the report as JSON")
	rootCmd.AddCommand(ingestCmd)
}

// normalizeExpect trims blank entries out of an --expect list.
func normalizeExpect(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
