package cmd

import (
	"github.com/spf13/cobra"
)

var (
	anoOutputPath string
	anoDelimiter  string
	anoStrategy   string
	anoUseOracle  bool
	anoJSON       bool
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies <file>",
	Short: "Flag reviews that deviate from their neighbourhood baseline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runPipeline(args[0], anoDelimiter, anoStrategy, anoUseOracle, nil)
		if err != nil {
			return err
		}
		if len(res.StructuralErrors) > 0 {
			return structuralFailure(res.StructuralErrors)
		}
		var out string
		if anoJSON {
			out, err = renderJSON(res.Anomalies)
			if err != nil {
				return err
			}
		} else {
			out = anomaliesText(res.Anomalies)
		}
		return writeOutput(anoOutputPath, out)
	},
}

func init() {
	anomaliesCmd.Flags().StringVarP(&anoOutputPath, "output", "o", "", "write anomalies to this path (default stdout)")
	anomaliesCmd.Flags().StringVar(&anoDelimiter, "delimiter", "", "field delimiter: ','|';'|'tab' (default: sniff)")
	anomaliesCmd.Flags().StringVar(&anoStrategy, "strategy", "", "anomaly score strategy: 'zscore'|'blend' (default from config)")
	anomaliesCmd.Flags().BoolVar(&anoUseOracle, "oracle", false, "enrich scores via the remote sentiment service")
	anomaliesCmd.Flags().BoolVar(&anoJSON, "json", false, "emit anomalies as JSON")
	rootCmd.AddCommand(anomaliesCmd)
}
