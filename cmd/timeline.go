package cmd

import (
	"github.com/spf13/cobra"
)

var (
	tlOutputPath string
	tlDelimiter  string
	tlUseOracle  bool
	tlJSON       bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline <file>",
	Short: "Aggregate review tone into a monthly timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := runPipeline(args[0], tlDelimiter, "", tlUseOracle, nil)
		if err != nil {
			return err
		}
		if len(res.StructuralErrors) > 0 {
			return structuralFailure(res.StructuralErrors)
		}
		var out string
		if tlJSON {
			out, err = renderJSON(res.Timeline)
			if err != nil {
				return err
			}
		} else {
			out = timelineText(res.Timeline)
		}
		return writeOutput(tlOutputPath, out)
	},
}

func init() {
	timelineCmd.Flags().StringVarP(&tlOutputPath, "output", "o", "", "write the timeline to this path (default stdout)")
	timelineCmd.Flags().StringVar(&tlDelimiter, "delimiter", "", "field delimiter: ','|';'|'tab' (default: sniff)")
	timelineCmd.Flags().BoolVar(&tlUseOracle, "oracle", false, "enrich scores via the remote sentiment service")
	timelineCmd.Flags().BoolVar(&tlJSON, "json", false, "emit the timeline as JSON")
	rootCmd.AddCommand(timelineCmd)
}
