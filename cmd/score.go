package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/staylens-cli/internal/sentiment"
	"github.com/spf13/cobra"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score one text with the lexicon tone scorer (reads stdin without an argument)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = strings.TrimSpace(string(b))
		}
		result := sentiment.Score(text)
		if scoreJSON {
			out, err := renderJSON(result)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}
		fmt.Printf("score:     %+.3f\nmagnitude: %.3f\nlabel:     %s\n",
			result.Score, result.Magnitude, result.Label)
		return nil
	},
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "emit the result as JSON")
	rootCmd.AddCommand(scoreCmd)
}
