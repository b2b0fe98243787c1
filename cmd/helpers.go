package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/KaramelBytes/staylens-cli/internal/anomaly"
	"github.com/KaramelBytes/staylens-cli/internal/oracle"
	"github.com/KaramelBytes/staylens-cli/internal/pipeline"
	"github.com/KaramelBytes/staylens-cli/internal/tabular"
	"github.com/KaramelBytes/staylens-cli/internal/timeline"
	"github.com/KaramelBytes/staylens-cli/internal/utils"
)

// parseDelimiter maps a --delimiter flag value to a rune; empty means
// sniff from the file.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

// buildScorer assembles the remote scorer from config when enabled.
// Each invocation gets its own response cache.
func buildScorer(enabled bool) oracle.Scorer {
	if !enabled {
		return nil
	}
	c := effectiveConfig()
	s, ok := oracle.GetScorer(oracle.ProviderRemote, oracle.ScorerConfig{
		BaseURL:          c.OracleURL,
		APIKey:           c.OracleAPIKey,
		HTTPTimeoutSec:   c.HTTPTimeoutSec,
		RetryMaxAttempts: c.RetryMaxAttempts,
		RetryBaseDelayMs: c.RetryBaseDelayMs,
		RetryMaxDelayMs:  c.RetryMaxDelayMs,
		Cache:            oracle.NewCache(),
	})
	if !ok {
		return nil
	}
	return s
}

// runPipeline reads a file and executes the full pipeline with the
// shared flag/config plumbing.
func runPipeline(path, delimFlag, strategyName string, useOracle bool, expect []string) (*pipeline.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	delim, err := parseDelimiter(delimFlag)
	if err != nil {
		return nil, err
	}
	c := effectiveConfig()
	if delim == 0 && c.DefaultDelimiter != "" {
		if delim, err = parseDelimiter(c.DefaultDelimiter); err != nil {
			return nil, fmt.Errorf("config default_delimiter: %w", err)
		}
	}
	if delim == 0 {
		delim = tabular.SniffDelimiter(path)
		debugf("sniffed delimiter %q", string(delim))
	}
	if strategyName == "" {
		strategyName = c.DefaultStrategy
	}
	res := pipeline.Run(context.Background(), string(data), pipeline.Options{
		Delimiter:       delim,
		ExpectedHeaders: expect,
		MaxReasons:      c.ReportMaxReasons,
		Strategy:        anomaly.StrategyByName(strategyName),
		Scorer:          buildScorer(useOracle),
		BatchSize:       c.OracleBatchSize,
	})
	debugf("run %s: %d raw rows, %d cleaned", res.RunID, res.Report.OriginalRows, res.Report.CleanedRows)
	return res, nil
}

// writeOutput writes content to a file when path is set, otherwise to
// stdout.
func writeOutput(path, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := utils.SafeWriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}

// renderJSON pretty-prints any value for --json output.
func renderJSON(v any) (string, error) {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// anomaliesText renders flagged rows as a plain-text list.
func anomaliesText(records []anomaly.Record) string {
	var b strings.Builder
	b.WriteString("[ANOMALIES]\n")
	if len(records) == 0 {
		b.WriteString("none\n")
		return b.String()
	}
	for _, r := range records {
		b.WriteString(fmt.Sprintf("- %s  %-18s  %s\n", r.ReviewID, r.Type, r.Reason))
	}
	b.WriteString(fmt.Sprintf("\n%d flagged\n", len(records)))
	return b.String()
}

// timelineText renders monthly buckets as a plain-text table.
func timelineText(buckets []timeline.Bucket) string {
	var b strings.Builder
	b.WriteString("[MONTHLY TIMELINE]\n")
	if len(buckets) == 0 {
		b.WriteString("no dated reviews\n")
		return b.String()
	}
	for _, bk := range buckets {
		change := ""
		if bk.ChangePct != nil {
			change = fmt.Sprintf("  %+.1f%%", *bk.ChangePct)
		}
		b.WriteString(fmt.Sprintf("- %-6s avg %.3f  (%d reviews)%s\n",
			bk.Month, bk.AverageSentiment, bk.ReviewCount, change))
	}
	return b.String()
}

// structuralFailure prints structure findings and returns a terminal
// error for the command.
func structuralFailure(errs []string) error {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "✗ %s\n", e)
	}
	return fmt.Errorf("structural validation failed with %d finding(s)", len(errs))
}
