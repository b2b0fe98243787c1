package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/staylens-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set StayLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := effectiveConfig()
		fmt.Printf("oracle_url: %s\n", c.OracleURL)
		fmt.Printf("oracle_api_key: %s\n", mask(c.OracleAPIKey))
		fmt.Printf("oracle_batch_size: %d\n", c.OracleBatchSize)
		fmt.Printf("http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Printf("retry_max_attempts: %d\n", c.RetryMaxAttempts)
		fmt.Printf("retry_base_delay_ms: %d\n", c.RetryBaseDelayMs)
		fmt.Printf("retry_max_delay_ms: %d\n", c.RetryMaxDelayMs)
		fmt.Printf("report_max_reasons: %d\n", c.ReportMaxReasons)
		if c.DefaultDelimiter != "" {
			fmt.Printf("default_delimiter: %s\n", c.DefaultDelimiter)
		}
		fmt.Printf("default_strategy: %s\n", c.DefaultStrategy)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "oracle_url":
			cfg.OracleURL = val
		case "oracle_api_key":
			cfg.OracleAPIKey = val
		case "oracle_batch_size":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for oracle_batch_size: %v", val)
			}
			cfg.OracleBatchSize = i
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		case "retry_max_attempts":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for retry_max_attempts: %v", val)
			}
			cfg.RetryMaxAttempts = i
		case "retry_base_delay_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for retry_base_delay_ms: %v", val)
			}
			cfg.RetryBaseDelayMs = i
		case "retry_max_delay_ms":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for retry_max_delay_ms: %v", val)
			}
			cfg.RetryMaxDelayMs = i
		case "report_max_reasons":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for report_max_reasons: %v", val)
			}
			cfg.ReportMaxReasons = i
		case "default_delimiter":
			switch val {
			case ",", ";", "tab":
				cfg.DefaultDelimiter = val
			default:
				return fmt.Errorf("invalid default_delimiter: %s (use ','|';'|'tab')", val)
			}
		case "default_strategy":
			switch val {
			case "zscore", "blend":
				cfg.DefaultStrategy = val
			default:
				return fmt.Errorf("invalid default_strategy: %s (use zscore or blend)", val)
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

// mask hides all but the tail of a secret for display.
func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
