package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/quickeda/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set quickeda configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "input: %s\n", cfg.Input)
		fmt.Fprintf(out, "clean_csv: %s\n", cfg.CleanCSV)
		fmt.Fprintf(out, "heatmap: %s\n", cfg.Heatmap)
		fmt.Fprintf(out, "table_html: %s\n", cfg.TableHTML)
		fmt.Fprintf(out, "duplicates_html: %s\n", cfg.DuplicatesHTML)
		fmt.Fprintf(out, "report_html: %s\n", cfg.ReportHTML)
		fmt.Fprintf(out, "open_artifacts: %t\n", cfg.OpenArtifacts)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %s\n", cfg.Delimiter)
		}
		if cfg.Sheet != "" {
			fmt.Fprintf(out, "sheet: %s\n", cfg.Sheet)
		}
		fmt.Fprintf(out, "head_rows: %d\n", cfg.HeadRows)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		if cfg.SeqURL != "" {
			fmt.Fprintf(out, "seq_url: %s\n", cfg.SeqURL)
		}
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
		case "input":
			cfg.Input = val
		case "clean_csv":
			cfg.CleanCSV = val
		case "heatmap":
			cfg.Heatmap = val
		case "table_html":
			cfg.TableHTML = val
		case "duplicates_html":
			cfg.DuplicatesHTML = val
		case "report_html":
			cfg.ReportHTML = val
		case "open_artifacts":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for open_artifacts: %v", val)
			}
			cfg.OpenArtifacts = b
		case "delimiter":
			prev := cfg.Delimiter
			cfg.Delimiter = val
			if _, err := cfg.DelimiterRune(); err != nil {
				cfg.Delimiter = prev
				return err
			}
		case "sheet":
			cfg.Sheet = val
		case "head_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for head_rows: %v", val)
			}
			cfg.HeadRows = i
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "warning", "error":
				cfg.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
			}
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				cfg.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text or json)", val)
			}
		case "seq_url":
			cfg.SeqURL = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
