package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	cfgpkg "github.com/KaramelBytes/quickeda/internal/config"
	"github.com/KaramelBytes/quickeda/internal/console"
	"github.com/KaramelBytes/quickeda/internal/dataset"
	"github.com/KaramelBytes/quickeda/internal/logging"
	"github.com/KaramelBytes/quickeda/internal/pipeline"
	"github.com/KaramelBytes/quickeda/internal/viewer"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Run flags (override config if set)
	flagOutDir    string
	flagNoOpen    bool
	flagDelimiter string
	flagSheet     string
	flagHeadRows  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "quickeda [file]",
	Short: "Quick exploratory analysis of a tabular dataset",
	Long: `quickeda loads a CSV (or TSV/XLSX) file, prints its structure, plots missing values,
removes duplicate rows and writes HTML tables plus a statistics report for review in the browser.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalysis,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.quickeda/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "directory for relative artifact paths (default: current directory)")
	rootCmd.Flags().BoolVar(&flagNoOpen, "no-open", false, "do not open artifacts in the browser")
	rootCmd.Flags().StringVar(&flagDelimiter, "delimiter", "", "CSV field delimiter (default: by extension)")
	rootCmd.Flags().StringVar(&flagSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	rootCmd.Flags().IntVar(&flagHeadRows, "head-rows", 0, "rows shown in the console preview (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.Flags()
	if f.Changed("no-open") && flagNoOpen {
		cfg.OpenArtifacts = false
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("sheet") {
		cfg.Sheet = flagSheet
	}
	if f.Changed("head-rows") && flagHeadRows > 0 {
		cfg.HeadRows = flagHeadRows
	}
	if debug {
		cfg.LogLevel = "debug"
	}
}

// artifactPath places relative artifact paths under dir.
func artifactPath(dir, p string) string {
	if dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	delim, err := cfg.DelimiterRune()
	if err != nil {
		return err
	}
	log, done := logging.Setup(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		SeqURL: cfg.SeqURL,
		Out:    cmd.ErrOrStderr(),
	})
	defer done()

	input := cfg.Input
	if len(args) == 1 {
		input = args[0]
	}
	p := &pipeline.Pipeline{
		Paths: pipeline.Paths{
			Input:          input,
			CleanCSV:       artifactPath(flagOutDir, cfg.CleanCSV),
			Heatmap:        artifactPath(flagOutDir, cfg.Heatmap),
			TableHTML:      artifactPath(flagOutDir, cfg.TableHTML),
			DuplicatesHTML: artifactPath(flagOutDir, cfg.DuplicatesHTML),
			ReportHTML:     artifactPath(flagOutDir, cfg.ReportHTML),
		},
		Load:     dataset.Options{Delimiter: delim, Sheet: cfg.Sheet},
		HeadRows: cfg.HeadRows,
		Viewer:   viewer.Browser{},
		Console:  &console.Printer{Out: cmd.OutOrStdout()},
		Log:      log,
	}
	if !cfg.OpenArtifacts {
		p.Viewer = viewer.Nop{}
	}
	log.Debug("starting run", "input", input, "out_dir", flagOutDir, "open", cfg.OpenArtifacts)
	_, err = p.Run()
	return err
}
