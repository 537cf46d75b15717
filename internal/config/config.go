package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Input and artifact paths
	Input          string `mapstructure:"input" yaml:"input"`
	CleanCSV       string `mapstructure:"clean_csv" yaml:"clean_csv"`
	Heatmap        string `mapstructure:"heatmap" yaml:"heatmap"`
	TableHTML      string `mapstructure:"table_html" yaml:"table_html"`
	DuplicatesHTML string `mapstructure:"duplicates_html" yaml:"duplicates_html"`
	ReportHTML     string `mapstructure:"report_html" yaml:"report_html"`
	OpenArtifacts  bool   `mapstructure:"open_artifacts" yaml:"open_artifacts"`

	// Reader options
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	Sheet     string `mapstructure:"sheet" yaml:"sheet"`
	HeadRows  int    `mapstructure:"head_rows" yaml:"head_rows"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	SeqURL    string `mapstructure:"seq_url" yaml:"seq_url"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Global {
	return &Global{
		Input:          "data/datos_actualizados.csv",
		CleanCSV:       "data/clean_data.csv",
		Heatmap:        "missing_heatmap.png",
		TableHTML:      "tabla.html",
		DuplicatesHTML: "duplicados.html",
		ReportHTML:     "reporte_estadistico.html",
		OpenArtifacts:  true,
		HeadRows:       5,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// DefaultPath is ~/.quickeda/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".quickeda", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.quickeda/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (QUICKEDA_*, .env included) > config file > defaults.
// Command-line flags are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	// a missing .env is normal
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("QUICKEDA")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("input", d.Input)
	v.SetDefault("clean_csv", d.CleanCSV)
	v.SetDefault("heatmap", d.Heatmap)
	v.SetDefault("table_html", d.TableHTML)
	v.SetDefault("duplicates_html", d.DuplicatesHTML)
	v.SetDefault("report_html", d.ReportHTML)
	v.SetDefault("open_artifacts", d.OpenArtifacts)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("sheet", d.Sheet)
	v.SetDefault("head_rows", d.HeadRows)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("seq_url", d.SeqURL)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// DelimiterRune returns the configured field separator, or 0 to let the reader decide.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(c.Delimiter)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid delimiter %q: want a single character", c.Delimiter)
	}
	return r[0], nil
}
