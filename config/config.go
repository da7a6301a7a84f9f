package config // CLI configuration file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// TissueRule is one keyword -> tissue group mapping in the config file.
type TissueRule struct {
	Keyword string `mapstructure:"keyword" yaml:"keyword"`
	Group   string `mapstructure:"group" yaml:"group"`
}

// Settings holds the values shared by every tool.
type Settings struct {
	MatrixFile    string       `mapstructure:"matrix_file" yaml:"matrix_file"`
	PlotDir       string       `mapstructure:"plot_dir" yaml:"plot_dir"`
	PlotFormat    string       `mapstructure:"plot_format" yaml:"plot_format"`
	PlotWidthIn   float64      `mapstructure:"plot_width_in" yaml:"plot_width_in"`
	PlotHeightIn  float64      `mapstructure:"plot_height_in" yaml:"plot_height_in"`
	SearchLimit   int          `mapstructure:"search_limit" yaml:"search_limit"`
	HistogramBins int          `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	TissueRules   []TissueRule `mapstructure:"tissue_rules" yaml:"tissue_rules,omitempty"`
}

// Defaults returns the built-in settings. TissueRules stays empty, which
// means the loader's own default rule table is used.
func Defaults() *Settings {
	return &Settings{
		MatrixFile:    "GSE1000_series_matrix.txt",
		PlotDir:       ".",
		PlotFormat:    "png",
		PlotWidthIn:   8,
		PlotHeightIn:  6,
		SearchLimit:   10,
		HistogramBins: 10,
	}
}

// DefaultPath is ~/.geo_buddy/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".geo_buddy", "config.yaml"), nil
}

// Load resolves settings from defaults, the config file and GEOBUDDY_* env
// variables. Precedence: env > config file > defaults. An explicit cfgFile
// must exist; the default location is optional.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("GEOBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("matrix_file", d.MatrixFile)
	v.SetDefault("plot_dir", d.PlotDir)
	v.SetDefault("plot_format", d.PlotFormat)
	v.SetDefault("plot_width_in", d.PlotWidthIn)
	v.SetDefault("plot_height_in", d.PlotHeightIn)
	v.SetDefault("search_limit", d.SearchLimit)
	v.SetDefault("histogram_bins", d.HistogramBins)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".geo_buddy"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			// optional read
			if err := v.ReadInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, pfx.Err(fmt.Errorf("read config %s: %w", filepath.Join(home, ".geo_buddy", "config.yaml"), err))
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, pfx.Err(fmt.Errorf("decode config: %w", err))
	}
	if err := s.validate(); err != nil {
		return nil, pfx.Err(err)
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if s.PlotWidthIn <= 0 || s.PlotHeightIn <= 0 {
		return fmt.Errorf("plot size must be positive, got %gx%g in", s.PlotWidthIn, s.PlotHeightIn)
	}
	for i, r := range s.TissueRules {
		if strings.TrimSpace(r.Keyword) == "" || strings.TrimSpace(r.Group) == "" {
			return fmt.Errorf("tissue_rules[%d]: keyword and group are both required", i)
		}
	}
	return nil
}

// Save writes the settings as YAML, creating the directory if necessary.
// An empty path writes to DefaultPath.
func Save(s *Settings, path string) (string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
