package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// SpacingConfig holds paragraph spacing in points.
	SpacingConfig struct {
		Before float64 `yaml:"before" validate:"gte=0,lte=1584"`
		After  float64 `yaml:"after" validate:"gte=0,lte=1584"`
	}

	// MarginsConfig holds section page margins in inches.
	MarginsConfig struct {
		Top    float64 `yaml:"top" validate:"gte=0,lte=22"`
		Bottom float64 `yaml:"bottom" validate:"gte=0,lte=22"`
		Left   float64 `yaml:"left" validate:"gte=0,lte=22"`
		Right  float64 `yaml:"right" validate:"gte=0,lte=22"`
	}

	NormalizeConfig struct {
		TrimLeading  bool          `yaml:"trim_leading"`
		TrimTrailing bool          `yaml:"trim_trailing"`
		ResetSpacing bool          `yaml:"reset_spacing"`
		Tables       bool          `yaml:"tables"`
		PageBreaks   bool          `yaml:"page_breaks"`
		Margins      bool          `yaml:"margins"`
		KeepObjects  bool          `yaml:"keep_objects"`
		Spacing      SpacingConfig `yaml:"spacing"`
		PageMargins  MarginsConfig `yaml:"page_margins"`
	}

	OutputConfig struct {
		NamePrefix            string `yaml:"name_prefix" validate:"required,excludesall=/\\"`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
		FixZip                bool   `yaml:"fix_zip"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Normalize NormalizeConfig `yaml:"normalize"`
		Output    OutputConfig    `yaml:"output"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to
// provide sane defaults and performs validation. Empty path means defaults
// only.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
