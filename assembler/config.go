package assembler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type DuplicateLabelPolicy string

const (
	DuplicateLabelsReject    DuplicateLabelPolicy = "reject"
	DuplicateLabelsFirstWins DuplicateLabelPolicy = "first"
	DuplicateLabelsLastWins  DuplicateLabelPolicy = "last"
)

type LiteralOverflowPolicy string

const (
	LiteralOverflowReject   LiteralOverflowPolicy = "reject"
	LiteralOverflowTruncate LiteralOverflowPolicy = "truncate"
)

type AssemblerConfig struct {
	DuplicateLabels DuplicateLabelPolicy  `yaml:"duplicateLabels"`
	LiteralOverflow LiteralOverflowPolicy `yaml:"literalOverflow"`
	// Compatibility drops malformed instructions and leaves unresolved
	// targets unpatched instead of failing the run.
	Compatibility bool `yaml:"compatibility"`
}

func DefaultConfig() AssemblerConfig {
	return AssemblerConfig{
		DuplicateLabels: DuplicateLabelsReject,
		LiteralOverflow: LiteralOverflowReject,
	}
}

var assemblerConfig = DefaultConfig()

func GetConfig() AssemblerConfig {
	return assemblerConfig
}

func SetConfig(config AssemblerConfig) {
	assemblerConfig = config.withDefaults()
}

func (c AssemblerConfig) withDefaults() AssemblerConfig {
	if c.DuplicateLabels == "" {
		c.DuplicateLabels = DuplicateLabelsReject
	}
	if c.LiteralOverflow == "" {
		c.LiteralOverflow = LiteralOverflowReject
	}
	return c
}

func (c AssemblerConfig) Validate() error {
	switch c.DuplicateLabels {
	case DuplicateLabelsReject, DuplicateLabelsFirstWins, DuplicateLabelsLastWins:
	default:
		return fmt.Errorf("invalid duplicateLabels policy %q (want reject, first or last)", c.DuplicateLabels)
	}
	switch c.LiteralOverflow {
	case LiteralOverflowReject, LiteralOverflowTruncate:
	default:
		return fmt.Errorf("invalid literalOverflow policy %q (want reject or truncate)", c.LiteralOverflow)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Unset fields keep their
// defaults.
func LoadConfig(path string) (AssemblerConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return AssemblerConfig{}, err
	}
	return ParseConfig(b)
}

func ParseConfig(b []byte) (AssemblerConfig, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(b, &config); err != nil {
		return AssemblerConfig{}, fmt.Errorf("parsing assembler config: %w", err)
	}
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return AssemblerConfig{}, err
	}
	return config, nil
}
