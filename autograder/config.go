package autograder

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigPath is where Gradescope places the assignment's grading config.
// JSON is accepted as well as YAML.
const ConfigPath = "source/autograderConfig.json"

type TestCase struct {
	Number     int    `yaml:"number"`
	Name       string `yaml:"name"`
	Visibility string `yaml:"visibility"`
	Points     int    `yaml:"points"`
	// Source is the submission file to assemble, relative to the student
	// code path. Empty picks the first .asm file there.
	Source string `yaml:"source"`
	// Expected holds the reference machine code, one 16-character bit
	// string per line, relative to the assignment code directory.
	Expected string `yaml:"expected"`
}

type Config struct {
	AssignmentName    string     `yaml:"assignmentName"`
	AssignmentCodeDir string     `yaml:"assignmentCodeDir"`
	StudentCodePath   string     `yaml:"studentCodePath"`
	TestCases         []TestCase `yaml:"testCases"`
	CompilationPoints int        `yaml:"compilationPoints"`
	Mode              string     `yaml:"mode"` // only 'asm' is supported
	ResultsPath       string     `yaml:"resultsPath"`
}

var conf *Config

func GetConfig() *Config {
	if conf == nil {
		// attempt to load autograderConfig.json
		c, e := LoadConfig(ConfigPath)
		if os.IsNotExist(e) {
			return nil
		}
		if e != nil {
			log.Fatalln("Error unmarshalling autograderConfig.json:", e)
		}
		conf = c
	}

	return conf
}

func LoadConfig(path string) (*Config, error) {
	b, e := os.ReadFile(path)
	if e != nil {
		return nil, e
	}
	return ParseConfig(b)
}

func ParseConfig(b []byte) (*Config, error) {
	c := &Config{Mode: "asm", ResultsPath: "results/results.json"}
	if e := yaml.Unmarshal(b, c); e != nil {
		return nil, fmt.Errorf("parsing autograder config: %w", e)
	}
	if c.Mode != "asm" {
		return nil, fmt.Errorf("invalid autograding mode: %q", c.Mode)
	}
	for _, tc := range c.TestCases {
		if tc.Expected == "" {
			return nil, fmt.Errorf("test case %d (%s) has no expected output", tc.Number, tc.Name)
		}
	}
	return c, nil
}
