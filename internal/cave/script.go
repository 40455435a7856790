package cave

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed cave.yaml
var defaultScriptYAML []byte

// Script holds every text the cave game can show.
type Script struct {
	Welcome        string `yaml:"welcome"`
	Room           string `yaml:"room"`
	Sitting        string `yaml:"sitting"`
	StandingWizard string `yaml:"standingWizard"`
	StandingStone  string `yaml:"standingStone"`
	InvalidStart   string `yaml:"invalidStart"`
	InvalidRoom    string `yaml:"invalidRoom"`
	GameOver       string `yaml:"gameOver"`
}

// DefaultScript returns the built-in script.
func DefaultScript() *Script {
	s, err := ParseScript(defaultScriptYAML)
	if err != nil {
		panic(fmt.Sprintf("cave: embedded script: %v", err))
	}
	return s
}

// LoadScript loads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // operator supplied path
	if err != nil {
		return nil, err
	}
	return ParseScript(b)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(b []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	fields := []struct {
		key, value string
	}{
		{"welcome", s.Welcome},
		{"room", s.Room},
		{"sitting", s.Sitting},
		{"standingWizard", s.StandingWizard},
		{"standingStone", s.StandingStone},
		{"invalidStart", s.InvalidStart},
		{"invalidRoom", s.InvalidRoom},
		{"gameOver", s.GameOver},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrIncompleteScript, f.key)
		}
	}
	return nil
}
