package categorize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type ruleFileTOML struct {
	Category []RuleSpec `toml:"category"`
}

type ruleFileYAML struct {
	Categories []RuleSpec `yaml:"categories"`
}

// LoadFile reads a custom rule set from a .toml or .yaml file.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	specs, err := parseSpecs(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("rules %s: no categories defined", path)
	}
	return Compile(specs)
}

func parseSpecs(ext string, data []byte) ([]RuleSpec, error) {
	switch strings.ToLower(ext) {
	case ".toml":
		var f ruleFileTOML
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, err
		}
		return f.Category, nil
	case ".yaml", ".yml":
		var f ruleFileYAML
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return f.Categories, nil
	}
	return nil, fmt.Errorf("unsupported rules file extension %q", ext)
}
