// Package rules loads golden rule files.
//
// A rule file is JSON or YAML:
//
//	{
//	  "checks": ["super", "inode map", "data map", "inode"],
//	  "valid_inode": 2,
//	  "valid_data": 1
//	}
package rules

import (
	"github.com/rstms/checkbm"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type golden struct {
	Checks     []string `yaml:"checks"`
	ValidInode uint64   `yaml:"valid_inode"`
	ValidData  uint64   `yaml:"valid_data"`
}

// Parse decodes rule file content.
func Parse(data []byte) (*checkbm.RuleSet, error) {
	var g golden
	err := yaml.Unmarshal(data, &g)
	if err != nil {
		return nil, Fatal(err)
	}
	return checkbm.NewRuleSet(g.Checks, g.ValidInode, g.ValidData), nil
}

// Load reads and decodes the rule file at filename.
func Load(fs afero.Fs, filename string) (*checkbm.RuleSet, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, Fatal(err)
	}
	ruleSet, err := Parse(data)
	if err != nil {
		return nil, Fatalf("%s: %v", filename, err)
	}
	return ruleSet, nil
}
