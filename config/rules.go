package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule operation kinds
const (
	OpDerive     = "derive"
	OpFilter     = "filter"
	OpCategorize = "categorize"
	OpSelect     = "select"
)

// Rule is one step of the transformation pipeline. Which fields apply
// depends on Op:
//
//	derive:     Name, Column, Operator (add/sub/mul/div), Other or Operand
//	filter:     Column, Operator (gt/ge/lt/le/eq/ne), Operand
//	categorize: Name, Column, Threshold, Above, Below
//	select:     Columns
type Rule struct {
	Op        string   `yaml:"op"`
	Name      string   `yaml:"name,omitempty"`
	Column    string   `yaml:"column,omitempty"`
	Operator  string   `yaml:"operator,omitempty"`
	Other     string   `yaml:"other,omitempty"`
	Operand   float64  `yaml:"operand,omitempty"`
	Threshold float64  `yaml:"threshold,omitempty"`
	Above     string   `yaml:"above,omitempty"`
	Below     string   `yaml:"below,omitempty"`
	Columns   []string `yaml:"columns,omitempty"`
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads and parses the YAML rules file into cfg.Rules
func LoadRules(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}

	var parsed rulesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse rules file %s: %w", filename, err)
	}
	if len(parsed.Rules) == 0 {
		return fmt.Errorf("rules file %s contains no rules", filename)
	}

	for i, rule := range parsed.Rules {
		if err := rule.validate(); err != nil {
			return fmt.Errorf("invalid rule %d in %s: %w", i+1, filename, err)
		}
	}

	cfg.Rules = parsed.Rules
	return nil
}

var deriveOperators = map[string]bool{"add": true, "sub": true, "mul": true, "div": true}
var filterOperators = map[string]bool{"gt": true, "ge": true, "lt": true, "le": true, "eq": true, "ne": true}

func (r Rule) validate() error {
	switch r.Op {
	case OpDerive:
		if r.Name == "" {
			return fmt.Errorf("derive rule requires a name")
		}
		if r.Column == "" {
			return fmt.Errorf("derive rule requires a source column")
		}
		if !deriveOperators[r.Operator] {
			return fmt.Errorf("unknown derive operator: %q", r.Operator)
		}
		if r.Operator == "div" && r.Other == "" && r.Operand == 0 {
			return fmt.Errorf("derive rule divides by constant zero")
		}
	case OpFilter:
		if r.Column == "" {
			return fmt.Errorf("filter rule requires a column")
		}
		if !filterOperators[r.Operator] {
			return fmt.Errorf("unknown filter operator: %q", r.Operator)
		}
	case OpCategorize:
		if r.Name == "" {
			return fmt.Errorf("categorize rule requires a name")
		}
		if r.Column == "" {
			return fmt.Errorf("categorize rule requires a source column")
		}
	case OpSelect:
		if len(r.Columns) == 0 {
			return fmt.Errorf("select rule requires at least one column")
		}
	default:
		return fmt.Errorf("unknown rule op: %q", r.Op)
	}
	return nil
}
