package correction

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk format of user correction rules:
//
//	rules:
//	  - pattern: 'o\s+mestre'
//	    replacement: 'o Mestre'
//	    whole_word: true
//	  - wrong: 'cabeça de ovo'
//	    right: 'careca'
//
// Entries with wrong/right are exact phrases; pattern entries are regular
// expressions.
type RulesFile struct {
	Rules []fileRule `yaml:"rules"`
}

type fileRule struct {
	Pattern     string `yaml:"pattern,omitempty"`
	Replacement string `yaml:"replacement,omitempty"`
	WholeWord   bool   `yaml:"whole_word,omitempty"`
	Wrong       string `yaml:"wrong,omitempty"`
	Right       string `yaml:"right,omitempty"`
}

// LoadRulesFile reads and validates a YAML rules file.
func LoadRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML rules in file order.
func ParseRules(data []byte) ([]Rule, error) {
	var f RulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	rules := make([]Rule, 0, len(f.Rules))
	for i, fr := range f.Rules {
		switch {
		case fr.Pattern != "" && fr.Wrong != "":
			return nil, fmt.Errorf("rule %d: set either pattern or wrong, not both", i+1)
		case fr.Pattern != "":
			rules = append(rules, Rule{Pattern: fr.Pattern, Replacement: fr.Replacement, WholeWord: fr.WholeWord})
		case fr.Wrong != "":
			rules = append(rules, LiteralRule(fr.Wrong, fr.Right))
		default:
			return nil, fmt.Errorf("rule %d: missing pattern", i+1)
		}
	}

	// Compile once to surface bad expressions at load time.
	if _, err := New(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// MarshalRules encodes rules back to the YAML file format.
func MarshalRules(rules []Rule) ([]byte, error) {
	f := RulesFile{Rules: make([]fileRule, 0, len(rules))}
	for _, r := range rules {
		f.Rules = append(f.Rules, fileRule{Pattern: r.Pattern, Replacement: r.Replacement, WholeWord: r.WholeWord})
	}
	data, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("marshal rules: %w", err)
	}
	return data, nil
}
