package analysis

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

// Durations a predicate can require relative to the early-game cutoff.
const (
	DurationUnderCutoff = "under_cutoff"
	DurationOverCutoff  = "over_cutoff"
)

// Predicate is one trait requirement over an aggregate composition signature.
// Exactly one of the trait fields is set per predicate.
type Predicate struct {
	Tag              string   `yaml:"tag,omitempty"`
	MinCount         float64  `yaml:"min_count,omitempty"`
	Duration         string   `yaml:"duration,omitempty"`
	ObjectiveLeanMin *float64 `yaml:"objective_lean_min,omitempty"`
}

// ArchetypeRule pairs trait predicates with the archetype's strategic plan
// and break condition.
type ArchetypeRule struct {
	Name      string      `yaml:"name"`
	Plan      string      `yaml:"plan"`
	Break     string      `yaml:"break"`
	Required  []Predicate `yaml:"required"`
	Forbidden []Predicate `yaml:"forbidden"`
}

// RuleSet is the static archetype configuration: champion role tags plus the
// ordered archetype rules. Loaded once per run, read-only afterwards.
type RuleSet struct {
	Tags       map[string]string `yaml:"tags"`
	Archetypes []ArchetypeRule   `yaml:"archetypes"`
}

// LoadRules parses the embedded archetype rule set.
func LoadRules() (RuleSet, error) {
	var rules RuleSet
	if err := yaml.Unmarshal(rulesYAML, &rules); err != nil {
		return RuleSet{}, fmt.Errorf("failed to parse archetype rules: %w", err)
	}
	if err := rules.validate(); err != nil {
		return RuleSet{}, err
	}
	return rules, nil
}

func (r RuleSet) validate() error {
	if len(r.Archetypes) == 0 {
		return fmt.Errorf("archetype rule set is empty")
	}
	for _, rule := range r.Archetypes {
		if rule.Name == "" {
			return fmt.Errorf("archetype rule with empty name")
		}
		if len(rule.Required) == 0 {
			return fmt.Errorf("archetype %q has no required predicates", rule.Name)
		}
		for _, p := range append(append([]Predicate{}, rule.Required...), rule.Forbidden...) {
			if err := p.validate(); err != nil {
				return fmt.Errorf("archetype %q: %w", rule.Name, err)
			}
		}
	}
	return nil
}

func (p Predicate) validate() error {
	set := 0
	if p.Tag != "" {
		if p.MinCount <= 0 {
			return fmt.Errorf("tag predicate %q needs a positive min_count", p.Tag)
		}
		set++
	}
	if p.Duration != "" {
		if p.Duration != DurationUnderCutoff && p.Duration != DurationOverCutoff {
			return fmt.Errorf("unknown duration predicate %q", p.Duration)
		}
		set++
	}
	if p.ObjectiveLeanMin != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("predicate must set exactly one trait, got %d", set)
	}
	return nil
}
