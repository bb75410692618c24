package codec

import (
	"strings"

	"github.com/dhruvd-1/semtok/pkg/ontology"
)

// MatchRule resolves a raw field name against a class's property list.
// Rules are tried in order; the first hit wins. Keeping each heuristic as a
// separate rule lets the set be swapped for a learned model without touching
// the encoder.
type MatchRule interface {
	// Name identifies the rule in logs and tests.
	Name() string
	// Match returns the winning property name, or false if the rule does
	// not apply.
	Match(fieldName string, classProperties []string) (string, bool)
}

// exactRule matches a field name to a property name case-insensitively.
type exactRule struct{}

func (exactRule) Name() string { return "exact" }

func (exactRule) Match(fieldName string, classProperties []string) (string, bool) {
	for _, prop := range classProperties {
		if strings.EqualFold(prop, fieldName) {
			return prop, true
		}
	}
	return "", false
}

// containsRule matches when the lowercase property name is a substring of
// the lowercase field name, or vice versa.
type containsRule struct{}

func (containsRule) Name() string { return "contains" }

func (containsRule) Match(fieldName string, classProperties []string) (string, bool) {
	fieldLower := strings.ToLower(fieldName)
	for _, prop := range classProperties {
		propLower := strings.ToLower(prop)
		if strings.Contains(fieldLower, propLower) || strings.Contains(propLower, fieldLower) {
			return prop, true
		}
	}
	return "", false
}

// Inferencer resolves raw field names to ontology properties within a class
// context using an ordered rule list. The default rules are a coarse
// placeholder for a learned mapping.
type Inferencer struct {
	ont   *ontology.Ontology
	rules []MatchRule
}

// NewInferencer creates an inferencer with the default rule order:
// exact match first, then substring containment in either direction.
func NewInferencer(ont *ontology.Ontology) *Inferencer {
	return &Inferencer{
		ont:   ont,
		rules: []MatchRule{exactRule{}, containsRule{}},
	}
}

// NewInferencerWithRules creates an inferencer with a custom rule list.
func NewInferencerWithRules(ont *ontology.Ontology, rules []MatchRule) *Inferencer {
	return &Inferencer{ont: ont, rules: rules}
}

// Infer resolves fieldName to a property of the given class, considering
// inherited properties. A miss returns false and is not an error.
func (inf *Inferencer) Infer(fieldName, className string) (string, bool) {
	if fieldName == "" {
		return "", false
	}

	props := inf.ont.PropertiesForClass(className, true)
	if len(props) == 0 {
		return "", false
	}

	for _, rule := range inf.rules {
		if prop, ok := rule.Match(fieldName, props); ok {
			return prop, true
		}
	}
	return "", false
}
