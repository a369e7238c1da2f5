package annotations

import (
	"fmt"
	"sort"
	"strings"
)

// SelectorRule derives a selector for a method that carries no explicit
// selector annotation. It returns false when no selector can be derived.
type SelectorRule func(info MethodInfo) (string, bool)

// DerivedSelectors names the selector after the method, with one ':' per argument
func DerivedSelectors(info MethodInfo) (string, bool) {
	if info.Name == "" || strings.HasPrefix(info.Name, "<") {
		return "", false
	}
	return info.Name + strings.Repeat(":", info.NumArgs), true
}

// ExplicitSelectors never derives a selector; only annotated methods bind
func ExplicitSelectors(MethodInfo) (string, bool) {
	return "", false
}

var selectorRules = map[string]SelectorRule{
	"derived":  DerivedSelectors,
	"explicit": ExplicitSelectors,
}

// DefaultSelectorRule is the rule name used when none is configured
const DefaultSelectorRule = "derived"

// SelectorRuleByName resolves a configured rule name
func SelectorRuleByName(name string) (SelectorRule, error) {
	if name == "" {
		name = DefaultSelectorRule
	}
	rule, ok := selectorRules[name]
	if !ok {
		return nil, fmt.Errorf("unknown selector rule %q (available: %s)", name, strings.Join(SelectorRuleNames(), ", "))
	}
	return rule, nil
}

// SelectorRuleNames lists the built-in rule names
func SelectorRuleNames() []string {
	names := make([]string, 0, len(selectorRules))
	for name := range selectorRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
