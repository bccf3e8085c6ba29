// Package rules holds the issuer rule registry and the matching logic
// that pairs a statement's first-page text with its issuer and raw
// statement date.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/statement-sorter/internal/common"
	"github.com/Veraticus/statement-sorter/internal/model"
)

// Set is an immutable, ordered collection of issuer rules with their
// date patterns pre-compiled. Order matters: Match returns the first
// rule whose signature occurs in the text, so overlapping issuer
// variants must be registered most-specific first.
type Set struct {
	compiled map[string]*regexp.Regexp
	rules    []model.Rule
}

// New validates the given rules and builds a Set. Every date pattern
// must compile and contain exactly one capture group; patterns are
// compiled case-insensitively while signature matching stays
// byte-exact.
func New(rs []model.Rule) (*Set, error) {
	s := &Set{
		rules:    rs,
		compiled: make(map[string]*regexp.Regexp, len(rs)),
	}

	for i, r := range rs {
		if r.Name == "" || r.Signature == "" {
			return nil, fmt.Errorf("%w: rule %d must have a name and a signature", common.ErrInvalidRule, i)
		}
		if _, ok := s.compiled[r.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate rule name %q", common.ErrInvalidRule, r.Name)
		}

		re, err := regexp.Compile("(?i)" + r.DatePattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", common.ErrInvalidRule, r.Name, err)
		}
		if n := re.NumSubexp(); n != 1 {
			return nil, fmt.Errorf("%w: %s: date pattern must have exactly one capture group, has %d", common.ErrInvalidRule, r.Name, n)
		}
		s.compiled[r.Name] = re
	}

	return s, nil
}

// Load builds a Set from configuration. A rules list in the config
// file replaces the built-in registry wholesale; otherwise the
// defaults apply. Rule patterns are configuration data and are
// validated here rather than trusted.
func Load(v *viper.Viper) (*Set, error) {
	if !v.IsSet("rules") {
		return New(Default())
	}

	var rs []model.Rule
	if err := v.UnmarshalKey("rules", &rs); err != nil {
		return nil, fmt.Errorf("failed to parse rules config: %w", err)
	}
	if len(rs) == 0 {
		return nil, fmt.Errorf("%w: rules list in config is empty", common.ErrInvalidRule)
	}

	return New(rs)
}

// Default returns the built-in issuer rules.
func Default() []model.Rule {
	return []model.Rule{
		{
			Name:        "Nordstrom",
			Signature:   "NORDSTROM CARD SERVICES",
			DatePattern: `to\s+([A-Za-z]+\s\d{1,2},\s\d{4})`,
		},
		{
			Name:        "Chase_Credit_Card",
			Signature:   "Chase Card Services",
			DatePattern: `Opening/Closing Date\s+\d{2}/\d{2}/\d{2}\s+-\s+(\d{2}/\d{2}/\d{2})`,
		},
		{
			Name:        "Amex",
			Signature:   "American Express",
			DatePattern: `Closing Date\s+([A-Za-z]+\s\d{1,2},\s\d{4})`,
		},
		{
			Name:        "Schwab_Brokerage",
			Signature:   "Charles Schwab & Co",
			DatePattern: `Statement Period:.*through\s+([A-Za-z]+\s\d{1,2},\s\d{4})`,
		},
	}
}

// Rules returns the rules in registration order.
func (s *Set) Rules() []model.Rule {
	return s.rules
}

// Match returns the first rule whose signature is a literal substring
// of text. First match wins even when a later rule's signature is also
// present, so adding a rule never changes the result for texts that
// already matched an earlier one.
func (s *Set) Match(text string) (model.Rule, bool) {
	for _, r := range s.rules {
		if strings.Contains(text, r.Signature) {
			return r, true
		}
	}
	return model.Rule{}, false
}

// ExtractDate applies the rule's date pattern to text and returns the
// capture of the first match, or "" when the pattern finds nothing.
func (s *Set) ExtractDate(text string, rule model.Rule) string {
	re, ok := s.compiled[rule.Name]
	if !ok {
		return ""
	}

	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}
