// Package model defines the core types shared across the application.
package model

// Rule identifies a statement issuer and describes how to pull the
// statement date out of its first-page text.
//
// Signature is matched byte-exact: issuer boilerplate keeps its
// capitalization across statements. DatePattern is applied
// case-insensitively, because date labels do not, and must contain
// exactly one capture group yielding the raw date text. Rules are
// ordered and immutable once loaded; when two signatures occur in the
// same text, the earlier rule wins.
type Rule struct {
	Name        string `mapstructure:"name"`
	Signature   string `mapstructure:"signature"`
	DatePattern string `mapstructure:"date_pattern"`
}
