// Package parser implements the stylesheet factory: it turns CSS text
// into rulesets with validated declarations, and collects the @page,
// @font-face and @import rules on the side.
package parser

import (
	"errors"

	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/css/validation"
)

var (
	// ErrSyntax is returned for malformed CSS text.
	ErrSyntax = errors.New("CSS syntax error")
	// ErrUnsupportedRule is returned for unknown or misplaced at-rules.
	ErrUnsupportedRule = errors.New("unsupported at-rule")
	// ErrInvalidMediaQuery is returned for media queries which can't be parsed.
	ErrInvalidMediaQuery = errors.New("invalid media query")
	// ErrInvalidPageSelector is returned for @page preludes which can't be parsed.
	ErrInvalidPageSelector = errors.New("invalid page selector")
)

// Stylesheet is the result of parsing one CSS source.
type Stylesheet struct {
	// Source is a free-form description of where the text comes from,
	// used in logs.
	Source string
	Origin validation.Origin

	// Rulesets are in source order, with the ones nested
	// in matching @media blocks inlined.
	Rulesets  []*selector.Ruleset
	Pages     []PageRule
	FontFaces []validation.FontFaceDescriptors
	Imports   []string

	// Errors holds every recoverable error met while parsing, combined
	// with multierr. Use multierr.Errors to list them.
	Errors error
}

// PageSelector is one selector of a @page prelude, like
// `chapter:first`. The zero value matches every page.
type PageSelector struct {
	Name  string
	Side  string // "left", "right" or empty
	First bool
	Blank bool

	Specificity selector.Specificity
}

// Matches returns true if the selector applies to a page with the given properties.
// An empty `name` is the unnamed page.
func (ps PageSelector) Matches(name, side string, first, blank bool) bool {
	if ps.Name != "" && ps.Name != name {
		return false
	}
	if ps.Side != "" && ps.Side != side {
		return false
	}
	if ps.First && !first {
		return false
	}
	if ps.Blank && !blank {
		return false
	}
	return true
}

// PageRule stores the declarations of a @page rule, for one of its
// selectors. A @page rule with several selectors or margin boxes
// is split in several PageRule.
type PageRule struct {
	Selector PageSelector
	// MarginBox is the name of the margin at-rule (like "top-left"),
	// or empty for the declarations of the page box itself.
	MarginBox    string
	Declarations []validation.Declaration
}
