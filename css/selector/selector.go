// Package selector implements the selectors used by the cascade:
// chains of compound selectors linked by descendant or child axes.
//
// Compound selectors (and the sibling combinators leading to them) are
// compiled and matched by cascadia. Dynamic pseudo-classes and
// pseudo-elements are kept out of the compiled selector, since their
// matching depends on the document state.
package selector

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/andybalholm/cascadia"
	"github.com/benoitkugler/webstyle/css/validation"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
)

// ErrUnsupportedSelector is returned for selectors the engine can't match.
var ErrUnsupportedSelector = errors.New("unsupported selector")

// Specificity is the (ids, classes, types) triple.
type Specificity = cascadia.Specificity

// Axis is the relation between a compound selector and the previous one
// in the chain.
type Axis uint8

const (
	// DescendantAxis is also used for the first selector of a chain.
	DescendantAxis Axis = iota
	ChildAxis
	// ImmediateSiblingAxis is never produced by Parse: sibling combinators
	// are folded into the compound they lead to.
	ImmediateSiblingAxis
)

func (a Axis) String() string {
	switch a {
	case DescendantAxis:
		return " "
	case ChildAxis:
		return " > "
	case ImmediateSiblingAxis:
		return " + "
	default:
		return fmt.Sprintf("<axis %d>", a)
	}
}

// PseudoClass is a set of dynamic pseudo-classes.
type PseudoClass uint8

const (
	Hover PseudoClass = 1 << iota
	Active
	Focus
	Visited
	// Link is matched statically; the flag only excludes visited links.
	Link
)

var pseudoClassNames = [...]struct {
	pc   PseudoClass
	name string
}{
	{Hover, "hover"}, {Active, "active"}, {Focus, "focus"}, {Visited, "visited"}, {Link, "link"},
}

func (pc PseudoClass) String() string {
	var b strings.Builder
	for _, p := range pseudoClassNames {
		if pc&p.pc != 0 {
			b.WriteString(":" + p.name)
		}
	}
	return b.String()
}

// supported pseudo-elements, with the legacy single colon syntax allowed
// for the first four
var pseudoElements = map[string]bool{
	"before":       true,
	"after":        true,
	"first-line":   true,
	"first-letter": true,
	"marker":       false,
}

var lastID int64

func newID() int { return int(atomic.AddInt64(&lastID, 1)) }

// Selector is one compound selector of a chain.
// Selectors are immutable after parsing, and may be shared
// between documents.
type Selector struct {
	// Chained is the next compound (to the right), or nil
	// for the subject of the selector.
	Chained *Selector
	// Rule is the ruleset owning the chain.
	Rule *Ruleset

	compound      cascadia.Sel
	pseudoElement string
	text          string

	// Specificity of the whole chain.
	Specificity Specificity

	// ID is unique among all the parsed selectors.
	ID int

	Axis          Axis
	PseudoClasses PseudoClass
}

// Matches tests the compound selector (without its dynamic
// pseudo-classes) against `n`.
func (s *Selector) Matches(n *html.Node) bool {
	return n.Type == html.ElementNode && s.compound.Match(n)
}

// IsPseudoClass returns true if `pc` is required by the selector.
func (s *Selector) IsPseudoClass(pc PseudoClass) bool { return s.PseudoClasses&pc != 0 }

// IsDynamic returns true if matching depends on the document state.
func (s *Selector) IsDynamic() bool { return s.PseudoClasses&^Link != 0 }

// PseudoElement returns the pseudo-element targeted by the selector,
// or an empty string.
func (s *Selector) PseudoElement() string { return s.pseudoElement }

// Subject returns the last compound of the chain.
func (s *Selector) Subject() *Selector {
	for s.Chained != nil {
		s = s.Chained
	}
	return s
}

// String returns the selector text, from `s` to the end of the chain.
func (s *Selector) String() string {
	var b strings.Builder
	for c := s; c != nil; c = c.Chained {
		if c != s {
			b.WriteString(c.Axis.String())
		}
		b.WriteString(c.text)
	}
	return b.String()
}

// NewSelector builds a selector from a compiled cascadia selector.
// It is mainly useful to build chains by hand; most callers should use Parse.
func NewSelector(compound cascadia.Sel, axis Axis) *Selector {
	return &Selector{compound: compound, Axis: axis, text: compound.String(), ID: newID(), Specificity: compound.Specificity()}
}

// Ruleset stores the declarations shared by a group of selectors.
type Ruleset struct {
	Selectors    []*Selector
	Declarations []validation.Declaration
	Origin       validation.Origin
}

// NewRuleset parses `selectors` and returns the ruleset applying
// `declarations` to them.
func NewRuleset(selectors string, declarations []validation.Declaration, origin validation.Origin) (*Ruleset, error) {
	rs := &Ruleset{Declarations: declarations, Origin: origin}
	sels, err := Parse(selectors, rs)
	if err != nil {
		return nil, err
	}
	rs.Selectors = sels
	return rs, nil
}

// Parse parses a comma separated group of selectors, owned by `rule`.
// The group is rejected as a whole if one of its selectors is invalid.
func Parse(text string, rule *Ruleset) ([]*Selector, error) {
	var out []*Selector
	for _, complex := range splitTopLevel(text, func(c byte) bool { return c == ',' }) {
		sel, err := parseComplex(strings.TrimSpace(complex))
		if err != nil {
			return nil, fmt.Errorf("selector %q: %w", strings.TrimSpace(text), err)
		}
		for c := sel; c != nil; c = c.Chained {
			c.Rule = rule
		}
		out = append(out, sel)
	}
	return out, nil
}

// MustParse is like Parse but panics on error. It is meant for
// built-in selectors.
func MustParse(text string) []*Selector {
	out, err := Parse(text, nil)
	if err != nil {
		panic(err)
	}
	return out
}

type compound struct {
	text string
	// combinator before the compound (0 for the first one)
	combinator byte
}

func parseComplex(text string) (*Selector, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrUnsupportedSelector)
	}
	compounds, err := splitCompounds(text)
	if err != nil {
		return nil, err
	}

	// fold sibling combinators into the compound they lead to
	var folded []compound
	for _, c := range compounds {
		if c.combinator == '+' || c.combinator == '~' {
			prev := &folded[len(folded)-1]
			if err := checkStatic(prev.text); err != nil {
				return nil, err
			}
			prev.text = prev.text + " " + string(c.combinator) + " " + c.text
			continue
		}
		folded = append(folded, c)
	}

	var (
		head, last  *Selector
		specificity Specificity
	)
	for i, c := range folded {
		sel, err := parseCompound(c.text)
		if err != nil {
			return nil, err
		}
		if sel.pseudoElement != "" && i != len(folded)-1 {
			return nil, fmt.Errorf("%w: pseudo-element ::%s must be at the end", ErrUnsupportedSelector, sel.pseudoElement)
		}
		if c.combinator == '>' {
			sel.Axis = ChildAxis
		}
		specificity = specificity.Add(sel.Specificity)
		if head == nil {
			head = sel
		} else {
			last.Chained = sel
		}
		last = sel
	}
	for c := head; c != nil; c = c.Chained {
		c.Specificity = specificity
	}
	return head, nil
}

// splitCompounds splits on the top level combinators.
func splitCompounds(text string) ([]compound, error) {
	var (
		out        []compound
		combinator byte
		start      = -1
	)
	flush := func(end int) error {
		if start == -1 {
			return nil
		}
		if len(out) == 0 && combinator != 0 && combinator != ' ' {
			return fmt.Errorf("%w: leading combinator in %q", ErrUnsupportedSelector, text)
		}
		out = append(out, compound{text: text[start:end], combinator: combinator})
		start, combinator = -1, 0
		return nil
	}
	err := scanTopLevel(text, func(i int, c byte, topLevel bool) error {
		if topLevel {
			switch c {
			case ' ', '\t', '\n', '\r', '\f':
				if err := flush(i); err != nil {
					return err
				}
				if combinator == 0 && len(out) != 0 {
					combinator = ' '
				}
				return nil
			case '>', '+', '~':
				if err := flush(i); err != nil {
					return err
				}
				if combinator != 0 && combinator != ' ' {
					return fmt.Errorf("%w: consecutive combinators in %q", ErrUnsupportedSelector, text)
				}
				combinator = c
				return nil
			}
		}
		if start == -1 {
			start = i
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(len(text)); err != nil {
		return nil, err
	}
	if combinator != 0 && combinator != ' ' {
		return nil, fmt.Errorf("%w: trailing combinator in %q", ErrUnsupportedSelector, text)
	}
	return out, nil
}

// checkStatic rejects dynamic pseudo-classes and pseudo-elements
// on compounds which are not the subject of a sibling combinator.
func checkStatic(text string) error {
	_, pcs, pe, err := stripPseudos(text)
	if err != nil {
		return err
	}
	if pcs&^Link != 0 || pe != "" {
		return fmt.Errorf("%w: %q can't be used before a sibling combinator", ErrUnsupportedSelector, text)
	}
	return nil
}

func parseCompound(text string) (*Selector, error) {
	static, pcs, pe, err := stripPseudos(text)
	if err != nil {
		return nil, err
	}
	if static == "" {
		static = "*"
	}
	compiled, err := cascadia.Parse(static)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSelector, err)
	}
	sel := &Selector{
		compound:      compiled,
		pseudoElement: pe,
		PseudoClasses: pcs,
		text:          text,
		ID:            newID(),
		Specificity:   compiled.Specificity(),
	}
	for _, p := range pseudoClassNames {
		// :link is already counted by the compiled selector
		if pcs&p.pc != 0 && p.pc != Link {
			sel.Specificity[1]++
		}
	}
	if pe != "" {
		sel.Specificity[2]++
	}
	return sel, nil
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c >= 0x80
}

// stripPseudos removes the dynamic pseudo-classes and the pseudo-element
// from a compound selector. `:link` is kept, since cascadia
// supports it.
func stripPseudos(text string) (static string, pcs PseudoClass, pseudoElement string, err error) {
	var b strings.Builder
	last := 0
	skipTo := -1
	err = scanTopLevel(text, func(i int, c byte, topLevel bool) error {
		if i < skipTo || !topLevel || c != ':' {
			return nil
		}
		start, double := i+1, false
		if start < len(text) && text[start] == ':' {
			start, double = start+1, true
		}
		end := start
		for end < len(text) && isNameChar(text[end]) {
			end++
		}
		if end < len(text) && text[end] == '(' {
			// functional pseudo-classes are compiled by cascadia
			return nil
		}
		name := cases.Fold().String(text[start:end])
		if legacy, isPE := pseudoElements[name]; isPE && (double || legacy) {
			if pseudoElement != "" {
				return fmt.Errorf("%w: only one pseudo-element is allowed", ErrUnsupportedSelector)
			}
			pseudoElement = name
		} else if double {
			return fmt.Errorf("%w: unknown pseudo-element ::%s", ErrUnsupportedSelector, name)
		} else {
			found := false
			for _, p := range pseudoClassNames {
				if p.name == name {
					pcs |= p.pc
					found = p.pc != Link
				}
			}
			if !found {
				return nil
			}
		}
		if pseudoElement != "" && name != pseudoElement {
			return fmt.Errorf("%w: pseudo-element ::%s must be at the end", ErrUnsupportedSelector, pseudoElement)
		}
		b.WriteString(text[last:i])
		last, skipTo = end, end
		return nil
	})
	if err != nil {
		return "", 0, "", err
	}
	b.WriteString(text[last:])
	return b.String(), pcs, pseudoElement, nil
}

// scanTopLevel calls `fn` for each byte of `text`, reporting if the byte is
// outside of strings, brackets and parenthesis.
func scanTopLevel(text string, fn func(i int, c byte, topLevel bool) error) error {
	var (
		depth int
		quote byte
	)
	for i := 0; i < len(text); i++ {
		c := text[i]
		topLevel := depth == 0 && quote == 0
		escaped := false
		switch {
		case quote != 0:
			if c == '\\' {
				escaped = true
			} else if c == quote {
				quote = 0
			}
		case c == '\\':
			escaped = true
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth == 0 {
				return fmt.Errorf("%w: unbalanced %q in %q", ErrUnsupportedSelector, c, text)
			}
			depth--
		}
		if err := fn(i, c, topLevel); err != nil {
			return err
		}
		if escaped {
			// the escaped byte is never a separator
			i++
		}
	}
	if depth != 0 || quote != 0 {
		return fmt.Errorf("%w: unterminated %q", ErrUnsupportedSelector, text)
	}
	return nil
}

func splitTopLevel(text string, isSep func(c byte) bool) []string {
	var (
		out   []string
		start int
	)
	_ = scanTopLevel(text, func(i int, c byte, topLevel bool) error {
		if topLevel && isSep(c) {
			out = append(out, text[start:i])
			start = i + 1
		}
		return nil
	})
	return append(out, text[start:])
}

// MatchesChain matches the chain starting at `s` against `n`, walking up
// the ancestors of `n`. `state` reports if an element is in all the
// dynamic states of a set; when it is nil, dynamic selectors never match.
// The cascade uses the incremental Mapper instead: this is the reference
// (and slower) implementation.
func (s *Selector) MatchesChain(n *html.Node, state func(*html.Node, PseudoClass) bool) bool {
	var chain []*Selector
	for c := s; c != nil; c = c.Chained {
		chain = append(chain, c)
	}
	return matchFrom(chain, len(chain)-1, n, state)
}

func matchCompound(c *Selector, n *html.Node, state func(*html.Node, PseudoClass) bool) bool {
	if !c.Matches(n) {
		return false
	}
	if c.PseudoClasses == 0 {
		return true
	}
	if state == nil {
		return !c.IsDynamic()
	}
	return state(n, c.PseudoClasses)
}

func parentElement(n *html.Node) *html.Node {
	if p := n.Parent; p != nil && p.Type == html.ElementNode {
		return p
	}
	return nil
}

func matchFrom(chain []*Selector, i int, n *html.Node, state func(*html.Node, PseudoClass) bool) bool {
	if !matchCompound(chain[i], n, state) {
		return false
	}
	if i == 0 {
		return true
	}
	switch chain[i].Axis {
	case ChildAxis:
		p := parentElement(n)
		return p != nil && matchFrom(chain, i-1, p, state)
	case DescendantAxis:
		for p := parentElement(n); p != nil; p = parentElement(p) {
			if matchFrom(chain, i-1, p, state) {
				return true
			}
		}
	}
	return false
}
