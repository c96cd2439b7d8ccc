package tree

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/benoitkugler/webstyle/css/parser"
	"github.com/benoitkugler/webstyle/css/selector"
	"golang.org/x/net/html"
)

// ErrInternal is returned when the selector structures are inconsistent.
// It is fatal for the document, until the root is restyled.
var ErrInternal = errors.New("internal style engine error")

// dynamic states, indexed by stateIndex
const (
	hoverState = iota
	activeState
	focusState
	visitedState
	numStates
)

var statePseudoClasses = [numStates]selector.PseudoClass{
	hoverState:   selector.Hover,
	activeState:  selector.Active,
	focusState:   selector.Focus,
	visitedState: selector.Visited,
}

// matcher stores the document level state needed to map elements :
// the rule order and the dynamic states of the elements.
type matcher struct {
	// source order of the rulesets, across all the stylesheets
	order map[*selector.Ruleset]int

	// states set by the host
	states [numStates]map[*html.Node]bool
	// elements whose matching depends on a state
	styled [numStates]map[*html.Node]bool
}

func newMatcher() *matcher {
	m := &matcher{order: make(map[*selector.Ruleset]int)}
	for i := range m.states {
		m.states[i] = make(map[*html.Node]bool)
		m.styled[i] = make(map[*html.Node]bool)
	}
	return m
}

// register remembers that the mapping of `e` depends on the states
// required by `sel`.
func (m *matcher) register(sel *selector.Selector, e *html.Node) {
	for i, pc := range statePseudoClasses {
		if sel.IsPseudoClass(pc) {
			m.styled[i][e] = true
		}
	}
	// :link is the complement of :visited
	if sel.IsPseudoClass(selector.Link) {
		m.styled[visitedState][e] = true
	}
}

// inStates checks the dynamic pseudo-classes of `sel` against the state of `e`.
func (m *matcher) inStates(sel *selector.Selector, e *html.Node) bool {
	for i, pc := range statePseudoClasses {
		if sel.IsPseudoClass(pc) && !m.states[i][e] {
			return false
		}
	}
	if sel.IsPseudoClass(selector.Link) && m.states[visitedState][e] {
		return false
	}
	return true
}

func (m *matcher) less(s1, s2 *selector.Selector) bool {
	if s1.Specificity != s2.Specificity {
		return s1.Specificity.Less(s2.Specificity)
	}
	return m.order[s1.Rule] < m.order[s2.Rule]
}

// Mapper is the result of matching the selectors of a document against
// an element. It is shared by all the elements matched by the same set
// of selectors, under the same parent Mapper.
type Mapper struct {
	// selectors to try on the children
	axes []*selector.Selector
	// selectors whose subject is the element, sorted by
	// increasing specificity then source order
	mappedSelectors []*selector.Selector
	pseudoSelectors map[string][]*selector.Selector

	// keyed by the IDs of the matched selectors
	children map[string]*Mapper
}

// newRootMapper returns the Mapper to apply on the root element,
// which tries every selector of `sheets`.
func newRootMapper(m *matcher, sheets []*parser.Stylesheet) *Mapper {
	out := &Mapper{children: make(map[string]*Mapper)}
	for _, sheet := range sheets {
		for _, rs := range sheet.Rulesets {
			m.order[rs] = len(m.order)
			out.axes = append(out.axes, rs.Selectors...)
		}
	}
	sort.SliceStable(out.axes, func(i, j int) bool { return m.less(out.axes[i], out.axes[j]) })
	return out
}

// mapChild matches the axes of `mp` against `e`, returning the Mapper
// of the element.
// http://www.w3.org/TR/CSS21/selector.html
func (mp *Mapper) mapChild(m *matcher, e *html.Node) (*Mapper, error) {
	var (
		childAxes       []*selector.Selector
		mappedSelectors []*selector.Selector
		pseudoSelectors map[string][]*selector.Selector
		key             strings.Builder
	)
	for _, sel := range mp.axes {
		switch sel.Axis {
		case selector.DescendantAxis:
			// may also match a deeper descendant
			childAxes = append(childAxes, sel)
		case selector.ChildAxis:
		default:
			return nil, fmt.Errorf("%w: unexpected axis %s in selector %s", ErrInternal, sel.Axis, sel)
		}

		if !sel.Matches(e) {
			continue
		}
		if sel.PseudoClasses != 0 {
			m.register(sel, e)
			if !m.inStates(sel, e) {
				continue
			}
		}

		key.WriteString(strconv.Itoa(sel.ID))
		key.WriteByte(':')

		if name := sel.PseudoElement(); name != "" {
			if pseudoSelectors == nil {
				pseudoSelectors = make(map[string][]*selector.Selector)
			}
			pseudoSelectors[name] = append(pseudoSelectors[name], sel)
			continue
		}
		if sel.Chained == nil {
			mappedSelectors = append(mappedSelectors, sel)
		} else {
			if sel.Chained.Axis == selector.ImmediateSiblingAxis {
				return nil, fmt.Errorf("%w: sibling axis in selector chain %s", ErrInternal, sel)
			}
			childAxes = append(childAxes, sel.Chained)
		}
	}

	k := key.String()
	if child := mp.children[k]; child != nil {
		return child, nil
	}
	child := &Mapper{
		axes:            childAxes,
		mappedSelectors: mappedSelectors,
		pseudoSelectors: pseudoSelectors,
		children:        make(map[string]*Mapper),
	}
	sort.SliceStable(child.mappedSelectors, func(i, j int) bool { return m.less(child.mappedSelectors[i], child.mappedSelectors[j]) })
	for _, sels := range child.pseudoSelectors {
		sort.SliceStable(sels, func(i, j int) bool { return m.less(sels[i], sels[j]) })
	}
	mp.children[k] = child
	return child, nil
}

// MatchedSelectors returns the selectors whose subject is the element,
// in cascade order.
func (mp *Mapper) MatchedSelectors() []*selector.Selector { return mp.mappedSelectors }

// PseudoSelectors returns the selectors matching the pseudo-element
// `name` of the element, in cascade order.
func (mp *Mapper) PseudoSelectors(name string) []*selector.Selector {
	return mp.pseudoSelectors[name]
}

// HasPseudoElement returns true if some selector targets the
// pseudo-element `name`.
func (mp *Mapper) HasPseudoElement(name string) bool { return len(mp.pseudoSelectors[name]) != 0 }
