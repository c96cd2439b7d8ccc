package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/benoitkugler/webstyle/css/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/text"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options configures the styling of a document.
type Options struct {
	// Medium is used to evaluate the @media rules of the document
	// stylesheets. It defaults to "print".
	Medium string
	// DefaultFontSize is the size of the `medium` keyword, in pixels.
	DefaultFontSize pr.Fl
	// PresentationalHints enables the styles given by legacy
	// HTML attributes, like bgcolor or align.
	PresentationalHints bool

	// UserAgent replaces the default HTML stylesheet, if not zero.
	UserAgent CSS
	// UserStylesheets are applied with the User origin.
	UserStylesheets []CSS

	// Metrics is used to resolve `ex` and `ch`. It defaults to
	// the 0.5em approximation.
	Metrics text.Metrics
	// Logger defaults to the package-wide logger.
	Logger *zap.Logger
}

// Document computes the styles of the elements of an HTML tree.
// The tree must not be modified while the document is in use, except
// for the dynamic states, which are set through the document.
// A Document is safe for concurrent use.
type Document struct {
	root *html.Node
	opts Options
	log  *zap.Logger

	lock sync.Mutex

	matcher    *matcher
	rootMapper *Mapper
	ctx        *styleContext

	mappers      map[*html.Node]*Mapper
	cascaded     map[*html.Node]*CascadedStyle
	styles       map[*html.Node]*CalculatedStyle
	pseudoStyles map[pseudoKey]*CalculatedStyle
	pageInfos    map[Page]PageInfo
	// style attribute text whose errors are already recorded
	inlineSeen map[*html.Node]string

	pageRules []parser.PageRule // in source order
	fontFaces []validation.FontFaceDescriptors

	// recoverable errors
	errs error
	// set by an internal error, until the root is restyled
	fatal error
}

type pseudoKey struct {
	element *html.Node
	name    string
}

// NewDocument prepares the styling of the tree rooted at `root`.
// The stylesheets are applied in this order : user agent, user stylesheets,
// <style> elements of the document and finally `authorSheets`.
func NewDocument(root *html.Node, opts Options, authorSheets ...CSS) *Document {
	if opts.Medium == "" {
		opts.Medium = "print"
	}
	d := &Document{
		root:         root,
		opts:         opts,
		log:          logger.Or(opts.Logger).Named("style"),
		matcher:      newMatcher(),
		mappers:      make(map[*html.Node]*Mapper),
		cascaded:     make(map[*html.Node]*CascadedStyle),
		styles:       make(map[*html.Node]*CalculatedStyle),
		pseudoStyles: make(map[pseudoKey]*CalculatedStyle),
		pageInfos:    make(map[Page]PageInfo),
		inlineSeen:   make(map[*html.Node]string),
	}
	d.ctx = newStyleContext(d.log, opts.Metrics, opts.DefaultFontSize)

	ua := opts.UserAgent
	if ua.IsNone() {
		ua = UAStylesheet(opts.Medium)
	}
	sheets := []CSS{ua}
	sheets = append(sheets, opts.UserStylesheets...)
	sheets = append(sheets, documentStylesheets(root, opts.Medium, d.log)...)
	sheets = append(sheets, authorSheets...)

	var flat []*parser.Stylesheet
	for _, sheet := range sheets {
		if sheet.IsNone() {
			continue
		}
		d.errs = multierr.Append(d.errs, sheet.Errors())
		flat = append(flat, sheet.flatten()...)
	}
	for _, sheet := range flat {
		d.pageRules = append(d.pageRules, sheet.Pages...)
		d.fontFaces = append(d.fontFaces, sheet.FontFaces...)
	}
	d.rootMapper = newRootMapper(d.matcher, flat)
	logger.Progress().Info("document ready",
		zap.Int("stylesheets", len(flat)), zap.Int("rulesets", len(d.matcher.order)))
	return d
}

// documentStylesheets parses the <style> elements of the document,
// skipping the ones whose media attribute does not match.
func documentStylesheets(root *html.Node, medium string, log *zap.Logger) []CSS {
	var out []CSS
	walkElements(root, func(e *html.Node) {
		if e.DataAtom != atom.Style {
			return
		}
		if typ, ok := getAttr(e, "type"); ok && typ != "" && !strings.EqualFold(strings.TrimSpace(typ), "text/css") {
			return
		}
		if media, ok := getAttr(e, "media"); ok {
			matches, err := parser.EvaluateMediaQuery(media, medium)
			if err != nil {
				log.Warn("ignored <style> element", zap.String("media", media), zap.Error(err))
				return
			}
			if !matches {
				return
			}
		}
		source := "<style> #" + strconv.Itoa(len(out)+1)
		out = append(out, CSS{sheet: parser.NewParser(log, medium).Parse(elementText(e), validation.Author, source)})
	})
	return out
}

// Root returns the root element.
func (d *Document) Root() *html.Node { return d.root }

// Errors returns the recoverable errors met while parsing the stylesheets
// and the style attributes, and the fatal error, if any.
func (d *Document) Errors() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	return multierr.Append(d.errs, d.fatal)
}

// FontFaceRules returns the valid @font-face rules of all the stylesheets.
func (d *Document) FontFaceRules() []validation.FontFaceDescriptors { return d.fontFaces }

// GetCalculatedStyle returns the style of the element `e`.
// An error wrapping ErrInternal is returned if the selectors are inconsistent;
// the document is then unusable until the root element is restyled.
func (d *Document) GetCalculatedStyle(e *html.Node) (*CalculatedStyle, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.fatal != nil {
		return nil, d.fatal
	}
	out, err := d.style(e)
	if err != nil {
		d.setFatal(err)
		return nil, err
	}
	return out, nil
}

func (d *Document) setFatal(err error) {
	if errors.Is(err, ErrInternal) {
		d.log.Error("styling aborted", zap.Error(err))
		d.fatal = err
	}
}

// isRootElement is true for the document root, and for nodes
// outside of an element tree.
func (d *Document) isRootElement(e *html.Node) bool {
	return e == d.root || parentElement(e) == nil
}

func (d *Document) mapper(e *html.Node) (*Mapper, error) {
	if m := d.mappers[e]; m != nil {
		return m, nil
	}
	if !isElement(e) {
		return nil, fmt.Errorf("can't style a non element node (type %d)", e.Type)
	}
	parent := d.rootMapper
	if !d.isRootElement(e) {
		var err error
		parent, err = d.mapper(parentElement(e))
		if err != nil {
			return nil, err
		}
	}
	m, err := parent.mapChild(d.matcher, e)
	if err != nil {
		return nil, err
	}
	d.mappers[e] = m
	return m, nil
}

// cascade collects the declarations applying to `e`, in increasing
// specificity order.
func (d *Document) cascade(e *html.Node) (*CascadedStyle, error) {
	if cs := d.cascaded[e]; cs != nil {
		return cs, nil
	}
	m, err := d.mapper(e)
	if err != nil {
		return nil, err
	}
	var decls []validation.Declaration
	if d.opts.PresentationalHints {
		decls = append(decls, presentationalHints(d.log, e)...)
	}
	for _, sel := range m.mappedSelectors {
		decls = append(decls, sel.Rule.Declarations...)
	}
	if style, ok := getAttr(e, "style"); ok {
		decls = append(decls, d.inlineStyle(e, style)...)
	}
	cs := newCascadedStyle(decls)
	d.cascaded[e] = cs
	return cs, nil
}

// inlineStyle validates the style attribute of `e`. Its errors are
// recorded and logged once per attribute text.
func (d *Document) inlineStyle(e *html.Node, style string) []validation.Declaration {
	seen, ok := d.inlineSeen[e]
	report := !ok || seen != style
	d.inlineSeen[e] = style

	log := zap.NewNop()
	if report {
		log = d.log.With(zap.String("element", Describe(e)))
	}
	raws, err := parser.ParseStyleAttribute(style)
	if err != nil && report {
		log.Warn("invalid style attribute", zap.Error(err))
		d.errs = multierr.Append(d.errs, err)
	}
	decls, err := validation.PreprocessDeclarations(log, validation.Author, raws)
	if report {
		d.errs = multierr.Append(d.errs, err)
	}
	return decls
}

func (d *Document) style(e *html.Node) (*CalculatedStyle, error) {
	if s := d.styles[e]; s != nil {
		return s, nil
	}
	cs, err := d.cascade(e)
	if err != nil {
		return nil, err
	}
	parent := d.ctx.initial
	if !d.isRootElement(e) {
		parent, err = d.style(parentElement(e))
		if err != nil {
			return nil, err
		}
	}
	out := parent.Derive(cs)
	d.styles[e] = out
	return out, nil
}

// PseudoElementStyle returns the style of the pseudo-element `name`
// (like "before") of `e`, or nil if no rule targets it.
func (d *Document) PseudoElementStyle(e *html.Node, name string) (*CalculatedStyle, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.fatal != nil {
		return nil, d.fatal
	}
	key := pseudoKey{e, name}
	if s, ok := d.pseudoStyles[key]; ok {
		return s, nil
	}
	parent, err := d.style(e)
	if err != nil {
		d.setFatal(err)
		return nil, err
	}
	var out *CalculatedStyle
	if sels := d.mappers[e].pseudoSelectors[name]; len(sels) != 0 {
		var decls []validation.Declaration
		for _, sel := range sels {
			decls = append(decls, sel.Rule.Declarations...)
		}
		out = parent.Derive(newCascadedStyle(decls))
	}
	d.pseudoStyles[key] = out
	return out, nil
}

// Restyle drops the cached styles of `e`, its descendants, and its
// following siblings (with their descendants), which sibling combinators
// may match against `e`. It must be called after a change of the attributes
// of `e`. Restyling the root element also clears a previous internal error.
func (d *Document) Restyle(e *html.Node) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.restyle(e)
}

func (d *Document) restyle(e *html.Node) {
	if d.isRootElement(e) {
		d.fatal = nil
	}
	drop := func(n *html.Node) {
		delete(d.mappers, n)
		delete(d.cascaded, n)
		delete(d.styles, n)
	}
	walkElements(e, drop)
	for s := e.NextSibling; s != nil; s = s.NextSibling {
		walkElements(s, drop)
	}
	for key := range d.pseudoStyles {
		if _, ok := d.styles[key.element]; !ok {
			delete(d.pseudoStyles, key)
		}
	}
}

// setState updates a dynamic state, restyling the element if its
// style depends on it. It returns true if a restyle happened.
func (d *Document) setState(state int, e *html.Node, on bool) bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.matcher.states[state][e] == on {
		return false
	}
	if on {
		d.matcher.states[state][e] = true
	} else {
		delete(d.matcher.states[state], e)
	}
	if !d.matcher.styled[state][e] {
		return false
	}
	d.restyle(e)
	return true
}

func (d *Document) isStyled(state int, e *html.Node) bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.matcher.styled[state][e]
}

// SetHover sets the hover state of `e`, returning true if
// the element has been restyled.
func (d *Document) SetHover(e *html.Node, on bool) bool { return d.setState(hoverState, e, on) }

// SetActive sets the active state of `e`, returning true if
// the element has been restyled.
func (d *Document) SetActive(e *html.Node, on bool) bool { return d.setState(activeState, e, on) }

// SetFocus sets the focus state of `e`, returning true if
// the element has been restyled.
func (d *Document) SetFocus(e *html.Node, on bool) bool { return d.setState(focusState, e, on) }

// SetVisited sets the visited state of the link `e`, returning true if
// the element has been restyled.
func (d *Document) SetVisited(e *html.Node, on bool) bool { return d.setState(visitedState, e, on) }

// IsHoverStyled returns true if a :hover selector has matched `e`.
func (d *Document) IsHoverStyled(e *html.Node) bool { return d.isStyled(hoverState, e) }

// IsActiveStyled returns true if an :active selector has matched `e`.
func (d *Document) IsActiveStyled(e *html.Node) bool { return d.isStyled(activeState, e) }

// IsFocusStyled returns true if a :focus selector has matched `e`.
func (d *Document) IsFocusStyled(e *html.Node) bool { return d.isStyled(focusState, e) }

// IsVisitedStyled returns true if a :visited or :link selector has matched `e`.
func (d *Document) IsVisitedStyled(e *html.Node) bool { return d.isStyled(visitedState, e) }
