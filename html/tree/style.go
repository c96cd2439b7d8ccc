package tree

import (
	"strings"
	"sync"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/text"
	"go.uber.org/zap"
)

// styleContext is shared by all the styles of a document.
type styleContext struct {
	log     *zap.Logger
	metrics text.Metrics

	defaultFontSize pr.Fl

	// parent of the root element style
	initial *CalculatedStyle
	// parent of the page styles
	pageInitial *CalculatedStyle
}

func newStyleContext(log *zap.Logger, metrics text.Metrics, defaultFontSize pr.Fl) *styleContext {
	if metrics == nil {
		metrics = text.NoMetrics{}
	}
	if defaultFontSize <= 0 {
		defaultFontSize = pr.DefaultFontSize
	}
	ctx := &styleContext{log: logger.Or(log), metrics: metrics, defaultFontSize: defaultFontSize}
	ctx.initial = newCalculatedStyle(ctx, nil, emptyCascadedStyle)
	ctx.pageInitial = newCalculatedStyle(ctx, nil, emptyCascadedStyle)
	return ctx
}

// CalculatedStyle gives the computed and used values of the properties
// of one element, pseudo-element or page box.
// Values are resolved lazily, and cached : a CalculatedStyle is safe for
// concurrent use, and is shared by all the elements having the same parent
// style and the same cascaded values.
type CalculatedStyle struct {
	ctx      *styleContext
	parent   *CalculatedStyle
	cascaded *CascadedStyle

	mu sync.Mutex
	// nil for values not yet computed
	values [pr.NumLonghands]pr.Value

	// composite values, only cached when they don't depend
	// on a containing block
	margin, padding *RectSet
	border          *BorderSet
	font            *text.FontSpec

	childrenMu sync.Mutex
	children   map[string]*CalculatedStyle
}

func newCalculatedStyle(ctx *styleContext, parent *CalculatedStyle, cascaded *CascadedStyle) *CalculatedStyle {
	return &CalculatedStyle{
		ctx:      ctx,
		parent:   parent,
		cascaded: cascaded,
		children: make(map[string]*CalculatedStyle),
	}
}

// Derive returns the style of a child with the given cascaded values.
// The result is cached, so that two children with the same cascade
// share the same style.
func (c *CalculatedStyle) Derive(cascaded *CascadedStyle) *CalculatedStyle {
	if cascaded == nil {
		cascaded = emptyCascadedStyle
	}
	c.childrenMu.Lock()
	defer c.childrenMu.Unlock()
	if child := c.children[cascaded.fingerprint]; child != nil {
		return child
	}
	child := newCalculatedStyle(c.ctx, c, cascaded)
	c.children[cascaded.fingerprint] = child
	return child
}

// Parent returns the style the values are inherited from,
// which is nil for the initial style.
func (c *CalculatedStyle) Parent() *CalculatedStyle {
	if c.parent == nil || c.parent.parent == nil {
		return nil
	}
	return c.parent
}

// Cascaded returns the declarations the style is computed from.
func (c *CalculatedStyle) Cascaded() *CascadedStyle { return c.cascaded }

// isRoot is true for the style of the root element.
func (c *CalculatedStyle) isRoot() bool { return c.parent != nil && c.parent == c.ctx.initial }

// ValueOf returns the computed value of the longhand property `p` :
// font relative and absolute lengths are converted to pixels, percentages
// are kept as they are.
// It returns nil for shorthands.
func (c *CalculatedStyle) ValueOf(p pr.KnownProp) pr.Value {
	if p >= pr.NumLonghands {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.get(p)
}

// IsIdent returns true if the computed value of `p` is the keyword `k`.
func (c *CalculatedStyle) IsIdent(p pr.KnownProp, k kw.Keyword) bool {
	return pr.IsKeyword(c.ValueOf(p), k)
}

// Ident returns the keyword of `p`, or 0 if the value is not a keyword.
func (c *CalculatedStyle) Ident(p pr.KnownProp) kw.Keyword {
	k, _ := pr.AsKeyword(c.ValueOf(p))
	return k
}

// get must be called with c.mu held.
func (c *CalculatedStyle) get(p pr.KnownProp) pr.Value {
	if v := c.values[p]; v != nil {
		return v
	}
	v, inherited := c.specified(p)
	if !inherited {
		if fn := computers[p]; fn != nil {
			v = fn(c, p, v)
		}
	}
	c.values[p] = v
	return v
}

// specified applies inheritance and initial values. `inherited` is true
// when the value has been computed by the parent.
// http://www.w3.org/TR/CSS21/cascade.html#specified-value
func (c *CalculatedStyle) specified(p pr.KnownProp) (v pr.Value, inherited bool) {
	decl, declared := c.cascaded.Get(p)
	inherit := false
	switch {
	case !declared:
		inherit = pr.Inherits(p)
		v = pr.InitialValue(p)
	case pr.IsKeyword(decl.Value, kw.Inherit):
		inherit = true
		v = pr.InitialValue(p)
	case pr.IsKeyword(decl.Value, kw.Initial):
		v = pr.InitialValue(p)
	default:
		v = decl.Value
	}
	if inherit && c.parent != nil {
		return c.parent.ValueOf(p), true
	}
	return v, false
}

// FontSize returns the computed font size, in pixels.
func (c *CalculatedStyle) FontSize() pr.Fl {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fontSize()
}

func (c *CalculatedStyle) fontSize() pr.Fl {
	d, _ := c.get(pr.PFontSize).(pr.Dimension)
	return d.Value
}

// Font returns the font selection properties.
func (c *CalculatedStyle) Font() text.FontSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fontSpec()
}

func (c *CalculatedStyle) fontSpec() text.FontSpec {
	if c.font != nil {
		return *c.font
	}
	weight, _ := pr.AsKeyword(c.get(pr.PFontWeight))
	style, _ := pr.AsKeyword(c.get(pr.PFontStyle))
	variant, _ := pr.AsKeyword(c.get(pr.PFontVariant))
	spec := text.FontSpec{
		Families: text.FamilyNames(c.get(pr.PFontFamily)),
		Size:     c.fontSize(),
		Style:    style,
		Variant:  variant,
		Weight:   weight.Weight(),
	}
	c.font = &spec
	return spec
}

// remSize returns the font size of the root style. When computing
// the font size of the root itself, the initial font size is used.
func (c *CalculatedStyle) remSize(forFontSize bool) pr.Fl {
	if c.parent == nil {
		return c.ctx.defaultFontSize
	}
	root := c
	for root.parent.parent != nil {
		root = root.parent
	}
	if root == c {
		if forFontSize {
			return c.parent.FontSize()
		}
		return c.fontSize()
	}
	return root.FontSize()
}

// String returns the non initial computed values, in CSS syntax.
func (c *CalculatedStyle) String() string {
	var chunks []string
	for p := pr.KnownProp(0); p < pr.NumLonghands; p++ {
		v := c.ValueOf(p)
		if v.Fingerprint() == pr.InitialValue(p).Fingerprint() {
			continue
		}
		chunks = append(chunks, p.String()+": "+v.String())
	}
	return strings.Join(chunks, "; ")
}
