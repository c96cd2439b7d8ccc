package properties

import (
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
)

// KnownProp is the dense id of a CSS property, used as array index.
// Longhand properties come first, followed by the shorthands.
type KnownProp uint8

const (
	PBackgroundAttachment KnownProp = iota
	PBackgroundColor
	PBackgroundImage
	PBackgroundPosition
	PBackgroundRepeat
	PBackgroundSize
	PBorderCollapse
	PBorderSpacing

	// sides are always in the order top, right, bottom, left

	PBorderTopColor
	PBorderRightColor
	PBorderBottomColor
	PBorderLeftColor
	PBorderTopStyle
	PBorderRightStyle
	PBorderBottomStyle
	PBorderLeftStyle
	PBorderTopWidth
	PBorderRightWidth
	PBorderBottomWidth
	PBorderLeftWidth
	PBorderTopLeftRadius
	PBorderTopRightRadius
	PBorderBottomRightRadius
	PBorderBottomLeftRadius

	PBottom
	PBoxSizing
	PCaptionSide
	PClear
	PClip
	PColor
	PContent
	PCounterIncrement
	PCounterReset
	PCursor
	PDirection
	PDisplay
	PEmptyCells
	PFloat
	PFontFamily
	PFontSize
	PFontStyle
	PFontVariant
	PFontWeight
	PHeight
	PLeft
	PLetterSpacing
	PLineHeight
	PListStyleImage
	PListStylePosition
	PListStyleType

	PMarginTop
	PMarginRight
	PMarginBottom
	PMarginLeft

	PMaxHeight
	PMaxWidth
	PMinHeight
	PMinWidth
	POpacity
	POrphans
	POutlineColor
	POutlineStyle
	POutlineWidth
	POverflow

	PPaddingTop
	PPaddingRight
	PPaddingBottom
	PPaddingLeft

	PPage
	PPageBreakAfter
	PPageBreakBefore
	PPageBreakInside
	PPosition
	PQuotes
	PRight
	PSize
	PTableLayout
	PTextAlign
	PTextDecoration
	PTextIndent
	PTextTransform
	PTop
	PUnicodeBidi
	PVerticalAlign
	PVisibility
	PWhiteSpace
	PWidows
	PWidth
	PWordSpacing
	PWordWrap
	PZIndex

	NumLonghands // number of longhand properties
)

const (
	SBackground KnownProp = NumLonghands + iota
	SBorder
	SBorderTop
	SBorderRight
	SBorderBottom
	SBorderLeft
	SBorderColor
	SBorderStyle
	SBorderWidth
	SBorderRadius
	SFont
	SListStyle
	SMargin
	SOutline
	SPadding

	NumProperties // number of properties, including shorthands
)

// Kind is the validator family of a property.
type Kind uint8

const (
	_                    Kind = iota
	KindIdent                 // one identifier from Keywords
	KindLengthPercOrIdent     // length, percentage or one identifier from Keywords
	KindLengthOrIdent         // length or one identifier from Keywords
	KindColor                 // color or one identifier from Keywords
	KindInteger               // integer or one identifier from Keywords
	KindPositiveInteger       // strictly positive integer
	KindNumber                // number in [0, 1]
	KindLineHeight            // normal, number, length or percentage
	KindFontSize              // length, percentage, absolute or relative size
	KindFontWeight            // normal, bold, bolder, lighter or 100..900
	KindFontFamily            // comma separated family names
	KindURIOrNone             // uri or none
	KindBackgroundPosition    // one or two positions
	KindBackgroundSize        // cover, contain or one or two sizes
	KindBorderSpacing         // one or two lengths
	KindRadius                // one or two lengths or percentages
	KindClip                  // auto or rect()
	KindContent               // normal, none or content items
	KindCounter               // none or (counter name, integer) pairs
	KindQuotes                // none or pairs of strings
	KindCursor                // uris followed by a cursor keyword
	KindPage                  // auto or a page name
	KindSize                  // page size
	KindTextDecoration        // none or a set of lines
	KindShorthand             // expanded to longhands
)

var (
	borderStyles = []kw.Keyword{
		kw.None, kw.Hidden, kw.Dotted, kw.Dashed, kw.Solid,
		kw.Double, kw.Groove, kw.Ridge, kw.Inset, kw.Outset,
	}
	outlineStyles = []kw.Keyword{
		kw.None, kw.Dotted, kw.Dashed, kw.Solid,
		kw.Double, kw.Groove, kw.Ridge, kw.Inset, kw.Outset,
	}
	borderWidths  = []kw.Keyword{kw.Thin, kw.Medium, kw.Thick}
	borderColors  = []kw.Keyword{kw.Currentcolor}
	pageBreaks    = []kw.Keyword{kw.Auto, kw.Always, kw.Avoid, kw.Left, kw.Right}
	displayValues = []kw.Keyword{
		kw.Inline, kw.Block, kw.ListItem, kw.RunIn, kw.InlineBlock,
		kw.Table, kw.InlineTable, kw.TableRowGroup, kw.TableHeaderGroup,
		kw.TableFooterGroup, kw.TableRow, kw.TableColumnGroup, kw.TableColumn,
		kw.TableCell, kw.TableCaption, kw.Flex, kw.InlineFlex, kw.None,
	}
	listStyleTypes = []kw.Keyword{
		kw.Disc, kw.Circle, kw.Square, kw.Decimal, kw.DecimalLeadingZero,
		kw.LowerRoman, kw.UpperRoman, kw.LowerGreek, kw.LowerLatin, kw.UpperLatin,
		kw.Armenian, kw.Georgian, kw.LowerAlpha, kw.UpperAlpha, kw.None,
	}
	verticalAligns = []kw.Keyword{
		kw.Baseline, kw.Sub, kw.Super, kw.Top, kw.TextTop,
		kw.Middle, kw.Bottom, kw.TextBottom,
	}
	cursors = []kw.Keyword{
		kw.Auto, kw.Crosshair, kw.Default, kw.Pointer, kw.Move,
		kw.EResize, kw.NeResize, kw.NwResize, kw.NResize, kw.SeResize,
		kw.SwResize, kw.SResize, kw.WResize, kw.Text, kw.Wait, kw.Help, kw.Progress,
	}
)

// descriptors is the static property table, indexed by KnownProp.
// Initial values are given as CSS text and parsed once, see InitRegistry.
var descriptors = [NumProperties]Descriptor{
	PBackgroundAttachment: {Name: "background-attachment", Initial: "scroll", Kind: KindIdent, Keywords: []kw.Keyword{kw.Scroll, kw.Fixed}},
	PBackgroundColor:      {Name: "background-color", Initial: "transparent", Kind: KindColor, Keywords: borderColors},
	PBackgroundImage:      {Name: "background-image", Initial: "none", Kind: KindURIOrNone},
	PBackgroundPosition:   {Name: "background-position", Initial: "0% 0%", Kind: KindBackgroundPosition},
	PBackgroundRepeat:     {Name: "background-repeat", Initial: "repeat", Kind: KindIdent, Keywords: []kw.Keyword{kw.Repeat, kw.RepeatX, kw.RepeatY, kw.NoRepeat, kw.Space, kw.Round}},
	PBackgroundSize:       {Name: "background-size", Initial: "auto", Kind: KindBackgroundSize},
	PBorderCollapse:       {Name: "border-collapse", Initial: "separate", Kind: KindIdent, Keywords: []kw.Keyword{kw.Collapse, kw.Separate}, Inherited: true},
	PBorderSpacing:        {Name: "border-spacing", Initial: "0", Kind: KindBorderSpacing, Inherited: true},

	PBorderTopColor:          {Name: "border-top-color", Initial: "currentcolor", Kind: KindColor, Keywords: borderColors},
	PBorderRightColor:        {Name: "border-right-color", Initial: "currentcolor", Kind: KindColor, Keywords: borderColors},
	PBorderBottomColor:       {Name: "border-bottom-color", Initial: "currentcolor", Kind: KindColor, Keywords: borderColors},
	PBorderLeftColor:         {Name: "border-left-color", Initial: "currentcolor", Kind: KindColor, Keywords: borderColors},
	PBorderTopStyle:          {Name: "border-top-style", Initial: "none", Kind: KindIdent, Keywords: borderStyles},
	PBorderRightStyle:        {Name: "border-right-style", Initial: "none", Kind: KindIdent, Keywords: borderStyles},
	PBorderBottomStyle:       {Name: "border-bottom-style", Initial: "none", Kind: KindIdent, Keywords: borderStyles},
	PBorderLeftStyle:         {Name: "border-left-style", Initial: "none", Kind: KindIdent, Keywords: borderStyles},
	PBorderTopWidth:          {Name: "border-top-width", Initial: "medium", Kind: KindLengthOrIdent, Keywords: borderWidths},
	PBorderRightWidth:        {Name: "border-right-width", Initial: "medium", Kind: KindLengthOrIdent, Keywords: borderWidths},
	PBorderBottomWidth:       {Name: "border-bottom-width", Initial: "medium", Kind: KindLengthOrIdent, Keywords: borderWidths},
	PBorderLeftWidth:         {Name: "border-left-width", Initial: "medium", Kind: KindLengthOrIdent, Keywords: borderWidths},
	PBorderTopLeftRadius:     {Name: "border-top-left-radius", Initial: "0", Kind: KindRadius},
	PBorderTopRightRadius:    {Name: "border-top-right-radius", Initial: "0", Kind: KindRadius},
	PBorderBottomRightRadius: {Name: "border-bottom-right-radius", Initial: "0", Kind: KindRadius},
	PBorderBottomLeftRadius:  {Name: "border-bottom-left-radius", Initial: "0", Kind: KindRadius},

	PBottom:            {Name: "bottom", Initial: "auto", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},
	PBoxSizing:         {Name: "box-sizing", Initial: "content-box", Kind: KindIdent, Keywords: []kw.Keyword{kw.ContentBox, kw.BorderBox}},
	PCaptionSide:       {Name: "caption-side", Initial: "top", Kind: KindIdent, Keywords: []kw.Keyword{kw.Top, kw.Bottom}, Inherited: true},
	PClear:             {Name: "clear", Initial: "none", Kind: KindIdent, Keywords: []kw.Keyword{kw.None, kw.Left, kw.Right, kw.Both}},
	PClip:              {Name: "clip", Initial: "auto", Kind: KindClip},
	PColor:             {Name: "color", Initial: "black", Kind: KindColor, Keywords: []kw.Keyword{kw.Currentcolor}, Inherited: true},
	PContent:           {Name: "content", Initial: "normal", Kind: KindContent},
	PCounterIncrement:  {Name: "counter-increment", Initial: "none", Kind: KindCounter},
	PCounterReset:      {Name: "counter-reset", Initial: "none", Kind: KindCounter},
	PCursor:            {Name: "cursor", Initial: "auto", Kind: KindCursor, Keywords: cursors, Inherited: true},
	PDirection:         {Name: "direction", Initial: "ltr", Kind: KindIdent, Keywords: []kw.Keyword{kw.Ltr, kw.Rtl}, Inherited: true},
	PDisplay:           {Name: "display", Initial: "inline", Kind: KindIdent, Keywords: displayValues},
	PEmptyCells:        {Name: "empty-cells", Initial: "show", Kind: KindIdent, Keywords: []kw.Keyword{kw.Show, kw.Hide}, Inherited: true},
	PFloat:             {Name: "float", Initial: "none", Kind: KindIdent, Keywords: []kw.Keyword{kw.Left, kw.Right, kw.None}},
	PFontFamily:        {Name: "font-family", Initial: "serif", Kind: KindFontFamily, Inherited: true},
	PFontSize:          {Name: "font-size", Initial: "medium", Kind: KindFontSize, Inherited: true},
	PFontStyle:         {Name: "font-style", Initial: "normal", Kind: KindIdent, Keywords: []kw.Keyword{kw.Normal, kw.Italic, kw.Oblique}, Inherited: true},
	PFontVariant:       {Name: "font-variant", Initial: "normal", Kind: KindIdent, Keywords: []kw.Keyword{kw.Normal, kw.SmallCaps}, Inherited: true},
	PFontWeight:        {Name: "font-weight", Initial: "normal", Kind: KindFontWeight, Inherited: true},
	PHeight:            {Name: "height", Initial: "auto", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}},
	PLeft:              {Name: "left", Initial: "auto", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},
	PLetterSpacing:     {Name: "letter-spacing", Initial: "normal", Kind: KindLengthOrIdent, Keywords: []kw.Keyword{kw.Normal}, Negative: true, Inherited: true},
	PLineHeight:        {Name: "line-height", Initial: "normal", Kind: KindLineHeight, Inherited: true},
	PListStyleImage:    {Name: "list-style-image", Initial: "none", Kind: KindURIOrNone, Inherited: true},
	PListStylePosition: {Name: "list-style-position", Initial: "outside", Kind: KindIdent, Keywords: []kw.Keyword{kw.Inside, kw.Outside}, Inherited: true},
	PListStyleType:     {Name: "list-style-type", Initial: "disc", Kind: KindIdent, Keywords: listStyleTypes, Inherited: true},

	PMarginTop:    {Name: "margin-top", Initial: "0", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},
	PMarginRight:  {Name: "margin-right", Initial: "0", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},
	PMarginBottom: {Name: "margin-bottom", Initial: "0", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},
	PMarginLeft:   {Name: "margin-left", Initial: "0", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},

	PMaxHeight:     {Name: "max-height", Initial: "none", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.None}},
	PMaxWidth:      {Name: "max-width", Initial: "none", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.None}},
	PMinHeight:     {Name: "min-height", Initial: "0", Kind: KindLengthPercOrIdent},
	PMinWidth:      {Name: "min-width", Initial: "0", Kind: KindLengthPercOrIdent},
	POpacity:       {Name: "opacity", Initial: "1", Kind: KindNumber},
	POrphans:       {Name: "orphans", Initial: "2", Kind: KindPositiveInteger, Inherited: true},
	POutlineColor:  {Name: "outline-color", Initial: "invert", Kind: KindColor, Keywords: []kw.Keyword{kw.Invert, kw.Currentcolor}},
	POutlineStyle:  {Name: "outline-style", Initial: "none", Kind: KindIdent, Keywords: outlineStyles},
	POutlineWidth:  {Name: "outline-width", Initial: "medium", Kind: KindLengthOrIdent, Keywords: borderWidths},
	POverflow:      {Name: "overflow", Initial: "visible", Kind: KindIdent, Keywords: []kw.Keyword{kw.Visible, kw.Hidden, kw.Scroll, kw.Auto}},
	PPaddingTop:    {Name: "padding-top", Initial: "0", Kind: KindLengthPercOrIdent},
	PPaddingRight:  {Name: "padding-right", Initial: "0", Kind: KindLengthPercOrIdent},
	PPaddingBottom: {Name: "padding-bottom", Initial: "0", Kind: KindLengthPercOrIdent},
	PPaddingLeft:   {Name: "padding-left", Initial: "0", Kind: KindLengthPercOrIdent},

	PPage:            {Name: "page", Initial: "auto", Kind: KindPage},
	PPageBreakAfter:  {Name: "page-break-after", Initial: "auto", Kind: KindIdent, Keywords: pageBreaks},
	PPageBreakBefore: {Name: "page-break-before", Initial: "auto", Kind: KindIdent, Keywords: pageBreaks},
	PPageBreakInside: {Name: "page-break-inside", Initial: "auto", Kind: KindIdent, Keywords: []kw.Keyword{kw.Auto, kw.Avoid}},
	PPosition:        {Name: "position", Initial: "static", Kind: KindIdent, Keywords: []kw.Keyword{kw.Static, kw.Relative, kw.Absolute, kw.Fixed}},
	PQuotes:          {Name: "quotes", Initial: "none", Kind: KindQuotes, Inherited: true},
	PRight:           {Name: "right", Initial: "auto", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},
	PSize:            {Name: "size", Initial: "auto", Kind: KindSize},
	PTableLayout:     {Name: "table-layout", Initial: "auto", Kind: KindIdent, Keywords: []kw.Keyword{kw.Auto, kw.Fixed}},
	PTextAlign:       {Name: "text-align", Initial: "start", Kind: KindIdent, Keywords: []kw.Keyword{kw.Left, kw.Right, kw.Center, kw.Justify, kw.Start, kw.End}, Inherited: true},
	PTextDecoration:  {Name: "text-decoration", Initial: "none", Kind: KindTextDecoration},
	PTextIndent:      {Name: "text-indent", Initial: "0", Kind: KindLengthPercOrIdent, Negative: true, Inherited: true},
	PTextTransform:   {Name: "text-transform", Initial: "none", Kind: KindIdent, Keywords: []kw.Keyword{kw.Capitalize, kw.Uppercase, kw.Lowercase, kw.None}, Inherited: true},
	PTop:             {Name: "top", Initial: "auto", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}, Negative: true},
	PUnicodeBidi:     {Name: "unicode-bidi", Initial: "normal", Kind: KindIdent, Keywords: []kw.Keyword{kw.Normal, kw.Embed, kw.BidiOverride}},
	PVerticalAlign:   {Name: "vertical-align", Initial: "baseline", Kind: KindLengthPercOrIdent, Keywords: verticalAligns, Negative: true},
	PVisibility:      {Name: "visibility", Initial: "visible", Kind: KindIdent, Keywords: []kw.Keyword{kw.Visible, kw.Hidden, kw.Collapse}, Inherited: true},
	PWhiteSpace:      {Name: "white-space", Initial: "normal", Kind: KindIdent, Keywords: []kw.Keyword{kw.Normal, kw.Pre, kw.Nowrap, kw.PreWrap, kw.PreLine}, Inherited: true},
	PWidows:          {Name: "widows", Initial: "2", Kind: KindPositiveInteger, Inherited: true},
	PWidth:           {Name: "width", Initial: "auto", Kind: KindLengthPercOrIdent, Keywords: []kw.Keyword{kw.Auto}},
	PWordSpacing:     {Name: "word-spacing", Initial: "normal", Kind: KindLengthOrIdent, Keywords: []kw.Keyword{kw.Normal}, Negative: true, Inherited: true},
	PWordWrap:        {Name: "word-wrap", Initial: "normal", Kind: KindIdent, Keywords: []kw.Keyword{kw.Normal, kw.BreakWord}, Inherited: true},
	PZIndex:          {Name: "z-index", Initial: "auto", Kind: KindInteger, Keywords: []kw.Keyword{kw.Auto}, Negative: true},

	SBackground:   {Name: "background", Kind: KindShorthand, Longhands: []KnownProp{PBackgroundColor, PBackgroundImage, PBackgroundRepeat, PBackgroundAttachment, PBackgroundPosition}},
	SBorder:       {Name: "border", Kind: KindShorthand, Longhands: append(append(append([]KnownProp(nil), BorderWidths[:]...), BorderStyles[:]...), BorderColors[:]...)},
	SBorderTop:    {Name: "border-top", Kind: KindShorthand, Longhands: []KnownProp{PBorderTopWidth, PBorderTopStyle, PBorderTopColor}},
	SBorderRight:  {Name: "border-right", Kind: KindShorthand, Longhands: []KnownProp{PBorderRightWidth, PBorderRightStyle, PBorderRightColor}},
	SBorderBottom: {Name: "border-bottom", Kind: KindShorthand, Longhands: []KnownProp{PBorderBottomWidth, PBorderBottomStyle, PBorderBottomColor}},
	SBorderLeft:   {Name: "border-left", Kind: KindShorthand, Longhands: []KnownProp{PBorderLeftWidth, PBorderLeftStyle, PBorderLeftColor}},
	SBorderColor:  {Name: "border-color", Kind: KindShorthand, Longhands: BorderColors[:]},
	SBorderStyle:  {Name: "border-style", Kind: KindShorthand, Longhands: BorderStyles[:]},
	SBorderWidth:  {Name: "border-width", Kind: KindShorthand, Longhands: BorderWidths[:]},
	SBorderRadius: {Name: "border-radius", Kind: KindShorthand, Longhands: BorderRadii[:]},
	SFont:         {Name: "font", Kind: KindShorthand, Longhands: []KnownProp{PFontStyle, PFontVariant, PFontWeight, PFontSize, PLineHeight, PFontFamily}},
	SListStyle:    {Name: "list-style", Kind: KindShorthand, Longhands: []KnownProp{PListStyleType, PListStylePosition, PListStyleImage}},
	SMargin:       {Name: "margin", Kind: KindShorthand, Longhands: Margins[:]},
	SOutline:      {Name: "outline", Kind: KindShorthand, Longhands: []KnownProp{POutlineColor, POutlineStyle, POutlineWidth}},
	SPadding:      {Name: "padding", Kind: KindShorthand, Longhands: Paddings[:]},
}

// Side groups, in the order top, right, bottom, left.
// Radii are in the order top-left, top-right, bottom-right, bottom-left.
var (
	Margins      = [4]KnownProp{PMarginTop, PMarginRight, PMarginBottom, PMarginLeft}
	Paddings     = [4]KnownProp{PPaddingTop, PPaddingRight, PPaddingBottom, PPaddingLeft}
	BorderColors = [4]KnownProp{PBorderTopColor, PBorderRightColor, PBorderBottomColor, PBorderLeftColor}
	BorderStyles = [4]KnownProp{PBorderTopStyle, PBorderRightStyle, PBorderBottomStyle, PBorderLeftStyle}
	BorderWidths = [4]KnownProp{PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth}
	BorderRadii  = [4]KnownProp{PBorderTopLeftRadius, PBorderTopRightRadius, PBorderBottomRightRadius, PBorderBottomLeftRadius}
)
