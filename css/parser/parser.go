package parser

import (
	"fmt"

	"github.com/benoitkugler/webstyle/css/selector"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Parser builds stylesheets for a given medium. It is safe for concurrent use.
type Parser struct {
	log    *zap.Logger
	medium string
}

// NewParser returns a parser evaluating @media and @import
// rules against `medium` (like "print" or "screen").
// A nil logger uses the package default.
func NewParser(log *zap.Logger, medium string) *Parser {
	if medium == "" {
		medium = "print"
	}
	return &Parser{
		log:    logger.Or(log).Named("css-parser"),
		medium: cases.Fold().String(medium),
	}
}

// Medium returns the media type used to evaluate media queries.
func (p *Parser) Medium() string { return p.medium }

// Parse parses a whole stylesheet. Errors are recoverable: invalid rules
// and declarations are skipped, logged and stored in Stylesheet.Errors.
func (p *Parser) Parse(text string, origin validation.Origin, source string) *Stylesheet {
	b := sheetBuilder{
		log:            p.log.With(zap.String("source", source)),
		medium:         p.medium,
		gp:             css.NewParser(parse.NewInputString(text), false),
		sheet:          &Stylesheet{Source: source, Origin: origin},
		importsAllowed: true,
	}
	b.ruleList(false)
	b.log.Debug("stylesheet parsed",
		zap.Int("rulesets", len(b.sheet.Rulesets)),
		zap.Int("pages", len(b.sheet.Pages)),
		zap.Int("font-faces", len(b.sheet.FontFaces)))
	return b.sheet
}

type sheetBuilder struct {
	log    *zap.Logger
	medium string
	gp     *css.Parser
	sheet  *Stylesheet

	// @import is only valid before any other rule
	importsAllowed bool
}

func (b *sheetBuilder) addError(err error) {
	b.sheet.Errors = multierr.Append(b.sheet.Errors, err)
}

func (b *sheetBuilder) syntaxError() {
	err := fmt.Errorf("%w: %s", ErrSyntax, b.gp.Err())
	b.log.Warn("invalid CSS", zap.Error(err))
	b.addError(err)
}

// ruleList consumes rules until the end of the input, or until the end
// of the enclosing at-rule if `nested` is true.
func (b *sheetBuilder) ruleList(nested bool) {
	for {
		gt, _, data := b.gp.Next()
		switch gt {
		case css.ErrorGrammar:
			if b.gp.HasParseError() {
				b.syntaxError()
				continue
			}
			return
		case css.EndAtRuleGrammar:
			if nested {
				return
			}
		case css.BeginRulesetGrammar:
			b.importsAllowed = false
			b.ruleset(serialize(b.gp.Values()))
		case css.AtRuleGrammar:
			b.atRule(string(data), copyTokens(b.gp.Values()))
		case css.BeginAtRuleGrammar:
			b.importsAllowed = false
			b.blockAtRule(string(data), copyTokens(b.gp.Values()))
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			// only happens after a syntax error at the top level
			err := fmt.Errorf("%w: unexpected declaration %s", ErrSyntax, data)
			b.log.Warn("invalid CSS", zap.Error(err))
			b.addError(err)
		}
	}
}

func (b *sheetBuilder) ruleset(selectorText string) {
	decls, err := validation.PreprocessDeclarations(b.log, b.sheet.Origin, b.declarations())
	if err != nil {
		b.addError(err)
	}
	rs, err := selector.NewRuleset(selectorText, decls, b.sheet.Origin)
	if err != nil {
		b.log.Warn("ignored ruleset", zap.String("selector", selectorText), zap.Error(err))
		b.addError(err)
		return
	}
	if len(decls) == 0 {
		return
	}
	b.sheet.Rulesets = append(b.sheet.Rulesets, rs)
}

// declarations consumes a declaration block, up to and including its
// closing brace. Nested at-rules are skipped.
func (b *sheetBuilder) declarations() []validation.RawDeclaration {
	var out []validation.RawDeclaration
	for {
		gt, _, data := b.gp.Next()
		switch gt {
		case css.EndRulesetGrammar, css.EndAtRuleGrammar:
			return out
		case css.ErrorGrammar:
			if b.gp.HasParseError() {
				b.syntaxError()
				continue
			}
			return out
		case css.DeclarationGrammar:
			out = append(out, rawDeclaration(string(data), b.gp.Values()))
		case css.BeginAtRuleGrammar:
			b.unsupported(string(data))
			b.skipBlock()
		case css.AtRuleGrammar:
			b.unsupported(string(data))
		}
	}
}

// skipBlock consumes the content of a block, up to and including
// its closing brace.
func (b *sheetBuilder) skipBlock() {
	depth := 0
	for {
		gt, _, _ := b.gp.Next()
		switch gt {
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			if depth == 0 {
				return
			}
			depth--
		case css.ErrorGrammar:
			if !b.gp.HasParseError() {
				return
			}
		}
	}
}

func (b *sheetBuilder) unsupported(name string) {
	err := fmt.Errorf("%w: %s", ErrUnsupportedRule, name)
	b.log.Warn("ignored at-rule", zap.String("rule", name), zap.Error(err))
	b.addError(err)
}

// atRule handles the at-rules without block.
func (b *sheetBuilder) atRule(name string, prelude []css.Token) {
	switch name {
	case "@charset":
	case "@import":
		if !b.importsAllowed {
			err := fmt.Errorf("%w: @import rule not at the beginning of the stylesheet", ErrUnsupportedRule)
			b.log.Warn("ignored at-rule", zap.String("rule", name), zap.Error(err))
			b.addError(err)
			return
		}
		b.importRule(prelude)
	default:
		b.importsAllowed = false
		b.unsupported(name)
	}
}

func (b *sheetBuilder) importRule(prelude []css.Token) {
	tokens := removeWhitespace(prelude)
	if len(tokens) == 0 {
		b.addError(fmt.Errorf("%w: missing @import URL", ErrSyntax))
		return
	}
	var url string
	switch tk := tokens[0]; tk.TokenType {
	case css.URLToken:
		url = urlContent(string(tk.Data))
	case css.StringToken:
		url = unquote(string(tk.Data))
	default:
		err := fmt.Errorf("%w: invalid @import URL %s", ErrSyntax, tk.Data)
		b.log.Warn("ignored at-rule", zap.String("rule", "@import"), zap.Error(err))
		b.addError(err)
		return
	}
	queries, err := parseMediaQuery(prelude[indexOf(prelude, tokens[0])+1:])
	if err != nil {
		b.log.Warn("ignored at-rule", zap.String("rule", "@import"), zap.Error(err))
		b.addError(err)
		return
	}
	if !evaluateMediaQuery(queries, b.medium) {
		return
	}
	b.sheet.Imports = append(b.sheet.Imports, url)
}

// blockAtRule handles the at-rules with a block, the opening brace
// being already consumed.
func (b *sheetBuilder) blockAtRule(name string, prelude []css.Token) {
	switch name {
	case "@media":
		queries, err := parseMediaQuery(prelude)
		if err != nil {
			b.log.Warn("ignored @media rule", zap.Error(err))
			b.addError(err)
			b.skipBlock()
			return
		}
		if !evaluateMediaQuery(queries, b.medium) {
			b.skipBlock()
			return
		}
		b.ruleList(true)
	case "@page":
		b.pageRule(prelude)
	case "@font-face":
		raws := b.declarations()
		descriptors, err := validation.PreprocessFontFaceDescriptors(b.log, raws)
		if err != nil {
			b.addError(err)
		}
		if !descriptors.IsComplete() {
			b.log.Warn("ignored @font-face rule", zap.String("font-family", descriptors.FontFamily))
			return
		}
		b.sheet.FontFaces = append(b.sheet.FontFaces, descriptors)
	default:
		b.unsupported(name)
		b.skipBlock()
	}
}

func copyTokens(tokens []css.Token) []css.Token {
	out := make([]css.Token, len(tokens))
	for i, tk := range tokens {
		out[i] = css.Token{TokenType: tk.TokenType, Data: append([]byte(nil), tk.Data...)}
	}
	return out
}

func indexOf(tokens []css.Token, tk css.Token) int {
	for i := range tokens {
		if tokens[i].TokenType == tk.TokenType && string(tokens[i].Data) == string(tk.Data) {
			return i
		}
	}
	return -1
}
