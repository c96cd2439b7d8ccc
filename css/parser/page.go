package parser

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

var marginBoxes = map[string]bool{
	"top-left-corner": true, "top-left": true, "top-center": true, "top-right": true, "top-right-corner": true,
	"bottom-left-corner": true, "bottom-left": true, "bottom-center": true, "bottom-right": true, "bottom-right-corner": true,
	"left-top": true, "left-middle": true, "left-bottom": true,
	"right-top": true, "right-middle": true, "right-bottom": true,
}

// See https://drafts.csswg.org/css-page-3/#syntax-page-selector
func parsePageSelectors(prelude []css.Token) ([]PageSelector, error) {
	tokens := removeWhitespace(prelude)
	if len(tokens) == 0 {
		return []PageSelector{{}}, nil
	}

	var out []PageSelector
	for _, part := range splitOnComma(tokens) {
		if len(part) == 0 {
			return nil, fmt.Errorf("%w: empty selector in %s", ErrInvalidPageSelector, serialize(prelude))
		}
		var sel PageSelector
		if part[0].TokenType == css.IdentToken {
			sel.Name = string(part[0].Data)
			sel.Specificity[0] = 1
			part = part[1:]
		}
		for len(part) != 0 {
			if len(part) < 2 || part[0].TokenType != css.ColonToken || part[1].TokenType != css.IdentToken {
				return nil, fmt.Errorf("%w: %s", ErrInvalidPageSelector, serialize(prelude))
			}
			switch pseudoClass := lower(part[1].Data); pseudoClass {
			case "left", "right":
				if sel.Side != "" && sel.Side != pseudoClass {
					return nil, fmt.Errorf("%w: page can't be both left and right", ErrInvalidPageSelector)
				}
				sel.Side = pseudoClass
				sel.Specificity[2]++
			case "first":
				sel.First = true
				sel.Specificity[1]++
			case "blank":
				sel.Blank = true
				sel.Specificity[1]++
			default:
				return nil, fmt.Errorf("%w: unknown page pseudo-class :%s", ErrInvalidPageSelector, pseudoClass)
			}
			part = part[2:]
		}
		out = append(out, sel)
	}
	return out, nil
}

// pageRule consumes the block of a @page rule, including
// its margin at-rules.
func (b *sheetBuilder) pageRule(prelude []css.Token) {
	selectors, err := parsePageSelectors(prelude)
	if err != nil {
		b.log.Warn("ignored @page rule", zap.Error(err))
		b.addError(err)
		b.skipBlock()
		return
	}

	var (
		raws    []validation.RawDeclaration
		margins []PageRule
	)
loop:
	for {
		gt, _, data := b.gp.Next()
		switch gt {
		case css.EndAtRuleGrammar:
			break loop
		case css.ErrorGrammar:
			if b.gp.HasParseError() {
				b.syntaxError()
				continue
			}
			break loop
		case css.DeclarationGrammar:
			raws = append(raws, rawDeclaration(string(data), b.gp.Values()))
		case css.BeginAtRuleGrammar:
			name := strings.TrimPrefix(string(data), "@")
			text := b.collectBlock()
			if !marginBoxes[name] {
				b.unsupported(string(data))
				continue
			}
			margins = append(margins, b.marginBox(name, text))
		case css.AtRuleGrammar:
			b.unsupported(string(data))
		}
	}

	decls, err := validation.PreprocessDeclarations(b.log, b.sheet.Origin, raws)
	if err != nil {
		b.addError(err)
	}
	for _, sel := range selectors {
		b.sheet.Pages = append(b.sheet.Pages, PageRule{Selector: sel, Declarations: decls})
		for _, margin := range margins {
			margin.Selector = sel
			b.sheet.Pages = append(b.sheet.Pages, margin)
		}
	}
}

// collectBlock returns the raw text of an unknown at-rule block,
// up to its closing brace (excluded).
func (b *sheetBuilder) collectBlock() string {
	var text strings.Builder
	for {
		gt, _, data := b.gp.Next()
		switch gt {
		case css.TokenGrammar:
			text.Write(data)
		case css.ErrorGrammar:
			if b.gp.HasParseError() {
				continue
			}
			return text.String()
		case css.EndAtRuleGrammar:
			return text.String()
		}
	}
}

func (b *sheetBuilder) marginBox(name, text string) PageRule {
	raws, err := ParseDeclarations(text)
	if err != nil {
		b.log.Warn("invalid CSS", zap.String("margin-box", name), zap.Error(err))
		b.addError(err)
	}
	decls, err := validation.PreprocessDeclarations(b.log, b.sheet.Origin, raws)
	if err != nil {
		b.addError(err)
	}
	return PageRule{MarginBox: name, Declarations: decls}
}
