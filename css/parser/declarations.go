package parser

import (
	"fmt"
	"strings"

	douceur "github.com/aymerick/douceur/parser"
	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// rawDeclaration copies the tokens of a declaration (the parser
// reuses its buffer) and strips a trailing !important.
func rawDeclaration(name string, values []css.Token) validation.RawDeclaration {
	tokens := copyTokens(values)
	n := len(tokens)
	for n > 0 && tokens[n-1].TokenType == css.WhitespaceToken {
		n--
	}
	important := false
	if n >= 2 && tokens[n-1].TokenType == css.IdentToken && lower(tokens[n-1].Data) == "important" &&
		tokens[n-2].TokenType == css.DelimToken && string(tokens[n-2].Data) == "!" {
		important = true
		n -= 2
	}
	return validation.RawDeclaration{Name: name, Tokens: tokens[:n], Important: important}
}

// ParseDeclarations splits a declaration list, like the content
// of a block, without validating the values.
func ParseDeclarations(text string) ([]validation.RawDeclaration, error) {
	gp := css.NewParser(parse.NewInputString(text), true)
	var (
		out  []validation.RawDeclaration
		errs []string
	)
	for {
		gt, _, data := gp.Next()
		switch gt {
		case css.ErrorGrammar:
			if gp.HasParseError() {
				errs = append(errs, gp.Err().Error())
				continue
			}
			if len(errs) != 0 {
				return out, fmt.Errorf("%w: %s", ErrSyntax, strings.Join(errs, "; "))
			}
			return out, nil
		case css.DeclarationGrammar:
			out = append(out, rawDeclaration(string(data), gp.Values()))
		}
	}
}

// ParseStyleAttribute splits the content of a `style` attribute.
// Text rejected by the attribute grammar is split again with the
// error-recovering ParseDeclarations, and the syntax error is returned
// with what could be salvaged.
func ParseStyleAttribute(text string) ([]validation.RawDeclaration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := douceur.ParseDeclarations(text)
	if err != nil {
		out, _ := ParseDeclarations(text)
		return out, fmt.Errorf("%w: style attribute: %s", ErrSyntax, err)
	}
	out := make([]validation.RawDeclaration, 0, len(decls))
	for _, decl := range decls {
		tokens, err := pr.Tokenize(decl.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: style attribute: %s", ErrSyntax, err)
		}
		out = append(out, validation.RawDeclaration{
			Name:      lower([]byte(strings.TrimSpace(decl.Property))),
			Tokens:    tokens,
			Important: decl.Important,
		})
	}
	return out, nil
}

func tokenize(text string) ([]css.Token, error) {
	tokens, err := pr.Tokenize(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
	}
	return tokens, nil
}

// urlContent returns the address in a `url(...)` token.
func urlContent(data string) string {
	start, end := strings.IndexByte(data, '('), strings.LastIndexByte(data, ')')
	if start == -1 || end < start {
		return data
	}
	return unquote(strings.TrimSpace(data[start+1 : end]))
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
