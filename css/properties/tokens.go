package properties

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/text/cases"
)

// ErrSyntax is returned for token streams which are not
// a valid CSS value.
var ErrSyntax = errors.New("invalid CSS value syntax")

// Tokenize splits `text` in CSS tokens, with the same lexer used
// by the stylesheet parser.
func Tokenize(text string) ([]css.Token, error) {
	lexer := css.NewLexer(parse.NewInputString(text))
	var out []css.Token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			return out, nil
		}
		out = append(out, css.Token{TokenType: tt, Data: append([]byte(nil), data...)})
	}
}

// ParseValue builds the value components of the CSS text `text`.
func ParseValue(text string) (List, error) {
	tokens, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens builds values from a token stream, as produced by the
// stylesheet parser for a declaration. Hash tokens and color functions
// are turned into Color; whitespace, commas and slashes become separators.
func ParseTokens(tokens []css.Token) (List, error) {
	r := tokenReader{tokens: tokens}
	out, err := r.list(false)
	if err != nil {
		return nil, err
	}
	if r.pos < len(r.tokens) {
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, r.tokens[r.pos].Data)
	}
	return out, nil
}

type tokenReader struct {
	tokens []css.Token
	pos    int
}

func (r *tokenReader) list(inFunction bool) (List, error) {
	var (
		out List
		sep Sep // separator seen since the last item
	)
	add := func(v Value) {
		if len(out) == 0 {
			out = append(out, Item{Value: v})
		} else {
			if sep == SepNone {
				sep = SepSpace
			}
			out = append(out, Item{Value: v, Sep: sep})
		}
		sep = SepNone
	}
	separator := func(s Sep) error {
		if len(out) == 0 {
			return fmt.Errorf("%w: leading separator", ErrSyntax)
		}
		if sep == SepComma || sep == SepSlash {
			return fmt.Errorf("%w: consecutive separators", ErrSyntax)
		}
		sep = s
		return nil
	}
	for r.pos < len(r.tokens) {
		tok := r.tokens[r.pos]
		r.pos++
		data := string(tok.Data)
		switch tok.TokenType {
		case css.WhitespaceToken, css.CommentToken:
			if len(out) != 0 && sep == SepNone {
				sep = SepSpace
			}
		case css.CommaToken:
			if err := separator(SepComma); err != nil {
				return nil, err
			}
		case css.DelimToken:
			if data != "/" {
				return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, data)
			}
			if err := separator(SepSlash); err != nil {
				return nil, err
			}
		case css.RightParenthesisToken:
			if !inFunction {
				return nil, fmt.Errorf("%w: unbalanced parenthesis", ErrSyntax)
			}
			return out, checkTrailing(sep)
		case css.NumberToken:
			f, err := strconv.ParseFloat(data, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
			}
			add(Dimension{Value: Fl(f), Unit: Scalar})
		case css.PercentageToken:
			f, err := strconv.ParseFloat(strings.TrimSuffix(data, "%"), 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
			}
			add(Dimension{Value: Fl(f), Unit: Perc})
		case css.DimensionToken:
			d, err := parseDimension(data)
			if err != nil {
				return nil, err
			}
			add(d)
		case css.IdentToken:
			add(NewIdent(unescape(data)))
		case css.StringToken:
			add(String(unquote(data)))
		case css.URLToken:
			add(URI(urlContent(data)))
		case css.HashToken:
			c, err := parseHashColor(data)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
			}
			add(c)
		case css.FunctionToken:
			name := cases.Fold().String(strings.TrimSuffix(data, "("))
			args, err := r.list(true)
			if err != nil {
				return nil, err
			}
			if name == "url" && len(args) == 1 {
				if s, ok := args[0].Value.(String); ok {
					add(URI(s))
					continue
				}
			}
			c, isColor, err := parseColorFunction(name, args)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrSyntax, err)
			}
			if isColor {
				add(c)
			} else {
				add(Function{Name: name, Args: args})
			}
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, data)
		}
	}
	// an unfinished function is closed at the end of the input
	return out, checkTrailing(sep)
}

func checkTrailing(sep Sep) error {
	if sep == SepComma || sep == SepSlash {
		return fmt.Errorf("%w: trailing separator", ErrSyntax)
	}
	return nil
}

// parseDimension splits a dimension token in its number and unit.
func parseDimension(data string) (Dimension, error) {
	end := numberEnd(data)
	if end == 0 {
		return Dimension{}, fmt.Errorf("%w: invalid dimension %q", ErrSyntax, data)
	}
	f, err := strconv.ParseFloat(data[:end], 32)
	if err != nil {
		return Dimension{}, fmt.Errorf("%w: %s", ErrSyntax, err)
	}
	unitName := cases.Fold().String(unescape(data[end:]))
	unit, ok := unitsByName[unitName]
	if !ok {
		return Dimension{}, fmt.Errorf("%w: unknown unit %q", ErrSyntax, unitName)
	}
	return Dimension{Value: Fl(f), Unit: unit}, nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// numberEnd returns the length of the number prefix of `s`.
func numberEnd(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	// exponent, only if followed by digits: "1em" is not an exponent
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func urlContent(data string) string {
	s := data
	if i := strings.IndexByte(s, '('); i != -1 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return unquote(s)
	}
	return unescape(s)
}

// unquote removes the quotes of a string token and resolves its escapes.
func unquote(s string) string {
	if len(s) >= 1 && (s[0] == '"' || s[0] == '\'') {
		q := s[0]
		s = s[1:]
		if len(s) >= 1 && s[len(s)-1] == q {
			s = s[:len(s)-1]
		}
	}
	return unescape(s)
}

// unescape resolves CSS escapes: \" \\ hex escapes and escaped newlines.
func unescape(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		c = s[i]
		switch {
		case c == '\n':
			// line continuation
		case isHex(c):
			j := i
			for j < len(s) && j-i < 6 && isHex(s[j]) {
				j++
			}
			code, _ := strconv.ParseUint(s[i:j], 16, 32)
			r := rune(code)
			if r == 0 || !utf8.ValidRune(r) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
			if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
				j++
			}
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
