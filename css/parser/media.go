package parser

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/text/cases"
)

// mediaQuery is one element of a media query list, like `not print`.
type mediaQuery struct {
	mediaType string
	negated   bool
	// features like `(min-width: 10cm)`. They can't be evaluated
	// without a viewport, so a query using them never matches.
	features []string
}

func (mq mediaQuery) String() string {
	var chunks []string
	if mq.negated {
		chunks = append(chunks, "not")
	}
	if mq.mediaType != "" {
		chunks = append(chunks, mq.mediaType)
	}
	for _, f := range mq.features {
		if len(chunks) != 0 {
			chunks = append(chunks, "and")
		}
		chunks = append(chunks, f)
	}
	return strings.Join(chunks, " ")
}

func (mq mediaQuery) matches(medium string) bool {
	if len(mq.features) != 0 {
		return false
	}
	ok := mq.mediaType == "all" || mq.mediaType == medium
	if mq.negated {
		return !ok
	}
	return ok
}

// evaluateMediaQuery returns true if one query of the list matches
// `medium`. An empty list matches everything.
func evaluateMediaQuery(queries []mediaQuery, medium string) bool {
	if len(queries) == 0 {
		return true
	}
	for _, q := range queries {
		if q.matches(medium) {
			return true
		}
	}
	return false
}

// EvaluateMediaQuery parses the media query list `query` and evaluates it
// against `medium`.
func EvaluateMediaQuery(query, medium string) (bool, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return false, err
	}
	queries, err := parseMediaQuery(tokens)
	if err != nil {
		return false, err
	}
	return evaluateMediaQuery(queries, cases.Fold().String(medium)), nil
}

// parseMediaQuery supports media types, with the `not` and `only`
// prefixes and `and (feature)` suffixes.
func parseMediaQuery(tokens []css.Token) ([]mediaQuery, error) {
	tokens = removeWhitespace(tokens)
	if len(tokens) == 0 {
		return nil, nil
	}
	var out []mediaQuery
	for _, part := range splitOnComma(tokens) {
		mq, err := parseOneMediaQuery(part)
		if err != nil {
			return nil, err
		}
		out = append(out, mq)
	}
	return out, nil
}

func parseOneMediaQuery(tokens []css.Token) (mediaQuery, error) {
	var mq mediaQuery
	if len(tokens) == 0 {
		return mq, fmt.Errorf("%w: empty query", ErrInvalidMediaQuery)
	}
	if tokens[0].TokenType == css.IdentToken {
		switch lower(tokens[0].Data) {
		case "not":
			mq.negated = true
			tokens = tokens[1:]
		case "only":
			tokens = tokens[1:]
		}
	}
	if len(tokens) != 0 && tokens[0].TokenType == css.IdentToken {
		mq.mediaType = lower(tokens[0].Data)
		tokens = tokens[1:]
	} else if mq.negated || len(tokens) == 0 || tokens[0].TokenType != css.LeftParenthesisToken {
		return mq, fmt.Errorf("%w: expected a media type, got %s", ErrInvalidMediaQuery, serialize(tokens))
	}

	expectAnd := mq.mediaType != ""
	for len(tokens) != 0 {
		if expectAnd {
			if tokens[0].TokenType != css.IdentToken || lower(tokens[0].Data) != "and" {
				return mq, fmt.Errorf("%w: expected 'and', got %s", ErrInvalidMediaQuery, serialize(tokens))
			}
			tokens = tokens[1:]
		}
		expectAnd = true
		end := closingParenthesis(tokens)
		if end == -1 {
			return mq, fmt.Errorf("%w: expected a media feature, got %s", ErrInvalidMediaQuery, serialize(tokens))
		}
		mq.features = append(mq.features, serialize(tokens[:end+1]))
		tokens = tokens[end+1:]
	}
	if mq.mediaType == "" {
		mq.mediaType = "all"
	}
	return mq, nil
}

// closingParenthesis returns the index of the parenthesis closing tokens[0],
// or -1 if tokens does not start with a parenthesized block.
func closingParenthesis(tokens []css.Token) int {
	if len(tokens) == 0 || tokens[0].TokenType != css.LeftParenthesisToken {
		return -1
	}
	depth := 0
	for i, tk := range tokens {
		switch tk.TokenType {
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func lower(b []byte) string { return cases.Fold().String(string(b)) }

func removeWhitespace(tokens []css.Token) []css.Token {
	out := make([]css.Token, 0, len(tokens))
	for _, tk := range tokens {
		if tk.TokenType == css.WhitespaceToken || tk.TokenType == css.CommentToken {
			continue
		}
		out = append(out, tk)
	}
	return out
}

func splitOnComma(tokens []css.Token) [][]css.Token {
	var (
		out     [][]css.Token
		current []css.Token
	)
	for _, tk := range tokens {
		if tk.TokenType == css.CommaToken {
			out = append(out, current)
			current = nil
			continue
		}
		current = append(current, tk)
	}
	return append(out, current)
}

// serialize joins the raw text of the tokens.
func serialize(tokens []css.Token) string {
	var b strings.Builder
	for _, tk := range tokens {
		b.Write(tk.Data)
	}
	return b.String()
}
