package validation

import (
	"fmt"
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Validate descriptors, used for @font-face rules.
// See https://www.w3.org/TR/css-fonts-3/#font-resources.

// FontSource is one entry of the `src` descriptor: either
// an URL (with an optional format hint) or a local font name.
type FontSource struct {
	URL    string
	Local  string
	Format string
}

// FontFaceDescriptors stores a validated @font-face rule.
type FontFaceDescriptors struct {
	FontFamily   string
	Src          []FontSource
	FontStyle    kw.Keyword // Normal, Italic or Oblique
	FontWeight   kw.Keyword // Normal, Bold or W100 ... W900
	FontStretch  string
	UnicodeRange []string
}

type fontFaceDescriptorParser = func(tokens []css.Token, out *FontFaceDescriptors) error

var fontFaceDescriptors = map[string]fontFaceDescriptorParser{
	"font-family":   fontFamilyDescriptor,
	"src":           src,
	"font-style":    fontStyleDescriptor,
	"font-weight":   fontWeightDescriptor,
	"font-stretch":  fontStretchDescriptor,
	"unicode-range": unicodeRangeDescriptor,
}

func descriptorValues(tokens []css.Token) (pr.List, error) {
	values, err := pr.ParseTokens(tokens)
	if err != nil {
		return nil, invalid(ErrInvalidValue, "%s", err)
	}
	if len(values) == 0 {
		return nil, invalid(ErrValueCountMismatch, "empty value")
	}
	return values, nil
}

// familyName accepts a string or a sequence of identifiers.
func familyName(values pr.List) (string, error) {
	if len(values) == 1 {
		if s, ok := values[0].Value.(pr.String); ok {
			return string(s), nil
		}
	}
	names := make([]string, len(values))
	for i, it := range values {
		id, ok := it.Value.(pr.Ident)
		if !ok || (i != 0 && it.Sep != pr.SepSpace) {
			return "", invalid(ErrWrongCategory, "invalid font family %s", values)
		}
		names[i] = id.Name
	}
	return strings.Join(names, " "), nil
}

func fontFamilyDescriptor(tokens []css.Token, out *FontFaceDescriptors) error {
	values, err := descriptorValues(tokens)
	if err != nil {
		return err
	}
	out.FontFamily, err = familyName(values)
	return err
}

func src(tokens []css.Token, out *FontFaceDescriptors) error {
	values, err := descriptorValues(tokens)
	if err != nil {
		return err
	}
	var sources []FontSource
	for _, part := range values.Split(pr.SepComma) {
		if len(part) == 0 || len(part) > 2 {
			return invalid(ErrValueCountMismatch, "invalid src %s", part)
		}
		var source FontSource
		switch v := part[0].Value.(type) {
		case pr.URI:
			source.URL = string(v)
		case pr.Function:
			if v.Name != "local" {
				return invalid(ErrInvalidValue, "unexpected %s", v)
			}
			source.Local, err = familyName(v.Args)
			if err != nil {
				return err
			}
		default:
			return invalid(ErrWrongCategory, "unexpected %s", v)
		}
		if len(part) == 2 {
			fn, ok := part[1].Value.(pr.Function)
			if !ok || fn.Name != "format" || source.URL == "" || len(fn.Args) == 0 {
				return invalid(ErrInvalidValue, "invalid format hint %s", part[1].Value)
			}
			if s, ok := fn.Args[0].Value.(pr.String); ok {
				source.Format = string(s)
			} else {
				source.Format = fn.Args[0].Value.String()
			}
		}
		sources = append(sources, source)
	}
	out.Src = append(out.Src, sources...)
	return nil
}

func singleKeyword(tokens []css.Token) (pr.Ident, error) {
	values, err := descriptorValues(tokens)
	if err != nil {
		return pr.Ident{}, err
	}
	v, err := single(values)
	if err != nil {
		return pr.Ident{}, err
	}
	id, ok := v.(pr.Ident)
	if !ok {
		return pr.Ident{}, invalid(ErrWrongCategory, "expected keyword, got %s", v)
	}
	return id, nil
}

func fontStyleDescriptor(tokens []css.Token, out *FontFaceDescriptors) error {
	id, err := singleKeyword(tokens)
	if err != nil {
		return err
	}
	switch id.Keyword {
	case kw.Normal, kw.Italic, kw.Oblique:
		out.FontStyle = id.Keyword
		return nil
	default:
		return invalid(ErrInvalidIdent, "unsupported font-style descriptor: %s", id.Name)
	}
}

func fontWeightDescriptor(tokens []css.Token, out *FontFaceDescriptors) error {
	values, err := descriptorValues(tokens)
	if err != nil {
		return err
	}
	v, err := fontWeight(nil, values)
	if err != nil {
		return err
	}
	k, _ := pr.AsKeyword(v)
	if k == kw.Bolder || k == kw.Lighter {
		return invalid(ErrInvalidIdent, "relative weights are not allowed in descriptors")
	}
	out.FontWeight = k
	return nil
}

var fontStretches = [...]string{
	"ultra-condensed", "extra-condensed", "condensed", "semi-condensed",
	"normal",
	"semi-expanded", "expanded", "extra-expanded", "ultra-expanded",
}

func fontStretchDescriptor(tokens []css.Token, out *FontFaceDescriptors) error {
	id, err := singleKeyword(tokens)
	if err != nil {
		return err
	}
	name := cases.Fold().String(id.Name)
	for _, s := range fontStretches {
		if s == name {
			out.FontStretch = name
			return nil
		}
	}
	return invalid(ErrInvalidIdent, "unsupported font-stretch descriptor: %s", id.Name)
}

// unicode-range is handled at the token level, since ranges
// are not values of the value model.
func unicodeRangeDescriptor(tokens []css.Token, out *FontFaceDescriptors) error {
	var ranges []string
	expectComma := false
	for _, tok := range tokens {
		switch tok.TokenType {
		case css.WhitespaceToken, css.CommentToken:
		case css.CommaToken:
			if !expectComma {
				return invalid(ErrInvalidValue, "unexpected comma")
			}
			expectComma = false
		case css.UnicodeRangeToken:
			if expectComma {
				return invalid(ErrInvalidValue, "missing comma")
			}
			ranges = append(ranges, strings.ToUpper(string(tok.Data)))
			expectComma = true
		default:
			return invalid(ErrWrongCategory, "unexpected %q", tok.Data)
		}
	}
	if len(ranges) == 0 || !expectComma {
		return invalid(ErrInvalidValue, "invalid unicode-range")
	}
	out.UnicodeRange = ranges
	return nil
}

// PreprocessFontFaceDescriptors validates the content of a @font-face rule.
// Invalid descriptors are ignored and logged. The rule itself is invalid
// (an error wrapping ErrInvalidValue is returned) if the `font-family`
// or the `src` descriptor is missing.
func PreprocessFontFaceDescriptors(log *zap.Logger, raws []RawDeclaration) (FontFaceDescriptors, error) {
	log = logger.Or(log)
	out := FontFaceDescriptors{FontStyle: kw.Normal, FontWeight: kw.Normal, FontStretch: "normal"}
	var errs error
	for _, raw := range raws {
		name := cases.Fold().String(strings.TrimSpace(raw.Name))
		parser := fontFaceDescriptors[name]
		var err error
		if parser == nil {
			err = &ValidationError{Property: name, Err: ErrUnknownProperty, Detail: "unknown @font-face descriptor"}
		} else if err = parser(raw.Tokens, &out); err != nil {
			err = withProperty(err, name)
		}
		if err != nil {
			log.Warn("ignored @font-face descriptor", zap.String("descriptor", name), zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	if !out.IsComplete() {
		err := fmt.Errorf("@font-face rule: %w: font-family and src descriptors are required", ErrInvalidValue)
		return out, multierr.Append(errs, err)
	}
	return out, errs
}

// IsComplete returns true if the required descriptors are present.
func (fd FontFaceDescriptors) IsComplete() bool {
	return fd.FontFamily != "" && len(fd.Src) != 0
}
