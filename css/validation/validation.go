// Package validation checks property values against the grammar of each
// property, expands shorthands into their longhands and builds the
// declarations consumed by the cascade.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	pr "github.com/benoitkugler/webstyle/css/properties"
	kw "github.com/benoitkugler/webstyle/css/properties/keywords"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Origin is the source of a stylesheet.
type Origin uint8

const (
	UserAgent Origin = iota
	User
	Author
)

func (o Origin) String() string {
	switch o {
	case UserAgent:
		return "user-agent"
	case User:
		return "user"
	case Author:
		return "author"
	default:
		return fmt.Sprintf("<origin %d>", o)
	}
}

// Cascade precedence buckets, from the weakest.
const (
	PrecedenceUserAgent = iota + 1
	PrecedenceUserNormal
	PrecedenceAuthorNormal
	PrecedenceAuthorImportant
	PrecedenceUserImportant
)

// Declaration is a validated longhand declaration.
type Declaration struct {
	Prop      pr.KnownProp
	Value     pr.Value
	Important bool
	Origin    Origin
}

// Precedence returns the cascade bucket of the declaration.
// http://www.w3.org/TR/CSS21/cascade.html#cascading-order
func (d Declaration) Precedence() int {
	switch d.Origin {
	case User:
		if d.Important {
			return PrecedenceUserImportant
		}
		return PrecedenceUserNormal
	case Author:
		if d.Important {
			return PrecedenceAuthorImportant
		}
		return PrecedenceAuthorNormal
	default:
		return PrecedenceUserAgent
	}
}

// Fingerprint identifies the property and its value,
// whatever the origin and importance.
func (d Declaration) Fingerprint() string {
	return strconv.Itoa(int(d.Prop)) + ":" + d.Value.Fingerprint()
}

func (d Declaration) String() string {
	s := d.Prop.String() + ": " + d.Value.String()
	if d.Important {
		s += " !important"
	}
	return s
}

// RawDeclaration is a declaration as found in a stylesheet,
// before validation.
type RawDeclaration struct {
	Name      string
	Tokens    []css.Token
	Important bool
}

// Build validates `values` for `prop`, returning one declaration per
// longhand (one for a longhand property).
// `inherit` is rejected with ErrInheritNotAllowed when `inheritAllowed` is false.
func Build(prop pr.KnownProp, values pr.List, origin Origin, important, inheritAllowed bool) ([]Declaration, error) {
	d := pr.Describe(prop)
	out, err := build(d, values, origin, important, inheritAllowed)
	if err != nil {
		return nil, withProperty(err, d.Name)
	}
	return out, nil
}

func build(d *pr.Descriptor, values pr.List, origin Origin, important, inheritAllowed bool) ([]Declaration, error) {
	if len(values) == 0 {
		return nil, invalid(ErrValueCountMismatch, "empty value")
	}
	if len(values) == 1 {
		if k, ok := pr.AsKeyword(values[0].Value); ok && (k == kw.Inherit || k == kw.Initial) {
			if k == kw.Inherit && !inheritAllowed {
				return nil, invalid(ErrInheritNotAllowed, "")
			}
			longhands := d.ID.Longhands()
			out := make([]Declaration, len(longhands))
			for i, p := range longhands {
				out[i] = Declaration{Prop: p, Value: pr.KeywordValue(k), Important: important, Origin: origin}
			}
			return out, nil
		}
	}

	if d.Kind == pr.KindShorthand {
		expanded, err := expanders[d.ID](d, values)
		if err != nil {
			return nil, err
		}
		out := make([]Declaration, len(expanded))
		for i, e := range expanded {
			out[i] = Declaration{Prop: e.prop, Value: e.value, Important: important, Origin: origin}
		}
		return out, nil
	}

	v, err := validateLonghand(d, values)
	if err != nil {
		return nil, err
	}
	return []Declaration{{Prop: d.ID, Value: v, Important: important, Origin: origin}}, nil
}

func validateLonghand(d *pr.Descriptor, values pr.List) (pr.Value, error) {
	if int(d.Kind) >= len(validators) || validators[d.Kind] == nil {
		return nil, fmt.Errorf("internal error: no validator for %s", d.Name)
	}
	return validators[d.Kind](d, values)
}

// Validate checks the CSS text `value` for the property `name`.
func Validate(name, value string, origin Origin, important bool) ([]Declaration, error) {
	prop, ok := pr.LookupByName(name)
	if !ok {
		return nil, &ValidationError{Property: name, Err: ErrUnknownProperty}
	}
	values, err := pr.ParseValue(value)
	if err != nil {
		return nil, &ValidationError{Property: name, Err: ErrInvalidValue, Detail: err.Error()}
	}
	return Build(prop, values, origin, important, true)
}

// PreprocessDeclarations validates a declaration block.
// Invalid declarations are dropped and logged; the returned error
// combines all the validation errors, in order.
func PreprocessDeclarations(log *zap.Logger, origin Origin, raws []RawDeclaration) ([]Declaration, error) {
	log = logger.Or(log)
	var (
		out  []Declaration
		errs error
	)
	for _, raw := range raws {
		decls, err := preprocessDeclaration(origin, raw)
		if err != nil {
			log.Warn("ignored declaration", zap.String("property", raw.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, decls...)
	}
	return out, errs
}

func preprocessDeclaration(origin Origin, raw RawDeclaration) ([]Declaration, error) {
	name := strings.TrimSpace(raw.Name)
	prop, ok := pr.LookupByName(name)
	if !ok {
		return nil, &ValidationError{Property: name, Err: ErrUnknownProperty}
	}
	values, err := pr.ParseTokens(raw.Tokens)
	if err != nil {
		return nil, &ValidationError{Property: name, Err: ErrInvalidValue, Detail: err.Error()}
	}
	return Build(prop, values, origin, raw.Important, true)
}

// IsValidationError returns true for errors caused by user input.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
