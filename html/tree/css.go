package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/benoitkugler/webstyle/css/parser"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/logger"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	_ "embed"
)

//go:embed ua.css
var uaCSS string

// the user agent stylesheet depends on the medium
var uaStylesheets sync.Map // medium -> CSS

// UAStylesheet returns the default stylesheet for HTML documents,
// evaluated for `medium`.
func UAStylesheet(medium string) CSS {
	p := parser.NewParser(nil, medium)
	if out, ok := uaStylesheets.Load(p.Medium()); ok {
		return out.(CSS)
	}
	sheet := p.Parse(uaCSS, validation.UserAgent, "ua.css")
	if sheet.Errors != nil {
		panic(fmt.Sprintf("invalid embedded stylesheet: %s", sheet.Errors))
	}
	out, _ := uaStylesheets.LoadOrStore(p.Medium(), CSS{sheet: sheet})
	return out.(CSS)
}

// CSS is a parsed stylesheet, ready to be applied to documents.
// It is immutable and may be shared between documents.
type CSS struct {
	sheet *parser.Stylesheet
	// imported stylesheets, applied before the rules of the sheet
	imports []CSS
}

// NewCSS parses `text` for the given `medium`.
// `source` is used in logs and errors.
// Invalid rules are ignored : see Errors.
func NewCSS(text, source string, origin validation.Origin, medium string) CSS {
	sheet := parser.NewParser(nil, medium).Parse(text, origin, source)
	return CSS{sheet: sheet}
}

// LoadCSS reads and parses the file at `path`, following its
// @import rules. Imported URLs are resolved relative to the file
// directory; remote URLs are not supported.
func LoadCSS(path string, origin validation.Origin, medium string) (CSS, error) {
	return loadCSS(parser.NewParser(nil, medium), path, origin, map[string]bool{})
}

func loadCSS(p *parser.Parser, path string, origin validation.Origin, seen map[string]bool) (CSS, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return CSS{}, fmt.Errorf("error loading stylesheet %s: %s", path, err)
	}
	if seen[abs] {
		return CSS{}, fmt.Errorf("error loading stylesheet %s: circular @import", path)
	}
	seen[abs] = true
	defer delete(seen, abs)

	content, err := os.ReadFile(abs)
	if err != nil {
		return CSS{}, fmt.Errorf("error loading stylesheet %s: %s", path, err)
	}
	logger.Progress().Info("loading stylesheet", zap.String("path", path))
	out := CSS{sheet: p.Parse(string(content), origin, path)}
	for _, url := range out.sheet.Imports {
		imported, err := loadCSS(p, filepath.Join(filepath.Dir(abs), filepath.FromSlash(url)), origin, seen)
		if err != nil {
			logger.Warning().Warn("ignored @import", zap.String("url", url), zap.Error(err))
			out.sheet.Errors = multierr.Append(out.sheet.Errors, err)
			continue
		}
		out.imports = append(out.imports, imported)
	}
	return out, nil
}

// IsNone returns true for the zero value.
func (c CSS) IsNone() bool { return c.sheet == nil }

// Stylesheet returns the parsed content.
func (c CSS) Stylesheet() *parser.Stylesheet { return c.sheet }

// Errors returns the recoverable errors met while parsing the
// stylesheet and its imports.
func (c CSS) Errors() error {
	if c.sheet == nil {
		return nil
	}
	var errs error
	for _, imp := range c.imports {
		errs = multierr.Append(errs, imp.Errors())
	}
	return multierr.Append(errs, c.sheet.Errors)
}

// flatten returns the stylesheets in cascade order : imports first.
func (c CSS) flatten() []*parser.Stylesheet {
	if c.sheet == nil {
		return nil
	}
	var out []*parser.Stylesheet
	for _, imp := range c.imports {
		out = append(out, imp.flatten()...)
	}
	return append(out, c.sheet)
}
