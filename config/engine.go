package config

import (
	"fmt"
	"os"

	pr "github.com/benoitkugler/webstyle/css/properties"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/text"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Prepare loads the configured stylesheets and font metrics, returning
// the options to style documents with. Recoverable errors of the
// stylesheets are logged.
func (conf *EngineConfig) Prepare(log *zap.Logger) (tree.Options, error) {
	log = logger.Or(log)
	opts := tree.Options{
		Medium:              conf.Medium,
		DefaultFontSize:     pr.Fl(conf.DefaultFontSize),
		PresentationalHints: conf.PresentationalHints,
		Logger:              log,
	}

	load := func(path string, origin validation.Origin) (tree.CSS, error) {
		sheet, err := tree.LoadCSS(path, origin, conf.Medium)
		if err != nil {
			return tree.CSS{}, err
		}
		for _, err := range multierr.Errors(sheet.Errors()) {
			log.Warn("invalid CSS", zap.String("stylesheet", path), zap.Error(err))
		}
		return sheet, nil
	}

	if conf.UserAgentStylesheet != "" {
		sheet, err := load(conf.UserAgentStylesheet, validation.UserAgent)
		if err != nil {
			return opts, err
		}
		opts.UserAgent = sheet
	}
	for _, path := range conf.UserStylesheets {
		sheet, err := load(path, validation.User)
		if err != nil {
			return opts, err
		}
		opts.UserStylesheets = append(opts.UserStylesheets, sheet)
	}

	switch conf.Metrics {
	case "builtin":
		metrics, err := text.Builtin()
		if err != nil {
			return opts, err
		}
		opts.Metrics = metrics
	case "file":
		data, err := os.ReadFile(conf.FontFile)
		if err != nil {
			return opts, fmt.Errorf("failed to read font file: %w", err)
		}
		metrics, err := text.NewSfntMetrics(data)
		if err != nil {
			return opts, err
		}
		opts.Metrics = metrics
	default:
		opts.Metrics = text.NoMetrics{}
	}
	return opts, nil
}
