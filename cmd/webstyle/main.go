// Command webstyle computes the CSS styles of an HTML document
// and prints them as a tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benoitkugler/webstyle/config"
	"github.com/benoitkugler/webstyle/css/validation"
	"github.com/benoitkugler/webstyle/html/tree"
	"github.com/benoitkugler/webstyle/logger"
	"github.com/benoitkugler/webstyle/version"
)

// env is shared by the commands, and set up once
// the command line is parsed.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	close func()
}

func (e *env) initialize(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	if e.cfg, err = config.LoadConfiguration(cmd.String("config")); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if e.log, e.close, err = e.cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	logger.SetDefault(e.log)
	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version.VersionString))
	return ctx, nil
}

func (e *env) destroy(ctx context.Context, cmd *cli.Command) error {
	if e.log == nil {
		return nil
	}
	e.log.Debug("Program ended")
	_ = e.log.Sync()
	logger.SetDefault(nil)
	e.close()
	return nil
}

func (e *env) dump(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected one DOCUMENT argument, got %d", cmd.Args().Len())
	}
	props, err := parseProperties(cmd.StringSlice("property"))
	if err != nil {
		return err
	}

	engine := e.cfg.Engine
	engine.UserStylesheets = append(engine.UserStylesheets, cmd.StringSlice("user")...)
	if medium := cmd.String("medium"); medium != "" {
		engine.Medium = medium
	}
	opts, err := engine.Prepare(e.log)
	if err != nil {
		return fmt.Errorf("unable to prepare style engine: %w", err)
	}

	var authors []tree.CSS
	for _, path := range cmd.StringSlice("css") {
		sheet, err := tree.LoadCSS(path, validation.Author, engine.Medium)
		if err != nil {
			return err
		}
		authors = append(authors, sheet)
	}

	fname := cmd.Args().Get(0)
	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("unable to open document: %w", err)
	}
	defer f.Close()
	root, err := tree.ParseHTML(f)
	if err != nil {
		return err
	}

	doc := tree.NewDocument(root, opts, authors...)
	out, err := renderTree(doc, props)
	if err != nil {
		return err
	}
	for _, err := range multierr.Errors(doc.Errors()) {
		e.log.Warn("Invalid CSS", zap.Error(err))
	}
	fmt.Fprint(cmd.Root().Writer, out)

	if cmd.Bool("pages") {
		names, err := pageNames(doc)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.Root().Writer, renderPages(doc, names))
	}
	return nil
}

func (e *env) outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	var (
		data []byte
		err  error
	)
	if cmd.Bool("default") {
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(e.cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if fname == "" {
		_, err = cmd.Root().Writer.Write(data)
	} else {
		err = os.WriteFile(fname, data, 0o644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

func newApp(e *env) *cli.Command {
	return &cli.Command{
		Name:            "webstyle",
		Usage:           "computes the CSS styles of HTML documents",
		Version:         version.VersionString,
		HideHelpCommand: true,
		Before:          e.initialize,
		After:           e.destroy,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "dump",
				Usage:     "Prints the computed styles of a document",
				ArgsUsage: "DOCUMENT",
				Action:    e.dump,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "css", Usage: "author stylesheet `FILE`, applied after the <style> elements"},
					&cli.StringSliceFlag{Name: "user", Usage: "user stylesheet `FILE`"},
					&cli.StringSliceFlag{Name: "property", Aliases: []string{"p"}, Usage: "print the `PROPERTY` (default: display, color, font-size)"},
					&cli.StringFlag{Name: "medium", Usage: "overrides the configured `MEDIUM`"},
					&cli.BoolFlag{Name: "pages", Usage: "also print the page styles"},
				},
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps either default or actual configuration (YAML)",
				ArgsUsage: "DESTINATION",
				Action:    e.outputConfiguration,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(&env{}).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
