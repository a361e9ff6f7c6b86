package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pinpoint/config"
	"pinpoint/dom"
	"pinpoint/fetcher"
	"pinpoint/locator"
	"pinpoint/query"
	"pinpoint/report"
)

// ErrNoTarget is returned when the target expression selects nothing at the
// requested index.
var ErrNoTarget = errors.New("target not found")

// app holds state shared by all subcommands.
type app struct {
	in  io.Reader
	out io.Writer

	configPath string
	verbose    bool
	jsonOut    bool
	colorMode  string

	cfg *config.Config
	log *slog.Logger
}

// setup loads configuration and installs the logger. Flags set on the
// command line win over the config file.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if !cmd.Flags().Changed("json") {
		a.jsonOut = a.cfg.Output.JSON
	}
	if !cmd.Flags().Changed("color") {
		a.colorMode = a.cfg.Output.Color
	}
	fetcher.Configure(a.cfg.FetcherOptions())
	return nil
}

func (a *app) printer() *report.Printer {
	return report.NewPrinter(a.out, a.colorMode)
}

// source selects where the document comes from.
type source struct {
	url     string
	file    string
	browser bool
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.url, "url", "u", "", "fetch the document from a URL")
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "read the document from a file (default stdin)")
	cmd.Flags().BoolVar(&s.browser, "browser", false, "render with headless Chrome (real visibility)")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
}

func (a *app) loadTree(ctx context.Context, s source) (*dom.Tree, error) {
	var r io.Reader
	switch {
	case s.url != "":
		res, err := fetcher.Fetch(ctx, s.url, s.browser || a.cfg.Fetcher.Browser)
		if err != nil {
			return nil, err
		}
		a.log.Debug("fetched document",
			"url", res.FinalURL, "browser", res.UsedBrowser, "hidden", res.Marked, "elapsed", res.FetchTime)
		r = strings.NewReader(res.HTML)
	case s.file != "" && s.file != "-":
		f, err := os.Open(s.file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	default:
		r = a.in
	}

	tree, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	a.log.Debug("parsed document", "elements", len(tree.AllNodes))
	return tree, nil
}

// target identifies the element to locate.
type target struct {
	expr  string
	xpath bool
	index int
	scope string
}

func (t *target) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&t.expr, "target", "t", "", "expression selecting the target element")
	cmd.Flags().BoolVarP(&t.xpath, "xpath", "x", false, "the target expression is XPath")
	cmd.Flags().IntVarP(&t.index, "index", "i", 0, "which match of the target expression to use (0-based)")
	cmd.Flags().StringVar(&t.scope, "scope", "", "CSS expression selecting the subtree structural queries run in")
	_ = cmd.MarkFlagRequired("target")
}

func (t target) family() query.Family {
	if t.xpath {
		return query.XPath
	}
	return query.CSS
}

// resolve evaluates expr over the whole document and returns the index-th
// match, which must be an element.
func resolve(tree *dom.Tree, family query.Family, expr string, index int) (*dom.Node, error) {
	raws, err := query.Select(tree.Document(), family, expr)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(raws) {
		return nil, fmt.Errorf("%w: %s %q has %d matches, wanted index %d", ErrNoTarget, family, expr, len(raws), index)
	}
	n, err := tree.Element(raws[index])
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", family, expr, err)
	}
	return n, nil
}

// newLocator resolves the target node and builds a locator honouring --scope.
func (a *app) newLocator(tree *dom.Tree, t target) (*locator.Locator, *dom.Node, error) {
	node, err := resolve(tree, t.family(), t.expr, t.index)
	if err != nil {
		return nil, nil, err
	}

	lc := a.cfg.LocatorConfig(a.log)
	if t.scope != "" {
		scope, err := resolve(tree, query.CSS, t.scope, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("scope: %w", err)
		}
		if !scope.Contains(node) {
			return nil, nil, fmt.Errorf("%w: target is outside scope %q", ErrNoTarget, t.scope)
		}
		lc.Scope = scope
	}
	return locator.ForTree(tree, lc), node, nil
}
