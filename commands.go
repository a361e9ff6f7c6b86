package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pinpoint/config"
	"pinpoint/extract"
	"pinpoint/locator"
	"pinpoint/query"
	"pinpoint/report"
)

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, out: out}

	root := &cobra.Command{
		Use:   "pinpoint",
		Short: "Synthesize robust CSS and XPath locators for HTML elements",
		Long: `Pinpoint finds short expressions that identify one element of an HTML
document, and relaxed expressions that match a list of similar elements.

Commands:
  locate       Best single-element locator (CSS and XPath)
  generalize   Locator matching the target and its similar siblings
  verify       Evaluate any expression and preview the matches
  tree         Print the element tree
  init-config  Write the default configuration file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/pinpoint/config.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log search progress to stderr")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print results as JSON")
	root.PersistentFlags().StringVar(&a.colorMode, "color", "auto", "colour output: auto, always or never")

	root.AddCommand(
		newLocateCommand(a),
		newGeneralizeCommand(a),
		newVerifyCommand(a),
		newTreeCommand(a),
		newInitConfigCommand(a),
	)
	return root
}

func newLocateCommand(a *app) *cobra.Command {
	var src source
	var tgt target
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find the most robust expression identifying one element",
		Example: `  pinpoint locate -f page.html -t 'button.primary'
  curl -s https://example.com | pinpoint locate -t '//h1' -x`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := a.loadTree(cmd.Context(), src)
			if err != nil {
				return err
			}
			l, node, err := a.newLocator(tree, tgt)
			if err != nil {
				return err
			}

			sel := l.LocateSingle(node)
			crumbs := l.Breadcrumbs(node)
			img := extract.AnalyzeImage(tree, node)

			if a.jsonOut {
				return report.WriteJSON(a.out, report.NewSelectionView(node, sel, crumbs, img))
			}
			p := a.printer()
			p.Selection(node, sel, crumbs)
			p.Image(img)
			return nil
		},
	}
	src.register(cmd)
	tgt.register(cmd)
	return cmd
}

func newGeneralizeCommand(a *app) *cobra.Command {
	var src source
	var tgt target
	var previewItems int
	cmd := &cobra.Command{
		Use:   "generalize",
		Short: "Find an expression matching the target and its similar siblings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := a.loadTree(cmd.Context(), src)
			if err != nil {
				return err
			}
			l, node, err := a.newLocator(tree, tgt)
			if err != nil {
				return err
			}

			g := l.LocateGeneralized(node)
			preview := extract.Preview(tree, g.Best.Matches, previewItems)

			if a.jsonOut {
				return report.WriteJSON(a.out, report.NewGeneralizationView(node, g, preview))
			}
			a.printer().Generalization(g, preview)
			return nil
		},
	}
	src.register(cmd)
	tgt.register(cmd)
	cmd.Flags().IntVarP(&previewItems, "preview", "n", extract.DefaultPreviewItems, "number of matches to preview")
	return cmd
}

func newVerifyCommand(a *app) *cobra.Command {
	var src source
	var xpath bool
	var previewItems int
	cmd := &cobra.Command{
		Use:   "verify <expression>",
		Short: "Evaluate an expression and preview what it matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.loadTree(cmd.Context(), src)
			if err != nil {
				return err
			}
			family := query.CSS
			if xpath {
				family = query.XPath
			}

			l := locator.ForTree(tree, a.cfg.LocatorConfig(a.log))
			nodes, err := l.Verify(family, args[0])
			if err != nil {
				return err
			}
			preview := extract.Preview(tree, nodes, previewItems)

			if a.jsonOut {
				return report.WriteJSON(a.out, report.NewMatchesView(family.String(), args[0], nodes, preview))
			}
			a.printer().Matches(family, args[0], nodes, preview)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().BoolVarP(&xpath, "xpath", "x", false, "the expression is XPath")
	cmd.Flags().IntVarP(&previewItems, "preview", "n", extract.DefaultPreviewItems, "number of matches to preview")
	return cmd
}

func newTreeCommand(a *app) *cobra.Command {
	var src source
	var root string
	var depth int
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the element tree with visibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tree, err := a.loadTree(cmd.Context(), src)
			if err != nil {
				return err
			}
			start := tree.Root
			if root != "" {
				if start, err = resolve(tree, query.CSS, root, 0); err != nil {
					return err
				}
			}
			if start == nil {
				return fmt.Errorf("%w: document has no elements", ErrNoTarget)
			}
			a.printer().Tree(start, depth)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&root, "root", "", "CSS expression selecting the subtree to print")
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "maximum depth to print (0 = unlimited)")
	return cmd
}

func newInitConfigCommand(a *app) *cobra.Command {
	var force, stdout bool
	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stdout {
				_, err := fmt.Fprint(a.out, config.DefaultTOML())
				return err
			}
			path := a.configPath
			if path == "" {
				var err error
				if path, err = config.ConfigPath(); err != nil {
					return err
				}
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the template instead of writing it")
	return cmd
}
