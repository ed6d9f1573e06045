package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/2x3systems/hypergraph/libhyper"
	"github.com/2x3systems/hypergraph/libhyper/catalog"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "hyper"
)

// app holds the state shared by all subcommands once the config is resolved.
type app struct {
	configPath    string
	signaturePath string
	catalogPath   string
	readOnly      bool

	klogFlags *flag.FlagSet
	cfg       *Config
	sig       *libhyper.Signature
}

// rootCmd builds the hyper command tree. If klogFlags is non-nil, its flags are
// offered as persistent flags and the log section of the config is applied to it.
func rootCmd(klogFlags *flag.FlagSet) *cobra.Command {
	a := &app{
		klogFlags: klogFlags,
	}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Build and classify diagrams in hypergraph categories",
		Long: `hyper evaluates diagram expressions such as

    f @ Id(z) >> Id(x) @ g
    Cap(x, x.r) >> Id(x) @ Cup(x.r, x)

against a signature of boxes, reports whether each diagram is monogamous,
hetero-monogamous and progressive, and keeps named diagrams in a catalog.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file path (YAML)")
	flags.StringVarP(&a.signaturePath, "signature", "s", "", "signature file path (YAML)")
	flags.StringVar(&a.catalogPath, "catalog", "", "catalog db path (default in-memory)")
	flags.BoolVar(&a.readOnly, "read-only", false, "open the catalog read-only")
	if klogFlags != nil {
		flags.AddGoFlagSet(klogFlags)
	}

	cmd.AddCommand(
		a.evalCmd(),
		a.equalCmd(),
		a.classesCmd(),
		a.catalogCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := DefaultConfig()
	if a.configPath != "" {
		var err error
		if cfg, err = LoadConfig(a.configPath); err != nil {
			return err
		}
	}

	// flags take precedence over the config file
	flags := cmd.Flags()
	if flags.Changed("signature") {
		cfg.SignatureFile = a.signaturePath
	}
	if flags.Changed("catalog") {
		cfg.Catalog.Path = a.catalogPath
	}
	if flags.Changed("read-only") {
		cfg.Catalog.ReadOnly = a.readOnly
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if a.klogFlags != nil {
		if !flags.Changed("v") && cfg.Log.Verbosity > 0 {
			a.klogFlags.Set("v", strconv.Itoa(cfg.Log.Verbosity))
		}
		klog.SetFormatter(&klog.FmtConstWidth{
			FileNameCharWidth: 16,
			UseColor:          cfg.Log.Color,
		})
	}

	sig, err := cfg.BuildSignature()
	if err != nil {
		return err
	}
	klog.V(1).Infof("signature has %d boxes: %v", len(sig.BoxNames()), sig.BoxNames())

	a.cfg = cfg
	a.sig = sig
	return nil
}

func (a *app) parse(exprs []string) ([]*libhyper.Diagram, error) {
	ds := make([]*libhyper.Diagram, len(exprs))
	for i, expr := range exprs {
		d, err := libhyper.ParseDiagram(expr, a.sig)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}

func (a *app) evalCmd() *cobra.Command {
	var (
		unique bool
		opts   = hyper.DefaultPrintOpts
	)
	cmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Print the diagram denoted by each expression and its category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.parse(args)
			if err != nil {
				return err
			}

			seen := libhyper.NewDiagramSet()
			defer seen.Close()

			out := cmd.OutOrStdout()
			for i, d := range ds {
				if unique && !seen.TryAdd(d) {
					klog.V(1).Infof("skipping duplicate %q", args[i])
					continue
				}
				opts.Label = args[i] + ":"
				d.WriteAsString(out, opts)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&unique, "unique", "u", false, "skip expressions equal to an earlier one")
	cmd.Flags().BoolVar(&opts.SpiderTypes, "spider-types", false, "print the type of each spider")
	cmd.Flags().BoolVar(&opts.BoxWires, "box-wires", false, "print the wiring of each box")
	return cmd
}

func (a *app) equalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equal EXPR EXPR...",
		Short: "Fail unless all expressions denote equal diagrams",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.parse(args)
			if err != nil {
				return err
			}
			for i := 1; i < len(ds); i++ {
				if !ds[0].Equal(ds[i]) {
					return errors.Errorf("%q and %q are not equal:\n  %v\n  %v", args[0], args[i], ds[0], ds[i])
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "equal")
			return nil
		},
	}
}

func (a *app) classesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes EXPR...",
		Short: "Group expressions that denote equal diagrams",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.parse(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for ci, class := range libhyper.Classes(ds) {
				exprs := make([]string, len(class))
				for j, i := range class {
					exprs[j] = strconv.Quote(args[i])
				}
				fmt.Fprintf(out, "%d: %s\n", ci, strings.Join(exprs, ", "))
			}
			return nil
		},
	}
}

func (a *app) withCatalog(fn func(cat libhyper.Catalog) error) error {
	cat, err := catalog.OpenCatalog(a.cfg.CatalogOpts())
	if err != nil {
		return err
	}
	err = fn(cat)
	if closeErr := cat.Close(); err == nil {
		err = closeErr
	}
	return err
}

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Store and retrieve named diagrams",
	}

	put := &cobra.Command{
		Use:   "put NAME EXPR",
		Short: "Store the diagram denoted by EXPR under NAME",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := libhyper.ParseDiagram(args[1], a.sig)
			if err != nil {
				return err
			}
			return a.withCatalog(func(cat libhyper.Catalog) error {
				return cat.Put(args[0], d)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the diagram stored under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(cat libhyper.Catalog) error {
				d, err := cat.Get(args[0])
				if err != nil {
					return err
				}
				opts := hyper.DefaultPrintOpts
				opts.Label = args[0] + ":"
				d.WriteAsString(cmd.OutOrStdout(), opts)
				return nil
			})
		},
	}

	var (
		sel    libhyper.Selector
		within string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored diagrams meeting the given criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if sel.Within, err = parseCategory(within); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return a.withCatalog(func(cat libhyper.Catalog) error {
				return cat.Select(sel, func(name string, d *libhyper.Diagram) bool {
					fmt.Fprintf(out, "%s: %v  [%v]\n", name, d, d.Classify())
					return true
				})
			})
		},
	}
	list.Flags().StringVar(&sel.Prefix, "prefix", "", "only names with this prefix")
	list.Flags().StringVar(&within, "within", "any", "only diagrams living in this category")
	list.Flags().IntVar(&sel.MaxBoxes, "max-boxes", 0, "only diagrams with at most this many boxes")

	lookup := &cobra.Command{
		Use:   "lookup EXPR",
		Short: "Print the names of stored diagrams equal to EXPR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := libhyper.ParseDiagram(args[0], a.sig)
			if err != nil {
				return err
			}
			return a.withCatalog(func(cat libhyper.Catalog) error {
				names, err := cat.Lookup(d)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm NAME...",
		Short: "Remove the diagrams stored under the given names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(cat libhyper.Catalog) error {
				for _, name := range args {
					if err := cat.Delete(name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.AddCommand(put, get, list, lookup, rm)
	return cmd
}

func parseCategory(name string) (hyper.Category, error) {
	for c := hyper.AnyCategory; c <= hyper.Hypergraph; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return hyper.AnyCategory, errors.Errorf("unknown category %q", name)
}
