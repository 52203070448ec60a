// Command i18n-bundle inspects and resolves message bundles from the
// command line: resolve a single code, list the codes visible for a locale,
// or check locale bundles for missing keys.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	i18nbundle "github.com/jelilio/i18n-resource-bundle"
)

type cliOptions struct {
	configPath string
	root       string
	basenames  []string
	locale     string
	encoding   string
	extension  string
	ttl        string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "i18n-bundle",
		Short:         "Resolve and verify localized message bundles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&opts.root, "root", "", "directory resource locations are resolved against")
	pf.StringSliceVarP(&opts.basenames, "basename", "b", nil, "bundle basename, repeatable, in precedence order")
	pf.StringVarP(&opts.locale, "locale", "l", "", "locale, e.g. en-US (default: root)")
	pf.StringVar(&opts.encoding, "encoding", "", "bundle source encoding (IANA name)")
	pf.StringVar(&opts.extension, "extension", "", "resource extension (default .properties)")
	pf.StringVar(&opts.ttl, "ttl", "", "cache TTL (duration or \"permanent\")")

	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newKeysCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	return root
}

func (o *cliOptions) buildConfig() (*i18nbundle.Config, error) {
	cfg := &i18nbundle.Config{}
	if o.configPath != "" {
		loaded, err := i18nbundle.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(o.basenames) > 0 {
		cfg.Basenames = o.basenames
	}
	if o.root != "" {
		cfg.ResourceRoot = o.root
	}
	if o.encoding != "" {
		cfg.Encoding = o.encoding
	}
	if o.extension != "" {
		cfg.Extension = o.extension
	}
	if o.ttl != "" {
		cfg.CacheTTL = o.ttl
	}
	return cfg, nil
}

func (o *cliOptions) buildSource() (*i18nbundle.Source, error) {
	cfg, err := o.buildConfig()
	if err != nil {
		return nil, err
	}
	return i18nbundle.NewSourceFromConfig(cfg)
}

func (o *cliOptions) parseLocale() (i18nbundle.Locale, error) {
	if o.locale == "" {
		return i18nbundle.Root, nil
	}
	return i18nbundle.ParseLocale(o.locale)
}

func newResolveCmd(opts *cliOptions) *cobra.Command {
	var argString string
	var defaultMessage string
	var hasDefault bool

	cmd := &cobra.Command{
		Use:   "resolve <code>",
		Short: "Resolve one message code and print the rendered message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			src, err := opts.buildSource()
			if err != nil {
				return err
			}
			locale, err := opts.parseLocale()
			if err != nil {
				return err
			}
			var msgArgs []any
			if argString != "" {
				words, err := shlex.Split(argString)
				if err != nil {
					return fmt.Errorf("parse --args: %w", err)
				}
				for _, w := range words {
					msgArgs = append(msgArgs, w)
				}
			}

			var msg string
			if hasDefault {
				msg, err = src.ResolveDefault(cmdArgs[0], msgArgs, defaultMessage, locale)
			} else {
				msg, err = src.Resolve(cmdArgs[0], msgArgs, locale)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&argString, "args", "a", "", "message arguments, shell-quoted, positional")
	cmd.Flags().StringVarP(&defaultMessage, "default", "d", "", "default message when the code does not resolve")
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		hasDefault = cmd.Flags().Changed("default")
	}
	return cmd
}

func newKeysCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the codes visible for a locale, in precedence order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := opts.buildSource()
			if err != nil {
				return err
			}
			locale, err := opts.parseLocale()
			if err != nil {
				return err
			}
			codes, err := src.Codes(locale)
			if err != nil {
				return err
			}
			printColumns(cmd, codes)
			return nil
		},
	}
}

func newCheckCmd(opts *cliOptions) *cobra.Command {
	var locales []string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report codes defined in the root bundle but missing from locale bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := opts.buildSource()
			if err != nil {
				return err
			}
			missing := 0
			for _, bn := range src.Basenames() {
				rootBundle, ok, err := src.Bundle(bn, i18nbundle.Root)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: no root bundle\n", bn)
					continue
				}
				for _, rawLocale := range locales {
					loc, err := i18nbundle.ParseLocale(rawLocale)
					if err != nil {
						return err
					}
					b, ok, err := src.Bundle(bn, loc)
					if err != nil {
						return err
					}
					for _, code := range rootBundle.Keys() {
						if !ok || !b.Has(code) {
							fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]: missing %s\n", bn, loc, code)
							missing++
						}
					}
				}
			}
			if missing > 0 {
				return fmt.Errorf("%d missing translation(s)", missing)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&locales, "locales", nil, "locales to check against the root bundle")
	return cmd
}

// printColumns writes codes in as many columns as the terminal width allows;
// one per line when not writing to a terminal.
func printColumns(cmd *cobra.Command, codes []string) {
	sorted := append([]string(nil), codes...)
	sort.Strings(sorted)

	width := 0
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}
	if width <= 0 || len(sorted) == 0 {
		for _, c := range sorted {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return
	}

	colWidth := 0
	for _, c := range sorted {
		if len(c) > colWidth {
			colWidth = len(c)
		}
	}
	colWidth += 2
	cols := width / colWidth
	if cols < 1 {
		cols = 1
	}
	for i, c := range sorted {
		fmt.Fprintf(cmd.OutOrStdout(), "%-*s", colWidth, c)
		if (i+1)%cols == 0 || i == len(sorted)-1 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}
}
