package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/phrasebook/internal/app"
	"github.com/five82/phrasebook/internal/browser"
	"github.com/five82/phrasebook/internal/phrases"
)

// deps are the side-effecting pieces the commands use.
type deps struct {
	Opener    browser.Opener
	Clipboard browser.Clipboard
	Browse    func(context.Context, app.Options) error
}

func defaultDeps() deps {
	sys := browser.System{}
	return deps{Opener: sys, Clipboard: sys, Browse: app.Browse}
}

func newRootCmd(d deps) *cobra.Command {
	opts := app.Options{Opener: d.Opener, Clipboard: d.Clipboard}
	browseRun := func(cmd *cobra.Command, _ []string) error {
		return d.Browse(cmd.Context(), opts)
	}

	root := &cobra.Command{
		Use:           "phrasebook",
		Short:         "Browse Quranic phrases in the terminal",
		Long:          "Browse Quranic phrases in Arabic, English, Hindi and Urdu, grouped by category.\nRuns the terminal browser when no subcommand is given.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          browseRun,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/phrasebook/config.toml)")
	pf.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file with PHRASEBOOK_* settings")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	browse := &cobra.Command{
		Use:   "browse",
		Short: "Open the terminal browser (default)",
		Args:  cobra.NoArgs,
		RunE:  browseRun,
	}
	for _, c := range []*cobra.Command{root, browse} {
		c.Flags().StringVar(&opts.StartPage, "page", "", "start page, e.g. /praises")
		c.Flags().StringVar(&opts.BaseURL, "base-url", "", "phrase document server URL")
		c.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/phrasebook/prefs.toml)")
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve phrase documents from a data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Serve(cmd.Context(), opts)
		},
	}
	serve.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default 127.0.0.1:8080)")
	serve.Flags().StringVar(&opts.DataDir, "data", "", "directory holding phrases-*.json documents")

	check := &cobra.Command{
		Use:   "check",
		Short: "Fetch every category and report phrase counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Check(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	check.Flags().StringVar(&opts.BaseURL, "base-url", "", "phrase document server URL")

	var lines int
	var noColor bool
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Show the end of the browser log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Tail(opts, lines, !noColor, cmd.OutOrStdout())
		},
	}
	logCmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines (0 for all)")
	logCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	open := &cobra.Command{
		Use:   "open SURAH:AYAH",
		Short: "Open a verse on quran.com",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := phrases.ParseReference(args[0])
			if err != nil {
				return err
			}
			if err := d.Opener.Open(ref.URL()); err != nil {
				return fmt.Errorf("open %s: %w", ref, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref.URL())
			return nil
		},
	}

	root.AddCommand(browse, serve, check, logCmd, open)
	return root
}
