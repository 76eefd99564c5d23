package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"usajobs-list/internal/common"
	"usajobs-list/internal/config"
	"usajobs-list/internal/poll"
	"usajobs-list/internal/scrape/usajobs"
	"usajobs-list/internal/secrets"
)

type app struct {
	log         *slog.Logger
	lookup      func(string) (string, bool)
	keyFallback config.KeyFallback
	clientOpts  []usajobs.Option // extra options for the search client
}

type rootFlags struct {
	parse      bool
	configPath string
	variant    string
	xlsx       bool
}

func (a *app) rootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "usajobs [--parse] <filename>",
		Short: "List USAJOBS positions for easy review of new postings",
		Long: `Fetch mode (default) saves the raw search response as JSON in <filename>.
Parse mode (--parse) reads that JSON and writes <name>.csv and <name>.html
(and <name>.xlsx with --xlsx) beside it.

Fetch mode needs YOUR_EMAIL and AUTH_KEY (or a key stored with
"usajobs keyring set").

The names "keyring" and "config" are subcommands. To use a file with one
of those names, give it a path: "usajobs ./config".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if f.parse {
				out, err := poll.ParseOnce(a.log, cfg, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s and %s\n", out.Rows, out.CSV, out.HTML)
				if out.XLSX != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out.XLSX)
				}
				return nil
			}
			return a.fetch(cmd, cfg, args[0])
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&f.parse, "parse", false, "convert a saved .json file to .csv/.html, extracting target fields")
	fl.StringVar(&f.configPath, "config", "", "YAML config file (default $USAJOBS_CONFIG)")
	fl.StringVar(&f.variant, "variant", "", "field set: extended or minimal")
	fl.BoolVar(&f.xlsx, "xlsx", false, "also write an .xlsx workbook in parse mode")

	cmd.AddCommand(a.keyringCmd(), a.configCmd())
	return cmd
}

func (a *app) loadConfig(cmd *cobra.Command, f rootFlags) (config.Config, error) {
	path := f.configPath
	if path == "" {
		path, _ = a.lookup("USAJOBS_CONFIG")
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyEnv(&cfg, a.lookup); err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("variant") {
		cfg.Variant = f.variant
	}
	if cmd.Flags().Changed("xlsx") {
		cfg.Report.XLSX = f.xlsx
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (a *app) fetch(cmd *cobra.Command, cfg config.Config, path string) error {
	// Credentials are checked before anything touches the network.
	creds, err := config.LoadCredentials(a.lookup, a.keyFallback)
	if err != nil {
		return err
	}

	opts := []usajobs.Option{
		usajobs.WithLogger(a.log),
	}
	opts = append(opts, a.clientOpts...)
	client := usajobs.New(cfg.Timeout(), opts...)

	if err := poll.FetchOnce(cmd.Context(), a.log, client, creds, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func (a *app) identity() (string, error) {
	email, _ := a.lookup(config.EnvEmail)
	if email == "" {
		return "", common.ConfigError(config.EnvEmail+" is required to address the keychain entry", common.ErrMissingCredential)
	}
	return email, nil
}

func (a *app) keyringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyring",
		Short: "Manage the authorization key stored in the OS keychain",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <auth-key>",
		Short: "Store AUTH_KEY for YOUR_EMAIL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.identity()
			if err != nil {
				return err
			}
			if err := secrets.SetAuthKey(email, args[0]); err != nil {
				return common.ConfigError("store key", err)
			}
			a.log.Info("keyring.set", "email", email)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the stored key for YOUR_EMAIL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.identity()
			if err != nil {
				return err
			}
			if err := secrets.DeleteAuthKey(email); err != nil {
				return common.ConfigError("delete key", err)
			}
			a.log.Info("keyring.delete", "email", email)
			return nil
		},
	})
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the YAML config",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config (usajobs.yml) unless it exists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "usajobs.yml"
			if len(args) == 1 {
				path = args[0]
			}
			wrote, err := config.EnsureConfig(path)
			if err != nil {
				return err
			}
			if wrote {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	})
	return cmd
}
