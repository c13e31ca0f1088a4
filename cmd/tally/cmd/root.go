// Package cmd provides CLI commands for tally.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/tally/internal/categorize"
	"github.com/jask/tally/internal/config"
	"github.com/jask/tally/internal/importer"
	"github.com/jask/tally/internal/kv"
	"github.com/jask/tally/internal/logger"
	"github.com/jask/tally/internal/recurring"
	"github.com/jask/tally/internal/render"
	"github.com/jask/tally/internal/repository"
	"github.com/jask/tally/internal/service"
)

var (
	cfgFile  string
	storeURL string
	debug    bool
)

// app is the state shared by every subcommand once PersistentPreRunE has run.
type app struct {
	cfg   config.Config
	log   zerolog.Logger
	store kv.Store
	svc   *service.Services
	out   render.Printer
}

var current *app

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tally",
	Short: "Import bank CSV exports into a categorized expense ledger",
	Long: `tally turns CSV exports from any bank into a single expense ledger.

It supports:
- Detecting the column layout of each bank's export
- Ignoring noise rows such as card repayments
- Categorizing transactions with ordered keyword rules
- Materializing recurring transactions on schedule

Example:
  tally import ~/Downloads/statement.csv
  tally list --month 2024-01
  tally recurring run`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		current = nil
		if cmd.Annotations["skipStore"] == "true" {
			return nil
		}
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		a.out.W = cmd.OutOrStdout()
		current = a
		cmd.SetContext(logger.WithContext(cmd.Context(), a.log))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if storeURL != "" {
		cfg.Store.URL = storeURL
	}
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log := logger.New(level)

	rules := categorize.Default()
	if cfg.Import.CategoriesFile != "" {
		rules, err = categorize.LoadFile(cfg.Import.CategoriesFile)
		if err != nil {
			return nil, fmt.Errorf("load category rules: %w", err)
		}
	}
	boundary, err := recurring.ParseBoundary(cfg.Recurring.EndBoundary)
	if err != nil {
		return nil, err
	}
	order, err := importer.ParseDateOrder(cfg.Import.DateOrder)
	if err != nil {
		return nil, err
	}

	if err := ensureDir(cfg.Store.URL); err != nil {
		return nil, err
	}
	store, err := kv.Open(ctx, cfg.Store.URL)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if cfg.Store.CacheTTL > 0 {
		store = kv.NewCached(store, cfg.Store.CacheTTL)
	}
	log.Debug().Str("store", cfg.Store.URL).Msg("store opened")

	svc := service.New(repository.New(store), service.Options{
		Rules:       rules,
		Projector:   recurring.Projector{Boundary: boundary, Suffix: cfg.Recurring.Suffix},
		MaxPerCycle: cfg.Recurring.MaxPerCycle,
		DateOrder:   order,
	})
	return &app{
		cfg:   cfg,
		log:   log,
		store: store,
		svc:   svc,
		out:   render.Printer{W: os.Stdout, Currency: cfg.UI.CurrencySymbol, DateLayout: cfg.UI.DateFormat},
	}, nil
}

// loadConfig honours --config by pointing TALLY_CONFIG at it.
func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		_ = os.Setenv("TALLY_CONFIG", cfgFile)
	}
	return config.Load()
}

// today is the current calendar day in the configured timezone.
func (a *app) today() civil.Date {
	return civil.DateOf(time.Now().In(a.cfg.UI.Location()))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	// post-run hooks are skipped when RunE fails
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// closeStore releases the store opened for the current command, if any.
func closeStore() error {
	if current == nil {
		return nil
	}
	err := current.store.Close()
	current = nil
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tally/config.toml)")
	rootCmd.PersistentFlags().StringVar(&storeURL, "store", "", "store url, overrides store.url")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(importCmd, listCmd, addCmd, editCmd, deleteCmd, recategorizeCmd,
		categoriesCmd, rulesCmd, recurringCmd, configCmd, resetCmd, sampleCmd)
}

func parseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}
