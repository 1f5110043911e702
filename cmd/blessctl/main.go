package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matheus3301/quickblessing/internal/app"
	"github.com/matheus3301/quickblessing/internal/config"
	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/cue"
	"github.com/matheus3301/quickblessing/internal/profile"
	"github.com/matheus3301/quickblessing/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	profileFlag string
	verbose     bool
	jsonOut     bool
	limit       int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blessctl",
	Short: "Inspect and control a QuickBlessing profile",
	Long: `blessctl reads and changes the persisted state of a QuickBlessing ` +
		`profile: the running cooldown, the theme, the language and the ` +
		`blessing history. Commands that change state refuse to run while ` +
		`the profile is open in the terminal UI.`,
	SilenceUsage: true,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the cooldown and preferences",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var blessCmd = &cobra.Command{
	Use:   "bless",
	Short: "Be blessed and start the cooldown",
	Args:  cobra.NoArgs,
	RunE:  runBless,
}

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Set the theme, or toggle it when no value is given",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark"},
	RunE:      runTheme,
}

var languageCmd = &cobra.Command{
	Use:       "language [tr|en]",
	Aliases:   []string{"lang"},
	Short:     "Set the language, or toggle it when no value is given",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"tr", "en"},
	RunE:      runLanguage,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past blessings, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "profile name (overrides config default)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "also log to stderr")

	statusCmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	historyCmd.Flags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries")

	rootCmd.AddCommand(statusCmd, blessCmd, themeCmd, languageCmd, historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveProfile() (string, error) {
	name := profile.Resolve(profileFlag)
	if err := profile.ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// openStore opens the profile database without taking the profile lock.
// Only read-only commands use it.
func openStore(name string) (*store.DB, error) {
	if err := profile.EnsureDir(name); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}
	db, _, err := store.OpenMigrated(profile.StatePath(name))
	if err != nil {
		return nil, fmt.Errorf("open profile %q: %w", name, err)
	}
	return db, nil
}

// withManager starts the application module for the profile, which takes
// the profile lock, runs fn against the restored manager and shuts down.
func withManager(name string, fn func(mgr *cooldown.Manager, cfg *config.Config, logger *zap.Logger) error) error {
	cfg := config.LoadOrDefault(profile.ConfigPath())

	var console io.Writer
	if verbose {
		console = os.Stderr
	}

	var (
		mgr    *cooldown.Manager
		logger *zap.Logger
	)
	fxApp := app.New(app.Params{
		Profile:    name,
		Config:     cfg,
		Player:     cue.Nop,
		LogConsole: console,
	}, fx.Populate(&mgr, &logger))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		return err
	}

	runErr := fn(mgr, cfg, logger)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := fxApp.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
