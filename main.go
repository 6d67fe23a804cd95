// ABOUTME: macOS menu bar agent that shows and toggles the system light/dark appearance.
// ABOUTME: Runs the tray agent by default; status and toggle subcommands work from a terminal.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/systray"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command needs once config is loaded.
type app struct {
	configPath string
	cfg        *Config
	logger     *zap.Logger
	automation Automation
}

func (a *app) load() error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if a.automation == nil {
		a.automation = NewOSAScript(cfg.OSAScriptPath, cfg.AutomationTimeout)
	}
	return nil
}

func (a *app) sync() {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// execute runs root and flushes the logger on every exit path; cobra skips
// post-run hooks when a command fails.
func execute(root *cobra.Command, a *app) error {
	defer a.sync()
	return root.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "theme-toggle",
		Short:         "Menu bar agent for switching between light and dark mode",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runAgent(cmd.Context(), a)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+ConfigDir()+"/config.yaml)")

	root.AddCommand(newStatusCmd(a), newToggleCmd(a))
	return root
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current system appearance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := NewOracle(a.automation, a.logger).Query(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), state.Label())
			return nil
		},
	}
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch the system appearance once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := NewToggler(a.automation).Toggle(cmd.Context())
			if err != nil {
				a.logger.Warn("toggle failed", zap.Error(err))
				if IsPermissionDenied(err) {
					printPermissionHelp(cmd.ErrOrStderr(), a.cfg.SettingsURL)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Appearance toggled")
			return nil
		},
	}
}

func printPermissionHelp(w io.Writer, settingsURL string) {
	fmt.Fprintln(w, permissionTitle)
	fmt.Fprintln(w, "Allow your terminal to control System Events under")
	fmt.Fprintln(w, "System Settings > Privacy & Security > Automation, then run toggle again.")
	fmt.Fprintf(w, "  open '%s'\n", settingsURL)
}

// runAgent blocks on systray.Run, which must own the main goroutine on macOS.
func runAgent(parent context.Context, a *app) {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tray := &Tray{}
	logger := a.logger

	onReady := func() {
		tray.Build()

		policy := newActivationPolicy()
		presenter := NewPresenter(PresenterOptions{
			Oracle:       NewOracle(a.automation, logger),
			Toggler:      NewToggler(a.automation),
			Recovery:     NewRecovery(policy, nativePrompt{}, browserOpener{}, a.cfg.SettingsURL, logger),
			Item:         tray,
			Policy:       policy,
			Logger:       logger,
			RefreshDelay: a.cfg.RefreshDelay,
		})
		presenter.Start(ctx)

		var external <-chan struct{}
		if a.cfg.WatchPreferences && a.cfg.PreferencesPath != "" {
			watcher, err := NewPrefsWatcher(a.cfg.PreferencesPath, logger)
			if err != nil {
				logger.Warn("preferences watcher disabled", zap.Error(err))
			} else {
				external = watcher.Changes()
				go watcher.Run(ctx)
			}
		}

		go func() {
			if err := presenter.Run(ctx, tray.Controls(external)); err != nil {
				logger.Error("presenter stopped", zap.Error(err))
			}
			tray.Quit()
		}()
	}

	onExit := func() {
		logger.Info("agent stopped")
	}

	logger.Info("starting agent", zap.Int("pid", os.Getpid()))
	systray.Run(onReady, onExit)
}

func main() {
	a := &app{}
	if err := execute(newRootCmd(a), a); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
