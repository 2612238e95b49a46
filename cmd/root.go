package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sst/growingtext/internal/config"
	"github.com/sst/growingtext/internal/history"
	"github.com/sst/growingtext/internal/logging"
	"github.com/sst/growingtext/internal/status"
	"github.com/sst/growingtext/internal/tui"
	"github.com/sst/growingtext/internal/tui/theme"
	"github.com/sst/growingtext/pkg/pubsub"
)

// Version is set at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "growtext",
	Short: "A chat input that grows with what you type",
	Long: `growtext is a terminal chat screen built around a self-resizing input.
The input starts at its minimum height, grows one line at a time as you type,
and scrolls once it reaches its maximum height. Submitted messages are rendered
as markdown in the transcript above it.`,
	Version:      Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logs := logging.NewService(0)
		defer logs.Shutdown()
		statusService := status.NewService()
		defer statusService.Shutdown()

		// Records go to the in-memory feed; the alternate screen owns the
		// terminal.
		lvl := new(slog.LevelVar)
		logger := logging.NewTUILogger(logs, slog.LevelDebug)
		slog.SetDefault(slog.New(levelHandler{Handler: logger.Handler(), level: lvl}))

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Debug {
			lvl.Set(slog.LevelDebug)
		}
		if cfg.TUI.Theme != "" {
			if err := theme.SetTheme(cfg.TUI.Theme); err != nil {
				slog.Warn("unknown theme, using default", "theme", cfg.TUI.Theme, "error", err)
			}
		}

		zones := zone.New()
		defer zones.Close()

		hist, err := openHistory(cfg.History)
		if err != nil {
			slog.Warn("history disabled", "error", err)
		}
		if hist != nil {
			defer hist.Close()
		}

		program := tea.NewProgram(
			tui.New(tui.Options{
				Config:  cfg,
				Logs:    logs,
				History: hist,
				Zones:   zones,
				Logger:  slog.Default(),
			}),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Setup the subscriptions, this will send services events to the TUI
		ch, cancelSubs := setupSubscriptions(ctx, logs, statusService)

		tuiCtx, tuiCancel := context.WithCancel(ctx)
		var tuiWg sync.WaitGroup
		tuiWg.Add(1)

		go func() {
			defer tuiWg.Done()
			defer logging.RecoverPanic("TUI-message-handler", func() {
				attemptTUIRecovery(program)
			})

			for {
				select {
				case <-tuiCtx.Done():
					slog.Info("TUI message handler shutting down")
					return
				case msg, ok := <-ch:
					if !ok {
						slog.Info("TUI message channel closed")
						return
					}
					program.Send(msg)
				}
			}
		}()

		growing := cfg.Growing()
		statusService.Info(fmt.Sprintf("input grows from %d to %d lines", growing.MinLines, growing.MaxLines))

		cleanup := func() {
			cancelSubs()
			tuiCancel()
			tuiWg.Wait()
			slog.Info("All goroutines cleaned up")
		}

		result, err := program.Run()
		cleanup()

		if err != nil {
			slog.Error("TUI error", "error", err)
			return fmt.Errorf("TUI error: %w", err)
		}

		slog.Info("TUI exited", "result", result)
		return nil
	},
}

// levelHandler filters records below a level that can change after the
// logger is installed.
type levelHandler struct {
	slog.Handler
	level slog.Leveler
}

func (h levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.Handler.Enabled(ctx, l)
}

func (h levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

func (h levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{Handler: h.Handler.WithGroup(name), level: h.level}
}

// attemptTUIRecovery quits the program after a panic in the message handler.
func attemptTUIRecovery(program *tea.Program) {
	slog.Info("Attempting to recover TUI after panic")
	program.Quit()
}

// openHistory opens the history bucket, or returns nil when history is off.
func openHistory(c config.HistoryConfig) (history.Service, error) {
	if !c.Enabled {
		return nil, nil
	}
	dir := c.Dir
	if dir == "" {
		d, err := history.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	bucket, err := history.OpenDir(dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("history opened", "dir", dir, "limit", c.Limit)
	return history.NewService(bucket, c.Limit), nil
}

// loadConfig reads the configuration with the command's flags bound to
// their config keys. Flags a command does not define are skipped.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	configFile, _ := cmd.Flags().GetString("config")
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd == "" {
		c, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		cwd = c
	}

	flags := map[string]*pflag.Flag{
		"view.minLines":    cmd.Flags().Lookup("min-lines"),
		"view.maxLines":    cmd.Flags().Lookup("max-lines"),
		"view.placeholder": cmd.Flags().Lookup("placeholder"),
		"tui.theme":        cmd.Flags().Lookup("theme"),
	}

	return config.Load(config.LoadOptions{
		WorkingDir: cwd,
		ConfigFile: configFile,
		Debug:      debug,
		Flags:      flags,
	})
}

func setupSubscriber[T any](
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	subscriber func(context.Context) <-chan pubsub.Event[T],
	outputCh chan<- tea.Msg,
) {
	// Subscribe before returning so nothing published afterwards is missed.
	subCh := subscriber(ctx)
	if subCh == nil {
		slog.Warn("subscription channel is nil", "name", name)
		return
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer logging.RecoverPanic(fmt.Sprintf("subscription-%s", name), nil)

		for {
			select {
			case event, ok := <-subCh:
				if !ok {
					slog.Debug("subscription channel closed", "name", name)
					return
				}

				var msg tea.Msg = event

				select {
				case outputCh <- msg:
				case <-time.After(2 * time.Second):
					slog.Warn("message dropped due to slow consumer", "name", name)
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func setupSubscriptions(parentCtx context.Context, logs logging.Service, statusService status.Service) (chan tea.Msg, func()) {
	ch := make(chan tea.Msg, 100)

	wg := sync.WaitGroup{}
	ctx, cancel := context.WithCancel(parentCtx)

	setupSubscriber(ctx, &wg, "logging", logs.Subscribe, ch)
	setupSubscriber(ctx, &wg, "status", statusService.Subscribe, ch)

	cleanupFunc := func() {
		cancel()

		waitCh := make(chan struct{})
		go func() {
			defer logging.RecoverPanic("subscription-cleanup", nil)
			wg.Wait()
			close(waitCh)
		}()

		select {
		case <-waitCh:
			close(ch)
		case <-time.After(5 * time.Second):
			// Writers may still be running; leave ch open.
			slog.Warn("Timed out waiting for some subscription goroutines to complete")
		}
	}
	return ch, cleanupFunc
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default is $HOME/.growtext.toml)")
	rootCmd.PersistentFlags().String("cwd", "", "Directory to look for a local .growtext config in")

	rootCmd.Flags().Int("min-lines", 0, "Minimum visible lines of the input")
	rootCmd.Flags().Int("max-lines", 0, "Maximum visible lines before the input scrolls")
	rootCmd.Flags().String("placeholder", "", "Placeholder shown while the input is empty")
	rootCmd.Flags().String("theme", "", "Theme name ("+themeNames()+")")

	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(configCmd)
}

func themeNames() string {
	return strings.Join(theme.AvailableThemes(), ", ")
}
