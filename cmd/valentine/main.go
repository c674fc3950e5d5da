package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/BradenHooton/valentine/internal/config"
	"github.com/BradenHooton/valentine/internal/content"
	"github.com/BradenHooton/valentine/internal/gate"
	"github.com/BradenHooton/valentine/internal/models"
	"github.com/BradenHooton/valentine/internal/tui"
	pkglogger "github.com/BradenHooton/valentine/pkg/logger"
)

var (
	envFile     string
	contentFile string
)

var rootCmd = &cobra.Command{
	Use:           "valentine",
	Short:         "A time-locked Valentine's card for the terminal",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default ./.env if present)")
	rootCmd.Flags().StringVar(&contentFile, "content", "", "YAML or TOML content file (overrides CONTENT_FILE)")
	rootCmd.AddCommand(hashSecretCmd, countdownCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		logger.Error("valentine failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func runCard(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: pkglogger.ParseLevel(cfg.App.LogLevel),
	}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.String("env", cfg.App.Env),
		slog.Time("target", cfg.Gate.Target),
		slog.Bool("dev_mode", cfg.Gate.DevMode))

	// Greeting content
	path := cfg.Greet.ContentFile
	if contentFile != "" {
		path = contentFile
	}
	card, err := loadContent(path)
	if err != nil {
		return err
	}

	auditLogger := pkglogger.NewAuditLogger(logger, cfg.App.Env, time.Now)

	// Gate changes from timer goroutines reach the program through Send.
	// Send is always called from a new goroutine because Submit notifies
	// synchronously from inside Update.
	var program atomic.Pointer[tea.Program]
	send := func(message tea.Msg) {
		if p := program.Load(); p != nil {
			go p.Send(message)
		}
	}

	g, err := gate.New(gate.Config{
		Target:            cfg.Gate.Target,
		AllowedIdentities: cfg.Gate.AllowedIdentities,
		AllowedSecrets:    cfg.Gate.AllowedSecrets,
		BypassSecret:      cfg.Gate.BypassSecret,
		DevMode:           cfg.Gate.DevMode,
		TickInterval:      cfg.Gate.TickInterval,
		DeniedTimeout:     cfg.Gate.DeniedTimeout,
		SettleDelay:       cfg.Gate.SettleDelay,
	},
		gate.WithLogger(logger),
		gate.WithAuditLogger(auditLogger),
		gate.WithOnChange(func(state models.State) { send(tui.StateMsg{State: state}) }),
		gate.WithOnUnlocked(func() { send(tui.UnlockedMsg{}) }),
	)
	if err != nil {
		return fmt.Errorf("failed to create gate: %w", err)
	}
	defer g.Close()

	model, err := tui.NewModel(g, tui.Options{
		Recipient: cfg.Greet.Recipient,
		Content:   card,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build card: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	program.Store(p)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("card exited: %w", err)
	}

	logger.Info("card closed", slog.String("phase", g.State().Phase.String()))
	return nil
}

func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	card, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load content %s: %w", path, err)
	}
	return card, nil
}
