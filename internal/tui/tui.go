// Package tui implements the interactive bar for clammy.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/spinualexandru/clammy/internal/config"
	"github.com/spinualexandru/clammy/internal/sni"
	"github.com/spinualexandru/clammy/internal/tray"
)

// Run launches the bar.
func Run() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	log, err := newLogger()
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	size := settings.Tray.IconSize
	if size <= 0 {
		size = tray.IconSize
	}
	resolver := tray.NewResolver(size, tray.NewPathCache())
	if settings.Tray.IconThemePath != "" {
		resolver.SetFallbackThemeDir(settings.Tray.IconThemePath)
	}

	listener := tray.NewListener(func() (tray.Conn, error) {
		client, err := sni.Connect(log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}, resolver, log)

	model := NewModel(listener, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// newLogger builds a file logger under the config directory. Logging to
// stderr would corrupt the alternate screen, so stdout/stderr are never
// log sinks here.
func newLogger() (*zap.Logger, error) {
	if err := config.EnsureDir(); err != nil {
		return nil, err
	}
	path, err := config.LogFile()
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
