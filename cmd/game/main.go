package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrazzaque/mystic-manor/internal/config"
	"github.com/mrazzaque/mystic-manor/internal/logger"
	"github.com/mrazzaque/mystic-manor/internal/storage"
)

func main() {
	cfg := config.Load()

	// The UI owns the terminal, so logs go to a file or nowhere.
	var logWriter io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close() // Ignore error in defer
		}()
		logWriter = f
	}
	log := logger.SetupWithWriter(cfg, logWriter)

	store := storage.NewWorldStore(cfg.DataDir, log)

	p := tea.NewProgram(NewGameUI(cfg, store, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
