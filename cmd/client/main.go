// cmd/client/main.go
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/oonogame/oono/internal/config"
	"github.com/oonogame/oono/internal/ui"
)

func main() {
	serverURL := flag.String("server", "", "server URL, overriding the saved one")
	flag.Parse()

	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("failed to load client config: %v", err)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	logger := newFileLogger()
	logger.WithField("server", cfg.ServerURL).Info("client starting")

	p := tea.NewProgram(ui.New(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("client exited: %v", err)
	}
	logger.Info("client exited")
}

// newFileLogger logs to ~/.oono/client.log since the TUI owns the
// terminal. Falls back to discarding if the file cannot be opened.
func newFileLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	home, err := os.UserHomeDir()
	if err != nil {
		return logger
	}
	dir := filepath.Join(home, ".oono")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return logger
	}
	f, err := os.OpenFile(filepath.Join(dir, "client.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logger
	}
	logger.SetOutput(f)
	return logger
}
