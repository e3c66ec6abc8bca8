// cmd/server/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/oonogame/oono/internal/config"
	"github.com/oonogame/oono/internal/handlers"
	"github.com/oonogame/oono/internal/middleware"
)

var configPath = flag.String("config", "", "path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	srv := handlers.NewGameServer(logger, cfg.Game.WinCleanupDelay())

	mux := http.NewServeMux()
	srv.Routes(mux)

	handler := middleware.LogMiddleware(logger)(mux)

	addr := cfg.Server.Addr()
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
