package main

import (
	"YjsonAPI/internal/config"
	"YjsonAPI/internal/db"
	"YjsonAPI/internal/logger"
	"YjsonAPI/internal/router"
	"YjsonAPI/internal/schema"
	"flag"
	"log"
	"net/http"

	"fmt"
	"os"
)

func main() {
	debugFlag := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	cfg := config.LoadConfig()
	if err := logger.Init("."); err != nil {
		fmt.Fprintf(os.Stderr, "log init failed: %v\n", err)
		os.Exit(1)
	}
	logger.SetDebug(*debugFlag)

	// PostgreSQL

	if err := db.InitPostgres(cfg.PostgresDSN); err != nil {
		logger.Error("postgres_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	logger.Info("postgres_connected", nil)

	// Redis опционален: без него работает всё, кроме кэша count
	if cfg.RedisAddr != "" {
		db.InitRedis(cfg.RedisAddr)
		if err := db.PingRedis(); err != nil {
			logger.Warn("redis_disabled", map[string]any{"error": err.Error()})
			db.RDB = nil
		} else {
			logger.Info("redis_connected", nil)
		}
	}

	// Загрузка и линковка схем ресурсов
	if err := schema.InitRegistry(cfg.SchemasDir); err != nil {
		logger.Error("registry_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	logger.Info("schemas_initialized", map[string]any{"types": schema.Default.Types()})

	router.InitRoutes(cfg)

	// Start HTTP server
	logger.Info("server_start", map[string]any{"port": cfg.Port})
	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		logger.Error("server_error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
