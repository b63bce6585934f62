package itests

import (
	"YjsonAPI/internal"
	"YjsonAPI/internal/config"
	"YjsonAPI/internal/db"
	"YjsonAPI/internal/router"
	"YjsonAPI/internal/schema"
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var (
	testBaseURL string
	httpSrv     *http.Server
)

func TestMain(m *testing.M) {
	cfg := config.LoadConfig()

	teardownDB, err := SetupAndTeardownTestDB(cfg.PostgresDSN, db.InitPostgres)
	if err != nil {
		// печатаем и выходим кодом 1, чтобы CI/локально это было видно
		println("setup test DB failed:", err.Error())
		os.Exit(1)
	}

	// 2) Схемы ресурсов берём из каталога db репозитория
	root, err := internal.FindRepoRoot()
	if err != nil {
		println("❌ findRepoRoot failed:", err.Error())
		os.Exit(1)
	}
	cfg.SchemasDir = filepath.Join(root, "db")

	if err := schema.InitRegistry(cfg.SchemasDir); err != nil {
		println("❌ InitRegistry failed:", err.Error())
		os.Exit(1) // критично: прекращаем ВЕСЬ пакет тестов
	}
	println("✅ Registry initialized from:", cfg.SchemasDir)

	// 3) Поднимаем HTTP-сервис на порту из конфига
	router.InitRoutes(cfg)
	httpSrv = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: http.DefaultServeMux,
	}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			println("❌ HTTP server failed:", err.Error())
			os.Exit(1)
		}
	}()

	// ждём, пока порт начнет слушаться
	if err := waitForPort("localhost", cfg.Port, 3*time.Second); err != nil {
		println("❌ HTTP port not ready:", err.Error())
		_ = httpSrv.Close()
		os.Exit(1)
	}
	testBaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	println("🚀 HTTP started at", testBaseURL)

	var ok bool
	if err := db.Pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name='articles')`,
	).Scan(&ok); err != nil {
		log.Printf("sanity check failed: %v", err)
	} else {
		log.Printf("articles table exists: %v", ok)
	}

	code := m.Run()

	// явный порядок завершения: сначала HTTP, потом БД, потом Exit
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	_ = httpSrv.Shutdown(ctx)
	cancel()

	if err := teardownDB(); err != nil {
		println("⚠️ drop test DB failed:", err.Error())
	}
	os.Exit(code)
}

func waitForPort(host, port string, timeout time.Duration) error {
	addr := net.JoinHostPort(host, port)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 150*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("port %s not reachable within %s", port, timeout)
}
