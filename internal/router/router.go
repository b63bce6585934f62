package router

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"YjsonAPI/internal/config"
	"YjsonAPI/internal/datalayer"
	"YjsonAPI/internal/db"
	"YjsonAPI/internal/handler"
	"YjsonAPI/internal/logger"
	"YjsonAPI/internal/schema"
)

// InitRoutes регистрирует обработчики JSON:API на DefaultServeMux.
func InitRoutes(cfg *config.Config) {
	data := &datalayer.Postgres{
		Pool:            db.Pool,
		Registry:        schema.Default,
		DefaultPageSize: cfg.JSONAPI.DefaultPageSize,
	}
	api := handler.New(cfg, data)

	http.HandleFunc("/api/", withCORS(cfg.CORS, withLogging(api.Resources)))
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// withLogging помечает запрос request id и пишет в лог строку ответа
// с методом, путём, статусом и длительностью.
func withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := uuid.NewString()
		w.Header().Set("X-Request-Id", rid)

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)

		fields := map[string]any{
			"request_id": rid,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     sw.status,
			"duration":   time.Since(start).String(),
		}
		switch {
		case sw.status >= 500:
			logger.Error("response", fields)
		case sw.status >= 400:
			logger.Warn("response", fields)
		default:
			logger.Info("response", fields)
		}
	}
}
