package handler

import (
	"net/http"
	"strings"

	"YjsonAPI/internal/config"
	"YjsonAPI/internal/datalayer"
	"YjsonAPI/internal/jsonapi"
	"YjsonAPI/internal/logger"
	"YjsonAPI/internal/querystring"
	"YjsonAPI/internal/schema"
)

// API — обработчики read-эндпоинтов JSON:API поверх реестра схем
// и слоя данных.
type API struct {
	Config   *config.Config
	Data     *datalayer.Postgres
	Registry *schema.Registry
}

func New(cfg *config.Config, data *datalayer.Postgres) *API {
	return &API{Config: cfg, Data: data, Registry: data.Registry}
}

// Resources маршрутизирует GET-запросы вида
// /api/{type}, /api/{type}/{id} и /api/{type}/{id}/relationships/{name}.
func (a *API) Resources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		logger.Warn("method_not_allowed", map[string]any{
			"path":   r.URL.Path,
			"method": r.Method,
		})
		respondError(w, &jsonapi.Error{
			Status: http.StatusMethodNotAllowed,
			Title:  "Method not allowed",
			Detail: "Only GET is supported",
		})
		return
	}

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/"), "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		a.Collection(w, r, parts[0])
	case len(parts) == 2:
		a.Detail(w, r, parts[0], parts[1])
	case len(parts) == 4 && parts[2] == "relationships":
		a.Relationship(w, r, parts[0], parts[1], parts[3])
	default:
		respondError(w, &jsonapi.Error{
			Status: http.StatusNotFound,
			Title:  "Not found",
			Detail: "unknown resource path: " + r.URL.Path,
		})
	}
}

func (a *API) queryOptions() querystring.Options {
	return querystring.Options{
		DisallowPageSizeZero: !a.Config.JSONAPI.AllowDisablePagination,
		MaxPageSize:          a.Config.JSONAPI.MaxPageSize,
		MaxIncludeDepth:      a.Config.JSONAPI.MaxIncludeDepth,
		DefaultPageSize:      a.Config.JSONAPI.DefaultPageSize,
	}
}

func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}
