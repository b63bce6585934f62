package handler

import (
	"net/http"

	"YjsonAPI/internal/document"
	"YjsonAPI/internal/logger"
	"YjsonAPI/internal/querystring"
	"YjsonAPI/internal/schema"
)

// Collection обрабатывает GET /api/{type}: коллекция ресурсов
// с учётом filter, page, fields, sort, include и group.
func (a *API) Collection(w http.ResponseWriter, r *http.Request, typeName string) {
	res, err := a.Registry.ByType(typeName)
	if err != nil {
		respondError(w, err)
		return
	}

	dirs, err := querystring.FromValues(r.URL.Query(), a.queryOptions())
	if err != nil {
		respondError(w, err)
		return
	}

	proj, err := schema.ComputeSchema(a.Registry, res, schema.Options{}, dirs, dirs.Include)
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := a.Data.Collection(r.Context(), proj, dirs)
	if err != nil {
		respondError(w, err)
		return
	}

	count, err := a.Data.Count(r.Context(), res, dirs.Filters)
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Info("collection", map[string]any{
		"type":  typeName,
		"count": count,
		"rows":  len(items),
	})

	links := document.PaginationLinks(
		requestBaseURL(r), r.URL.Query(),
		count, dirs.Pagination["number"], dirs.Pagination["size"],
		a.Config.JSONAPI.DefaultPageSize,
	)
	meta := map[string]any{"count": count}
	respond(w, http.StatusOK, document.MarshalCollection(proj, items, meta, links))
}
