package handler

import (
	"net/http"
	"strconv"

	"YjsonAPI/internal/document"
	"YjsonAPI/internal/jsonapi"
	"YjsonAPI/internal/querystring"
	"YjsonAPI/internal/schema"
)

// Detail обрабатывает GET /api/{type}/{id}: единичный ресурс,
// fields и include работают так же, как на коллекции.
func (a *API) Detail(w http.ResponseWriter, r *http.Request, typeName, id string) {
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

	row, err := a.Data.Object(r.Context(), proj, parseID(id))
	if err != nil {
		respondError(w, err)
		return
	}
	if row == nil {
		respondError(w, jsonapi.ObjectNotFound(typeName, id))
		return
	}

	links := map[string]string{"self": requestBaseURL(r)}
	respond(w, http.StatusOK, document.MarshalOne(proj, row, links))
}

// parseID приводит идентификатор из пути к типу, сравнимому с колонкой:
// числовые id передаются числом, остальные — строкой (UUID и т.п.).
func parseID(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
