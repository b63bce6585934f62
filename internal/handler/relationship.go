package handler

import (
	"fmt"
	"net/http"

	"YjsonAPI/internal/document"
	"YjsonAPI/internal/jsonapi"
	"YjsonAPI/internal/querystring"
	"YjsonAPI/internal/schema"
)

// Relationship обрабатывает GET /api/{type}/{id}/relationships/{name}:
// linkage-документ одной связи. include разворачивает связанные ресурсы
// в included, не меняя data.
func (a *API) Relationship(w http.ResponseWriter, r *http.Request, typeName, id, name string) {
	res, err := a.Registry.ByType(typeName)
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := schema.ResolveRelationship(res, name); err != nil {
		respondError(w, err)
		return
	}

	dirs, err := querystring.FromValues(r.URL.Query(), a.queryOptions())
	if err != nil {
		respondError(w, err)
		return
	}

	// проекция только из идентификатора и запрошенной связи
	base := schema.Options{Only: []string{res.ID(), name}}
	proj, err := schema.ComputeSchema(a.Registry, res, base, dirs, dirs.Include)
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

	links := map[string]string{
		"self":    requestBaseURL(r),
		"related": fmt.Sprintf("/api/%s/%s/%s", typeName, id, name),
	}
	respond(w, http.StatusOK, document.MarshalRelationship(proj, row, name, links))
}
