package handler

import (
	"encoding/json"
	"net/http"

	"YjsonAPI/internal/jsonapi"
	"YjsonAPI/internal/logger"
)

func respond(w http.ResponseWriter, status int, doc map[string]any) {
	w.Header().Set("Content-Type", jsonapi.MediaType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		logger.Error("write_response_failed", map[string]any{"error": err.Error()})
	}
}

// respondError нормализует ошибку к JSON:API error object и пишет
// документ ошибок. 5xx логируются как ошибки, 4xx — как предупреждения.
func respondError(w http.ResponseWriter, err error) {
	e := jsonapi.AsError(err)
	fields := map[string]any{"status": e.Status, "error": err.Error()}
	if e.Status >= http.StatusInternalServerError {
		logger.Error("request_failed", fields)
	} else {
		logger.Warn("request_rejected", fields)
	}
	respond(w, e.Status, jsonapi.ErrorsPayload(e))
}
