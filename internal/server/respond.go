package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
	ID      string `json:"_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}

// writeError maps err onto its HTTP status and reports it as {"error": "..."}.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		common.LoggerFromContext(r.Context(), logger).Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: common.Message(err)})
}
