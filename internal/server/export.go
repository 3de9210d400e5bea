package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/joseph-ayodele/visiting-cards/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	svc    *export.Service
	logger *slog.Logger
}

func NewExportHandler(svc *export.Service, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// Excel handles GET /api/export/excel and streams the active cards as an XLSX download.
func (h *ExportHandler) Excel(w http.ResponseWriter, r *http.Request) {
	xlsx, err := h.svc.ExportCardsXLSX(r.Context())
	if err != nil {
		h.logger.Error("export.xlsx.failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Excel export failed: " + err.Error()})
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(xlsx)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xlsx)
}
