package server

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/joseph-ayodele/visiting-cards/internal/cardfields"
	"github.com/joseph-ayodele/visiting-cards/internal/cards"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

const maxJSONBody = 1 << 20

type CardHandler struct {
	svc       *cards.Service
	schemas   *schemas
	maxUpload int64
	logger    *slog.Logger
}

func NewCardHandler(svc *cards.Service, maxUpload int64, logger *slog.Logger) (*CardHandler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &CardHandler{svc: svc, schemas: s, maxUpload: maxUpload, logger: logger}, nil
}

type scanResponse struct {
	cardfields.ContactFields
	RawText    string  `json:"rawText"`
	Confidence float32 `json:"confidence"`
	Cached     bool    `json:"cached"`
}

// Scan handles POST /scan with the card image in the multipart field "image".
func (h *CardHandler) Scan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, r, h.logger, status.Error(codes.InvalidArgument, "No image uploaded"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, r, h.logger, status.Error(codes.InvalidArgument, "No image uploaded"))
		return
	}
	defer func() { _ = file.Close() }()

	res, err := h.svc.Scan(r.Context(), header.Filename, file)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scanResponse{
		ContactFields: res.Fields,
		RawText:       res.Text,
		Confidence:    res.Confidence,
		Cached:        res.Cached,
	})
}

// Extract handles POST /extract for text that was recognized elsewhere.
func (h *CardHandler) Extract(w http.ResponseWriter, r *http.Request) {
	doc, err := h.readJSON(w, r, h.schemas.extract)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	text, _ := doc["text"].(string)
	fields, err := h.svc.ExtractText(r.Context(), text)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

// Save handles POST /cards.
func (h *CardHandler) Save(w http.ResponseWriter, r *http.Request) {
	fields, err := h.readCard(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	card, err := h.svc.Save(r.Context(), fields)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Data stored successfully", ID: card.ID.String()})
}

// List handles GET /api/cards?search=.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListDeleted handles GET /api/cards/deleted.
func (h *CardHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListDeleted(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Update handles PUT /api/cards/{id}.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := h.readCard(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if _, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Card updated successfully"})
}

// Delete handles DELETE /api/cards/{id}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Card moved to deleted records (isDeleted=true)"})
}

// Restore handles POST /api/cards/restore/{id}.
func (h *CardHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Card restored successfully (isDeleted=false)"})
}

func (h *CardHandler) readCard(w http.ResponseWriter, r *http.Request) (entity.CardFields, error) {
	doc, err := h.readJSON(w, r, h.schemas.card)
	if err != nil {
		return entity.CardFields{}, err
	}
	str := func(k string) string {
		s, _ := doc[k].(string)
		return s
	}
	return entity.CardFields{
		Name:    str("name"),
		Company: str("company"),
		Phone:   str("phone"),
		Email:   str("email"),
		Website: str("website"),
		City:    str("city"),
	}, nil
}

// readJSON reads a bounded JSON object body and validates it against schema.
func (h *CardHandler) readJSON(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, status.Error(codes.InvalidArgument, "request body too large")
		}
		return nil, status.Error(codes.InvalidArgument, "failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, status.Error(codes.InvalidArgument, "No data received")
	}

	v, err := common.ValidateJSON(schema, body)
	if err != nil {
		return nil, err
	}
	doc, _ := v.(map[string]any)
	if len(doc) == 0 {
		return nil, status.Error(codes.InvalidArgument, "No data received")
	}
	return doc, nil
}
