package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/visiting-cards/internal/cards"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
	"github.com/joseph-ayodele/visiting-cards/internal/export"
	"github.com/joseph-ayodele/visiting-cards/internal/extract"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
)

const cardText = `ACME TECH SOLUTIONS PVT LTD
Rahul Sharma
+91 98765 43210
rahul.sharma@gmail.com
www.acmetech.com
Pune - 411001`

type staticOCR struct{}

func (staticOCR) Extract(context.Context, string) (extract.TextExtractionResult, error) {
	return extract.TextExtractionResult{Text: cardText, Method: "image-ocr", Confidence: 0.9}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()

	db, err := ConnectDB(ctx, common.DatabaseConfig{DSN: "file:" + filepath.Join(dir, "cards.db") + "?_time_format=sqlite"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { CloseDB(db, logger) })

	repo := repository.NewCardRepository(db, logger)
	svc, err := cards.NewService(repo, staticOCR{}, nil, cards.Options{UploadDir: filepath.Join(dir, "uploads")}, logger)
	require.NoError(t, err)

	h, err := NewRouter(Deps{
		DB:     db,
		Cards:  svc,
		Export: export.NewService(repo, logger),
		Logger: logger,
	}).Setup()
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "running")

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/readyz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"database":"ok"`)
}

func TestScanEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "card.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg bytes"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/scan", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, _ := io.ReadAll(resp.Body)
	got := decode[map[string]any](t, data)
	assert.Equal(t, "Rahul Sharma", got["name"])
	assert.Equal(t, "ACME TECH SOLUTIONS PVT LTD", got["company"])
	assert.Equal(t, "+919876543210", got["phone"])
	assert.Equal(t, "rahul.sharma@gmail.com", got["email"])
	assert.Equal(t, "www.acmetech.com", got["website"])
	assert.Equal(t, "Pune", got["city"])
	assert.Equal(t, cardText, got["rawText"])
}

func TestScanRequiresImage(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file"))
	require.NoError(t, mw.Close())

	resp, err := http.Post(srv.URL+"/scan", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "No image uploaded", decode[errorResponse](t, data).Error)
}

func TestExtractEndpoint(t *testing.T) {
	srv := newTestServer(t)

	payload, _ := json.Marshal(map[string]string{"text": cardText})
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/extract", string(payload))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]string](t, body)
	assert.Equal(t, "Rahul Sharma", got["name"])
	assert.Len(t, got, 6)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/extract", `{"text": 42}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/extract", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCardCRUD(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/cards", `{"name":"Rahul Sharma","company":"ACME","city":"Pune","website":"-"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[messageResponse](t, body)
	assert.Equal(t, "Data stored successfully", created.Message)
	id := created.ID
	require.NotEmpty(t, id)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/cards?search=acme", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]entity.Card](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID.String())
	assert.False(t, list[0].IsDeleted)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/cards/"+id, `{"name":"Rahul Sharma","city":"Mumbai"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/cards/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/api/cards/deleted", "/api/deleted"} {
		resp, body = doJSON(t, http.MethodGet, srv.URL+path, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		deleted := decode[[]entity.Card](t, body)
		require.Len(t, deleted, 1, path)
		assert.Equal(t, "Mumbai", deleted[0].City)
		assert.True(t, deleted[0].IsDeleted)
	}

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/debug/count", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	counts := decode[map[string]any](t, body)
	assert.EqualValues(t, 1, counts["deleted_docs"])
	assert.EqualValues(t, 0, counts["active_docs"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/deleted/restore/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/cards", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]entity.Card](t, body), 1)
}

func TestCardErrors(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/cards", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No data received", decode[errorResponse](t, body).Error)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/cards", `{"name": 7}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/cards/"+uuid.NewString(), `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/cards/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/cards/restore/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Card not found", decode[errorResponse](t, body).Error)
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/cards", `{"name":"Rahul Sharma","company":"ACME"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/export/excel", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), export.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rahul Sharma", rows[1][0])
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/cards", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}
