package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "dispatch/internal/adapters/in/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e, err := api.NewEcho(api.NewServer(api.Handlers{}, logger), logger)
	require.NoError(t, err)
	return e
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.Error {
	t.Helper()

	var body api.Error
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&body))
	return body
}

func TestServer_Health(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_InvalidPathID(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/invoices/not-a-uuid/progress", ""},
		{http.MethodPost, "/api/v1/invoices/not-a-uuid/stage-advance", `{}`},
		{http.MethodPost, "/api/v1/invoices/not-a-uuid/document-check", ""},
		{http.MethodPut, "/api/v1/packing-units/not-a-uuid/file-name", `{"fileName":"FR-1"}`},
		{http.MethodPost, "/api/v1/transport-requests/not-a-uuid/reject", `{"reason":"no truck"}`},
		{http.MethodDelete, "/api/v1/load-confirmations/not-a-uuid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, http.StatusUnprocessableEntity, body.Code)
			assert.Contains(t, body.Message, "uuid")
		})
	}
}

func TestServer_MalformedBody(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/v1/invoices", `{"number":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
}

func TestServer_CommandValidationFailsBeforeHandler(t *testing.T) {
	h := newTestServer(t)

	t.Run("invoice without number", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/api/v1/invoices", `{"number":"  "}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "invoiceNumber")
	})

	t.Run("unknown inspection kind", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPut,
			"/api/v1/invoices/7f0c7c3e-3a4f-4f7e-9b0e-2c1d4c8b9a01/inspections/xray",
			`{"status":"passed"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("load confirmation without invoices", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/api/v1/load-confirmations",
			`{"fileReference":"FR-1","transporter":"Nordfrakt"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "invoiceIds")
	})

	t.Run("email without recipients", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost,
			"/api/v1/load-confirmations/7f0c7c3e-3a4f-4f7e-9b0e-2c1d4c8b9a01/email",
			`{"recipients":[]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("invalid activity limit", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet,
			"/api/v1/invoices/7f0c7c3e-3a4f-4f7e-9b0e-2c1d4c8b9a01/activity?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("activity limit out of range", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet,
			"/api/v1/invoices/7f0c7c3e-3a4f-4f7e-9b0e-2c1d4c8b9a01/activity?limit=100000", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
