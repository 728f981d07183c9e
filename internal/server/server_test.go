package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scorecard/internal/review"
	"github.com/dshills/scorecard/internal/store"
)

const lampBody = `{"link":"https://example.com/lamp","name":"Lamp","dateFound":"2024-03-01",
"scores":{"quality":5,"price":5,"reviewsRating":5,"functionality":5,"nicheFilling":5,
"potentialForImprovement":5,"environmentalFriendliness":5,"aesthetics":5,"pricePerformanceRatio":5,"trend":10}}`

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(filepath.Join(t.TempDir(), "data.csv"), logger)
	return NewRouter(NewHandler(st, "test", 10), logger), st
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagates(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestAddAndList(t *testing.T) {
	r, st := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/records", lampBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var added AddResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	assert.Equal(t, 0, added.Index)
	assert.Equal(t, 55, added.Record.TotalPoints)

	records, err := st.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	w = do(r, http.MethodGet, "/api/v1/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report review.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Lamp", report.Rows[0].Name)
	assert.Equal(t, "test", report.Version)
}

func TestListRecords_Range(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/records", lampBody).Code)

	w := do(r, http.MethodGet, "/api/v1/records?range=quality%3D8:10", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report review.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Empty(t, report.Rows)
	assert.Equal(t, []string{"quality=8:10"}, report.Filters)

	w = do(r, http.MethodGet, "/api/v1/records?range=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddRecord_Validation(t *testing.T) {
	r, st := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/records", strings.Replace(lampBody, `"trend":10`, `"trend":11`, 1))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "trend", resp.Field)

	w = do(r, http.MethodPost, "/api/v1/records", strings.Replace(lampBody, `"name":"Lamp"`, `"name":" "`, 1))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/api/v1/records", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	records, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDeleteRecord(t *testing.T) {
	r, st := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/records", lampBody).Code)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodDelete, "/api/v1/records/x", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/v1/records/5", "").Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodDelete, "/api/v1/records/0?expectName=Desk", "").Code)

	w := do(r, http.MethodDelete, "/api/v1/records/0?expectName=Lamp", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp DeleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Lamp", resp.Deleted.Name)
	assert.Equal(t, 0, resp.Remaining)

	records, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/api/v1/records/0", "").Code)
}

func TestStorageUnavailable(t *testing.T) {
	r, st := newTestRouter(t)
	require.NoError(t, os.WriteFile(st.Path(), []byte("garbage\n"), 0o644))

	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodGet, "/api/v1/records", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(r, http.MethodPost, "/api/v1/records", lampBody).Code)
}

func TestChart(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/v1/records", lampBody).Code)

	w := do(r, http.MethodGet, "/api/v1/chart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Total points")
	assert.Contains(t, w.Body.String(), "Lamp")

	w = do(r, http.MethodGet, "/api/v1/chart?field=trend", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), strings.Repeat("█", 10))

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/chart?field=colour", "").Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	r, _ := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Run(ctx, "127.0.0.1:0", r, slog.New(slog.NewTextHandler(io.Discard, nil))))
}
