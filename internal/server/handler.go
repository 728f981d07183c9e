package server

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dshills/scorecard/internal/output"
	"github.com/dshills/scorecard/internal/review"
	"github.com/dshills/scorecard/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store      *store.Store
	version    string
	chartWidth int
}

// NewHandler creates a handler over st.
func NewHandler(st *store.Store, version string, chartWidth int) *Handler {
	return &Handler{store: st, version: version, chartWidth: chartWidth}
}

// AddRequest is the body of POST /api/v1/records. A missing dateFound
// defaults to today; any total in the body is ignored.
type AddRequest struct {
	Link      string           `json:"link"`
	Name      string           `json:"name"`
	DateFound review.Date      `json:"dateFound"`
	Scores    review.SubScores `json:"scores"`
}

// AddResponse is returned after a successful append.
type AddResponse struct {
	Index  int           `json:"index"`
	Record review.Record `json:"record"`
}

// DeleteResponse is returned after a successful delete.
type DeleteResponse struct {
	Deleted   review.Record `json:"deleted"`
	Remaining int           `json:"remaining"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": review.Tool,
		"version": h.version,
	})
}

// ListRecords returns the report for the records matching every range
// query parameter.
func (h *Handler) ListRecords(c *gin.Context) {
	ranges, err := review.ParseRanges(c.QueryArray("range"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	records, err := h.store.Load()
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	report := review.BuildReport(h.store.Path(), records, ranges)
	report.Version = h.version
	c.JSON(http.StatusOK, report)
}

// AddRecord appends one record.
func (h *Handler) AddRecord(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	rec, err := newRecord(req)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	records, err := h.store.Append(rec)
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	index := len(records) - 1
	c.JSON(http.StatusCreated, AddResponse{Index: index, Record: records[index]})
}

// DeleteRecord removes the record at the :index path parameter. The optional
// expectName query parameter guards against deleting a record that moved.
func (h *Handler) DeleteRecord(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("index must be an integer"))
		return
	}
	removed, remaining, err := h.store.Remove(index, c.Query("expectName"))
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: removed, Remaining: len(remaining)})
}

// Chart renders a plain-text bar chart of totals or of the field query
// parameter.
func (h *Handler) Chart(c *gin.Context) {
	var field review.Field
	if name := c.DefaultQuery("field", "total"); !strings.EqualFold(name, "total") {
		f, err := review.ParseField(name)
		if err != nil {
			h.fail(c, http.StatusBadRequest, err)
			return
		}
		field = f
	}
	ranges, err := review.ParseRanges(c.QueryArray("range"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	records, err := h.store.Load()
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	cw := &output.ChartWriter{Field: field, Width: h.chartWidth}
	if err := cw.Write(&buf, review.BuildReport(h.store.Path(), records, ranges)); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

func newRecord(req AddRequest) (review.Record, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return review.Record{}, &review.ValidationError{Field: "name", Value: req.Name, Reason: "must not be empty"}
	}
	date := req.DateFound
	if date.IsZero() {
		date = review.Today()
	}
	return review.NewRecord(strings.TrimSpace(req.Link), name, date, req.Scores)
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	resp := ErrorResponse{Error: err.Error()}
	var ve *review.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	c.AbortWithStatusJSON(status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, review.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, review.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, review.ErrStaleView):
		return http.StatusConflict
	case errors.Is(err, review.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
