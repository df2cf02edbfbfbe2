package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/apperr"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/catalog"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/httputil"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/ledger"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metsenat_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metsenat_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})
)

var validate = validator.New()

type Handler struct {
	ledger  *ledger.Engine
	catalog *catalog.Store
}

func New(engine *ledger.Engine, store *catalog.Store) *Handler {
	return &Handler{ledger: engine, catalog: store}
}

// respond writes the payload and records the request metric in one place.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, endpoint string, code int, payload any) {
	httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(code)).Inc()
	httputil.WriteJSON(w, code, payload)
}

// respondError maps a domain error to a transport status.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	var (
		validation *apperr.ValidationError
		notFound   *apperr.NotFoundError
		conflict   *apperr.ConflictError
	)
	var code int
	switch {
	case errors.As(err, &validation):
		code = http.StatusBadRequest
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(code)).Inc()
		httputil.WriteFieldError(w, code, validation.Field, validation.Message)
		return
	case errors.As(err, &notFound):
		code = http.StatusNotFound
	case errors.As(err, &conflict):
		code = http.StatusConflict
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(code)).Inc()
		httputil.WriteFieldError(w, code, conflict.Field, conflict.Error())
		return
	case errors.Is(err, apperr.ErrInsufficientBalance):
		code = http.StatusUnprocessableEntity
	default:
		logger.Log.Error("request failed", zap.String("endpoint", endpoint), zap.Error(err))
		httpRequestsTotal.WithLabelValues(r.Method, endpoint, "500").Inc()
		httputil.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	httpRequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(code)).Inc()
	httputil.WriteError(w, code, err.Error())
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, endpoint string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respond(w, r, endpoint, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid request body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0].Field()
			httpRequestsTotal.WithLabelValues(r.Method, endpoint, "400").Inc()
			httputil.WriteFieldError(w, http.StatusBadRequest, field, "failed on "+invalid[0].Tag()+" validation")
			return false
		}
		h.respond(w, r, endpoint, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("id", "a positive integer id is required")
	}
	return uint(id), nil
}

func observe(r *http.Request, endpoint string) *prometheus.Timer {
	return prometheus.NewTimer(httpRequestDuration.WithLabelValues(r.Method, endpoint))
}
