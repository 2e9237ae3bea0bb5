package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pricehistory-service/internal/application"
	"pricehistory-service/internal/domain"
	"pricehistory-service/internal/infrastructure/logx"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

const (
	orderAsc  = "asc"
	orderDesc = "desc"
)

// PriceService is what the HTTP layer needs from the application.
type PriceService interface {
	Symbol() string
	Series(ctx context.Context) domain.Series
	Latest(ctx context.Context) (domain.PricePoint, error)
	Sync(ctx context.Context) (domain.Series, error)
	Status() domain.SyncStatus
	Ready(ctx context.Context) error
}

type Server struct {
	svc PriceService
	log *zap.Logger
}

func NewServer(svc PriceService) *Server {
	return &Server{svc: svc, log: logx.Named("http")}
}

type seriesResponse struct {
	Symbol string              `json:"symbol"`
	Count  int                 `json:"count"`
	Points []domain.PricePoint `json:"points"`
}

type pointResponse struct {
	Symbol string `json:"symbol"`
	domain.PricePoint
}

type refreshResponse struct {
	Symbol     string            `json:"symbol"`
	Count      int               `json:"count"`
	LastDate   string            `json:"last_date,omitempty"`
	Status     domain.SyncStatus `json:"status"`
	DurationMS int64             `json:"duration_ms"`
}

type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type listParams struct {
	Order *string
	Limit *int
}

func (s *Server) ListPrices(w http.ResponseWriter, r *http.Request) {
	var params listParams
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "order", q, &params.Order); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order")
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &params.Limit); err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	order := orderDesc
	if params.Order != nil {
		order = *params.Order
	}
	if order != orderAsc && order != orderDesc {
		writeError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}
	if params.Limit != nil && *params.Limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}

	series := s.svc.Series(r.Context())
	if order == orderDesc {
		series = series.Descending()
	}
	if params.Limit != nil && *params.Limit > 0 && *params.Limit < len(series) {
		series = series[:*params.Limit]
	}
	writeJSON(w, http.StatusOK, seriesResponse{
		Symbol: s.svc.Symbol(),
		Count:  len(series),
		Points: []domain.PricePoint(series),
	})
}

func (s *Server) LatestPrice(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Latest(r.Context())
	if errors.Is(err, application.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no prices stored yet")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pointResponse{Symbol: s.svc.Symbol(), PricePoint: p})
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	series, err := s.svc.Sync(r.Context())
	if err != nil {
		if errors.Is(err, application.ErrSyncInProgress) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := refreshResponse{
		Symbol:     s.svc.Symbol(),
		Count:      len(series),
		Status:     s.svc.Status(),
		DurationMS: time.Since(start).Milliseconds(),
	}
	if p, ok := series.Latest(); ok {
		resp.LastDate = p.Date
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) SyncStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Status())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorEnvelope{Code: status, Message: msg})
}
