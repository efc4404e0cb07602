/*
Package api exposes prediction over HTTP
*/
package api

import (
	"encoding/json"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go-ml.dev/pkg/bikeshare/driver"
	"go-ml.dev/pkg/bikeshare/features"
	"go-ml.dev/pkg/bikeshare/tables"
	"go-ml.dev/pkg/zorros/zlog"
	"golang.org/x/xerrors"
	"net/http"
)

/*
MaxBodySize limits prediction request body
*/
const MaxBodySize = 10 * 1024 * 1024

/*
Handler serves prediction requests by one predictor
*/
type Handler struct {
	Predictor *driver.Predictor
}

func NewHandler(p *driver.Predictor) *Handler {
	return &Handler{Predictor: p}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/version", h.Version)
	r.Post("/predict", h.Predict)
}

/*
Router returns router with request logging, panic recovery and CORS
*/
func (h *Handler) Router(origins ...string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": h.Predictor.Version()})
}

/*
Predict accepts JSON array of records or a single record object
*/
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(&raw); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		var row map[string]interface{}
		if err := json.Unmarshal(raw, &row); err != nil {
			http.Error(w, "Expected record or array of records", http.StatusBadRequest)
			return
		}
		rows = []map[string]interface{}{row}
	}
	res, err := h.Predictor.PredictRows(rows)
	if err != nil {
		zlog.Warning(fmt.Sprintf("prediction failed: %v", err.Error()))
		writeJSON(w, statusOf(err), map[string]string{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if len(res.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

// statusOf maps structural failures caused by request content to 422
func statusOf(err error) int {
	var schema *tables.SchemaError
	var category *features.UnmappedCategoryError
	var empty *features.EmptyColumnError
	if xerrors.As(err, &schema) || xerrors.As(err, &category) || xerrors.As(err, &empty) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Warning(fmt.Sprintf("failed to write response: %v", err.Error()))
	}
}
