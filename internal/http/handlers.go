package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"spendwatch/internal/core"
	"spendwatch/internal/services"
	"spendwatch/internal/storage"
)

type createRecordRequest struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Category       string  `json:"category"`
	UsageFrequency string  `json:"usage_frequency"`
	UsageMinutes   int     `json:"usage_minutes"`
	CreatedAt      string  `json:"created_at"`
}

type updateUsageRequest struct {
	UsageFrequency *string `json:"usage_frequency"`
	UsageMinutes   *int    `json:"usage_minutes"`
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	record, err := s.svc.CreateRecord(r.Context(), services.CreateInput{
		Name:      req.Name,
		Amount:    req.Amount,
		Category:  req.Category,
		Frequency: req.UsageFrequency,
		Minutes:   req.UsageMinutes,
		Date:      req.CreatedAt,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.ListRecords(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleUpdateUsage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record index")
		return
	}

	var req updateUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UsageFrequency == nil && req.UsageMinutes == nil {
		writeError(w, http.StatusBadRequest, "nothing to update: provide usage_frequency and/or usage_minutes")
		return
	}

	record, err := s.svc.UpdateUsage(r.Context(), index, storage.UsagePatch{
		Frequency: req.UsageFrequency,
		Minutes:   req.UsageMinutes,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleFrequencySummary(w http.ResponseWriter, r *http.Request) {
	groups, err := s.svc.FrequencySummary(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleDailyChart(w http.ResponseWriter, r *http.Request) {
	reference, ok := dateParam(w, r, "date")
	if !ok {
		return
	}
	days, err := s.svc.DailyBarChart(r.Context(), reference)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	today, ok := dateParam(w, r, "today")
	if !ok {
		return
	}
	dash, err := s.svc.Dashboard(r.Context(), today)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

// dateParam reads an optional YYYY-MM-DD query parameter, defaulting to
// now. Unlike record dates, a malformed query parameter is the caller's
// mistake and gets a 400.
func dateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Now(), true
	}
	d, err := time.Parse(core.DateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, v := range []error{
		core.ErrEmptyName,
		core.ErrEmptyCategory,
		core.ErrNegativeAmount,
		core.ErrNegativeMinutes,
		core.ErrBadDate,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
