package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"spendwatch/internal/services"
)

// Server is the JSON presentation layer over RecordService. All routes are
// thin wrappers; computation lives in core and the service.
type Server struct {
	*http.Server
	svc *services.RecordService
}

func NewServer(addr string, svc *services.RecordService) *Server {
	s := &Server{svc: svc}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/records", s.handleCreateRecord).Methods(http.MethodPost)
	r.HandleFunc("/records", s.handleListRecords).Methods(http.MethodGet)
	r.HandleFunc("/records/{index:[0-9]+}/usage", s.handleUpdateUsage).Methods(http.MethodPatch)
	r.HandleFunc("/summary/frequency", s.handleFrequencySummary).Methods(http.MethodGet)
	r.HandleFunc("/charts/daily", s.handleDailyChart).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)

	s.Server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
