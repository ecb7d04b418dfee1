package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"regadmin/dashboard/internal/model"
)

func (s *Server) handleListStationJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Jobs.List(r.Context(), jobQuery(r)))
}

func (s *Server) handleListRegistrations(w http.ResponseWriter, r *http.Request) {
	regs := s.deps.Registrations.List(r.Context(), registrationQuery(r))
	writeJSON(w, http.StatusOK, model.Envelope[model.VehicleRegistration]{Data: regs})
}

func (s *Server) handleGetRegistration(w http.ResponseWriter, r *http.Request) {
	reg, ok := s.deps.Registrations.Get(r.Context(), chi.URLParam(r, "registrationId"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

func (s *Server) handleListPermits(w http.ResponseWriter, r *http.Request) {
	permits := s.deps.Permits.List(r.Context(), r.URL.Query().Get("status"))
	writeJSON(w, http.StatusOK, model.Envelope[model.LearnerPermit]{Data: permits})
}

func (s *Server) handleListPlates(w http.ResponseWriter, r *http.Request) {
	plates := s.deps.Plates.List(r.Context(), r.URL.Query().Get("status"))
	writeJSON(w, http.StatusOK, model.Envelope[model.Plate]{Data: plates})
}
