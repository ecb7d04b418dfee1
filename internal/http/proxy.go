package http

import (
	"net/http"
	"strings"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/model"
	"regadmin/dashboard/internal/upstream"
)

type proxyLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type proxyFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeProxyFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, proxyFailure{Success: false, Message: message})
}

// writeUpstreamError keeps the status and message of an upstream HTTP
// answer. Anything else is reported as a generic 500.
func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	if statusErr, ok := apiclient.AsStatus(err); ok {
		writeProxyFailure(w, statusErr.Status, statusErr.Message)
		return
	}
	s.logger(r).WithError(err).WithField("endpoint", endpoint).Error("proxy call failed")
	writeProxyFailure(w, http.StatusInternalServerError, "Internal server error")
}

func (s *Server) handleProxyLogin(w http.ResponseWriter, r *http.Request) {
	var req proxyLoginRequest
	if err := decodeLenientJSON(r, &req); err != nil {
		writeProxyFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeProxyFailure(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	result, err := s.deps.Source.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeUpstreamError(w, r, "login", err)
		return
	}
	result.Success = true
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProxyLogout(w http.ResponseWriter, r *http.Request) {
	if s.cfg.IsDevelopment() {
		writeJSON(w, http.StatusOK, model.LogoutResult{Success: true, Message: "Logged out successfully"})
		return
	}

	result, err := s.deps.Source.Logout(r.Context(), bearerToken(r.Header.Get("Authorization")))
	if err != nil {
		s.writeUpstreamError(w, r, "logout", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func jobQuery(r *http.Request) upstream.JobQuery {
	q := r.URL.Query()
	return upstream.JobQuery{
		FromDate:         q.Get("from-date"),
		ToDate:           q.Get("to-date"),
		Page:             queryInt(r, "page"),
		RegistrationType: q.Get("registrationType"),
	}
}

func registrationQuery(r *http.Request) upstream.RegistrationQuery {
	return upstream.RegistrationQuery{
		Page:             queryInt(r, "page"),
		Limit:            queryInt(r, "limit"),
		RegistrationType: r.URL.Query().Get("registrationType"),
	}
}

func (s *Server) handleProxyStationJobs(w http.ResponseWriter, r *http.Request) {
	q := jobQuery(r)
	jobs, err := s.deps.Source.StationJobs(r.Context(), bearerToken(r.Header.Get("Authorization")), q)
	if err != nil {
		s.writeUpstreamError(w, r, "station_jobs", err)
		return
	}
	writeJSON(w, http.StatusOK, upstream.FilterJobs(jobs, q))
}

func (s *Server) handleProxyVehicleRegistrations(w http.ResponseWriter, r *http.Request) {
	q := registrationQuery(r)
	regs, err := s.deps.Source.VehicleRegistrations(r.Context(), bearerToken(r.Header.Get("Authorization")), q)
	if err != nil {
		s.writeUpstreamError(w, r, "vehicle_registrations", err)
		return
	}
	writeJSON(w, http.StatusOK, model.Envelope[model.VehicleRegistration]{
		Data: upstream.FilterRegistrations(regs, q.RegistrationType),
	})
}

func (s *Server) handleProxyLearnerPermits(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	permits, err := s.deps.Source.LearnerPermits(r.Context(), bearerToken(r.Header.Get("Authorization")), upstream.StatusQuery{Status: status})
	if err != nil {
		s.writeUpstreamError(w, r, "learner_permits", err)
		return
	}
	writeJSON(w, http.StatusOK, model.Envelope[model.LearnerPermit]{Data: upstream.FilterPermits(permits, status)})
}

func (s *Server) handleProxyPlates(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	plates, err := s.deps.Source.Plates(r.Context(), bearerToken(r.Header.Get("Authorization")), upstream.StatusQuery{Status: status})
	if err != nil {
		s.writeUpstreamError(w, r, "plates", err)
		return
	}
	writeJSON(w, http.StatusOK, model.Envelope[model.Plate]{Data: upstream.FilterPlates(plates, status)})
}
