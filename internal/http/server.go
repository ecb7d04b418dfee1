package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/cms"
	"regadmin/dashboard/internal/config"
	"regadmin/dashboard/internal/identity"
	"regadmin/dashboard/internal/metrics"
	"regadmin/dashboard/internal/service"
	"regadmin/dashboard/internal/session"
	"regadmin/dashboard/internal/upstream"
)

const sessionCookie = "dashboard_session"

// Deps are the components the router dispatches to. Proxy routes only need
// Source; dashboard routes need the rest.
type Deps struct {
	Log           logrus.FieldLogger
	Source        upstream.Source
	Tokens        *session.Store
	Proxy         *apiclient.Client
	Identity      *identity.Service
	Jobs          *service.Jobs
	Registrations *service.Registrations
	Permits       *service.Permits
	Plates        *service.Plates
	CMS           *cms.Services
	// Checks are run by /ready, keyed by dependency name.
	Checks map[string]func(context.Context) error
}

type Server struct {
	cfg          config.Config
	deps         Deps
	log          logrus.FieldLogger
	loginLimiter *rateLimiter
}

func NewServer(cfg config.Config, deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		cfg:          cfg,
		deps:         deps,
		log:          log,
		loginLimiter: newRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/proxy", func(r chi.Router) {
		r.With(s.loginLimiter.middleware).Post("/login", s.handleProxyLogin)
		r.Post("/logout", s.handleProxyLogout)
		r.Get("/station-jobs", s.handleProxyStationJobs)
		r.Get("/vehicle-registrations", s.handleProxyVehicleRegistrations)
		r.Get("/learner-permits", s.handleProxyLearnerPermits)
		r.Get("/plates", s.handleProxyPlates)
	})

	if s.deps.Tokens == nil {
		return r
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(s.withSession)
		r.With(s.loginLimiter.middleware).Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.requireSession).Get("/me", s.handleGetMe)
	})

	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/station-jobs", s.handleListStationJobs)
		r.Get("/vehicle-registrations", s.handleListRegistrations)
		r.Get("/vehicle-registrations/{registrationId}", s.handleGetRegistration)
		r.Get("/learner-permits", s.handleListPermits)
		r.Get("/plates", s.handleListPlates)
	})

	if s.deps.CMS != nil {
		r.Route("/api/cms", func(r chi.Router) {
			r.Use(s.withSession, s.requireSession)
			mountCollection(r, "/coupons", s.deps.CMS.Coupons, s.log)
			mountCollection(r, "/currencies", s.deps.CMS.Currencies, s.log)
			mountCollection(r, "/faqs", s.deps.CMS.FAQs, s.log)
			mountCollection(r, "/languages", s.deps.CMS.Languages, s.log)
			mountCollection(r, "/referrals", s.deps.CMS.Referrals, s.log)
		})
	}

	return r
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	failed := map[string]string{}
	for name, check := range s.deps.Checks {
		ctx, cancel := context.WithTimeout(r.Context(), s.cfg.PingTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			s.log.WithError(err).WithField("dependency", name).Warn("readiness check failed")
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "unavailable", "failed": failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

// decodeLenientJSON ignores fields out does not declare. The proxy routes
// use it since their callers may send more than the upstream contract.
func decodeLenientJSON(r *http.Request, out interface{}) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func queryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func sinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
