package http

import (
	"context"
	"net/http"
	"strings"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/crypto"
	"regadmin/dashboard/internal/identity"
	"regadmin/dashboard/internal/model"
	"regadmin/dashboard/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// handleLogin verifies the operator with the identity provider, then
// exchanges the same credentials for an upstream bearer token through the
// proxy. The token lands in the durable tier only when remember is set. The
// proxy hop carries the operator's address so its login limiter does not
// lump every operator under loopback.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	result := s.deps.Identity.Login(r.Context(), req.Email, req.Password)
	if !result.Success {
		writeJSON(w, http.StatusUnauthorized, result)
		return
	}

	var upstreamLogin model.LoginResult
	exchangeCtx := apiclient.WithForwardedFor(apiclient.WithBearer(r.Context(), ""), clientIP(r))
	err := s.deps.Proxy.PostJSON(exchangeCtx, "/login", proxyLoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}, &upstreamLogin)
	if err != nil || upstreamLogin.Token == "" {
		s.logger(r).WithError(err).Warn("token exchange failed")
		writeJSON(w, http.StatusBadGateway, identity.Result{Success: false, Message: identity.MessageFor("")})
		return
	}

	sessionID, err := crypto.NewSessionID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	ctx := session.WithID(r.Context(), sessionID)
	if err := s.deps.Tokens.Set(ctx, upstreamLogin.Token, *result.User, session.ParseScope(req.Remember)); err != nil {
		s.logger(r).WithError(err).Error("store token")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if req.Remember {
		cookie.MaxAge = int(s.cfg.DurableTokenTTL.Seconds())
	}
	http.SetCookie(w, cookie)
	writeJSON(w, http.StatusOK, result)
}

// handleLogout tells the upstream first, then clears both tiers whatever
// the upstream said.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := s.deps.Tokens.Get(ctx); ok {
		logoutCtx, cancel := context.WithTimeout(ctx, s.cfg.LogoutTimeout)
		if _, err := s.deps.Proxy.Do(logoutCtx, http.MethodPost, "/logout", nil, nil); err != nil {
			s.logger(r).WithError(err).Warn("upstream logout failed")
		}
		cancel()
	}
	if err := s.deps.Tokens.Clear(ctx); err != nil {
		s.logger(r).WithError(err).Warn("clear tokens")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, model.LogoutResult{Success: true, Message: "Logged out successfully"})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := s.deps.Tokens.User(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
