package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/auth"
	"regadmin/dashboard/internal/logging"
	"regadmin/dashboard/internal/payload"
)

func newLive(t *testing.T, handler http.HandlerFunc) *Live {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewLive(srv.URL, time.Second, time.Second)
}

func TestLiveForwardsBearerAndQuery(t *testing.T) {
	live := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/station-jobs/all", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("from-date"))
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		w.Write([]byte(`{"data":[{"id":"j1","registrationType":"new"}]}`))
	})

	jobs, err := live.StationJobs(context.Background(), "tok", JobQuery{FromDate: "2024-01-01", Page: 3})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].ID)
}

func TestLiveRegistrationsRequireEnvelope(t *testing.T) {
	live := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"reg-1"}]`))
	})

	_, err := live.VehicleRegistrations(context.Background(), "tok", RegistrationQuery{})
	assert.ErrorIs(t, err, payload.ErrMalformed)
}

func TestLiveLoginWithoutTokenIsMalformed(t *testing.T) {
	live := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true}`))
	})

	_, err := live.Login(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, payload.ErrMalformed)
}

func TestLiveLogoutEmptyBody(t *testing.T) {
	live := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	result, err := live.Logout(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Logged out successfully", result.Message)
}

func TestFixtureLoginMintsVerifiableToken(t *testing.T) {
	fx := NewFixture("secret", "issuer", time.Hour)

	result, err := fx.Login(context.Background(), " Ops@Example.com ", "x")
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "ops@example.com", result.User.Email)

	claims, err := auth.ParseToken("secret", "issuer", result.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Email)
}

func TestFixtureRejectsForeignBearer(t *testing.T) {
	fx := NewFixture("secret", "issuer", time.Hour)
	other := NewFixture("other-secret", "issuer", time.Hour)

	foreign, err := other.Login(context.Background(), "ops@example.com", "x")
	require.NoError(t, err)
	_, err = fx.StationJobs(context.Background(), foreign.Token, JobQuery{})
	statusErr, ok := apiclient.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Status)

	own, err := fx.Login(context.Background(), "ops@example.com", "x")
	require.NoError(t, err)
	plates, err := fx.Plates(context.Background(), own.Token, StatusQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, plates)

	_, err = fx.Plates(context.Background(), "", StatusQuery{})
	assert.NoError(t, err)
}

func TestLiveLogoutSendsLogoutUpstream(t *testing.T) {
	var paths []string
	live := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Session revoked"}`))
	})
	src := WithLiveLogout(NewFixture("secret", "issuer", time.Hour), live)

	_, err := src.Logout(context.Background(), "tok")
	statusErr, ok := apiclient.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, statusErr.Status)
	assert.Equal(t, "Session revoked", statusErr.Message)

	jobs, err := src.StationJobs(context.Background(), "", JobQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, jobs)
	assert.Equal(t, []string{"/users/logout"}, paths)
}

func TestFixtureRegistrationsPaginate(t *testing.T) {
	fx := NewFixture("secret", "issuer", time.Hour)

	regs, err := fx.VehicleRegistrations(context.Background(), "", RegistrationQuery{Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, "reg-004", regs[0].ID)
}

func TestFallbackServesSecondaryOnTransportFailure(t *testing.T) {
	live := NewLive("http://127.0.0.1:1", 200*time.Millisecond, 200*time.Millisecond)
	fx := NewFixture("secret", "issuer", time.Hour)
	src := WithFallback(live, fx, logging.Discard())

	jobs, err := src.StationJobs(context.Background(), "tok", JobQuery{RegistrationType: "renewal"})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	result, err := src.Login(context.Background(), "ops@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestFallbackKeepsUpstreamRejections(t *testing.T) {
	live := newLive(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	})
	src := WithFallback(live, NewFixture("secret", "issuer", time.Hour), logging.Discard())

	_, err := src.Login(context.Background(), "ops@example.com", "bad")
	statusErr, ok := apiclient.AsStatus(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", statusErr.Message)

	_, err = src.Logout(context.Background(), "tok")
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.False(t, errors.Is(err, payload.ErrMalformed))
}
