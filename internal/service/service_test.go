package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/logging"
	"regadmin/dashboard/internal/model"
	"regadmin/dashboard/internal/session"
)

type harness struct {
	ctx    context.Context
	store  *session.Store
	client *apiclient.Client
	calls  *int32
}

func newHarness(t *testing.T, handler http.HandlerFunc, withToken bool) harness {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := session.NewStore(session.NewMemoryKV(), session.NewMemoryKV(), time.Hour, time.Hour, logging.Discard())
	ctx := session.WithID(context.Background(), "sid")
	if withToken {
		require.NoError(t, store.Set(ctx, "tok", model.User{ID: "u1"}, session.Durable))
	}
	client := apiclient.New(apiclient.Config{BaseURL: srv.URL}, store)
	return harness{ctx: ctx, store: store, client: client, calls: &calls}
}

func TestJobsLiveResultIsFiltered(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/station-jobs", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"id":"a","registrationType":"new","createdAt":"2024-01-02T00:00:00Z"},
			{"id":"b","registrationType":"Renewal","createdAt":"2024-01-02T00:00:00Z"},
			{"id":"c","registrationType":"NEW","createdAt":"2024-01-03T00:00:00Z"}
		]`))
	}, true)

	jobs := NewJobs(h.client, h.store, time.Second, logging.Discard()).List(h.ctx, JobFilter{RegistrationType: "new"})
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].ID)
	assert.Equal(t, "c", jobs[1].ID)
}

func TestJobsFallBackOnTransportError(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, true)

	jobs := NewJobs(h.client, h.store, 50*time.Millisecond, logging.Discard()).List(h.ctx, JobFilter{})
	assert.Len(t, jobs, 5)
}

func TestJobsFallBackOnMalformedShape(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":"nope"}`))
	}, true)

	jobs := NewJobs(h.client, h.store, time.Second, logging.Discard()).List(h.ctx, JobFilter{})
	assert.Len(t, jobs, 5)
}

func TestMissingTokenSkipsTheCall(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}, false)

	regs := NewRegistrations(h.client, h.store, 0, logging.Discard()).List(h.ctx, RegistrationFilter{})
	assert.Len(t, regs, 8)
	assert.Equal(t, int32(0), atomic.LoadInt32(h.calls))
}

func TestUnauthorizedClearsTokenAndServesMock(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, true)

	regs := NewRegistrations(h.client, h.store, 0, logging.Discard()).List(h.ctx, RegistrationFilter{RegistrationType: "new"})
	assert.Len(t, regs, 4)

	_, ok := h.store.Get(h.ctx)
	assert.False(t, ok)
	_, ok = h.store.User(h.ctx)
	assert.False(t, ok)
}

func TestRegistrationsRequireEnvelopeAndGet(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"live-1","registrationType":"transfer"}]}`))
	}, true)
	svc := NewRegistrations(h.client, h.store, 0, logging.Discard())

	reg, ok := svc.Get(h.ctx, "live-1")
	require.True(t, ok)
	assert.Equal(t, "transfer", reg.RegistrationType)

	_, ok = svc.Get(h.ctx, "reg-001")
	assert.False(t, ok)
}

func TestMockRegistrationsArePaginated(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, true)

	regs := NewRegistrations(h.client, h.store, 0, logging.Discard()).List(h.ctx, RegistrationFilter{Page: 2, Limit: 5})
	require.Len(t, regs, 3)
	assert.Equal(t, "reg-006", regs[0].ID)
}

func TestMockRegistrationsPastTheEndAreEmpty(t *testing.T) {
	h := newHarness(t, nil, false)

	svc := NewRegistrations(h.client, h.store, 0, logging.Discard())
	assert.NotPanics(t, func() {
		assert.Empty(t, svc.List(h.ctx, RegistrationFilter{Page: 1 << 62, Limit: 4}))
	})
	assert.Zero(t, atomic.LoadInt32(h.calls))
}

func TestPermitsAndPlates(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/learner-permits":
			assert.Equal(t, "active", r.URL.Query().Get("status"))
			w.Write([]byte(`{"data":[{"id":"p1","status":"ACTIVE"},{"id":"p2","status":"expired"}]}`))
		default:
			w.Write([]byte(`[]`))
		}
	}, true)

	permits := NewPermits(h.client, h.store, 0, logging.Discard()).List(h.ctx, "active")
	require.Len(t, permits, 1)
	assert.Equal(t, "p1", permits[0].ID)

	plates := NewPlates(h.client, h.store, 0, logging.Discard()).List(h.ctx, "available")
	assert.Len(t, plates, 2)
}
