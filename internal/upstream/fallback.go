package upstream

import (
	"context"

	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/metrics"
	"regadmin/dashboard/internal/model"
)

// Fallback answers from primary and substitutes secondary when primary
// fails. Reads fall back on any failure. Login falls back only when the
// upstream could not be reached, so an explicit credential rejection still
// reaches the caller. Logout is never substituted. The secondary never sees
// the caller's bearer since it was issued by the primary.
type Fallback struct {
	primary   Source
	secondary Source
	log       logrus.FieldLogger
}

func WithFallback(primary, secondary Source, log logrus.FieldLogger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, log: log}
}

func (f *Fallback) note(endpoint string, err error) {
	f.log.WithError(err).WithField("endpoint", endpoint).Warn("upstream failed, serving fixture data")
	metrics.FallbackServed("proxy_" + endpoint)
}

func (f *Fallback) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	result, err := f.primary.Login(ctx, email, password)
	if err == nil || IsUpstreamRejection(err) {
		return result, err
	}
	f.note("login", err)
	return f.secondary.Login(ctx, email, password)
}

func (f *Fallback) Logout(ctx context.Context, bearer string) (model.LogoutResult, error) {
	return f.primary.Logout(ctx, bearer)
}

func (f *Fallback) StationJobs(ctx context.Context, bearer string, q JobQuery) ([]model.StationJob, error) {
	jobs, err := f.primary.StationJobs(ctx, bearer, q)
	if err == nil {
		return jobs, nil
	}
	f.note("station_jobs", err)
	return f.secondary.StationJobs(ctx, "", q)
}

func (f *Fallback) VehicleRegistrations(ctx context.Context, bearer string, q RegistrationQuery) ([]model.VehicleRegistration, error) {
	regs, err := f.primary.VehicleRegistrations(ctx, bearer, q)
	if err == nil {
		return regs, nil
	}
	f.note("vehicle_registrations", err)
	return f.secondary.VehicleRegistrations(ctx, "", q)
}

func (f *Fallback) LearnerPermits(ctx context.Context, bearer string, q StatusQuery) ([]model.LearnerPermit, error) {
	permits, err := f.primary.LearnerPermits(ctx, bearer, q)
	if err == nil {
		return permits, nil
	}
	f.note("learner_permits", err)
	return f.secondary.LearnerPermits(ctx, "", q)
}

func (f *Fallback) Plates(ctx context.Context, bearer string, q StatusQuery) ([]model.Plate, error) {
	plates, err := f.primary.Plates(ctx, bearer, q)
	if err == nil {
		return plates, nil
	}
	f.note("plates", err)
	return f.secondary.Plates(ctx, "", q)
}

// LiveLogout answers reads and logins from reads but always sends logout to
// the upstream, so a session is revoked there even when data comes from
// fixtures.
type LiveLogout struct {
	Source
	live *Live
}

func WithLiveLogout(reads Source, live *Live) *LiveLogout {
	return &LiveLogout{Source: reads, live: live}
}

func (l *LiveLogout) Logout(ctx context.Context, bearer string) (model.LogoutResult, error) {
	return l.live.Logout(ctx, bearer)
}
