package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/metrics"
	"regadmin/dashboard/internal/model"
	"regadmin/dashboard/internal/payload"
)

// Live forwards every call to the upstream vehicle-registration API. The
// caller's bearer token is passed through unchanged.
type Live struct {
	client        *apiclient.Client
	readTimeout   time.Duration
	logoutTimeout time.Duration
}

func NewLive(baseURL string, readTimeout, logoutTimeout time.Duration) *Live {
	clientTimeout := readTimeout
	if logoutTimeout > clientTimeout {
		clientTimeout = logoutTimeout
	}
	return &Live{
		client:        apiclient.New(apiclient.Config{BaseURL: baseURL, Timeout: clientTimeout}, nil),
		readTimeout:   readTimeout,
		logoutTimeout: logoutTimeout,
	}
}

func (l *Live) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	ctx, cancel := context.WithTimeout(apiclient.WithBearer(ctx, ""), l.readTimeout)
	defer cancel()

	var result model.LoginResult
	err := l.client.PostJSON(ctx, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	metrics.UpstreamCall("login", err)
	if err != nil {
		return model.LoginResult{}, err
	}
	if result.Token == "" {
		return model.LoginResult{}, fmt.Errorf("%w: login response without token", payload.ErrMalformed)
	}
	result.Success = true
	return result, nil
}

func (l *Live) Logout(ctx context.Context, bearer string) (model.LogoutResult, error) {
	ctx, cancel := context.WithTimeout(apiclient.WithBearer(ctx, bearer), l.logoutTimeout)
	defer cancel()

	body, err := l.client.Do(ctx, http.MethodPost, "/users/logout", nil, nil)
	metrics.UpstreamCall("logout", err)
	if err != nil {
		return model.LogoutResult{}, err
	}
	result := model.LogoutResult{Success: true, Message: payload.Field(body, "message")}
	if result.Message == "" {
		result.Message = "Logged out successfully"
	}
	return result, nil
}

func (l *Live) StationJobs(ctx context.Context, bearer string, q JobQuery) ([]model.StationJob, error) {
	query := url.Values{}
	setIf(query, "from-date", q.FromDate)
	setIf(query, "to-date", q.ToDate)
	setInt(query, "page", q.Page)
	setIf(query, "registrationType", q.RegistrationType)

	var jobs []model.StationJob
	err := l.list(ctx, bearer, "station_jobs", "/users/station-jobs/all", query, payload.Either, &jobs)
	return jobs, err
}

func (l *Live) VehicleRegistrations(ctx context.Context, bearer string, q RegistrationQuery) ([]model.VehicleRegistration, error) {
	query := url.Values{}
	setInt(query, "page", q.Page)
	setInt(query, "limit", q.Limit)
	setIf(query, "registrationType", q.RegistrationType)

	var regs []model.VehicleRegistration
	err := l.list(ctx, bearer, "vehicle_registrations", "/vehicle-registrations", query, payload.Envelope, &regs)
	return regs, err
}

func (l *Live) LearnerPermits(ctx context.Context, bearer string, q StatusQuery) ([]model.LearnerPermit, error) {
	query := url.Values{}
	setIf(query, "status", q.Status)

	var permits []model.LearnerPermit
	err := l.list(ctx, bearer, "learner_permits", "/learner-permits", query, payload.Envelope, &permits)
	return permits, err
}

func (l *Live) Plates(ctx context.Context, bearer string, q StatusQuery) ([]model.Plate, error) {
	query := url.Values{}
	setIf(query, "status", q.Status)

	var plates []model.Plate
	err := l.list(ctx, bearer, "plates", "/plates", query, payload.Envelope, &plates)
	return plates, err
}

func (l *Live) list(ctx context.Context, bearer, endpoint, path string, query url.Values, shape payload.Shape, out interface{}) error {
	ctx, cancel := context.WithTimeout(apiclient.WithBearer(ctx, bearer), l.readTimeout)
	defer cancel()

	body, err := l.client.Do(ctx, http.MethodGet, path, query, nil)
	if err == nil {
		err = payload.DecodeList(body, shape, out)
	}
	metrics.UpstreamCall(endpoint, err)
	return err
}

// IsUpstreamRejection reports whether err is an HTTP answer from the
// upstream rather than a transport or decoding failure.
func IsUpstreamRejection(err error) bool {
	_, ok := apiclient.AsStatus(err)
	return ok
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}
