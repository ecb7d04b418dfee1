package upstream

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/auth"
	"regadmin/dashboard/internal/fixtures"
	"regadmin/dashboard/internal/model"
)

const defaultFixturePageSize = 10

// Fixture answers from fixed datasets. Login mints a short-lived signed
// token for the submitted email so downstream calls carry a real bearer.
// Reads accept an empty bearer or one this fixture signed; anything else is
// answered with 401 like the upstream would.
type Fixture struct {
	secret   string
	issuer   string
	tokenTTL time.Duration
}

func NewFixture(secret, issuer string, tokenTTL time.Duration) *Fixture {
	return &Fixture{secret: secret, issuer: issuer, tokenTTL: tokenTTL}
}

func (f *Fixture) Login(_ context.Context, email, _ string) (model.LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return model.LoginResult{}, errors.New("missing_email")
	}
	user := fixtures.AdminUser()
	user.Email = email
	token, err := auth.NewAccessToken(f.secret, f.issuer, f.tokenTTL, user.ID, auth.Claims{
		Email:     user.Email,
		Role:      user.Role,
		StationID: user.StationID,
	})
	if err != nil {
		return model.LoginResult{}, err
	}
	return model.LoginResult{Success: true, Token: token, User: &user}, nil
}

func (f *Fixture) Logout(_ context.Context, bearer string) (model.LogoutResult, error) {
	if err := f.verify(bearer); err != nil {
		return model.LogoutResult{}, err
	}
	return model.LogoutResult{Success: true, Message: "Logged out successfully"}, nil
}

func (f *Fixture) verify(bearer string) error {
	if bearer == "" {
		return nil
	}
	if _, err := auth.ParseToken(f.secret, f.issuer, bearer); err != nil {
		return &apiclient.StatusError{Status: http.StatusUnauthorized, Message: "Invalid or expired token"}
	}
	return nil
}

func (f *Fixture) StationJobs(_ context.Context, bearer string, q JobQuery) ([]model.StationJob, error) {
	if err := f.verify(bearer); err != nil {
		return nil, err
	}
	return FilterJobs(fixtures.StationJobs(), q), nil
}

func (f *Fixture) VehicleRegistrations(_ context.Context, bearer string, q RegistrationQuery) ([]model.VehicleRegistration, error) {
	if err := f.verify(bearer); err != nil {
		return nil, err
	}
	regs := FilterRegistrations(fixtures.VehicleRegistrations(), q.RegistrationType)
	limit := q.Limit
	if q.Page > 0 && limit <= 0 {
		limit = defaultFixturePageSize
	}
	return Paginate(regs, q.Page, limit), nil
}

func (f *Fixture) LearnerPermits(_ context.Context, bearer string, q StatusQuery) ([]model.LearnerPermit, error) {
	if err := f.verify(bearer); err != nil {
		return nil, err
	}
	return FilterPermits(fixtures.LearnerPermits(), q.Status), nil
}

func (f *Fixture) Plates(_ context.Context, bearer string, q StatusQuery) ([]model.Plate, error) {
	if err := f.verify(bearer); err != nil {
		return nil, err
	}
	return FilterPlates(fixtures.Plates(), q.Status), nil
}
