// Package upstream is the data source behind the proxy endpoints: a live
// forwarder to the vehicle-registration API, a fixture source with fixed
// datasets, and a composite that answers from fixtures when the live path
// fails.
package upstream

import (
	"context"

	"regadmin/dashboard/internal/model"
)

type JobQuery struct {
	FromDate         string
	ToDate           string
	Page             int
	RegistrationType string
}

type RegistrationQuery struct {
	Page             int
	Limit            int
	RegistrationType string
}

type StatusQuery struct {
	Status string
}

// Source is selected once at startup from configuration.
type Source interface {
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
	Logout(ctx context.Context, bearer string) (model.LogoutResult, error)
	StationJobs(ctx context.Context, bearer string, q JobQuery) ([]model.StationJob, error)
	VehicleRegistrations(ctx context.Context, bearer string, q RegistrationQuery) ([]model.VehicleRegistration, error)
	LearnerPermits(ctx context.Context, bearer string, q StatusQuery) ([]model.LearnerPermit, error)
	Plates(ctx context.Context, bearer string, q StatusQuery) ([]model.Plate, error)
}
