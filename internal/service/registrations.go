package service

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/fixtures"
	"regadmin/dashboard/internal/model"
	"regadmin/dashboard/internal/payload"
	"regadmin/dashboard/internal/upstream"
)

type RegistrationFilter = upstream.RegistrationQuery

type Registrations struct {
	base
}

func NewRegistrations(client *apiclient.Client, tokens apiclient.TokenSource, timeout time.Duration, log logrus.FieldLogger) *Registrations {
	return &Registrations{base{name: "vehicle_registrations", client: client, tokens: tokens, timeout: timeout, log: log}}
}

func (r *Registrations) List(ctx context.Context, filter RegistrationFilter) []model.VehicleRegistration {
	query := url.Values{}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.RegistrationType != "" {
		query.Set("registrationType", filter.RegistrationType)
	}

	var regs []model.VehicleRegistration
	if err := r.fetch(ctx, "/vehicle-registrations", query, payload.Envelope, &regs); err != nil {
		r.fallback(err)
		mock := upstream.FilterRegistrations(fixtures.VehicleRegistrations(), filter.RegistrationType)
		return upstream.Paginate(mock, filter.Page, filter.Limit)
	}
	return upstream.FilterRegistrations(regs, filter.RegistrationType)
}

// Get looks a registration up in the unfiltered listing.
func (r *Registrations) Get(ctx context.Context, id string) (model.VehicleRegistration, bool) {
	for _, reg := range r.List(ctx, RegistrationFilter{}) {
		if reg.ID == id {
			return reg, true
		}
	}
	return model.VehicleRegistration{}, false
}
