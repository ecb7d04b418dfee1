package service

import (
	"context"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/fixtures"
	"regadmin/dashboard/internal/model"
	"regadmin/dashboard/internal/payload"
	"regadmin/dashboard/internal/upstream"
)

type Permits struct {
	base
}

func NewPermits(client *apiclient.Client, tokens apiclient.TokenSource, timeout time.Duration, log logrus.FieldLogger) *Permits {
	return &Permits{base{name: "learner_permits", client: client, tokens: tokens, timeout: timeout, log: log}}
}

func (p *Permits) List(ctx context.Context, status string) []model.LearnerPermit {
	var permits []model.LearnerPermit
	if err := p.fetch(ctx, "/learner-permits", statusQuery(status), payload.Envelope, &permits); err != nil {
		p.fallback(err)
		permits = fixtures.LearnerPermits()
	}
	return upstream.FilterPermits(permits, status)
}

type Plates struct {
	base
}

func NewPlates(client *apiclient.Client, tokens apiclient.TokenSource, timeout time.Duration, log logrus.FieldLogger) *Plates {
	return &Plates{base{name: "plates", client: client, tokens: tokens, timeout: timeout, log: log}}
}

func (p *Plates) List(ctx context.Context, status string) []model.Plate {
	var plates []model.Plate
	if err := p.fetch(ctx, "/plates", statusQuery(status), payload.Envelope, &plates); err != nil {
		p.fallback(err)
		plates = fixtures.Plates()
	}
	return upstream.FilterPlates(plates, status)
}

func statusQuery(status string) url.Values {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	return query
}
