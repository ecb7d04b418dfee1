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

type JobFilter = upstream.JobQuery

type Jobs struct {
	base
}

func NewJobs(client *apiclient.Client, tokens apiclient.TokenSource, timeout time.Duration, log logrus.FieldLogger) *Jobs {
	return &Jobs{base{name: "station_jobs", client: client, tokens: tokens, timeout: timeout, log: log}}
}

// List never fails. When the call cannot complete the five mock jobs are
// returned, filtered the same way a live answer would be.
func (j *Jobs) List(ctx context.Context, filter JobFilter) []model.StationJob {
	query := url.Values{}
	if filter.FromDate != "" {
		query.Set("from-date", filter.FromDate)
	}
	if filter.ToDate != "" {
		query.Set("to-date", filter.ToDate)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.RegistrationType != "" {
		query.Set("registrationType", filter.RegistrationType)
	}

	var jobs []model.StationJob
	if err := j.fetch(ctx, "/station-jobs", query, payload.Array, &jobs); err != nil {
		j.fallback(err)
		jobs = fixtures.StationJobs()
	}
	return upstream.FilterJobs(jobs, filter)
}
