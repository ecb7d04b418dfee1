// Package service holds the dashboard's read services. Each one issues a
// single call through the shared API client and answers with a fixed mock
// payload whenever that call cannot produce a trustworthy result.
package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"regadmin/dashboard/internal/apiclient"
	"regadmin/dashboard/internal/metrics"
	"regadmin/dashboard/internal/payload"
)

var (
	ErrMissingToken      = errors.New("missing_token")
	ErrMalformedResponse = payload.ErrMalformed
)

// base carries what every service shares.
type base struct {
	name    string
	client  *apiclient.Client
	tokens  apiclient.TokenSource
	timeout time.Duration
	log     logrus.FieldLogger
}

// fetch performs the single GET of a service call and decodes the list
// into out. A missing token short-circuits before any request is sent.
func (b base) fetch(ctx context.Context, path string, query url.Values, shape payload.Shape, out interface{}) error {
	if _, ok := b.tokens.Get(ctx); !ok {
		return ErrMissingToken
	}
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	body, err := b.client.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return payload.DecodeList(body, shape, out)
}

func (b base) fallback(err error) {
	entry := b.log.WithField("service", b.name).WithError(err)
	switch {
	case errors.Is(err, ErrMissingToken):
		entry.Info("no stored token, serving mock data")
	case apiclient.IsUnauthorized(err):
		entry.Info("stored token rejected and cleared, serving mock data")
	default:
		entry.Warn("request failed, serving mock data")
	}
	metrics.FallbackServed(b.name)
}
