package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dharmasatrya/flightvalue/internal/models"
)

// RemoteProvider drives a browser-automation sidecar over HTTP. The sidecar
// owns the browser; this side only asks for sessions and results.
type RemoteProvider struct {
	client *resty.Client
}

type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

type sessionResponse struct {
	ID string `json:"id"`
}

type flightsResponse struct {
	Flights []models.RawObservation `json:"flights"`
}

func NewRemoteProvider(cfg RemoteConfig) *RemoteProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &RemoteProvider{client: client}
}

func (p *RemoteProvider) Name() string {
	return "remote"
}

func (p *RemoteProvider) Acquire(ctx context.Context, params models.SearchParams) (Session, error) {
	var session sessionResponse
	res, err := p.client.R().
		SetContext(ctx).
		SetBody(params).
		SetResult(&session).
		Post("/sessions")
	if err != nil {
		return nil, NewProviderError(p.Name(), "", fmt.Errorf("%w: %v", ErrTemporary, err))
	}
	if err := statusError(res); err != nil {
		return nil, NewProviderError(p.Name(), "", err)
	}
	if session.ID == "" {
		return nil, NewProviderError(p.Name(), "", fmt.Errorf("sidecar returned no session id"))
	}
	return &remoteSession{provider: p, id: session.ID}, nil
}

type remoteSession struct {
	provider *RemoteProvider
	id       string
}

func (s *remoteSession) Search(ctx context.Context, mode models.SearchMode) ([]models.RawObservation, error) {
	if !mode.Valid() {
		return nil, NewProviderError(s.provider.Name(), mode, fmt.Errorf("unknown search mode %q", mode))
	}

	var body flightsResponse
	res, err := s.provider.client.R().
		SetContext(ctx).
		SetPathParam("id", s.id).
		SetQueryParam("mode", string(mode)).
		SetResult(&body).
		Get("/sessions/{id}/flights")
	if err != nil {
		return nil, NewProviderError(s.provider.Name(), mode, fmt.Errorf("%w: %v", ErrTemporary, err))
	}
	if err := statusError(res); err != nil {
		return nil, NewProviderError(s.provider.Name(), mode, err)
	}
	return body.Flights, nil
}

func (s *remoteSession) Close() error {
	res, err := s.provider.client.R().
		SetPathParam("id", s.id).
		Delete("/sessions/{id}")
	if err != nil {
		return err
	}
	if res.StatusCode() == http.StatusNotFound {
		return nil
	}
	return statusError(res)
}

func statusError(res *resty.Response) error {
	code := res.StatusCode()
	switch {
	case code < 300:
		return nil
	case code == http.StatusTooManyRequests || code >= 500:
		return fmt.Errorf("%w: unexpected status: %d", ErrTemporary, code)
	default:
		return fmt.Errorf("unexpected status: %d", code)
	}
}
