package transport

// transport.go submits payloads to the reporting endpoint.
//
// The reporting endpoint is an internal service with an outdated TLS setup,
// so the sender can be configured to skip certificate and hostname
// verification and to accept server-initiated renegotiation. Both weaken
// TLS: any host able to intercept the connection can read and forge
// reports. They must only be enabled for trusted internal endpoints.

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Options configures the TLS behaviour of a Sender.
type Options struct {
	// SkipVerify disables certificate chain and hostname verification
	SkipVerify bool
	// LegacyRenegotiation lets the server renegotiate at any time
	LegacyRenegotiation bool
}

// LegacyOptions returns the options required by the reporting endpoint.
func LegacyOptions() Options {
	return Options{
		SkipVerify:          true,
		LegacyRenegotiation: true,
	}
}

// TLSConfig returns the client TLS configuration described by o.
func (o Options) TLSConfig() *tls.Config {
	cfg := &tls.Config{
		InsecureSkipVerify: o.SkipVerify,
	}
	if o.LegacyRenegotiation {
		cfg.Renegotiation = tls.RenegotiateFreelyAsClient
	}
	return cfg
}

// Sender POSTs JSON payloads. It does not retry and does not inspect
// responses.
type Sender struct {
	logger zerolog.Logger
	client *http.Client
}

// New creates a Sender. The client has no timeout: a request blocks until
// the server answers or the connection fails.
func New(logger zerolog.Logger, opts Options) *Sender {
	if opts.SkipVerify {
		logger.Debug().Msg("TLS certificate verification disabled for reporting endpoint")
	}

	return &Sender{
		logger: logger,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: opts.TLSConfig(),
			},
		},
	}
}

// Send encodes payload as JSON and POSTs it to url. The response is
// discarded; only transport errors are returned.
func (s *Sender) Send(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Debug().
		Str("url", url).
		Int("bytes", len(body)).
		Msg("Submitting report")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit report: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Debug().Int("status", resp.StatusCode).Msg("Report submitted")
	return nil
}
