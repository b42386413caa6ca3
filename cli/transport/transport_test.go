package transport

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestTLSConfig(t *testing.T) {
	tests := []struct {
		name              string
		opts              Options
		wantSkipVerify    bool
		wantRenegotiation tls.RenegotiationSupport
	}{
		{
			name:              "legacy",
			opts:              LegacyOptions(),
			wantSkipVerify:    true,
			wantRenegotiation: tls.RenegotiateFreelyAsClient,
		},
		{
			name:              "strict",
			opts:              Options{},
			wantSkipVerify:    false,
			wantRenegotiation: tls.RenegotiateNever,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.opts.TLSConfig()
			require.Equal(t, tt.wantSkipVerify, cfg.InsecureSkipVerify)
			require.Equal(t, tt.wantRenegotiation, cfg.Renegotiation)
		})
	}
}

func TestSendSelfSignedServer(t *testing.T) {
	var (
		gotMethod      string
		gotContentType string
		gotBody        map[string]any
	)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("ignored"))
	}))
	defer srv.Close()

	s := New(zerolog.Nop(), LegacyOptions())
	err := s.Send(context.Background(), srv.URL, map[string]string{"id": "loc", "key": "42"})

	// the response status is not inspected
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, map[string]any{"id": "loc", "key": "42"}, gotBody)
}

func TestSendVerifyingClientRejectsSelfSigned(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s := New(zerolog.Nop(), Options{})
	err := s.Send(context.Background(), srv.URL, map[string]string{})
	require.Error(t, err)
}

func TestSendTransportError(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty url", url: ""},
		{name: "connection refused", url: "https://127.0.0.1:1/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(zerolog.Nop(), LegacyOptions())
			err := s.Send(context.Background(), tt.url, map[string]string{})
			require.Error(t, err)
		})
	}
}
