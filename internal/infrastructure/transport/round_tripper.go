// Package transport contiene el RoundTripper compartido por los clientes HTTP salientes.
package transport

import (
	"net/http"
	"time"

	"github.com/jhoicas/cutman-web/pkg/logger"
)

// LoggingRoundTripper registra cada llamada saliente (método, URL sin credenciales, status y duración).
// Nunca registra cuerpos ni el header Authorization.
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	log       *logger.Logger
}

// NewLoggingRoundTripper envuelve transport; nil usa http.DefaultTransport.
func NewLoggingRoundTripper(transport http.RoundTripper, log *logger.Logger) *LoggingRoundTripper {
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &LoggingRoundTripper{Transport: transport, log: log}
}

func (t *LoggingRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Transport.RoundTrip(r)
	elapsed := time.Since(start)
	if err != nil {
		t.log.Warn().Err(err).
			Str("method", r.Method).
			Str("url", r.URL.Redacted()).
			Dur("duration", elapsed).
			Msg("petición saliente fallida")
		return nil, err
	}
	ev := t.log.Debug()
	if resp.StatusCode >= http.StatusInternalServerError {
		ev = t.log.Warn()
	}
	ev.Str("method", r.Method).
		Str("url", r.URL.Redacted()).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("petición saliente")
	return resp, nil
}
