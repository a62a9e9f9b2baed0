package transport_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cutman-web/internal/infrastructure/transport"
	"github.com/jhoicas/cutman-web/pkg/logger"
)

func TestLoggingRoundTripper_RegistraSinCredenciales(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Out: &buf})
	client := &http.Client{Transport: transport.NewLoggingRoundTripper(nil, log)}

	u := strings.Replace(srv.URL, "http://", "http://user:secreto@", 1) + "/services?page=1"
	req, err := http.NewRequest(http.MethodGet, u, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer tok-privado")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	out := buf.String()
	assert.Contains(t, out, `"status":502`)
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "/services?page=1")
	assert.NotContains(t, out, "secreto")
	assert.NotContains(t, out, "tok-privado")
}
