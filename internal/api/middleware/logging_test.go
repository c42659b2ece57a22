package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func loggedRequest(t *testing.T, path string, status int) string {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("body"))
	}))

	req := httptest.NewRequest(http.MethodPost, path, nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	return buf.String()
}

func TestLoggerRecordsRequest(t *testing.T) {
	out := loggedRequest(t, "/chat", http.StatusOK)

	for _, want := range []string{
		`"method":"POST"`,
		`"path":"/chat"`,
		`"status":200`,
		`"bytes":4`,
		`"level":"info"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line missing %s: %s", want, out)
		}
	}
}

func TestLoggerServerErrorsAtErrorLevel(t *testing.T) {
	out := loggedRequest(t, "/chat", http.StatusInternalServerError)

	if !strings.Contains(out, `"level":"error"`) {
		t.Fatalf("5xx should log at error level: %s", out)
	}
}

func TestLoggerSkipsProbeEndpoints(t *testing.T) {
	for _, path := range []string{"/health", "/metrics"} {
		if out := loggedRequest(t, path, http.StatusOK); out != "" {
			t.Fatalf("%s should not be logged, got %s", path, out)
		}
	}
}
