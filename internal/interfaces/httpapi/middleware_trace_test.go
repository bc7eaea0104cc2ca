package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldTraceRequest_HealthPaths(t *testing.T) {
	paths := []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "}
	for _, path := range paths {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
}

func TestShouldTraceRequest_NonHealthPaths(t *testing.T) {
	paths := []string{"/v1/matches", "/v1/categories", "/", "/docs"}
	for _, path := range paths {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, remote: "10.0.0.2:5555", want: "203.0.113.9"},
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "198.51.100.4", "X-Real-IP": "10.0.0.1"}, remote: "10.0.0.2:5555", want: "198.51.100.4"},
		{name: "remote addr fallback", remote: "192.0.2.10:1234", want: "192.0.2.10"},
		{name: "garbage", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/matches", nil)
			req.RemoteAddr = tt.remote
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			if got := resolveClientIP(req); got != tt.want {
				t.Fatalf("resolveClientIP()=%q want=%q", got, tt.want)
			}
		})
	}
}
