package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetrics = `# HELP http_requests_total Requests served.
# TYPE http_requests_total counter
http_requests_total{code="200",method="get"} 1027
http_requests_total{code="500",method="get"} 3
http_requests_total{code="200",method="post"} 10
# HELP queue_depth Jobs waiting.
# TYPE queue_depth gauge
queue_depth 7.5
# HELP request_seconds Request latency.
# TYPE request_seconds histogram
request_seconds_bucket{le="0.5"} 2
request_seconds_bucket{le="+Inf"} 3
request_seconds_sum 1.25
request_seconds_count 3
`

func TestHTTP_Read(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(" 61\n"))
		case "/auth":
			if r.Header.Get("Authorization") != "Bearer t0k" {
				http.Error(w, "nope", http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte("authed"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		path    string
		headers map[string]string
		want    string
		wantErr string
	}{
		{name: "body trimmed", path: "/ok", want: "61"},
		{name: "headers sent", path: "/auth", headers: map[string]string{"authorization": "Bearer t0k"}, want: "authed"},
		{name: "missing header", path: "/auth", wantErr: "401"},
		{name: "not found", path: "/missing", wantErr: "404"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HTTP{URL: srv.URL + tt.path, Headers: tt.headers, Client: srv.Client()}
			text, err := h.Read(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.IsCode(err, errors.ErrSource))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestHTTP_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := (&HTTP{URL: url}).Read(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSource))
}

func TestPrometheus_Read(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(sampleMetrics))
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		metric  string
		labels  map[string]string
		want    string
		wantErr string
	}{
		{name: "counter summed across series", metric: "http_requests_total", want: "1040"},
		{name: "label filter", metric: "http_requests_total", labels: map[string]string{"code": "200"}, want: "1037"},
		{name: "two labels", metric: "http_requests_total", labels: map[string]string{"code": "200", "method": "post"}, want: "10"},
		{name: "label names ignore case", metric: "http_requests_total", labels: map[string]string{"CODE": "500"}, want: "3"},
		{name: "gauge", metric: "queue_depth", want: "7.5"},
		{name: "histogram sum", metric: "request_seconds", want: "1.25"},
		{name: "unknown metric", metric: "nope_total", wantErr: "not found"},
		{name: "no matching series", metric: "http_requests_total", labels: map[string]string{"code": "418"}, wantErr: "No http_requests_total series"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Prometheus{URL: srv.URL, Metric: tt.metric, Labels: tt.labels, Client: srv.Client()}
			text, err := p.Read(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}

	assert.Contains(t, accept, "text/plain")
}

func TestPrometheus_BadFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is { not metrics"))
	}))
	defer srv.Close()

	_, err := (&Prometheus{URL: srv.URL, Metric: "x"}).Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't parse metrics")
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42, "42"},
		{-3, "-3"},
		{0.25, "0.25"},
		{1e20, "1e+20"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in))
	}
}
