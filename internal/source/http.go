package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/rileyhilliard/beacon/internal/errors"
)

// HTTP displays the body of a GET request.
type HTTP struct {
	URL     string
	Headers map[string]string
	Client  *http.Client
}

// Read fetches the URL. Any status other than 2xx is an error.
func (h *HTTP) Read(ctx context.Context) (string, error) {
	body, err := get(ctx, h.client(), h.URL, h.Headers, "")
	if err != nil {
		return "", err
	}
	return cleanText(body), nil
}

func (h *HTTP) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

func get(ctx context.Context, client *http.Client, url string, headers map[string]string, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource, "Bad request URL "+url, "Use a full http:// or https:// URL")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSource,
			"Request to "+url+" failed",
			"Check the endpoint is up and reachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrSource,
			fmt.Sprintf("%s returned %s", url, resp.Status),
			"Check the URL and any auth headers")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8*maxTextBytes))
	if err != nil {
		return nil, errors.Wrap(err, "Failed reading response from "+url)
	}
	return body, nil
}

// Prometheus displays one metric from a text-format /metrics endpoint. Every
// series of the metric whose labels include Labels is summed.
type Prometheus struct {
	URL     string
	Metric  string
	Labels  map[string]string
	Headers map[string]string
	Client  *http.Client
}

// Read scrapes the endpoint and returns the matching sum.
func (p *Prometheus) Read(ctx context.Context) (string, error) {
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	body, err := get(ctx, client, p.URL, p.Headers, string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	if err != nil {
		return "", err
	}

	families, err := parseMetrics(body)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSource,
			"Can't parse metrics from "+p.URL,
			"The endpoint must serve the Prometheus text format")
	}

	mf, ok := families[p.Metric]
	if !ok {
		return "", errors.New(errors.ErrSource,
			fmt.Sprintf("Metric %s not found at %s", p.Metric, p.URL),
			"Check the metric name; histogram and summary parts use their base name")
	}

	total, matched := sumFamily(mf, p.Labels)
	if matched == 0 {
		return "", errors.New(errors.ErrSource,
			fmt.Sprintf("No %s series match the labels", p.Metric),
			"Check the label names and values")
	}
	return formatFloat(total), nil
}

// parseMetrics decodes the text exposition format.
func parseMetrics(body []byte) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return mfs, nil
}

// sumFamily adds the values of every series in mf carrying all of want.
// Histograms and summaries contribute their sample sum.
func sumFamily(mf *dto.MetricFamily, want map[string]string) (total float64, matched int) {
	for _, m := range mf.GetMetric() {
		if !hasLabels(m, want) {
			continue
		}
		switch {
		case m.Counter != nil:
			total += m.Counter.GetValue()
		case m.Gauge != nil:
			total += m.Gauge.GetValue()
		case m.Untyped != nil:
			total += m.Untyped.GetValue()
		case m.Histogram != nil:
			total += m.Histogram.GetSampleSum()
		case m.Summary != nil:
			total += m.Summary.GetSampleSum()
		default:
			continue
		}
		matched++
	}
	return total, matched
}

// hasLabels reports whether m carries every pair in want. Names compare
// case-insensitively since config keys arrive lowercased.
func hasLabels(m *dto.Metric, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, lp := range m.GetLabel() {
			if strings.EqualFold(lp.GetName(), name) && lp.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// formatFloat renders integral values without a fraction so "42" reads as 42.
func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
