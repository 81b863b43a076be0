package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/goroots/pkg/config"
	"github.com/sandrolain/goroots/pkg/server"
)

func newServer(t *testing.T, mutate ...func(*config.Config)) (*server.Server, *prometheus.Registry, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	srv := server.New(cfg,
		server.WithRegistry(reg),
		server.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	return srv, reg, &logs
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type solveResponse struct {
	Method         string            `json:"method"`
	Root           float64           `json:"root"`
	Converged      bool              `json:"converged"`
	IterationCount int               `json:"iterationCount"`
	Iterations     []json.RawMessage `json:"iterations"`
}

type errorList struct {
	Errors []struct {
		Code    string `json:"code"`
		Kind    string `json:"kind"`
		Field   string `json:"field"`
		Message string `json:"message"`
		Example string `json:"example"`
	} `json:"errors"`
}

func TestSolve(t *testing.T) {
	srv, reg, logs := newServer(t)

	rec := post(t, srv, "/api/v1/solve", `{
		"method": "bisection",
		"params": {"equation": "x^3 - x - 1", "a": "1", "b": "2", "epsilon": "0.0001", "maxIterations": "100"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))

	var res solveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "bisection", res.Method)
	assert.True(t, res.Converged)
	assert.InDelta(t, 1.324718, res.Root, 1e-4)
	assert.Len(t, res.Iterations, res.IterationCount)

	var first map[string]float64
	require.NoError(t, json.Unmarshal(res.Iterations[0], &first))
	assert.Equal(t, map[string]float64{"n": 1, "a": 1, "b": 2, "c": 1.5, "fc": 0.875, "error": 1}, first)

	assert.Equal(t, 1.0, counterValue(t, reg, "rootfind_solves_total",
		map[string]string{"method": "bisection", "outcome": "converged"}))
	assert.Contains(t, logs.String(), `"request_id"`)
	assert.Contains(t, logs.String(), `"status":200`)
}

// counterValue reads the counter name{labels} from reg.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			got := map[string]string{}
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			if assert.ObjectsAreEqual(labels, got) {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func TestSolveDefaultsAndAliases(t *testing.T) {
	srv, _, _ := newServer(t)
	rec := post(t, srv, "/api/v1/solve",
		`{"method": "fixed-point", "params": {"phiEquation": "(x + 1)^(1/3)", "x0": "1.5"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res solveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "iteration", res.Method)
	assert.True(t, res.Converged)
}

func TestSolveErrors(t *testing.T) {
	srv, _, _ := newServer(t, func(c *config.Config) { c.Limits.MaxIterations = 50 })

	tests := []struct {
		name   string
		body   string
		code   string
		fields []string
	}{
		{
			name:   "input",
			body:   `{"method": "chord", "params": {"equation": "x", "a": "x", "b": "", "epsilon": "-1"}}`,
			code:   "V0101",
			fields: []string{"a", "b"},
		},
		{
			name:   "syntax",
			body:   `{"method": "bisection", "params": {"equation": "x^3 - y", "a": "1", "b": "2"}}`,
			code:   "S0103",
			fields: []string{"equation"},
		},
		{
			name:   "same sign",
			body:   `{"method": "bisection", "params": {"equation": "x^2 + 1", "a": "-1", "b": "1"}}`,
			code:   "R0101",
			fields: []string{"a"},
		},
		{
			name:   "iteration cap",
			body:   `{"method": "chord", "params": {"equation": "x", "a": "-1", "b": "1", "maxIterations": "51"}}`,
			code:   "V0101",
			fields: []string{"maxIterations"},
		},
		{
			name:   "unknown method",
			body:   `{"method": "newton", "params": {}}`,
			code:   "V0101",
			fields: []string{"method"},
		},
		{
			name:   "malformed body",
			body:   `{"method": `,
			code:   "V0101",
			fields: []string{"body"},
		},
		{
			name:   "unknown field",
			body:   `{"method": "chord", "extra": 1}`,
			code:   "V0101",
			fields: []string{"body"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, srv, "/api/v1/solve", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var body errorList
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotEmpty(t, body.Errors)
			var fields []string
			for _, e := range body.Errors {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Message)
			}
			assert.Equal(t, tt.code, body.Errors[0].Code)
			assert.Subset(t, fields, tt.fields)
		})
	}
}

func TestSolveBodyLimit(t *testing.T) {
	srv, _, _ := newServer(t, func(c *config.Config) { c.Limits.MaxBodyBytes = 64 })
	body := `{"method": "bisection", "params": {"equation": "` + strings.Repeat("x+", 64) + `x"}}`
	rec := post(t, srv, "/api/v1/solve", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSample(t *testing.T) {
	srv, _, _ := newServer(t)
	rec := post(t, srv, "/api/v1/sample", `{"equation": "1/x", "from": -1, "to": 1, "points": 3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Points []struct{ X, Y float64 } `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// x = 0 is skipped.
	require.Len(t, body.Points, 2)
	assert.Equal(t, -1.0, body.Points[0].Y)
	assert.Equal(t, 1.0, body.Points[1].Y)

	rec = post(t, srv, "/api/v1/sample", `{"equation": "x", "from": 1, "to": 0, "points": 3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, srv, "/api/v1/sample", `{"equation": "x", "from": 0, "to": 1, "points": 1000000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBatch(t *testing.T) {
	srv, reg, _ := newServer(t)
	rec := post(t, srv, "/api/v1/batch", `{"requests": [
		{"method": "bisection", "params": {"equation": "x^3 - x - 1", "a": "1", "b": "2"}},
		{"method": "chord", "params": {"equation": "x^2 + 1", "a": "-1", "b": "1"}},
		{"method": "iteration", "params": {"phiEquation": "cos(x)"}},
		{"method": "iteration", "params": {"phiEquation": "cos(x)", "x0": "1"}}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Outcomes []struct {
			Result *solveResponse `json:"result"`
			Errors []struct {
				Code  string `json:"code"`
				Field string `json:"field"`
			} `json:"errors"`
		} `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Outcomes, 4)

	require.NotNil(t, body.Outcomes[0].Result)
	assert.Equal(t, "bisection", body.Outcomes[0].Result.Method)

	assert.Nil(t, body.Outcomes[1].Result)
	require.Len(t, body.Outcomes[1].Errors, 1)
	assert.Equal(t, "R0101", body.Outcomes[1].Errors[0].Code)

	assert.Nil(t, body.Outcomes[2].Result)
	require.Len(t, body.Outcomes[2].Errors, 1)
	assert.Equal(t, "x0", body.Outcomes[2].Errors[0].Field)

	require.NotNil(t, body.Outcomes[3].Result)
	assert.Equal(t, "iteration", body.Outcomes[3].Result.Method)

	count, err := testutil.GatherAndCount(reg, "rootfind_solve_iterations")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1.0, counterValue(t, reg, "rootfind_solves_total",
		map[string]string{"method": "iteration", "outcome": "error"}))
}

func TestBatchTooLarge(t *testing.T) {
	srv, _, _ := newServer(t, func(c *config.Config) { c.Limits.MaxBatchSize = 1 })
	rec := post(t, srv, "/api/v1/batch", `{"requests": [{"method": "chord"}, {"method": "chord"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestIDPropagates(t *testing.T) {
	srv, _, logs := newServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(server.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(server.RequestIDHeader))
	assert.Contains(t, logs.String(), `"request_id":"abc-123"`)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := newServer(t)
	post(t, srv, "/api/v1/solve", `{"method": "chord", "params": {"equation": "x - 1", "a": "0", "b": "2"}}`)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	out, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(out), `rootfind_solves_total{method="chord",outcome="converged"} 1`)
	assert.Contains(t, string(out), `rootfind_http_requests_total{code="200",route="/api/v1/solve"} 1`)

	disabled, _, _ := newServer(t, func(c *config.Config) { c.Metrics = false })
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
