package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sandrolain/goroots/pkg/evaluator"
	"github.com/sandrolain/goroots/pkg/parser"
	"github.com/sandrolain/goroots/pkg/solver"
	"github.com/sandrolain/goroots/pkg/types"
)

// defaultMaxIterations applies when a request leaves maxIterations empty.
const defaultMaxIterations = 100

type solveRequest struct {
	Method string           `json:"method"`
	Params solver.RawParams `json:"params"`
}

type sampleRequest struct {
	Equation string  `json:"equation"`
	From     float64 `json:"from"`
	To       float64 `json:"to"`
	Points   int     `json:"points"`
}

type sampleResponse struct {
	Points []evaluator.Point `json:"points"`
}

type batchRequest struct {
	Requests []solveRequest `json:"requests"`
}

type batchOutcome struct {
	Result *types.SolveResult `json:"result,omitempty"`
	Errors []errorBody        `json:"errors,omitempty"`
}

type batchResponse struct {
	Outcomes []batchOutcome `json:"outcomes"`
}

type errorBody struct {
	Code    types.ErrorCode `json:"code"`
	Kind    types.ErrorKind `json:"kind"`
	Field   string          `json:"field,omitempty"`
	Message string          `json:"message"`
	Example string          `json:"example,omitempty"`
}

type errorResponse struct {
	Errors []errorBody `json:"errors"`
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) solveHandler(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !s.decode(w, r, &req) {
		return
	}

	method, params, err := s.prepare(req)
	if err != nil {
		s.metrics.observeSolve(methodLabel(req.Method), nil, err)
		s.writeError(w, r, err)
		return
	}

	res, err := solver.Solve(method, params, s.solveOptions(r)...)
	s.metrics.observeSolve(method.String(), res, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) sampleHandler(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Points > s.cfg.Limits.MaxSamplePoints {
		s.writeError(w, r, types.NewError(types.ErrInvalidInput,
			fmt.Sprintf("must not exceed %d", s.cfg.Limits.MaxSamplePoints), -1).
			WithField("points").WithExample(strconv.Itoa(s.cfg.Limits.MaxSamplePoints)))
		return
	}

	expr, err := parser.Parse(req.Equation)
	if err != nil {
		if e := types.AsError(err); e != nil {
			err = e.WithField(solver.FieldEquation)
		}
		s.writeError(w, r, err)
		return
	}
	points, err := evaluator.Sample(s.ev.Bind(expr), req.From, req.To, req.Points)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sampleResponse{Points: points})
}

func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Requests) > s.cfg.Limits.MaxBatchSize {
		s.writeError(w, r, types.NewError(types.ErrInvalidInput,
			fmt.Sprintf("at most %d requests are allowed, got %d", s.cfg.Limits.MaxBatchSize, len(req.Requests)), -1).
			WithField("requests"))
		return
	}

	outcomes := make([]batchOutcome, len(req.Requests))
	var (
		reqs  []solver.Request
		index []int
	)
	for i, sr := range req.Requests {
		method, params, err := s.prepare(sr)
		if err != nil {
			s.metrics.observeSolve(methodLabel(sr.Method), nil, err)
			outcomes[i].Errors = errorBodies(err)
			continue
		}
		reqs = append(reqs, solver.Request{Method: method, Params: params})
		index = append(index, i)
	}

	results, err := solver.SolveAll(r.Context(), reqs, s.cfg.Limits.BatchConcurrency, s.solveOptions(r)...)
	if err != nil {
		s.logger.Warn("batch aborted",
			slog.String("request_id", RequestID(r.Context())),
			slog.Any("error", err))
		http.Error(w, "batch aborted", http.StatusServiceUnavailable)
		return
	}
	for j, o := range results {
		s.metrics.observeSolve(reqs[j].Method.String(), o.Result, o.Err)
		i := index[j]
		if o.Err != nil {
			outcomes[i].Errors = errorBodies(o.Err)
			continue
		}
		outcomes[i].Result = o.Result
	}
	writeJSON(w, http.StatusOK, batchResponse{Outcomes: outcomes})
}

// prepare turns a wire request into typed solver input. Empty epsilon and
// maxIterations take the configured defaults; maxIterations is capped.
func (s *Server) prepare(req solveRequest) (solver.Method, solver.Params, error) {
	method, err := solver.ParseMethod(req.Method)
	if err != nil {
		return 0, solver.Params{}, err
	}

	limit := s.cfg.Limits.MaxIterations
	raw := req.Params
	if raw.Epsilon == "" {
		raw.Epsilon = strconv.FormatFloat(s.cfg.Limits.DefaultEpsilon, 'g', -1, 64)
	}
	if raw.MaxIterations == "" {
		raw.MaxIterations = strconv.Itoa(min(defaultMaxIterations, limit))
	}

	params, err := solver.ParseParams(method, raw)
	if err != nil {
		return 0, solver.Params{}, err
	}
	if params.MaxIterations > limit {
		return 0, solver.Params{}, types.NewError(types.ErrInvalidInput,
			fmt.Sprintf("must not exceed %d", limit), -1).
			WithField(solver.FieldMaxIterations).WithExample(strconv.Itoa(limit))
	}
	return method, params, nil
}

func (s *Server) solveOptions(r *http.Request) []solver.SolveOption {
	logger := s.logger.With(slog.String("request_id", RequestID(r.Context())))
	return []solver.SolveOption{solver.WithLogger(logger), solver.WithEvaluator(s.ev)}
}

// decode reads a JSON body into v. On failure it writes the response and
// returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		s.writeError(w, r, types.NewError(types.ErrInvalidInput, fmt.Sprintf("malformed JSON: %v", err), -1).
			WithField("body"))
		return false
	}
	return true
}

// writeError reports err as a list of structured errors. Errors that carry
// no code are internal failures.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if types.AsError(err) == nil {
		s.logger.Error("request failed",
			slog.String("request_id", RequestID(r.Context())),
			slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Errors: errorBodies(err)})
}

func errorBodies(err error) []errorBody {
	errs := solver.FieldErrors(err)
	out := make([]errorBody, 0, len(errs))
	for _, e := range errs {
		out = append(out, errorBody{
			Code:    e.Code,
			Kind:    e.Kind(),
			Field:   e.Field,
			Message: e.Message,
			Example: e.Example,
		})
	}
	return out
}

func methodLabel(name string) string {
	if m, err := solver.ParseMethod(name); err == nil {
		return m.String()
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
