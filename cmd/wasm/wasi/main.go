// Command rootfind-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "method": "bisection", "params": { "equation": "x^3 - x - 1", "a": "1", "b": "2", ... } }
//	stdout: { "result": <SolveResult> }         on success
//	        { "error":  "<message>", "errors": [...] }  on failure (exit code 1)
//
// Params are strings, as in the HTTP API. Empty epsilon and maxIterations
// default to 0.0001 and 100.
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o rootfind.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"method":"chord","params":{"equation":"x^2-2","a":"0","b":"2"}}' | wasmtime rootfind.wasm
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sandrolain/goroots"
	"github.com/sandrolain/goroots/pkg/solver"
	"github.com/sandrolain/goroots/pkg/types"
)

type request struct {
	Method string           `json:"method"`
	Params solver.RawParams `json:"params"`
}

type response struct {
	Result *types.SolveResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
	Errors []*types.Error     `json:"errors,omitempty"`
}

// run handles one request and returns the process exit code.
func run(stdin io.Reader, stdout io.Writer, logger *slog.Logger) int {
	var req request
	if err := json.NewDecoder(stdin).Decode(&req); err != nil {
		return reply(stdout, response{Error: "invalid request JSON: " + err.Error()})
	}

	method, err := solver.ParseMethod(req.Method)
	if err != nil {
		return fail(stdout, err)
	}
	if req.Params.Epsilon == "" {
		req.Params.Epsilon = "0.0001"
	}
	if req.Params.MaxIterations == "" {
		req.Params.MaxIterations = "100"
	}
	params, err := solver.ParseParams(method, req.Params)
	if err != nil {
		return fail(stdout, err)
	}

	res, err := goroots.Solve(method, params, solver.WithLogger(logger))
	if err != nil {
		return fail(stdout, err)
	}
	return reply(stdout, response{Result: res})
}

func fail(w io.Writer, err error) int {
	errs := solver.FieldErrors(err)
	msg := err.Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%d errors in request", len(errs))
	}
	return reply(w, response{Error: msg, Errors: errs})
}

func reply(w io.Writer, r response) int {
	_ = json.NewEncoder(w).Encode(r)
	if r.Result == nil {
		return 1
	}
	return 0
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	os.Exit(run(os.Stdin, os.Stdout, logger))
}
