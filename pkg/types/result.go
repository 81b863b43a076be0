package types

import (
	"encoding/json"
	"math"
)

// Step is one row of an iteration trace. Each solving method has its own
// concrete step type.
type Step interface {
	// Index returns the 1-based step number.
	Index() int
	// ErrorEstimate returns the non-negative error measure recorded for
	// the step.
	ErrorEstimate() float64
}

// BisectionStep records one halving of the bracket [A, B].
type BisectionStep struct {
	N     int     `json:"n"`
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	C     float64 `json:"c"`
	FC    float64 `json:"fc"`
	Error float64 `json:"error"` // |B-A| before the update
}

func (s BisectionStep) Index() int             { return s.N }
func (s BisectionStep) ErrorEstimate() float64 { return s.Error }

// ChordStep records one secant-line root X of the bracket [A, B].
type ChordStep struct {
	N     int     `json:"n"`
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	X     float64 `json:"x"`
	FX    float64 `json:"fx"`
	Error float64 `json:"error"` // |X-previous X|
}

func (s ChordStep) Index() int             { return s.N }
func (s ChordStep) ErrorEstimate() float64 { return s.Error }

// FixedPointStep records one application XCurr = φ(XPrev).
type FixedPointStep struct {
	N     int     `json:"n"`
	XPrev float64 `json:"xPrev"`
	XCurr float64 `json:"xCurr"`
	Error float64 `json:"error"` // |XCurr-XPrev|
}

func (s FixedPointStep) Index() int             { return s.N }
func (s FixedPointStep) ErrorEstimate() float64 { return s.Error }

// SolveResult is the outcome of a root search. A result with Converged set
// to false ran out of iterations; that is a reportable outcome, not an error.
type SolveResult struct {
	Method         string  `json:"method"`
	Root           float64 `json:"root"`
	Residual       float64 `json:"residual"`
	Iterations     []Step  `json:"iterations"`
	Converged      bool    `json:"converged"`
	IterationCount int     `json:"iterationCount"`
}

// MarshalJSON encodes a residual that is NaN or infinite as null.
func (r SolveResult) MarshalJSON() ([]byte, error) {
	type plain SolveResult
	out := struct {
		plain
		Residual *float64 `json:"residual"`
	}{plain: plain(r)}
	if !math.IsNaN(r.Residual) && !math.IsInf(r.Residual, 0) {
		out.Residual = &r.Residual
	}
	return json.Marshal(out)
}
