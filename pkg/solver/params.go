package solver

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/sandrolain/goroots/pkg/parser"
	"github.com/sandrolain/goroots/pkg/types"
)

// Input field names used in validation errors.
const (
	FieldMethod        = "method"
	FieldEquation      = "equation"
	FieldPhi           = "phiEquation"
	FieldA             = "a"
	FieldB             = "b"
	FieldX0            = "x0"
	FieldEpsilon       = "epsilon"
	FieldMaxIterations = "maxIterations"
)

// Params holds typed solver inputs. Equation is used by the bracketing
// methods, PhiEquation and X0 by fixed-point iteration.
type Params struct {
	Equation      string  `json:"equation,omitempty"`
	PhiEquation   string  `json:"phiEquation,omitempty"`
	A             float64 `json:"a"`
	B             float64 `json:"b"`
	X0            float64 `json:"x0"`
	Epsilon       float64 `json:"epsilon"`
	MaxIterations int     `json:"maxIterations"`
}

// DefaultParams returns the sample problem x^3 - x - 1 = 0 with its
// fixed-point form x = (x + 1)^(1/3).
func DefaultParams() Params {
	return Params{
		Equation:      "x^3 - x - 1",
		PhiEquation:   "(x + 1)^(1/3)",
		A:             1,
		B:             2,
		X0:            1.5,
		Epsilon:       0.0001,
		MaxIterations: 100,
	}
}

// RawParams holds solver inputs as entered by a user. Empty numeric fields
// are errors; fields the method does not use are ignored.
type RawParams struct {
	Equation      string `json:"equation,omitempty"`
	PhiEquation   string `json:"phiEquation,omitempty"`
	A             string `json:"a,omitempty"`
	B             string `json:"b,omitempty"`
	X0            string `json:"x0,omitempty"`
	Epsilon       string `json:"epsilon,omitempty"`
	MaxIterations string `json:"maxIterations,omitempty"`
}

// ParseParams converts raw string inputs for method into Params. Every
// problem found is reported; the returned error is a *multierror.Error whose
// entries are *types.Error values naming the offending field.
func ParseParams(method Method, raw RawParams) (Params, error) {
	var (
		p    Params
		errs *multierror.Error
	)

	p.Equation = strings.TrimSpace(raw.Equation)
	p.PhiEquation = strings.TrimSpace(raw.PhiEquation)

	if method.NeedsBracket() {
		errs = multierror.Append(errs, checkFormula(FieldEquation, p.Equation, "x^3 - x - 1"))
		var errA, errB error
		p.A, errA = parseNumber(FieldA, raw.A, "1")
		p.B, errB = parseNumber(FieldB, raw.B, "2")
		errs = multierror.Append(errs, errA, errB)
	} else {
		errs = multierror.Append(errs, checkFormula(FieldPhi, p.PhiEquation, "(x + 1)^(1/3)"))
		var errX0 error
		p.X0, errX0 = parseNumber(FieldX0, raw.X0, "1.5")
		errs = multierror.Append(errs, errX0)
	}

	var errEps, errMax error
	p.Epsilon, errEps = parseNumber(FieldEpsilon, raw.Epsilon, "0.0001")
	p.MaxIterations, errMax = parseCount(FieldMaxIterations, raw.MaxIterations, "100")
	errs = multierror.Append(errs, errEps, errMax)

	if err := errs.ErrorOrNil(); err != nil {
		return p, err
	}
	return p, p.Validate(method)
}

// Validate applies the numeric rules for method to p. Formulas are only
// checked for presence; syntax is checked when they are compiled.
func (p Params) Validate(method Method) error {
	var errs *multierror.Error

	switch method {
	case MethodBisection, MethodChord:
		if p.Equation == "" {
			errs = multierror.Append(errs, missing(FieldEquation, "x^3 - x - 1"))
		}
		if !isFinite(p.A) {
			errs = multierror.Append(errs, invalid(FieldA, "must be a finite number", "1"))
		}
		if !isFinite(p.B) {
			errs = multierror.Append(errs, invalid(FieldB, "must be a finite number", "2"))
		}
		if isFinite(p.A) && isFinite(p.B) && !(p.A < p.B) {
			errs = multierror.Append(errs, invalid(FieldB,
				fmt.Sprintf("must be greater than a (a = %g, b = %g)", p.A, p.B), "a = 1, b = 2"))
		}
	case MethodFixedPoint:
		if p.PhiEquation == "" {
			errs = multierror.Append(errs, missing(FieldPhi, "(x + 1)^(1/3)"))
		}
		if !isFinite(p.X0) {
			errs = multierror.Append(errs, invalid(FieldX0, "must be a finite number", "1.5"))
		}
	default:
		errs = multierror.Append(errs, invalid(FieldMethod, fmt.Sprintf("unknown method %s", method),
			"bisection, chord or iteration"))
	}

	if !(p.Epsilon > 0) || math.IsInf(p.Epsilon, 0) {
		errs = multierror.Append(errs, invalid(FieldEpsilon, "must be a positive number", "0.0001"))
	}
	if p.MaxIterations <= 0 {
		errs = multierror.Append(errs, invalid(FieldMaxIterations, "must be a positive integer", "100"))
	}
	return errs.ErrorOrNil()
}

// FieldErrors flattens err into the *types.Error values it carries. Errors
// that are not *types.Error are wrapped as input errors without a field.
func FieldErrors(err error) []*types.Error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]*types.Error, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	if e := types.AsError(err); e != nil {
		return []*types.Error{e}
	}
	return []*types.Error{types.NewError(types.ErrInvalidInput, err.Error(), -1)}
}

// checkFormula reports a missing or syntactically invalid formula.
func checkFormula(field, src, example string) error {
	if src == "" {
		return missing(field, example)
	}
	if _, err := parser.Parse(src); err != nil {
		if e := types.AsError(err); e != nil {
			return e.WithField(field).WithExample(example)
		}
		return invalid(field, err.Error(), example)
	}
	return nil
}

func parseNumber(field, s, example string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, missing(field, example)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return 0, invalid(field, fmt.Sprintf("%q is not a number", s), example)
	}
	return v, nil
}

func parseCount(field, s, example string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, missing(field, example)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, invalid(field, fmt.Sprintf("%q is not an integer", s), example)
	}
	return n, nil
}

func missing(field, example string) *types.Error {
	return invalid(field, "is required", example)
}

func invalid(field, msg, example string) *types.Error {
	return types.NewError(types.ErrInvalidInput, msg, -1).WithField(field).WithExample(example)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
