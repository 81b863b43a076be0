// Package functions describes the built-in functions available in formulas.
//
// Each function is registered under the spelling used in formula text and
// the AST name the parser stores. The two differ for "log", which is the
// base-10 logarithm; the natural logarithm is spelled "ln".
//
// # Example
//
//	def, ok := functions.Lookup("log")
//	// def.Name == types.FuncLog10
//	y, defined := def.Fn(100) // 2, true
package functions

import (
	"math"

	"github.com/sandrolain/goroots/pkg/types"
)

// Func is the implementation of a built-in function. It returns false when
// the function is undefined at the argument.
type Func func(arg float64) (float64, bool)

// Def describes a built-in function.
type Def struct {
	// Name is the function name stored in the AST.
	Name types.FuncName
	// Source is the spelling used in formula text.
	Source string
	// Fn is the implementation.
	Fn Func
}

var builtins = []Def{
	{Name: types.FuncSin, Source: "sin", Fn: total(math.Sin)},
	{Name: types.FuncCos, Source: "cos", Fn: total(math.Cos)},
	{Name: types.FuncTan, Source: "tan", Fn: total(math.Tan)},
	{Name: types.FuncExp, Source: "exp", Fn: total(math.Exp)},
	{Name: types.FuncLn, Source: "ln", Fn: positive(math.Log)},
	{Name: types.FuncLog10, Source: "log", Fn: positive(math.Log10)},
	{Name: types.FuncSqrt, Source: "sqrt", Fn: positive(math.Sqrt)},
	{Name: types.FuncAbs, Source: "abs", Fn: total(math.Abs)},
}

var (
	bySource = make(map[string]Def, len(builtins))
	byName   = make(map[types.FuncName]Def, len(builtins))
)

func init() {
	for _, d := range builtins {
		bySource[d.Source] = d
		byName[d.Name] = d
	}
}

// Lookup returns the function spelled source in formula text.
func Lookup(source string) (Def, bool) {
	d, ok := bySource[source]
	return d, ok
}

// ByName returns the function stored in the AST as name.
func ByName(name types.FuncName) (Def, bool) {
	d, ok := byName[name]
	return d, ok
}

// Sources returns the formula spellings of all built-in functions in
// registration order.
func Sources() []string {
	ret := make([]string, 0, len(builtins))
	for _, d := range builtins {
		ret = append(ret, d.Source)
	}
	return ret
}

func total(fn func(float64) float64) Func {
	return func(arg float64) (float64, bool) {
		return fn(arg), true
	}
}

// positive restricts fn to arguments > 0.
func positive(fn func(float64) float64) Func {
	return func(arg float64) (float64, bool) {
		if arg <= 0 {
			return 0, false
		}
		return fn(arg), true
	}
}
