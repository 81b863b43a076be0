package solver

import (
	"fmt"
	"strings"

	"github.com/sandrolain/goroots/pkg/types"
)

// Method selects a root-finding algorithm.
type Method int

const (
	MethodBisection Method = iota + 1
	MethodChord
	MethodFixedPoint
)

var methodNames = map[Method]string{
	MethodBisection:  "bisection",
	MethodChord:      "chord",
	MethodFixedPoint: "iteration",
}

// Methods lists every supported method in display order.
func Methods() []Method {
	return []Method{MethodBisection, MethodChord, MethodFixedPoint}
}

// String returns the canonical name of m.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// NeedsBracket reports whether m searches an interval [a, b].
func (m Method) NeedsBracket() bool {
	return m == MethodBisection || m == MethodChord
}

// ParseMethod converts a method name to a Method. Matching ignores case and
// surrounding whitespace; "fixed-point" and "fixedpoint" are accepted as
// aliases of "iteration".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bisection":
		return MethodBisection, nil
	case "chord", "chords", "false-position":
		return MethodChord, nil
	case "iteration", "fixed-point", "fixedpoint":
		return MethodFixedPoint, nil
	}
	return 0, types.NewError(types.ErrInvalidInput, fmt.Sprintf("unknown method %q", s), -1).
		WithField(FieldMethod).WithExample("bisection, chord or iteration")
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("solver: cannot marshal %s", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
