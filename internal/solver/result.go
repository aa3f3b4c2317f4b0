package solver

import (
	"fmt"
	"math"
)

// Method — имя метода поиска корня
type Method string

const (
	MethodBisection Method = "bisection"
	MethodSecant    Method = "secant"
	MethodNewton    Method = "newton"
)

// ParseMethod принимает полное имя метода или короткий псевдоним
func ParseMethod(s string) (Method, error) {
	switch s {
	case "bisection", "bisect":
		return MethodBisection, nil
	case "secant":
		return MethodSecant, nil
	case "newton", "newton-raphson", "nr":
		return MethodNewton, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Status — конечное состояние запуска
type Status int

const (
	NotTerminated Status = iota
	Converged
	NonConverged
	BracketInvalid
	Stagnation
	DerivativeTooSmall
	EvalFailed
	Stopped
)

var statuses = []struct {
	name   string
	failed bool
	err    error
}{
	{name: "NotTerminated"},
	{name: "Converged"},
	{name: "NonConverged"},
	{name: "BracketInvalid", failed: true, err: ErrBracketInvalid},
	{name: "Stagnation", failed: true, err: ErrStagnation},
	{name: "DerivativeTooSmall", failed: true, err: ErrDerivativeTooSmall},
	{name: "EvalFailed", failed: true, err: ErrEvalFailed},
	{name: "Stopped", failed: true, err: ErrStopped},
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statuses) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statuses[s].name
}

// Failed — запуск прерван без корня (Root = NaN)
func (s Status) Failed() bool {
	if s < 0 || int(s) >= len(statuses) {
		return false
	}
	return statuses[s].failed
}

// Err возвращает sentinel-ошибку для состояний отказа, иначе nil
func (s Status) Err() error {
	if s < 0 || int(s) >= len(statuses) {
		return nil
	}
	return statuses[s].err
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Iter — одна итерация метода. Неиспользуемые методом поля равны нулю.
type Iter struct {
	K     int     `json:"k"`
	X     float64 `json:"x"`
	FX    float64 `json:"fx"`
	DFX   float64 `json:"dfx,omitempty"`
	A     float64 `json:"a,omitempty"`
	B     float64 `json:"b,omitempty"`
	Width float64 `json:"width,omitempty"`
	Step  float64 `json:"step,omitempty"`
}

// Result — итог запуска, создаётся один раз при выходе из цикла.
//
// History: бисекция — середины отрезков (len = Iterations+1),
// секущие — [a, b, x1, ...] (len = Iterations+2),
// Ньютон — [x0, x1, ...] (len = Iterations+1).
type Result struct {
	Method     Method
	Status     Status
	Root       float64
	FRoot      float64
	Iterations int
	History    []float64
	Steps      []Iter
	Reason     string
}

// Converged — выполнен хотя бы один критерий точности
func (r Result) Converged() bool {
	return r.Status == Converged
}

// HasRoot — есть значение корня (точное или лучшая оценка)
func (r Result) HasRoot() bool {
	return !r.Status.Failed() && !math.IsNaN(r.Root)
}
