package solver

import (
	"fmt"
	"math"
)

// Problem — задача для любого из трёх методов.
// Бисекция и секущие берут A и B, Ньютон — X0 и DF.
type Problem struct {
	Method Method
	F      Func
	DF     Func
	A, B   float64
	X0     float64
}

// Solve выбирает метод по p.Method
func Solve(p Problem, cfg Config, onIter func(Iter) error) (Result, error) {
	if p.F == nil {
		return Result{Method: p.Method, Root: math.NaN(), FRoot: math.NaN()}, fmt.Errorf("%w: function is required", ErrBadConfig)
	}

	switch p.Method {
	case MethodBisection:
		return Bisection(p.F, p.A, p.B, cfg, onIter)
	case MethodSecant:
		return Secant(p.F, p.A, p.B, cfg, onIter)
	case MethodNewton:
		return NewtonRaphson(p.F, p.DF, p.X0, cfg, onIter)
	default:
		return Result{Method: p.Method, Root: math.NaN(), FRoot: math.NaN()}, fmt.Errorf("%w: %q", ErrUnknownMethod, p.Method)
	}
}
