package solver

import (
	"fmt"
	"math"
)

// Bisection — метод половинного деления на отрезке [a, b].
// f(a) и f(b) должны иметь разные знаки, иначе BracketInvalid без итераций.
// onIter вызывается после каждой итерации; если вернёт ошибку — алгоритм прерывается.
func Bisection(f Func, a, b float64, cfg Config, onIter func(Iter) error) (Result, error) {
	rec := newRecorder(MethodBisection, cfg, onIter)
	if err := cfg.Validate(); err != nil {
		return rec.fail(NotTerminated, 0, err)
	}
	if !finite(a) || !finite(b) {
		return rec.fail(NotTerminated, 0, fmt.Errorf("%w: bracket [%g, %g] is not finite", ErrBadConfig, a, b))
	}

	fa, err := eval("f", f, a)
	if err != nil {
		return rec.fail(EvalFailed, 0, err)
	}
	fb, err := eval("f", f, b)
	if err != nil {
		return rec.fail(EvalFailed, 0, err)
	}

	if sameSign(fa, fb) {
		return rec.fail(BracketInvalid, 0,
			fmt.Errorf("%w: f(%g) = %g, f(%g) = %g", ErrBracketInvalid, a, fa, b, fb))
	}

	// корень на конце отрезка
	if fa == 0 {
		rec.push(a)
		return rec.done(Converged, 0, a, fa, "f(a) = 0")
	}
	if fb == 0 {
		rec.push(b)
		return rec.done(Converged, 0, b, fb, "f(b) = 0")
	}

	for k := 0; ; k++ {
		xr := (a + b) / 2
		width := math.Abs(b - a)
		rec.push(xr)

		fxr, err := eval("f", f, xr)
		if err != nil {
			return rec.fail(EvalFailed, k, err)
		}

		if err := rec.step(Iter{K: k, X: xr, FX: fxr, A: a, B: b, Width: width}); err != nil {
			return rec.fail(Stopped, k, err)
		}

		switch {
		case math.Abs(fxr) < cfg.Tol:
			return rec.done(Converged, k, xr, fxr, "|f(x)| < tol")
		case width < cfg.Tol:
			return rec.done(Converged, k, xr, fxr, "|b - a| < tol")
		case k >= cfg.MaxIter:
			return rec.done(NonConverged, k, xr, fxr, "max iterations reached")
		}

		// f(a)*f(xr) == 0 идёт во вторую ветку
		if oppositeSign(fa, fxr) {
			b = xr
		} else {
			a, fa = xr, fxr
		}
	}
}

// sameSign — f(a)*f(b) > 0 без риска переполнения произведения
func sameSign(u, v float64) bool {
	return (u > 0 && v > 0) || (u < 0 && v < 0)
}

// oppositeSign — f(a)*f(b) < 0
func oppositeSign(u, v float64) bool {
	return (u > 0 && v < 0) || (u < 0 && v > 0)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
