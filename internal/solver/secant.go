package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// относительная точность, при которой f(a) и f(b) считаются равными
const stagnationRel = 1e-15

// Secant — метод секущих по двум начальным точкам a, b.
// Знаки f(a) и f(b) не проверяются; метод может уйти за пределы [a, b] или разойтись.
func Secant(f Func, a, b float64, cfg Config, onIter func(Iter) error) (Result, error) {
	rec := newRecorder(MethodSecant, cfg, onIter)
	if err := cfg.Validate(); err != nil {
		return rec.fail(NotTerminated, 0, err)
	}
	if !finite(a) || !finite(b) {
		return rec.fail(NotTerminated, 0, fmt.Errorf("%w: start points %g, %g are not finite", ErrBadConfig, a, b))
	}

	rec.push(a)
	rec.push(b)

	fa, err := eval("f", f, a)
	if err != nil {
		return rec.fail(EvalFailed, 0, err)
	}
	fb, err := eval("f", f, b)
	if err != nil {
		return rec.fail(EvalFailed, 0, err)
	}

	for k := 1; ; k++ {
		// деление проверяем до выполнения
		if stagnant(fa, fb, cfg.Tiny) {
			return rec.fail(Stagnation, k-1,
				fmt.Errorf("%w: f(%g) = %g, f(%g) = %g", ErrStagnation, a, fa, b, fb))
		}

		xNew := b - fb*(b-a)/(fb-fa)
		if !finite(xNew) {
			return rec.fail(Stagnation, k-1,
				fmt.Errorf("%w: update from %g, %g overflowed", ErrStagnation, a, b))
		}
		rec.push(xNew)

		fNew, err := eval("f", f, xNew)
		if err != nil {
			return rec.fail(EvalFailed, k, err)
		}

		width := math.Abs(b - a)
		it := Iter{K: k, X: xNew, FX: fNew, A: a, B: b, Width: width, Step: xNew - b}
		if err := rec.step(it); err != nil {
			return rec.fail(Stopped, k, err)
		}

		switch {
		case math.Abs(fNew) < cfg.Tol:
			return rec.done(Converged, k, xNew, fNew, "|f(x)| < tol")
		case width < cfg.Tol:
			return rec.done(Converged, k, xNew, fNew, "|b - a| < tol")
		case k >= cfg.MaxIter:
			return rec.done(NonConverged, k, xNew, fNew, "max iterations reached")
		}

		// старшая точка отбрасывается
		a, fa = b, fb
		b, fb = xNew, fNew
	}
}

func stagnant(fa, fb, tiny float64) bool {
	return math.Abs(fb-fa) < tiny || scalar.EqualWithinAbsOrRel(fa, fb, 0, stagnationRel)
}
