package solver

import (
	"fmt"
	"math"
)

// NewtonRaphson — метод Ньютона по функции f, её производной df и начальному x0.
//
// На каждой итерации сначала проверяется |f(x)| < tol, затем |f'(x)| < tiny,
// затем смещение |x_new - x| < tol. Производная не вычисляется автоматически;
// для численной производной есть NumericDerivative.
func NewtonRaphson(f, df Func, x0 float64, cfg Config, onIter func(Iter) error) (Result, error) {
	rec := newRecorder(MethodNewton, cfg, onIter)
	if err := cfg.Validate(); err != nil {
		return rec.fail(NotTerminated, 0, err)
	}
	if df == nil {
		return rec.fail(NotTerminated, 0, fmt.Errorf("%w: newton needs a derivative", ErrBadConfig))
	}
	if !finite(x0) {
		return rec.fail(NotTerminated, 0, fmt.Errorf("%w: x0 = %g is not finite", ErrBadConfig, x0))
	}

	x := x0
	rec.push(x)

	for i := 0; i < cfg.MaxIter; i++ {
		fx, err := eval("f", f, x)
		if err != nil {
			return rec.fail(EvalFailed, i, err)
		}
		dfx, err := eval("f'", df, x)
		if err != nil {
			return rec.fail(EvalFailed, i, err)
		}
		it := Iter{K: i, X: x, FX: fx, DFX: dfx}

		if math.Abs(fx) < cfg.Tol {
			if err := rec.step(it); err != nil {
				return rec.fail(Stopped, i, err)
			}
			return rec.done(Converged, i, x, fx, "|f(x)| < tol")
		}

		if math.Abs(dfx) < cfg.Tiny {
			if err := rec.step(it); err != nil {
				return rec.fail(Stopped, i, err)
			}
			return rec.fail(DerivativeTooSmall, i,
				fmt.Errorf("%w: f'(%g) = %g", ErrDerivativeTooSmall, x, dfx))
		}

		xNew := x - fx/dfx
		if !finite(xNew) {
			return rec.fail(EvalFailed, i,
				fmt.Errorf("%w: %w: newton step from %g overflowed", ErrEvalFailed, ErrNotFinite, x))
		}
		it.Step = xNew - x
		if err := rec.step(it); err != nil {
			return rec.fail(Stopped, i, err)
		}
		rec.push(xNew)

		if math.Abs(xNew-x) < cfg.Tol {
			fNew, err := eval("f", f, xNew)
			if err != nil {
				return rec.fail(EvalFailed, i+1, err)
			}
			return rec.done(Converged, i+1, xNew, fNew, "|x_new - x| < tol")
		}

		x = xNew
	}

	// лучшая оценка — последний x
	fx, err := eval("f", f, x)
	if err != nil {
		return rec.fail(EvalFailed, cfg.MaxIter, err)
	}
	return rec.done(NonConverged, cfg.MaxIter, x, fx, "max iterations reached")
}
