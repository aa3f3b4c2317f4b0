package solver

import (
	"errors"
	"fmt"
	"math"
)

// recorder накапливает историю и шаги одного запуска и собирает Result
type recorder struct {
	res    Result
	onIter func(Iter) error
}

func newRecorder(m Method, cfg Config, onIter func(Iter) error) *recorder {
	return &recorder{
		res: Result{
			Method:  m,
			History: make([]float64, 0, min(cfg.MaxIter, 64)+2),
		},
		onIter: onIter,
	}
}

func (r *recorder) push(x float64) {
	r.res.History = append(r.res.History, x)
}

// step сохраняет итерацию и вызывает onIter.
// Любая ошибка из onIter превращается в остановку.
func (r *recorder) step(it Iter) error {
	r.res.Steps = append(r.res.Steps, it)
	if r.onIter == nil {
		return nil
	}
	if err := r.onIter(it); err != nil {
		if errors.Is(err, ErrStopped) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrStopped, err)
	}
	return nil
}

func (r *recorder) done(st Status, iters int, root, froot float64, reason string) (Result, error) {
	r.res.Status = st
	r.res.Iterations = iters
	r.res.Root = root
	r.res.FRoot = froot
	r.res.Reason = reason
	return r.res, nil
}

// fail завершает запуск без корня; история сохраняется
func (r *recorder) fail(st Status, iters int, err error) (Result, error) {
	r.res.Status = st
	r.res.Iterations = iters
	r.res.Root = math.NaN()
	r.res.FRoot = math.NaN()
	r.res.Reason = err.Error()
	return r.res, err
}

// eval вычисляет f(x) и отбрасывает NaN/Inf до того, как они попадут в шаг
func eval(name string, f Func, x float64) (float64, error) {
	v, err := f.Eval(x)
	if err != nil {
		return math.NaN(), fmt.Errorf("%w: %s(%g): %w", ErrEvalFailed, name, x, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v, fmt.Errorf("%w: %w: %s(%g) = %g", ErrEvalFailed, ErrNotFinite, name, x, v)
	}
	return v, nil
}
