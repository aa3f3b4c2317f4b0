package solver

import (
	"fmt"
	"math"
)

const (
	DefaultTol     = 1e-6
	DefaultMaxIter = 100
	DefaultTiny    = 1e-12
)

// Config — критерии остановки, передаются в каждый вызов.
//
//   - Tol     — порог для |f(x)| и для смещения |x_new - x| (ширины |b - a|).
//   - MaxIter — предел числа итераций.
//   - Tiny    — ниже этого значения |f'(x)| и |f(b) - f(a)| считаются нулём.
type Config struct {
	Tol     float64 `json:"tol"`
	MaxIter int     `json:"maxIter"`
	Tiny    float64 `json:"tiny"`
}

// DefaultConfig возвращает tol = 1e-6, maxIter = 100, tiny = 1e-12
func DefaultConfig() Config {
	return Config{
		Tol:     DefaultTol,
		MaxIter: DefaultMaxIter,
		Tiny:    DefaultTiny,
	}
}

// Validate проверяет, что все пороги положительны и конечны
func (c Config) Validate() error {
	if !(c.Tol > 0) || math.IsInf(c.Tol, 0) {
		return fmt.Errorf("%w: tol must be positive, got %g", ErrBadConfig, c.Tol)
	}
	if c.MaxIter <= 0 {
		return fmt.Errorf("%w: maxIter must be positive, got %d", ErrBadConfig, c.MaxIter)
	}
	if !(c.Tiny > 0) || math.IsInf(c.Tiny, 0) {
		return fmt.Errorf("%w: tiny must be positive, got %g", ErrBadConfig, c.Tiny)
	}
	return nil
}
