package solver

import "errors"

var (
	// ErrStopped — специальная ошибка для принудительной остановки из onIter
	ErrStopped = errors.New("solver: stopped by callback")
	// ErrBracketInvalid — f(a) и f(b) одного знака, бисекция не начинается
	ErrBracketInvalid = errors.New("solver: f(a) and f(b) have the same sign")
	// ErrStagnation — f(b) - f(a) неотличимо от нуля, шаг секущих не определён
	ErrStagnation = errors.New("solver: secant denominator is zero")
	// ErrDerivativeTooSmall — |f'(x)| ниже порога Tiny
	ErrDerivativeTooSmall = errors.New("solver: derivative too small")
	// ErrEvalFailed — ошибка вычисления f или f'
	ErrEvalFailed = errors.New("solver: function evaluation failed")
	// ErrNotFinite — функция вернула NaN или бесконечность
	ErrNotFinite = errors.New("solver: function value is not finite")
	// ErrBadConfig — недопустимые параметры запуска
	ErrBadConfig = errors.New("solver: invalid configuration")
	// ErrUnknownMethod — неизвестное имя метода
	ErrUnknownMethod = errors.New("solver: unknown method")
)
