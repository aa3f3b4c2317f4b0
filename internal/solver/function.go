package solver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/diff/fd"
)

// Func — интерфейс для абстрактной функции f(x)
type Func interface {
	Eval(x float64) (float64, error)
}

// Plain — обычная функция Go как Func
type Plain func(float64) float64

func (p Plain) Eval(x float64) (float64, error) {
	return p(x), nil
}

// evalFunc — реализация Func на основе govaluate
type evalFunc struct {
	src  string
	expr *govaluate.EvaluableExpression
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var exprFuncs = map[string]govaluate.ExpressionFunction{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"ln":    unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow: нужно 2 аргумента, получено %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("нужен 1 аргумент, получено %d", len(args))
		}
		return fn(toFloat(args[0])), nil
	}
}

// decimalComma заменяет десятичную запятую (цифра,цифра) на точку.
// Внутри аргументов функции запятая остаётся разделителем: pow(x+1,2).
func decimalComma(expr string) string {
	b := []byte(expr)
	var calls []bool // для каждой открытой скобки: это вызов функции
	for i, c := range b {
		switch c {
		case '(':
			calls = append(calls, i > 0 && isIdent(b[i-1]))
		case ')':
			if len(calls) > 0 {
				calls = calls[:len(calls)-1]
			}
		case ',':
			if len(calls) > 0 && calls[len(calls)-1] {
				continue
			}
			if i > 0 && i+1 < len(b) && isDigit(b[i-1]) && isDigit(b[i+1]) {
				b[i] = '.'
			}
		}
	}
	return string(b)
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdent(c byte) bool {
	return isDigit(c) || c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// NewEvalFunc создаёт вычислимую функцию по строке f(x).
// Степень записывается как x**2 или pow(x, 2), доступны константы pi и e.
func NewEvalFunc(expr string) (Func, error) {
	// нормализуем запятые в десятичной записи
	src := strings.TrimSpace(decimalComma(expr))
	if src == "" {
		return nil, fmt.Errorf("пустое выражение")
	}

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(src, exprFuncs)
	if err != nil {
		return nil, err
	}
	f := &evalFunc{src: src, expr: parsed}
	// пробное вычисление ловит неизвестные переменные (кроме x, pi, e)
	if _, err := f.Eval(1); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *evalFunc) String() string { return f.src }

// Eval безопасен для конкурентного вызова: карта параметров своя на каждый вызов
func (f *evalFunc) Eval(x float64) (float64, error) {
	params := map[string]interface{}{"x": x}
	for k, c := range constants {
		params[k] = c
	}
	v, err := f.expr.Evaluate(params)
	if err != nil {
		return math.NaN(), err
	}

	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case bool:
		return math.NaN(), fmt.Errorf("выражение вернуло логическое значение")
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN(), err
		}
		return parsed, nil
	default:
		return math.NaN(), fmt.Errorf("выражение не вернуло число: %T", v)
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return math.NaN()
	}
}

// NumericDerivative — производная f центральной конечной разностью.
// Ошибка вычисления f превращается в NaN и возвращается вызывающему.
func NumericDerivative(f Func) Func {
	return derivFunc{f: f}
}

type derivFunc struct {
	f Func
}

func (d derivFunc) Eval(x float64) (float64, error) {
	var evalErr error
	g := func(t float64) float64 {
		v, err := d.f.Eval(t)
		if err != nil && evalErr == nil {
			evalErr = err
		}
		return v
	}
	v := fd.Derivative(g, x, &fd.Settings{Formula: fd.Central})
	if evalErr != nil {
		return math.NaN(), evalErr
	}
	return v, nil
}
