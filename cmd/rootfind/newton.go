package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"rootfind/internal/solver"
)

var (
	derivExpr    string
	newtonX0     float64
	numericDeriv bool
)

var newtonCmd = &cobra.Command{
	Use:   "newton",
	Short: "Метод Ньютона по f, f' и начальному x0",
	Long: `x_{n+1} = x_n - f(x_n)/f'(x_n). Производная задаётся флагом --df
или считается конечной разностью при --numeric-deriv.`,
	Example: `  rootfind newton --f "x**2 - 4*x + 3" --df "2*x - 4" --x0 0
  rootfind newton --f "cos(x) - x" --numeric-deriv --x0 0.5`,
	RunE: runNewton,
}

func init() {
	newtonCmd.Flags().StringVar(&funcExpr, "f", "", "Функция f(x) (обязательно)")
	newtonCmd.Flags().StringVar(&derivExpr, "df", "", "Производная f'(x)")
	newtonCmd.Flags().Float64Var(&newtonX0, "x0", 1, "Начальное приближение")
	newtonCmd.Flags().BoolVar(&numericDeriv, "numeric-deriv", false, "Численная производная вместо --df")
	newtonCmd.MarkFlagRequired("f")
	rootCmd.AddCommand(newtonCmd)
}

func runNewton(cmd *cobra.Command, args []string) error {
	f, err := parseFunc(funcExpr)
	if err != nil {
		return err
	}

	var df solver.Func
	switch {
	case derivExpr != "":
		df, err = solver.NewEvalFunc(derivExpr)
		if err != nil {
			return fmt.Errorf("ошибка в выражении производной: %w", err)
		}
	case numericDeriv:
		slog.Debug("Численная производная", "func", funcExpr)
		df = solver.NumericDerivative(f)
	default:
		return fmt.Errorf("нужна производная: --df или --numeric-deriv")
	}

	return solveAndReport(cmd, solver.Problem{Method: solver.MethodNewton, F: f, DF: df, X0: newtonX0})
}

func parseFunc(expr string) (solver.Func, error) {
	f, err := solver.NewEvalFunc(expr)
	if err != nil {
		return nil, fmt.Errorf("ошибка в выражении функции: %w", err)
	}
	return f, nil
}
