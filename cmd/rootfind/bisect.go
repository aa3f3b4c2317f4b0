package main

import (
	"github.com/spf13/cobra"

	"rootfind/internal/solver"
)

var bisectA, bisectB float64

var bisectCmd = &cobra.Command{
	Use:   "bisect",
	Short: "Метод половинного деления на [a, b]",
	Long: `Делит отрезок [a, b] пополам, пока |f(x)| или |b - a| не станут меньше tol.
f(a) и f(b) должны иметь разные знаки.`,
	Example: `  rootfind bisect --f "x**3 - 2*x - 5" --a 2 --b 3`,
	RunE:    runBisect,
}

func init() {
	bisectCmd.Flags().StringVar(&funcExpr, "f", "", "Функция f(x) (обязательно)")
	bisectCmd.Flags().Float64Var(&bisectA, "a", 0, "Левый конец отрезка")
	bisectCmd.Flags().Float64Var(&bisectB, "b", 1, "Правый конец отрезка")
	bisectCmd.MarkFlagRequired("f")
	rootCmd.AddCommand(bisectCmd)
}

func runBisect(cmd *cobra.Command, args []string) error {
	f, err := parseFunc(funcExpr)
	if err != nil {
		return err
	}
	return solveAndReport(cmd, solver.Problem{Method: solver.MethodBisection, F: f, A: bisectA, B: bisectB})
}
