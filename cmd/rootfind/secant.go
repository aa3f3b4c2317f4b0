package main

import (
	"github.com/spf13/cobra"

	"rootfind/internal/solver"
)

var secantA, secantB float64

var secantCmd = &cobra.Command{
	Use:     "secant",
	Short:   "Метод секущих по двум начальным точкам",
	Long:    `Строит секущую через две последние точки. Знаки f(a) и f(b) не проверяются.`,
	Example: `  rootfind secant --f "x**3 - 2*x - 5" --a 2 --b 3`,
	RunE:    runSecant,
}

func init() {
	secantCmd.Flags().StringVar(&funcExpr, "f", "", "Функция f(x) (обязательно)")
	secantCmd.Flags().Float64Var(&secantA, "a", 0, "Первая начальная точка")
	secantCmd.Flags().Float64Var(&secantB, "b", 1, "Вторая начальная точка")
	secantCmd.MarkFlagRequired("f")
	rootCmd.AddCommand(secantCmd)
}

func runSecant(cmd *cobra.Command, args []string) error {
	f, err := parseFunc(funcExpr)
	if err != nil {
		return err
	}
	return solveAndReport(cmd, solver.Problem{Method: solver.MethodSecant, F: f, A: secantA, B: secantB})
}
