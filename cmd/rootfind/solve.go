package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"rootfind/internal/report"
	"rootfind/internal/solver"
)

var funcExpr string

func config() solver.Config {
	return solver.Config{Tol: tol, MaxIter: maxIter, Tiny: tiny}
}

// solveAndReport запускает метод, печатает итерации и итог.
// Ненулевой код выхода — только для состояний отказа.
func solveAndReport(cmd *cobra.Command, p solver.Problem) error {
	cfg := config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	if !quiet {
		fmt.Fprintln(tw, header(p.Method))
	}

	onIter := func(it solver.Iter) error {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", solver.ErrStopped, ctx.Err())
		default:
		}
		if !quiet {
			fmt.Fprintln(tw, row(p.Method, it))
		}
		return nil
	}

	slog.Debug("Запуск", "method", p.Method, "tol", cfg.Tol, "maxIter", cfg.MaxIter)
	start := time.Now()
	res, err := solver.Solve(p, cfg, onIter)
	elapsed := time.Since(start)
	if ferr := tw.Flush(); ferr != nil {
		return ferr
	}

	slog.Info("Поиск завершён",
		"method", res.Method,
		"status", res.Status,
		"iterations", res.Iterations,
		"elapsed", elapsed,
	)

	if csvPath != "" {
		if werr := writeCSV(csvPath, res); werr != nil {
			return werr
		}
	}

	printResult(out, res)
	if err != nil {
		return fmt.Errorf("%s: %w", res.Status, err)
	}
	return nil
}

func writeCSV(path string, res solver.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer f.Close()

	if err := report.WriteCSV(f, res.Method, res.Steps); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return f.Close()
}

func header(m solver.Method) string {
	switch m {
	case solver.MethodNewton:
		return "k\tx\tf(x)\tf'(x)\tstep\t"
	default:
		return "k\ta\tb\tx\tf(x)\t|b-a|\t"
	}
}

func row(m solver.Method, it solver.Iter) string {
	switch m {
	case solver.MethodNewton:
		return fmt.Sprintf("%d\t%.10g\t%.6e\t%.6e\t%.3e\t", it.K, it.X, it.FX, it.DFX, it.Step)
	default:
		return fmt.Sprintf("%d\t%.10g\t%.10g\t%.10g\t%.6e\t%.3e\t", it.K, it.A, it.B, it.X, it.FX, it.Width)
	}
}

func printResult(w io.Writer, res solver.Result) {
	switch {
	case res.Converged():
		fmt.Fprintf(w, "Корень: x = %.10g, f(x) = %.3e, итераций: %d (%s)\n",
			res.Root, res.FRoot, res.Iterations, res.Reason)
	case res.Status == solver.NonConverged:
		fmt.Fprintf(w, "Точность не достигнута за %d итераций, последнее приближение: x = %.10g, f(x) = %.3e\n",
			res.Iterations, res.Root, res.FRoot)
	default:
		fmt.Fprintf(w, "Корень не найден: %s после %d итераций: %s\n",
			res.Status, res.Iterations, res.Reason)
	}
}
