package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"rootfind/internal/solver"
)

// WriteCSV — экспорт итераций в CSV, набор колонок зависит от метода
func WriteCSV(w io.Writer, m solver.Method, steps []solver.Iter) error {
	cw := csv.NewWriter(w)

	header, row := columns(m)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, it := range steps {
		if err := cw.Write(row(it)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func columns(m solver.Method) ([]string, func(solver.Iter) []string) {
	switch m {
	case solver.MethodNewton:
		return []string{"k", "x", "f(x)", "f'(x)", "step"}, func(it solver.Iter) []string {
			return []string{strconv.Itoa(it.K), fmtFloat(it.X), fmtFloat(it.FX), fmtFloat(it.DFX), fmtFloat(it.Step)}
		}
	case solver.MethodSecant:
		return []string{"k", "a", "b", "x", "f(x)", "b-a"}, func(it solver.Iter) []string {
			return []string{strconv.Itoa(it.K), fmtFloat(it.A), fmtFloat(it.B), fmtFloat(it.X), fmtFloat(it.FX), fmtFloat(it.Width)}
		}
	default:
		return []string{"k", "a", "b", "mid", "f(mid)", "b-a"}, func(it solver.Iter) []string {
			return []string{strconv.Itoa(it.K), fmtFloat(it.A), fmtFloat(it.B), fmtFloat(it.X), fmtFloat(it.FX), fmtFloat(it.Width)}
		}
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}
