package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rootfind/internal/solver"
)

var (
	logLevel string
	logger   *slog.Logger

	tol     float64
	maxIter int
	tiny    float64
	timeout time.Duration
	csvPath string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "rootfind",
	Short: "Поиск корней f(x) = 0: бисекция, секущие, Ньютон",
	Long: `rootfind ищет корень функции одной переменной тремя классическими
методами и печатает каждую итерацию. Функция задаётся выражением от x,
например "x**3 - 2*x - 5" или "cos(x) - x".`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		switch logLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: level}
		handler := slog.NewJSONHandler(os.Stderr, opts)
		logger = slog.New(handler)
		slog.SetDefault(logger)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "Уровень логов (debug, info, warn, error)")
	pf.Float64Var(&tol, "tol", solver.DefaultTol, "Точность по |f(x)| и по смещению")
	pf.IntVar(&maxIter, "max-iter", solver.DefaultMaxIter, "Максимум итераций")
	pf.Float64Var(&tiny, "tiny", solver.DefaultTiny, "Порог, ниже которого f'(x) и f(b)-f(a) считаются нулём")
	pf.DurationVar(&timeout, "timeout", 0, "Ограничение по времени (0 — без ограничения)")
	pf.StringVar(&csvPath, "csv", "", "Записать итерации в CSV-файл")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Не печатать таблицу итераций")
}
