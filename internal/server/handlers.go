package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"rootfind/internal/report"
	"rootfind/internal/solver"
	"rootfind/internal/sse"
)

// число точек предпросмотра графика
const previewPoints = 400

// StartRun запускает новый поиск корня
func StartRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}

	var p RunParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "ошибка JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	method, err := solver.ParseMethod(p.Method)
	if err != nil {
		http.Error(w, "неизвестный метод: "+p.Method, http.StatusBadRequest)
		return
	}
	cfg := p.config()

	switch method {
	case solver.MethodBisection:
		if !(p.A < p.B) {
			http.Error(w, "требуется a < b", http.StatusBadRequest)
			return
		}
	case solver.MethodSecant:
		if p.A == p.B {
			http.Error(w, "требуется a != b", http.StatusBadRequest)
			return
		}
	}

	f, err := solver.NewEvalFunc(p.Func)
	if err != nil {
		http.Error(w, "ошибка в выражении функции: "+err.Error(), http.StatusBadRequest)
		return
	}

	var df solver.Func
	if method == solver.MethodNewton {
		switch {
		case p.Deriv != "":
			df, err = solver.NewEvalFunc(p.Deriv)
			if err != nil {
				http.Error(w, "ошибка в выражении производной: "+err.Error(), http.StatusBadRequest)
				return
			}
		case p.NumericDeriv:
			df = solver.NumericDerivative(f)
		default:
			http.Error(w, "для метода Ньютона требуется производная", http.StatusBadRequest)
			return
		}
	}

	// предварительно считаем значения функции для графика
	lo, hi := previewRange(method, p)
	xs := make([]float64, previewPoints)
	ys := make([]*float64, previewPoints)
	h := (hi - lo) / float64(previewPoints-1)
	for i := 0; i < previewPoints; i++ {
		x := lo + float64(i)*h
		xs[i] = x
		if y, err := f.Eval(x); err == nil {
			ys[i] = finiteOrNil(y)
		}
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{
		ID:        id,
		Method:    method,
		Params:    p,
		CreatedAt: time.Now(),
		Cancel:    cancel,
	}
	saveRun(rs)

	problem := solver.Problem{Method: method, F: f, DF: df, A: p.A, B: p.B, X0: p.X0}
	go run(ctx, rs, problem, cfg)

	resp := map[string]any{
		"id": id,
		"xs": xs,
		"ys": ys,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// run — асинхронный запуск метода с публикацией итераций
func run(ctx context.Context, rs *RunState, problem solver.Problem, cfg solver.Config) {
	defer rs.Cancel()
	log := slog.With("id", rs.ID, "method", rs.Method)
	log.Info("запуск", "func", rs.Params.Func, "tol", cfg.Tol, "maxIter", cfg.MaxIter)

	// стартовое событие
	publish(rs.ID, map[string]any{
		"type": "start",
		"id":   rs.ID,
	})

	onIter := func(it solver.Iter) error {
		select {
		case <-ctx.Done():
			return solver.ErrStopped
		default:
		}

		rs.addIter(it)
		publish(rs.ID, map[string]any{
			"type": "iter",
			"iter": it,
		})
		return nil
	}

	res, err := solver.Solve(problem, cfg, onIter)
	rs.finish(res, err)

	switch {
	case errors.Is(err, solver.ErrStopped):
		log.Info("остановлен", "iterations", res.Iterations)
		publish(rs.ID, map[string]any{
			"type": "stopped",
		})
	case err != nil:
		log.Warn("ошибка при вычислении", "status", res.Status, "err", err)
		publish(rs.ID, map[string]any{
			"type":       "error",
			"status":     res.Status,
			"iterations": res.Iterations,
			"err":        "ошибка при вычислении: " + err.Error(),
		})
	default:
		log.Info("завершён", "status", res.Status, "root", res.Root, "iterations", res.Iterations)
		publish(rs.ID, map[string]any{
			"type":       "done",
			"status":     res.Status,
			"converged":  res.Converged(),
			"x":          res.Root,
			"fx":         res.FRoot,
			"iterations": res.Iterations,
		})
	}
}

func publish(id string, payload map[string]any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		slog.Error("не удалось закодировать событие", "id", id, "err", err)
		return
	}
	sse.Publish(id, string(msg))
}

// previewRange — отрезок для графика: [a, b] или окрестность x0
func previewRange(m solver.Method, p RunParams) (float64, float64) {
	if m != solver.MethodNewton {
		return math.Min(p.A, p.B), math.Max(p.A, p.B)
	}
	if p.A < p.B {
		return p.A, p.B
	}
	r := math.Max(1, math.Abs(p.X0))
	return p.X0 - r, p.X0 + r
}

// StopRun — прерывание поиска
func StopRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "только POST", http.StatusMethodNotAllowed)
		return
	}
	rs, ok := lookupRun(w, r)
	if !ok {
		return
	}

	if rs.Cancel != nil {
		rs.Cancel()
	}

	w.WriteHeader(http.StatusNoContent)
}

// Status — состояние запуска в JSON
func Status(w http.ResponseWriter, r *http.Request) {
	rs, ok := lookupRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rs.snapshot())
}

// ExportCSV — экспорт итераций в CSV
func ExportCSV(w http.ResponseWriter, r *http.Request) {
	rs, ok := lookupRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=iterations_"+rs.ID+".csv")

	if err := report.WriteCSV(w, rs.Method, rs.Iters()); err != nil {
		slog.Error("ошибка экспорта CSV", "id", rs.ID, "err", err)
	}
}

// Stream — SSE-стрим итераций
func Stream(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := sse.Subscribe(id)
	defer cancel()

	ctx := r.Context()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "event: msg\n")
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func lookupRun(w http.ResponseWriter, r *http.Request) (*RunState, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "требуется id", http.StatusBadRequest)
		return nil, false
	}

	rs := getRun(id)
	if rs == nil {
		http.Error(w, "неизвестный id", http.StatusNotFound)
		return nil, false
	}
	return rs, true
}
