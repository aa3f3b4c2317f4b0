package server

import (
	"context"
	"math"
	"sync"
	"time"

	"rootfind/internal/solver"
)

// параметры запуска метода
type RunParams struct {
	Method       string  `json:"method"`
	Func         string  `json:"func"`
	Deriv        string  `json:"deriv"`
	NumericDeriv bool    `json:"numericDeriv"`
	A            float64 `json:"a"`
	B            float64 `json:"b"`
	X0           float64 `json:"x0"`
	Tol          float64 `json:"tol"`
	MaxIter      int     `json:"maxIter"`
	Tiny         float64 `json:"tiny"`
}

// config — параметры остановки с подставленными значениями по умолчанию
func (p *RunParams) config() solver.Config {
	cfg := solver.DefaultConfig()
	if p.Tol > 0 {
		cfg.Tol = p.Tol
	}
	if p.MaxIter > 0 {
		cfg.MaxIter = p.MaxIter
	}
	if p.Tiny > 0 {
		cfg.Tiny = p.Tiny
	}
	p.Tol, p.MaxIter, p.Tiny = cfg.Tol, cfg.MaxIter, cfg.Tiny
	return cfg
}

// состояние одного запуска
type RunState struct {
	ID        string
	Method    solver.Method
	Params    RunParams
	CreatedAt time.Time
	Cancel    context.CancelFunc

	mu     sync.Mutex
	iters  []solver.Iter
	result *solver.Result
	err    string
}

func (rs *RunState) addIter(it solver.Iter) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.iters = append(rs.iters, it)
}

func (rs *RunState) finish(res solver.Result, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.result = &res
	if err != nil {
		rs.err = err.Error()
	}
}

// Iters возвращает копию накопленных итераций
func (rs *RunState) Iters() []solver.Iter {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]solver.Iter(nil), rs.iters...)
}

// RunStatus — снимок запуска для /status
type RunStatus struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Params     RunParams `json:"params"`
	CreatedAt  time.Time `json:"createdAt"`
	Done       bool      `json:"done"`
	Status     string    `json:"status"`
	Root       *float64  `json:"root,omitempty"`
	FRoot      *float64  `json:"froot,omitempty"`
	Iterations int       `json:"iterations"`
	History    []float64 `json:"history,omitempty"`
	Err        string    `json:"err,omitempty"`
}

func (rs *RunState) snapshot() RunStatus {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	st := RunStatus{
		ID:         rs.ID,
		Method:     string(rs.Method),
		Params:     rs.Params,
		CreatedAt:  rs.CreatedAt,
		Status:     "Running",
		Iterations: len(rs.iters),
		Err:        rs.err,
	}
	if rs.result != nil {
		st.Done = true
		st.Status = rs.result.Status.String()
		st.Iterations = rs.result.Iterations
		st.History = rs.result.History
		st.Root = finiteOrNil(rs.result.Root)
		st.FRoot = finiteOrNil(rs.result.FRoot)
	}
	return st
}

// NaN в JSON не кодируется
func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

var (
	runsMu sync.Mutex
	runs   = map[string]*RunState{}
)

func saveRun(rs *RunState) {
	runsMu.Lock()
	defer runsMu.Unlock()
	runs[rs.ID] = rs
}

func getRun(id string) *RunState {
	runsMu.Lock()
	defer runsMu.Unlock()
	return runs[id]
}
