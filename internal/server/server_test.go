package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootfind/internal/solver"
	"rootfind/internal/sse"
)

func startRun(t *testing.T, srv *httptest.Server, p RunParams) (*http.Response, map[string]any) {
	t.Helper()
	body, err := json.Marshal(p)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/start", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func waitStatus(t *testing.T, srv *httptest.Server, id string) RunStatus {
	t.Helper()
	var st RunStatus
	require.Eventually(t, func() bool {
		resp, err := http.Get(srv.URL + "/status?id=" + id)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			return false
		}
		return st.Done
	}, 5*time.Second, 10*time.Millisecond)
	return st
}

func TestStartRun_Bisection(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, out := startRun(t, srv, RunParams{Method: "bisection", Func: "x**2 - 2", A: 1, B: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	assert.Len(t, out["xs"], previewPoints)
	assert.Len(t, out["ys"], previewPoints)

	st := waitStatus(t, srv, id)
	assert.Equal(t, "Converged", st.Status)
	require.NotNil(t, st.Root)
	assert.InDelta(t, math.Sqrt2, *st.Root, 1e-6)
	assert.Equal(t, solver.DefaultTol, st.Params.Tol, "defaults are filled in")
	assert.Equal(t, solver.DefaultMaxIter, st.Params.MaxIter)
	assert.Len(t, st.History, st.Iterations+1)

	csvResp, err := http.Get(srv.URL + "/export?id=" + id)
	require.NoError(t, err)
	defer csvResp.Body.Close()
	assert.Equal(t, "text/csv; charset=utf-8", csvResp.Header.Get("Content-Type"))
	rows, err := csv.NewReader(csvResp.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, st.Iterations+2, "header plus one row per midpoint")
}

func TestStartRun_NewtonNumericDeriv(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, out := startRun(t, srv, RunParams{Method: "newton", Func: "cos(x) - x", X0: 0.5, NumericDeriv: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	st := waitStatus(t, srv, out["id"].(string))
	assert.Equal(t, "Converged", st.Status)
	require.NotNil(t, st.Root)
	assert.InDelta(t, 0.7390851, *st.Root, 1e-6)
}

// TestStartRun_Failure reports a failed run with a distinct status and no root.
func TestStartRun_Failure(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, out := startRun(t, srv, RunParams{Method: "bisection", Func: "x**2 + 1", A: -1, B: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	st := waitStatus(t, srv, out["id"].(string))
	assert.Equal(t, "BracketInvalid", st.Status)
	assert.Nil(t, st.Root)
	assert.Contains(t, st.Err, "same sign")
}

func TestStartRun_BadRequests(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	for name, p := range map[string]RunParams{
		"unknown method":    {Method: "brent", Func: "x", A: 0, B: 1},
		"bisection a >= b":  {Method: "bisection", Func: "x", A: 1, B: 0},
		"secant a == b":     {Method: "secant", Func: "x", A: 1, B: 1},
		"bad expression":    {Method: "secant", Func: "x +", A: 0, B: 1},
		"newton without df": {Method: "newton", Func: "x**2 - 2", X0: 1},
		"newton bad df":     {Method: "newton", Func: "x**2 - 2", Deriv: "2*y", X0: 1},
	} {
		t.Run(name, func(t *testing.T) {
			resp, _ := startRun(t, srv, p)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp, err := http.Get(srv.URL + "/start")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestLookupRun(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	for _, path := range []string{"/status", "/export"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)

		resp, err = http.Get(srv.URL + path + "?id=missing")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp, err := http.Post(srv.URL+"/stop?id=missing", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestRun_Events checks the published event sequence of one run.
func TestRun_Events(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rs := &RunState{ID: "events", Method: solver.MethodBisection, Cancel: cancel}
	ch, unsubscribe := sse.Subscribe(rs.ID)
	defer unsubscribe()

	problem := solver.Problem{
		Method: solver.MethodBisection,
		F:      solver.Plain(func(x float64) float64 { return x*x - 2 }),
		A:      1,
		B:      2,
	}
	run(ctx, rs, problem, solver.DefaultConfig())

	var types []string
	var last map[string]any
	for len(ch) > 0 {
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(<-ch), &ev))
		types = append(types, ev["type"].(string))
		last = ev
	}

	require.NotEmpty(t, types)
	assert.Equal(t, "start", types[0])
	assert.Equal(t, "done", types[len(types)-1])
	assert.Equal(t, len(rs.Iters()), len(types)-2, "one iter event per step")
	assert.Equal(t, "Converged", last["status"])
	assert.Equal(t, true, last["converged"])
}

// TestRun_Stopped: a cancelled context stops the run at the next iteration.
func TestRun_Stopped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rs := &RunState{ID: "stopped", Method: solver.MethodNewton, Cancel: cancel}

	problem := solver.Problem{
		Method: solver.MethodNewton,
		F:      solver.Plain(func(x float64) float64 { return x*x - 4*x + 3 }),
		DF:     solver.Plain(func(x float64) float64 { return 2*x - 4 }),
		X0:     0,
	}
	run(ctx, rs, problem, solver.DefaultConfig())

	st := rs.snapshot()
	assert.True(t, st.Done)
	assert.Equal(t, "Stopped", st.Status)
	assert.Nil(t, st.Root)
	assert.Empty(t, rs.Iters())
}
