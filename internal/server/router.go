package server

import "net/http"

func NewRouter() http.Handler {
	mux := http.NewServeMux()

	// API эндпоинты
	mux.HandleFunc("/start", StartRun)
	mux.HandleFunc("/stop", StopRun)
	mux.HandleFunc("/status", Status)
	mux.HandleFunc("/stream", Stream)
	mux.HandleFunc("/export", ExportCSV)

	return mux
}
