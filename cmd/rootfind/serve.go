package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"rootfind/internal/server"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP-сервер с потоком итераций (SSE)",
	Long: `Запускает HTTP API: POST /start, POST /stop, GET /status,
GET /stream (Server-Sent Events) и GET /export (CSV).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Адрес для прослушивания")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Сервер запущен", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("сервер остановлен: %w", err)
	case <-cmd.Context().Done():
		slog.Info("Остановка сервера")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
