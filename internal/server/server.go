package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server serves the chat UI: static pages, the lobby API and websockets.
type Server struct {
	handlers *Handlers
	port     int
	static   fs.FS
	log      *zap.Logger
}

func New(port int, static fs.FS, handlers *Handlers, log *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		port:     port,
		static:   static,
		log:      log,
	}
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.static != nil {
		mux.Handle("/", http.FileServer(http.FS(s.static)))
	}
	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/api/transcript", s.handlers.HandleTranscript)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("mafia server listening",
			zap.String("addr", srv.Addr),
			zap.String("create", fmt.Sprintf("http://localhost%s/api/create", srv.Addr)),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.handlers.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
