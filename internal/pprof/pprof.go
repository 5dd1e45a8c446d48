package pprof

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/issafronov/playlistrelay/internal/middleware/logger"
	"go.uber.org/zap"
)

// Server обслуживает pprof отдельно от основного API
type Server struct {
	srv      *http.Server
	listener net.Listener
}

// Start запускает pprof-сервер на указанном адресе в отдельной горутине
func Start(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	s := &Server{srv: &http.Server{Handler: mux}, listener: ln}

	go func() {
		logger.Log.Info("Starting pprof server", zap.String("addr", ln.Addr().String()))
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("pprof server error", zap.Error(err))
		}
	}()

	return s, nil
}

// Addr возвращает фактический адрес, на котором слушает сервер
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown останавливает pprof-сервер
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
