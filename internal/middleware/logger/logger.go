package logger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Log — глобальный логгер, инициализируемый через функцию Initialize
var Log *zap.Logger = zap.NewNop()

type (
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter запоминает статус-код и размер тела ответа
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// Initialize настраивает глобальный логгер Log в соответствии с уровнем логирования
func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()

	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}

// RequestLogger — middleware, логирующий HTTP-запросы и ответы.
// Идентификатор запроса берётся из middleware.RequestID, если он подключён раньше.
func RequestLogger(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &responseData{}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}
		next.ServeHTTP(&lw, r)

		fields := []zap.Field{
			zap.String("uri", r.RequestURI),
			zap.String("method", r.Method),
			zap.Int("status", responseData.status),
			zap.Duration("duration", time.Since(start)),
			zap.Int("size", responseData.size),
		}
		if id := middleware.GetReqID(r.Context()); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}

		Log.Info("got incoming HTTP request", fields...)
	}
	return http.HandlerFunc(fn)
}
