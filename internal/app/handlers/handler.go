package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/issafronov/playlistrelay/internal/app/models"
	"github.com/issafronov/playlistrelay/internal/app/service"
	"github.com/issafronov/playlistrelay/internal/app/youtube"
	"github.com/issafronov/playlistrelay/internal/middleware/logger"
	"go.uber.org/zap"
)

// ResponseTimeHeader содержит время обработки успешного запроса в миллисекундах
const ResponseTimeHeader = "X-Response-Time"

// Handler обслуживает HTTP-запросы релея
type Handler struct {
	service service.Service
}

// NewHandler создаёт новый обработчик
func NewHandler(svc service.Service) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("service is required")
	}
	return &Handler{service: svc}, nil
}

// GetVideosHandle возвращает видео плейлиста загрузок канала {id}
func (h *Handler) GetVideosHandle(res http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	// при непустом RawPath chi маршрутизирует по экранированному пути
	if req.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}
	}

	feed, err := h.service.FetchVideos(req.Context(), id)
	if err != nil {
		writeError(res, statusFor(err), messageFor(err))
		return
	}

	videos := feed.Videos
	if videos == nil {
		videos = []models.Video{}
	}

	res.Header().Set(ResponseTimeHeader, fmt.Sprintf("%dms", feed.Elapsed.Milliseconds()))
	writeJSON(res, http.StatusOK, videos)
}

// statusFor: отсутствие items отдаёт 404, всё остальное 500
func statusFor(err error) int {
	if errors.Is(err, youtube.ErrNoVideos) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func messageFor(err error) string {
	var statusErr *youtube.StatusError
	switch {
	case errors.Is(err, service.ErrAPIKeyNotSet):
		return service.ErrAPIKeyNotSet.Error()
	case errors.Is(err, youtube.ErrRequestFailed):
		return youtube.ErrRequestFailed.Error()
	case errors.Is(err, youtube.ErrParseFailed):
		return youtube.ErrParseFailed.Error()
	case errors.Is(err, youtube.ErrNoVideos):
		return youtube.ErrNoVideos.Error()
	case errors.As(err, &statusErr):
		return statusErr.Status
	default:
		return err.Error()
	}
}

func writeJSON(res http.ResponseWriter, status int, body interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(body); err != nil {
		logger.Log.Error("failed to encode response", zap.Error(err))
	}
}

func writeError(res http.ResponseWriter, status int, message string) {
	writeJSON(res, status, models.ErrorResponse{Error: message})
}

// NotFound отвечает на запросы к неизвестным маршрутам
func NotFound(res http.ResponseWriter, req *http.Request) {
	writeError(res, http.StatusNotFound, "route not found")
}

// MethodNotAllowed отвечает на запросы с неподдерживаемым методом
func MethodNotAllowed(res http.ResponseWriter, req *http.Request) {
	writeError(res, http.StatusMethodNotAllowed, "method not allowed")
}
