// Package youtube обращается к эндпоинту playlistItems YouTube Data API
// и сводит ответ к списку пар videoId/title.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/issafronov/playlistrelay/internal/app/models"
	"github.com/issafronov/playlistrelay/internal/middleware/logger"
)

const (
	playlistItemsPath = "/playlistItems"
	// MaxResults фиксированный размер страницы; пагинации нет
	MaxResults = 5
)

var (
	// ErrRequestFailed возвращается при сетевой ошибке обращения к API
	ErrRequestFailed = errors.New("Request failed")
	// ErrParseFailed возвращается, если тело ответа не является JSON
	ErrParseFailed = errors.New("Failed to parse response")
	// ErrNoVideos возвращается, если в ответе нет массива items
	ErrNoVideos = errors.New("No videos found")
)

// StatusError описывает ответ API с кодом вне диапазона 2xx
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return e.Status
}

// Client выполняет запросы к YouTube Data API
type Client struct {
	http *resty.Client
}

// NewClient создаёт клиент для указанного базового URL.
// Нулевой timeout оставляет таймаут HTTP клиента по умолчанию.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Log.Sugar())
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

// PlaylistItems запрашивает первые MaxResults элементов плейлиста
// и возвращает видео, у которых есть и videoId, и title, в исходном порядке.
func (c *Client) PlaylistItems(ctx context.Context, playlistID, apiKey string) ([]models.Video, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":       "snippet",
			"playlistId": playlistID,
			"key":        apiKey,
			"maxResults": fmt.Sprint(MaxResults),
		}).
		Get(playlistItemsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	if !res.IsSuccess() {
		return nil, &StatusError{Code: res.StatusCode(), Status: res.Status()}
	}

	return parseVideos(res.Body())
}
