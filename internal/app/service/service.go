package service

import (
	"context"

	"github.com/issafronov/playlistrelay/internal/app/models"
)

// Service определяет логику получения видео плейлиста
type Service interface {
	// FetchVideos возвращает до пяти видео плейлиста загрузок канала
	// или плейлиста с указанным идентификатором
	FetchVideos(ctx context.Context, rawID string) (models.VideoFeed, error)
}

// PlaylistSource запрашивает элементы плейлиста у внешнего API
type PlaylistSource interface {
	PlaylistItems(ctx context.Context, playlistID, apiKey string) ([]models.Video, error)
}
