package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/issafronov/playlistrelay/internal/app/models"
	"github.com/issafronov/playlistrelay/internal/middleware/logger"
	"go.uber.org/zap"
)

const (
	channelPrefix = "UC"
	uploadsPrefix = "UU"
)

// ErrAPIKeyNotSet возвращается, если ключ YouTube API не сконфигурирован
var ErrAPIKeyNotSet = errors.New("YOUTUBE_API_KEY is not set")

type playlistService struct {
	source PlaylistSource
	apiKey string
	now    func() time.Time
}

// NewService создаёт новый экземпляр сервиса
func NewService(source PlaylistSource, apiKey string) Service {
	return &playlistService{source: source, apiKey: apiKey, now: time.Now}
}

// PlaylistID заменяет первое вхождение "UC" на "UU": так из id канала
// получается id плейлиста его загрузок. Остальные id не меняются.
func PlaylistID(rawID string) string {
	return strings.Replace(rawID, channelPrefix, uploadsPrefix, 1)
}

// FetchVideos выполняет ровно один запрос к источнику
func (s *playlistService) FetchVideos(ctx context.Context, rawID string) (models.VideoFeed, error) {
	start := s.now()
	id := PlaylistID(rawID)

	if s.apiKey == "" {
		return models.VideoFeed{}, ErrAPIKeyNotSet
	}

	logger.Log.Info("Fetching videos for playlist", zap.String("playlist_id", id))

	videos, err := s.source.PlaylistItems(ctx, id, s.apiKey)
	if err != nil {
		logger.Log.Warn("playlist request failed", zap.String("playlist_id", id), zap.Error(err))
		return models.VideoFeed{}, err
	}

	return models.VideoFeed{Videos: videos, Elapsed: s.now().Sub(start)}, nil
}
