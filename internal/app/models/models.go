package models

import "time"

// Video представляет одно видео в ответе релея
type Video struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

// VideoFeed содержит отфильтрованный список видео плейлиста
// и время, затраченное на его получение
type VideoFeed struct {
	Videos  []Video
	Elapsed time.Duration
}

// ErrorResponse описывает тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse описывает тело ответа проверки живости
type StatusResponse struct {
	Status string `json:"status"`
}
