package youtube

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/issafronov/playlistrelay/internal/app/models"
)

// object хранит один уровень JSON-объекта. Ключи сравниваются точно,
// в отличие от декодирования в структуру.
type object map[string]json.RawMessage

func decodeObject(raw json.RawMessage) (object, bool) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func (o object) child(key string) (object, bool) {
	raw, ok := o[key]
	if !ok {
		return nil, false
	}
	return decodeObject(raw)
}

// text возвращает значение ключа, только если это JSON-строка (не null)
func (o object) text(key string) (string, bool) {
	raw, ok := o[key]
	if !ok {
		return "", false
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil || s == nil {
		return "", false
	}
	return *s, true
}

// video читает snippet.resourceId.videoId и snippet.title
func video(raw json.RawMessage) (models.Video, bool) {
	item, ok := decodeObject(raw)
	if !ok {
		return models.Video{}, false
	}
	snippet, ok := item.child("snippet")
	if !ok {
		return models.Video{}, false
	}
	title, ok := snippet.text("title")
	if !ok {
		return models.Video{}, false
	}
	resource, ok := snippet.child("resourceId")
	if !ok {
		return models.Video{}, false
	}
	videoID, ok := resource.text("videoId")
	if !ok {
		return models.Video{}, false
	}
	return models.Video{VideoID: videoID, Title: title}, true
}

func parseVideos(body []byte) ([]models.Video, error) {
	// json.Valid пропускает битый UTF-8 внутри строк
	if !json.Valid(body) || !utf8.Valid(body) {
		return nil, ErrParseFailed
	}

	// валидный JSON, но не объект
	envelope, ok := decodeObject(body)
	if !ok {
		return nil, ErrNoVideos
	}

	itemsRaw, ok := envelope["items"]
	if !ok {
		return nil, ErrNoVideos
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(itemsRaw, &raw); err != nil || raw == nil {
		return nil, ErrNoVideos
	}

	videos := make([]models.Video, 0, len(raw))
	for _, r := range raw {
		if v, ok := video(r); ok {
			videos = append(videos, v)
		}
	}

	return videos, nil
}
