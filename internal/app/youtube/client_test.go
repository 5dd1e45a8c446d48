package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/issafronov/playlistrelay/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoItems = `{
	"kind": "youtube#playlistItemListResponse",
	"items": [
		{"snippet": {"title": "First", "resourceId": {"kind": "youtube#video", "videoId": "vid1"}}},
		{"snippet": {"title": "Second", "resourceId": {"kind": "youtube#video", "videoId": "vid2"}}}
	]
}`

func TestClient_PlaylistItems_Query(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoItems))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	videos, err := c.PlaylistItems(context.Background(), "UUabc", "key123")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/playlistItems", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "snippet", q.Get("part"))
	assert.Equal(t, "UUabc", q.Get("playlistId"))
	assert.Equal(t, "key123", q.Get("key"))
	assert.Equal(t, "5", q.Get("maxResults"))

	assert.Equal(t, []models.Video{
		{VideoID: "vid1", Title: "First"},
		{VideoID: "vid2", Title: "Second"},
	}, videos)
}

func TestClient_PlaylistItems_UpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).PlaylistItems(context.Background(), "UUabc", "bad")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
	assert.Equal(t, "403 Forbidden", statusErr.Error())
}

func TestClient_PlaylistItems_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0).PlaylistItems(context.Background(), "UUabc", "key")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestClient_PlaylistItems_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond).PlaylistItems(context.Background(), "UUabc", "key")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestClient_PlaylistItems_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).PlaylistItems(context.Background(), "UUabc", "key")
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestParseVideos(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []models.Video
		wantErr error
	}{
		{
			name: "all items complete",
			body: twoItems,
			want: []models.Video{
				{VideoID: "vid1", Title: "First"},
				{VideoID: "vid2", Title: "Second"},
			},
		},
		{
			name: "item without videoId dropped",
			body: `{"items": [
				{"snippet": {"title": "A", "resourceId": {"videoId": "a"}}},
				{"snippet": {"title": "B", "resourceId": {}}},
				{"snippet": {"title": "C", "resourceId": {"videoId": "c"}}}
			]}`,
			want: []models.Video{
				{VideoID: "a", Title: "A"},
				{VideoID: "c", Title: "C"},
			},
		},
		{
			name: "item without title dropped",
			body: `{"items": [
				{"snippet": {"resourceId": {"videoId": "a"}}},
				{"snippet": {"title": "B", "resourceId": {"videoId": "b"}}}
			]}`,
			want: []models.Video{{VideoID: "b", Title: "B"}},
		},
		{
			name: "mistyped fields dropped",
			body: `{"items": [
				{"snippet": {"title": 42, "resourceId": {"videoId": "a"}}},
				{"snippet": {"title": "B", "resourceId": {"videoId": 7}}},
				{"snippet": "flat"},
				{"snippet": {"title": null, "resourceId": {"videoId": "d"}}},
				5,
				{"snippet": {"title": "F", "resourceId": {"videoId": "f"}}}
			]}`,
			want: []models.Video{{VideoID: "f", Title: "F"}},
		},
		{
			name: "empty strings are kept",
			body: `{"items": [{"snippet": {"title": "", "resourceId": {"videoId": ""}}}]}`,
			want: []models.Video{{VideoID: "", Title: ""}},
		},
		{
			name: "empty items array",
			body: `{"items": []}`,
			want: []models.Video{},
		},
		{
			name:    "missing items",
			body:    `{"kind": "youtube#playlistItemListResponse"}`,
			wantErr: ErrNoVideos,
		},
		{
			name:    "null items",
			body:    `{"items": null}`,
			wantErr: ErrNoVideos,
		},
		{
			name:    "items is not an array",
			body:    `{"items": {"0": {}}}`,
			wantErr: ErrNoVideos,
		},
		{
			name:    "top level array",
			body:    `[1, 2, 3]`,
			wantErr: ErrNoVideos,
		},
		{
			name:    "items key is case sensitive",
			body:    `{"ITEMS": [{"snippet": {"title": "A", "resourceId": {"videoId": "a"}}}]}`,
			wantErr: ErrNoVideos,
		},
		{
			name: "nested keys are case sensitive",
			body: `{"items": [
				{"Snippet": {"title": "A", "resourceId": {"videoId": "a"}}},
				{"snippet": {"TITLE": "B", "resourceId": {"videoId": "b"}}},
				{"snippet": {"title": "C", "ResourceId": {"videoId": "c"}}},
				{"snippet": {"title": "D", "resourceId": {"VIDEOID": "d"}}},
				{"snippet": {"title": "E", "resourceId": {"videoId": "e"}}}
			]}`,
			want: []models.Video{{VideoID: "e", Title: "E"}},
		},
		{
			name: "differently cased sibling keys are ignored",
			body: `{"items": [
				{"snippet": {"title": "A", "Title": 5, "resourceId": {"videoId": "a", "VideoId": false}}}
			], "Items": 7}`,
			want: []models.Video{{VideoID: "a", Title: "A"}},
		},
		{
			name:    "invalid utf-8 in a string",
			body:    "{\"items\": [{\"snippet\": {\"title\": \"A\xff\", \"resourceId\": {\"videoId\": \"a\"}}}]}",
			wantErr: ErrParseFailed,
		},
		{
			name:    "invalid json",
			body:    `{"items": [`,
			wantErr: ErrParseFailed,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: ErrParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVideos([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
