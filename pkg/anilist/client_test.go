package anilist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAniList creates a test server answering every POST with handler.
func mockAniList(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newTestClient(url string) *Client {
	return New(WithBaseURL(url), WithMinInterval(0))
}

func TestClient_SearchAnime(t *testing.T) {
	var gotSearch string
	srv := mockAniList(t, func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotSearch, _ = req.Variables["search"].(string)
		writeJSON(w, http.StatusOK, `{"data":{"Media":{
			"id": 16498,
			"title": {"romaji": "Shingeki no Kyojin", "english": "Attack on Titan", "native": "進撃の巨人"},
			"description": "Several hundred years ago...<br>",
			"coverImage": {"large": "https://img.example/16498.jpg"},
			"season": "SPRING", "seasonYear": 2013, "episodes": 25, "status": "FINISHED",
			"genres": ["Action", "Drama"], "averageScore": 85,
			"studios": {"nodes": [{"name": "Wit Studio"}]},
			"startDate": {"year": 2013, "month": 4, "day": 7}
		}}}`)
	})

	media, err := newTestClient(srv.URL).SearchAnime(context.Background(), "Shingeki no Kyojin")
	require.NoError(t, err)

	assert.Equal(t, "Shingeki no Kyojin", gotSearch)
	assert.Equal(t, 16498, media.ID)
	assert.Equal(t, "Attack on Titan", media.Title.English)
	assert.Equal(t, "Shingeki no Kyojin", media.Title.Romaji)
	assert.Equal(t, "https://img.example/16498.jpg", media.CoverImage.Large)
	assert.Equal(t, []string{"Action", "Drama"}, media.Genres)
	assert.Equal(t, "Wit Studio", media.MainStudio())
	assert.Equal(t, "2013-04-07", media.StartDate.String())
	assert.Equal(t, 85, media.AverageScore)
}

func TestClient_SearchAnime_NotFound(t *testing.T) {
	srv := mockAniList(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"errors":[{"message":"Not Found.","status":404}],"data":{"Media":null}}`)
	})

	_, err := newTestClient(srv.URL).SearchAnime(context.Background(), "zzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_SearchAnime_NullMedia(t *testing.T) {
	srv := mockAniList(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"Media":null}}`)
	})

	_, err := newTestClient(srv.URL).SearchAnime(context.Background(), "zzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_SearchAnime_GraphQLError(t *testing.T) {
	srv := mockAniList(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"errors":[{"message":"Internal Server Error","status":500}],"data":{"Media":null}}`)
	})

	_, err := newTestClient(srv.URL).SearchAnime(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Internal Server Error")
}

func TestClient_SearchAnime_RateLimited(t *testing.T) {
	srv := mockAniList(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := newTestClient(srv.URL).SearchAnime(context.Background(), "x")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestClient_SearchAnime_ServerError(t *testing.T) {
	calls := 0
	srv := mockAniList(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := newTestClient(srv.URL).SearchAnime(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, 1, calls, "client must not retry")
}

func TestClient_SearchAnime_Paced(t *testing.T) {
	srv := mockAniList(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":{"Media":null}}`)
	})
	client := New(WithBaseURL(srv.URL), WithMinInterval(50*time.Millisecond))

	start := time.Now()
	for range 3 {
		_, _ = client.SearchAnime(context.Background(), "x")
	}
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestFuzzyDate_String(t *testing.T) {
	tests := []struct {
		date FuzzyDate
		want string
	}{
		{FuzzyDate{}, ""},
		{FuzzyDate{Year: 2013}, "2013"},
		{FuzzyDate{Year: 2013, Month: 4}, "2013-04"},
		{FuzzyDate{Year: 2013, Month: 4, Day: 7}, "2013-04-07"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.String())
		})
	}
	assert.True(t, FuzzyDate{Year: 2013, Month: 4, Day: 7}.IsComplete())
	assert.False(t, FuzzyDate{Year: 2013}.IsComplete())
}
