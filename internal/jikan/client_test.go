package jikan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinytelemetry/aetheris/internal/model"
	"go.uber.org/goleak"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// expirable.LRU starts a janitor goroutine that has no way to stop.
		goleak.IgnoreAnyFunction("github.com/hashicorp/golang-lru/v2/expirable.NewLRU[...].func1"),
	)
}

// fakeJikan is an in-memory Jikan upstream. Handlers can be overridden per
// route before the first request.
type fakeJikan struct {
	mu      sync.Mutex
	hits    map[string]int
	queries map[string]string
	headers http.Header

	router *gin.Engine
	srv    *httptest.Server
}

func newFakeJikan(t *testing.T) *fakeJikan {
	t.Helper()
	f := &fakeJikan{
		hits:    make(map[string]int),
		queries: make(map[string]string),
		router:  gin.New(),
	}
	f.router.Use(func(c *gin.Context) {
		f.mu.Lock()
		f.hits[c.Request.URL.Path]++
		f.queries[c.Request.URL.Path] = c.Request.URL.RawQuery
		f.headers = c.Request.Header.Clone()
		f.mu.Unlock()
		c.Next()
	})
	f.srv = httptest.NewServer(f.router)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeJikan) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeJikan) rawQuery(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func (f *fakeJikan) lastHeaders() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers
}

func (f *fakeJikan) client(t *testing.T, cacheSize int) *Client {
	t.Helper()
	return NewClient(Options{
		BaseURL:    f.srv.URL + "/v4",
		RateLimit:  1000,
		Burst:      100,
		CacheSize:  cacheSize,
		CacheTTL:   time.Minute,
		UserAgent:  "aetheris-test",
		HTTPClient: f.srv.Client(),
	})
}

func data(v any) gin.H { return gin.H{"data": v} }

func jikanError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"status": status, "type": "BadResponseException", "message": msg})
}

func TestSeasonNow(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/seasons/now", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pagination": gin.H{"last_visible_page": 3, "has_next_page": true, "current_page": 2},
			"data": []gin.H{
				{"mal_id": 1, "title": "One", "score": 8.1},
				{"mal_id": 2, "title": "Two", "title_english": "Second"},
			},
		})
	})

	page, err := f.client(t, 0).SeasonNow(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Items[0].MalID)
	assert.Equal(t, "Second", page.Items[1].DisplayTitle())
	assert.True(t, page.Pagination.HasNextPage)
	assert.Equal(t, 3, page.Pagination.LastVisiblePage)
	assert.Equal(t, "page=2", f.rawQuery("/v4/seasons/now"))

	h := f.lastHeaders()
	assert.Equal(t, "aetheris-test", h.Get("User-Agent"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	_, err = uuid.Parse(h.Get("X-Request-ID"))
	assert.NoError(t, err, "X-Request-ID should be a uuid")
}

func TestTopAnimeQuery(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/top/anime", func(c *gin.Context) {
		c.JSON(http.StatusOK, data([]gin.H{}))
	})
	cl := f.client(t, 0)

	_, err := cl.TopAnime(context.Background(), model.TopQuery{Filter: "airing", Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "filter=airing&page=1", f.rawQuery("/v4/top/anime"))

	_, err = cl.TopAnime(context.Background(), model.TopQuery{Type: "movie", Page: 4})
	require.NoError(t, err)
	assert.Equal(t, "page=4&type=movie", f.rawQuery("/v4/top/anime"))
}

func TestSearchAnime(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/anime", func(c *gin.Context) {
		c.JSON(http.StatusOK, data([]gin.H{{"mal_id": 5114, "title": c.Query("q")}}))
	})
	cl := f.client(t, 0)

	page, err := cl.SearchAnime(context.Background(), "  fullmetal ", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "fullmetal", page.Items[0].Title)

	page, err = cl.SearchAnime(context.Background(), "   ", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, f.hitCount("/v4/anime"), "blank query must not reach the upstream")
}

func TestErrorMapping(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/anime/:id/full", func(c *gin.Context) {
		switch c.Param("id") {
		case "404":
			jikanError(c, http.StatusNotFound, "Resource does not exist")
		case "429":
			jikanError(c, http.StatusTooManyRequests, "You are being rate limited")
		case "503":
			c.String(http.StatusServiceUnavailable, "<html>down</html>")
		default:
			jikanError(c, http.StatusBadRequest, "Invalid id")
		}
	})
	cl := f.client(t, 16)
	ctx := context.Background()

	_, err := cl.AnimeFull(ctx, 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Resource does not exist", apiErr.Message)
	assert.Equal(t, "/anime/404/full", apiErr.Path)

	_, err = cl.AnimeFull(ctx, 429)
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = cl.AnimeFull(ctx, 503)
	assert.ErrorIs(t, err, ErrUpstream)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)

	_, err = cl.AnimeFull(ctx, 400)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.False(t, errors.Is(err, ErrNotFound) || errors.Is(err, ErrUpstream) || errors.Is(err, ErrRateLimited))

	// Errors are never cached.
	_, _ = cl.AnimeFull(ctx, 404)
	assert.Equal(t, 2, f.hitCount("/v4/anime/404/full"))
}

func TestCache(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/people/:id/full", func(c *gin.Context) {
		c.JSON(http.StatusOK, data(gin.H{"mal_id": 118, "name": "Hanazawa, Kana"}))
	})
	ctx := context.Background()

	cached := f.client(t, 8)
	for range 3 {
		p, err := cached.PersonFull(ctx, 118)
		require.NoError(t, err)
		assert.Equal(t, "Hanazawa, Kana", p.Name)
	}
	assert.Equal(t, 1, f.hitCount("/v4/people/118/full"))

	uncached := f.client(t, 0)
	_, err := uncached.PersonFull(ctx, 118)
	require.NoError(t, err)
	assert.Equal(t, 2, f.hitCount("/v4/people/118/full"))
}

func TestCanceledContext(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/seasons/upcoming", func(c *gin.Context) {
		c.JSON(http.StatusOK, data([]gin.H{}))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.client(t, 0).SeasonUpcoming(ctx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.hitCount("/v4/seasons/upcoming"))
}

func TestAnimeDetail(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/anime/:id/full", func(c *gin.Context) {
		c.JSON(http.StatusOK, data(gin.H{"mal_id": 21, "title": "One Piece", "episodes": 0}))
	})
	f.router.GET("/v4/anime/:id/characters", func(c *gin.Context) {
		if c.Param("id") == "22" {
			jikanError(c, http.StatusNotFound, "Resource does not exist")
			return
		}
		c.JSON(http.StatusOK, data([]gin.H{{
			"role":      "Main",
			"character": gin.H{"mal_id": 40, "name": "Monkey D., Luffy"},
			"voice_actors": []gin.H{
				{"language": "Japanese", "person": gin.H{"mal_id": 21, "name": "Tanaka, Mayumi"}},
			},
		}}))
	})
	f.router.GET("/v4/anime/:id/episodes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pagination": gin.H{"has_next_page": true},
			"data":       []gin.H{{"mal_id": 1, "title": "I'm Luffy!", "filler": false}, {"mal_id": 2, "recap": true}},
		})
	})
	f.router.GET("/v4/anime/:id/statistics", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})
	cl := f.client(t, 0)

	d, err := cl.AnimeDetail(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, "One Piece", d.Anime.Title)
	require.Len(t, d.Characters, 1)
	va, ok := d.Characters[0].LeadVoiceActor()
	require.True(t, ok)
	assert.Equal(t, "Tanaka, Mayumi", va.Person.Name)
	assert.Len(t, d.Episodes, 2)
	assert.True(t, d.Episodes[1].Recap)
	assert.Nil(t, d.Statistics, "statistics are best-effort")

	_, err = cl.AnimeDetail(context.Background(), 22)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCharacterAndPersonDetail(t *testing.T) {
	f := newFakeJikan(t)
	f.router.GET("/v4/characters/:id/full", func(c *gin.Context) {
		c.JSON(http.StatusOK, data(gin.H{"mal_id": 417, "name": "Lelouch Lamperouge", "favorites": 170000}))
	})
	f.router.GET("/v4/characters/:id/anime", func(c *gin.Context) {
		c.JSON(http.StatusOK, data([]gin.H{{"role": "Main", "anime": gin.H{"mal_id": 1575, "title": "Code Geass"}}}))
	})
	f.router.GET("/v4/characters/:id/voices", func(c *gin.Context) {
		c.JSON(http.StatusOK, data([]gin.H{
			{"language": "Japanese", "person": gin.H{"mal_id": 1, "name": "Fukuyama, Jun"}},
			{"language": "English", "person": gin.H{"mal_id": 2, "name": "Green, Johnny Yong"}},
		}))
	})
	f.router.GET("/v4/people/:id/full", func(c *gin.Context) {
		c.JSON(http.StatusOK, data(gin.H{"mal_id": 1, "name": "Fukuyama, Jun"}))
	})
	f.router.GET("/v4/people/:id/voices", func(c *gin.Context) {
		c.JSON(http.StatusOK, data([]gin.H{{
			"role":      "Main",
			"anime":     gin.H{"mal_id": 1575, "title": "Code Geass"},
			"character": gin.H{"mal_id": 417, "name": "Lelouch Lamperouge"},
		}}))
	})
	cl := f.client(t, 0)

	cd, err := cl.CharacterDetail(context.Background(), 417)
	require.NoError(t, err)
	assert.Equal(t, "Lelouch Lamperouge", cd.Character.Name)
	require.Len(t, cd.Anime, 1)
	assert.Equal(t, "Code Geass", cd.Anime[0].Anime.Title)
	gotLangs := []string{cd.Voices[0].Language, cd.Voices[1].Language}
	if diff := cmp.Diff([]string{"Japanese", "English"}, gotLangs); diff != "" {
		t.Errorf("voice languages (-want +got):\n%s", diff)
	}

	pd, err := cl.PersonDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Fukuyama, Jun", pd.Person.Name)
	require.Len(t, pd.Roles, 1)
	assert.Equal(t, 417, pd.Roles[0].Character.MalID)
}
