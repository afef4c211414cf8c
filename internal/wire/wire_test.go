package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-paradise/internal/data/repository/fakerepo"
	"movie-paradise/internal/dto/request"
	"movie-paradise/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status     bool            `json:"status"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination json.RawMessage `json:"pagination"`
	Errors     map[string]any  `json:"errors"`
}

type testApp struct {
	t     *testing.T
	app   *App
	store *fakerepo.Store
}

func newTestApp(t *testing.T, opts ...func(*utils.Config)) *testApp {
	t.Helper()
	store := fakerepo.New()
	config := &utils.Config{
		Auth: utils.AuthConfig{SessionTTL: time.Hour},
		HTTP: utils.HTTPConfig{
			MaxBodyBytes:     1 << 20,
			ReviewRateLimit:  3,
			ReviewRateWindow: time.Minute,
		},
		Moderation: utils.ModerationConfig{CacheTTL: time.Minute, PollInterval: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(config)
	}
	return &testApp{t: t, app: Wiring(store.Repository(), nil, config, zap.NewNop()), store: store}
}

// adminToken seeds an admin user and returns a live session token
func (a *testApp) adminToken() string {
	user := a.store.AddUser("admin@movieparadise.app", "x")
	a.store.GrantAdmin(user.ID)
	return a.store.AddSession(user.ID, time.Hour)
}

func (a *testApp) memberToken() string {
	user := a.store.AddUser("member@example.com", "x")
	return a.store.AddSession(user.ID, time.Hour)
}

func (a *testApp) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	return a.doWithHeaders(method, path, token, body, nil)
}

func (a *testApp) doWithHeaders(method, path, token string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "198.51.100.10:4000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.app.Router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestRouter_HealthAndFallbacks(t *testing.T) {
	a := newTestApp(t)

	rec, env := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Status)

	rec, env = a.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Status)

	rec, _ = a.do(http.MethodPatch, "/api/movies", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	a.store.Err = errors.New("connection refused")
	rec, _ = a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_PublicCatalog(t *testing.T) {
	a := newTestApp(t)
	rating := 8.0
	movie := a.store.AddMovie("Arrival", 2016, &rating, "Sci-Fi", "Drama")
	a.store.AddMovie("Blade Runner", 1982, nil, "Sci-Fi")

	rec, env := a.do(http.MethodGet, "/api/movies?genre=Drama&per_page=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var movies []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "Arrival", movies[0]["title"])
	assert.JSONEq(t, `{"total":1,"page":1,"per_page":5,"total_pages":1}`, string(env.Pagination))

	rec, env = a.do(http.MethodGet, "/api/movies/top-rated?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "Arrival", movies[0]["title"])

	rec, env = a.do(http.MethodGet, "/api/movies/"+movie.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "Arrival", detail["title"])
	assert.Contains(t, detail, "review_stats")

	rec, _ = a.do(http.MethodGet, "/api/movies/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/movies/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AdminRoutesRequireAdmin(t *testing.T) {
	a := newTestApp(t)
	member := a.memberToken()

	rec, _ := a.do(http.MethodGet, "/api/admin/reviews", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/admin/reviews", member, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = a.do(http.MethodPost, "/api/admin/movies", member, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// admin lookup failures deny
	admin := a.adminToken()
	a.store.AdminErr = errors.New("db down")
	rec, _ = a.do(http.MethodGet, "/api/admin/stats", admin, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ReviewModerationFlow(t *testing.T) {
	a := newTestApp(t)
	admin := a.adminToken()
	movie := a.store.AddMovie("Arrival", 2016, nil, "Sci-Fi")
	moviePath := "/api/movies/" + movie.ID.String()

	// a client-supplied approval flag is ignored
	rec, env := a.do(http.MethodPost, moviePath+"/reviews", "", map[string]any{
		"username":    "louise",
		"rating":      9,
		"comment":     "Heptapods!",
		"is_approved": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var review map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &review))
	assert.Equal(t, false, review["is_approved"])
	reviewID := review["id"].(string)

	rec, env = a.do(http.MethodGet, moviePath+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, env = a.do(http.MethodGet, "/api/admin/reviews", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-Poll-Interval"))
	var pending []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "Arrival", pending[0]["movie_title"])

	rec, env = a.do(http.MethodPut, "/api/admin/reviews/"+reviewID+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Review approved", env.Message)

	rec, env = a.do(http.MethodGet, moviePath+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var visible []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &visible))
	require.Len(t, visible, 1)
	assert.Equal(t, "louise", visible[0]["username"])

	rec, env = a.do(http.MethodGet, moviePath+"/review-stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"average_rating":9,"review_count":1}`, string(env.Data))

	rec, _ = a.do(http.MethodDelete, "/api/admin/reviews/"+reviewID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodPut, "/api/admin/reviews/"+reviewID+"/approve", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CreateReviewValidationAndRateLimit(t *testing.T) {
	a := newTestApp(t)
	movie := a.store.AddMovie("Arrival", 2016, nil, "Sci-Fi")
	path := "/api/movies/" + movie.ID.String() + "/reviews"

	rec, env := a.do(http.MethodPost, path, "", map[string]any{"username": "", "rating": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "username")
	assert.Contains(t, env.Errors, "rating")

	rec, _ = a.do(http.MethodPost, path, "", map[string]any{"username": "ian", "rating": 7})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = a.do(http.MethodPost, path, "", map[string]any{"username": "ian", "rating": 7})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = a.do(http.MethodPost, path, "", map[string]any{"username": "ian", "rating": 7})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRouter_ReviewRateLimitIgnoresForwardedFor(t *testing.T) {
	a := newTestApp(t)
	movie := a.store.AddMovie("Arrival", 2016, nil, "Sci-Fi")
	path := "/api/movies/" + movie.ID.String() + "/reviews"
	body := map[string]any{"username": "ian", "rating": 7}

	for i := 0; i < 3; i++ {
		rec, _ := a.doWithHeaders(http.MethodPost, path, "", body, map[string]string{
			"X-Forwarded-For": fmt.Sprintf("203.0.113.%d", i+1),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, _ := a.doWithHeaders(http.MethodPost, path, "", body, map[string]string{
		"X-Forwarded-For": "203.0.113.99",
		"X-Real-IP":       "203.0.113.100",
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRouter_ReviewRateLimitTrustedProxy(t *testing.T) {
	a := newTestApp(t, func(c *utils.Config) { c.HTTP.TrustProxyHeaders = true })
	movie := a.store.AddMovie("Arrival", 2016, nil, "Sci-Fi")
	path := "/api/movies/" + movie.ID.String() + "/reviews"
	body := map[string]any{"username": "ian", "rating": 7}
	first := map[string]string{"X-Forwarded-For": "203.0.113.1"}

	for i := 0; i < 3; i++ {
		rec, _ := a.doWithHeaders(http.MethodPost, path, "", body, first)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec, _ := a.doWithHeaders(http.MethodPost, path, "", body, first)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// a different client behind the same proxy has its own budget
	rec, _ = a.doWithHeaders(http.MethodPost, path, "", body, map[string]string{"X-Forwarded-For": "203.0.113.2"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_HugePageIsClamped(t *testing.T) {
	a := newTestApp(t)
	a.store.AddMovie("Arrival", 2016, nil, "Sci-Fi")

	rec, env := a.do(http.MethodGet, "/api/movies?page=922337203685477580&per_page=100", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	var meta map[string]any
	require.NoError(t, json.Unmarshal(env.Pagination, &meta))
	assert.EqualValues(t, request.MaxPage, meta["page"])
}

func TestRouter_SignedInReviewIsTagged(t *testing.T) {
	a := newTestApp(t)
	member := a.memberToken()
	movie := a.store.AddMovie("Arrival", 2016, nil, "Sci-Fi")

	rec, env := a.do(http.MethodPost, "/api/movies/"+movie.ID.String()+"/reviews", member, map[string]any{
		"username": "member",
		"rating":   6,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var review map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &review))
	assert.NotEmpty(t, review["user_id"])
}

func TestRouter_AuthFlow(t *testing.T) {
	a := newTestApp(t)

	rec, env := a.do(http.MethodPost, "/api/register", "", map[string]any{
		"email":            "fan@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(t, auth.Token)

	rec, env = a.do(http.MethodGet, "/api/profile", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "fan@example.com", profile["email"])
	assert.Equal(t, false, profile["is_admin"])

	rec, _ = a.do(http.MethodPost, "/api/logout", auth.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/profile", auth.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = a.do(http.MethodPost, "/api/login", "", map[string]any{
		"email":    "fan@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminCatalogManagement(t *testing.T) {
	a := newTestApp(t)
	admin := a.adminToken()

	rec, env := a.do(http.MethodPost, "/api/admin/movies", admin, map[string]any{
		"title":      "Dune",
		"overview":   "Spice must flow.",
		"poster_url": "https://img.example.com/dune.jpg",
		"year":       2021,
		"duration":   "2h 35m",
		"genres":     []string{"Sci-Fi, Adventure"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var movie map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &movie))
	movieID := movie["id"].(string)
	assert.Equal(t, []any{"Sci-Fi", "Adventure"}, movie["genres"])

	rec, env = a.do(http.MethodPost, "/api/admin/movies/"+movieID+"/cast", admin, map[string]any{
		"name":      "Timothee Chalamet",
		"character": "Paul Atreides",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var member map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &member))

	rec, env = a.do(http.MethodGet, "/api/movies/"+movieID+"/cast", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cast []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &cast))
	assert.Len(t, cast, 1)

	rec, env = a.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_movies":1,"pending_reviews":0,"approved_reviews":0,"total_cast":1}`, string(env.Data))

	rec, _ = a.do(http.MethodDelete, "/api/admin/cast/"+member["id"].(string), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodDelete, "/api/admin/movies/"+movieID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/movies/"+movieID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UploadWithoutStorage(t *testing.T) {
	a := newTestApp(t)
	admin := a.adminToken()

	rec, _ := a.do(http.MethodPost, "/api/admin/uploads/presign", admin, map[string]any{
		"filename":     "dune.jpg",
		"content_type": "image/jpeg",
		"kind":         "poster",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
