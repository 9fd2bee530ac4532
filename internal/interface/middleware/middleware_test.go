package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-lms-api/internal/domain/entity"
	"github.com/oksasatya/go-lms-api/internal/infrastructure/memory"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type authFixture struct {
	sessions *memory.SessionStore
	jwt      *helpers.JWTManager
	engine   *gin.Engine
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		sessions: memory.NewSessionStore(),
		jwt:      helpers.NewJWTManager("a", "r", "x", 5*time.Minute, time.Hour, 5*time.Minute),
		engine:   gin.New(),
	}
	f.engine.Use(RequestIDMiddleware())
	auth := Auth(f.sessions, f.jwt)
	f.engine.GET("/me", auth, func(c *gin.Context) {
		u := UserFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "gin_id": c.GetString(CtxUserIDKey)})
	})
	f.engine.GET("/admin", auth, AuthorizeRoles(entity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return f
}

func (f *authFixture) do(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: token})
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *authFixture) session(t *testing.T, u *entity.User) string {
	t.Helper()
	require.NoError(t, f.sessions.Set(context.Background(), u))
	tok, _, err := f.jwt.GenerateAccessToken(u.ID)
	require.NoError(t, err)
	return tok
}

func TestAuthAttachesSessionUser(t *testing.T) {
	f := newAuthFixture()
	tok := f.session(t, &entity.User{ID: "u1", Role: entity.RoleUser})

	w := f.do(t, "/me", tok)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["id"])
	assert.Equal(t, "u1", body["gin_id"])
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestAuthFailures(t *testing.T) {
	f := newAuthFixture()

	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", "not-a-jwt").Code)

	// valid token, no session
	tok, _, err := f.jwt.GenerateAccessToken("ghost")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", tok).Code)
}

func TestRemovingSessionRevokesToken(t *testing.T) {
	f := newAuthFixture()
	tok := f.session(t, &entity.User{ID: "u1", Role: entity.RoleUser})
	require.Equal(t, http.StatusOK, f.do(t, "/me", tok).Code)

	require.NoError(t, f.sessions.Delete(context.Background(), "u1"))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, f.do(t, "/me", tok).Code)
	}
}

func TestAuthorizeRoles(t *testing.T) {
	f := newAuthFixture()
	user := f.session(t, &entity.User{ID: "u1", Role: entity.RoleUser})
	admin := f.session(t, &entity.User{ID: "a1", Role: entity.RoleAdmin})

	w := f.do(t, "/admin", user)
	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])

	assert.Equal(t, http.StatusNoContent, f.do(t, "/admin", admin).Code)
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	id := "2b1c7c2e-7d4f-4c39-9a55-0a4f3e4f6b10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
}

func TestRealIPPrefersCloudflare(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.9", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "198.51.100.1", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP(), RateLimit(rdb, 2, time.Minute, KeyByIP(), AllowPaths("/healthz")))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.7")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit("/ping").Code)
	w := hit("/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit("/ping")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, hit("/healthz").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit("/ping").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r := gin.New()
	r.Use(RateLimit(rdb, 1, time.Minute, KeyByIP(), nil))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAllowAny(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Set("real_ip", "10.1.2.3")
	assert.True(t, AllowAny(nil, AllowPaths("/y"), AllowPrivateIP())(c))
	c.Set("real_ip", "203.0.113.1")
	assert.False(t, AllowAny(AllowPaths("/y"), AllowPrivateIP())(c))
}

func TestRequestLoggerRecordsUserAndError(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLogger(log))
	r.GET("/boom", func(c *gin.Context) {
		c.Set(CtxUserIDKey, "u1")
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "u1", line["user_id"])
	assert.Equal(t, "/boom", line["path"])
	assert.EqualValues(t, 500, line["status"])
	assert.Contains(t, line["error"], "assert.AnError")
}
