package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"easybooking/internal/config"
	"easybooking/internal/media"
	"easybooking/internal/middlewares"
	"easybooking/internal/models"
	"easybooking/internal/services"
)

// mockDBService keeps the router testable without a running MongoDB.
type mockDBService struct{}

func (m *mockDBService) Collection(context.Context, string) (*mongo.Collection, error) {
	return nil, fmt.Errorf("no database in router tests")
}
func (m *mockDBService) Health() map[string]string {
	return map[string]string{"message": "Mock DB is healthy"}
}
func (m *mockDBService) Disconnect(context.Context) error { return nil }

type memoryRepo struct {
	mu    sync.Mutex
	items []models.TrendingItem
}

func (r *memoryRepo) Create(_ context.Context, item *models.TrendingItem) (*models.TrendingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == item.Name {
			return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		}
	}
	r.items = append(r.items, *item)
	return item, nil
}

func (r *memoryRepo) FindAll(_ context.Context) ([]models.TrendingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.TrendingItem{}, r.items...), nil
}

func (r *memoryRepo) DeleteByName(_ context.Context, name string) (*models.TrendingItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.Name == name {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return &item, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, localPath, _, folder string) (string, error) {
	return "https://cdn.example/" + folder + "/" + filepath.Base(localPath), nil
}

func newTestServer(t *testing.T, rateLimitMax int) (*Server, http.Handler) {
	t.Helper()

	cfg := &config.Config{
		MongoURI:        "mongodb://unused",
		DBName:          "travelling",
		JWTSecret:       "routes-test-secret",
		TokenTTL:        time.Hour,
		AdminEmail:      "admin@ceejeey.me",
		AdminPassword:   "correct horse",
		AllowedOrigins:  []string{"https://ceejeey.me"},
		RateLimitWindow: 15 * time.Minute,
		RateLimitMax:    rateLimitMax,
		RequestTimeout:  8 * time.Second,
		MaxUploadBytes:  10 << 20,
		UploadDir:       t.TempDir(),
	}

	s := &Server{
		cfg:             cfg,
		db:              &mockDBService{},
		authService:     services.NewAuthService(cfg),
		trendingService: services.NewTrendingService(&memoryRepo{}, media.NewPipeline(cfg.UploadDir, stubUploader{})),
		limiter:         middlewares.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow),
	}
	return s, s.RegisterRoutes()
}

func doJSON(h http.Handler, method, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(h, http.MethodPost, "/api/admin/login", map[string]string{
		"email":    "admin@ceejeey.me",
		"password": "correct horse",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func addKandyRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	wr := multipart.NewWriter(body)
	require.NoError(t, wr.WriteField("name", "Kandy"))
	require.NoError(t, wr.WriteField("subname", "Hill Capital"))
	require.NoError(t, wr.WriteField("description", "Temple of the Tooth and misty hills"))
	require.NoError(t, wr.WriteField("availableThings", "Hiking, Tea tours"))
	fw, err := wr.CreateFormFile("image", "kandy.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, wr.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/trending/add", body)
	req.Header.Set("Content-Type", wr.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRootAndHealthEndpoints(t *testing.T) {
	_, h := newTestServer(t, 100)

	rec := doJSON(h, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Easy Booking Backend API")

	rec = doJSON(h, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mock DB is healthy")
}

func TestLoginRejectsBadCredentialsGenerically(t *testing.T) {
	_, h := newTestServer(t, 100)

	badEmail := doJSON(h, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "x@y.z", "password": "correct horse"}, nil)
	badPassword := doJSON(h, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "admin@ceejeey.me", "password": "nope"}, nil)

	assert.Equal(t, http.StatusUnauthorized, badEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, badPassword.Code)
	assert.Equal(t, badEmail.Body.String(), badPassword.Body.String())

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(badEmail.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
}

func TestLoginRejectsMalformedJSON(t *testing.T) {
	_, h := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON")
}

func TestTrendingLifecycleEndToEnd(t *testing.T) {
	_, h := newTestServer(t, 100)
	token := loginToken(t, h)

	// mutating endpoints refuse anonymous callers
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, addKandyRequest(t, ""))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// add Kandy
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, addKandyRequest(t, token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// list now contains exactly one Kandy with its assigned image URL
	list := doJSON(h, http.MethodGet, "/api/trending/trenddata", nil, nil)
	require.Equal(t, http.StatusOK, list.Code)
	var items []models.TrendingItem
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Kandy", items[0].Name)
	assert.True(t, strings.HasPrefix(items[0].Image, "https://cdn.example/trending/images/"))

	// duplicate add conflicts
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, addKandyRequest(t, token))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// delete, then delete again
	del := doJSON(h, http.MethodDelete, "/api/trending/delete/Kandy", nil,
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, del.Code)

	again := doJSON(h, http.MethodDelete, "/api/trending/delete/Kandy", nil,
		map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusNotFound, again.Code)

	list = doJSON(h, http.MethodGet, "/api/trending/trenddata", nil, nil)
	var remaining []models.TrendingItem
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &remaining))
	assert.Empty(t, remaining)
}

func TestAddTrendingRequiresPrimaryImage(t *testing.T) {
	_, h := newTestServer(t, 100)
	token := loginToken(t, h)

	body := &bytes.Buffer{}
	wr := multipart.NewWriter(body)
	require.NoError(t, wr.WriteField("name", "Kandy"))
	require.NoError(t, wr.WriteField("subname", "Hill Capital"))
	require.NoError(t, wr.WriteField("description", "No image attached"))
	require.NoError(t, wr.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/trending/add", body)
	req.Header.Set("Content-Type", wr.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image")
}

func TestAPIRateLimitKicksInAtThreshold(t *testing.T) {
	_, h := newTestServer(t, 100)

	for i := 0; i < 100; i++ {
		rec := doJSON(h, http.MethodGet, "/api/trending/trenddata", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := doJSON(h, http.MethodGet, "/api/trending/trenddata", nil, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// the root path keeps answering
	rec = doJSON(h, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCorsRejectionHappensBeforeHandlers(t *testing.T) {
	_, h := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/api/trending/trenddata", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	_, h := newTestServer(t, 100)

	rec := doJSON(h, http.MethodGet, "/api/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Requested resource not found")
}
