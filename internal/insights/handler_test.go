package insights

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/logger"
	"huddle/internal/store"
	"huddle/pkg/models"
)

func setupRouter(window *store.Window) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(newTestService(window), logger.NopLogger()).RegisterRoutes(router)
	return router
}

func getJSON(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandler_GetInsights(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "urgent: deploy is broken", TS: recentTS(0)})
	router := setupRouter(window)

	w, body := getJSON(t, router, "/api/v1/insights")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "problems")
	assert.Contains(t, body, "questions")
	assert.Contains(t, body, "trending")
}

func TestHandler_GetStats(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "hello world", TS: recentTS(0)})
	router := setupRouter(window)

	w, body := getJSON(t, router, "/api/v1/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total_messages"])
}

func TestHandler_GetMessages(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{ID: "a", Author: "U1", Body: "hello", TS: recentTS(-time.Minute)})
	window.Add(models.Message{ID: "b", Author: "U2", Body: "world", TS: recentTS(0)})
	router := setupRouter(window)

	w, body := getJSON(t, router, "/api/v1/messages?limit=1")

	assert.Equal(t, http.StatusOK, w.Code)
	msgs, ok := body["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, msgs, 1)
}

func TestHandler_GetMessages_BadQuery(t *testing.T) {
	router := setupRouter(store.NewWindow(10))

	w, _ := getJSON(t, router, "/api/v1/messages?limit=abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Search(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "deploy failed again", TS: recentTS(0)})
	router := setupRouter(window)

	payload, err := json.Marshal(SearchRequest{Query: "deploy"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	results, ok := body["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 1)
}

func TestHandler_Search_MissingQuery(t *testing.T) {
	router := setupRouter(store.NewWindow(10))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetUrgent(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "critical error, blocking the release", TS: recentTS(0)})
	window.Add(models.Message{Author: "U2", Body: "all good here", TS: recentTS(0)})
	router := setupRouter(window)

	w, body := getJSON(t, router, "/api/v1/urgent")

	assert.Equal(t, http.StatusOK, w.Code)
	urgent, ok := body["urgent"].([]interface{})
	require.True(t, ok)
	assert.Len(t, urgent, 1)
}

func TestHandler_GetMood(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "release went great 🎉", TS: recentTS(0)})
	router := setupRouter(window)

	w, body := getJSON(t, router, "/api/v1/mood")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "😃 Happy", body["mood"])
}

func TestHandler_GetTimeline(t *testing.T) {
	window := store.NewWindow(10)
	window.Add(models.Message{Author: "U1", Body: "database error", TS: recentTS(0)})
	router := setupRouter(window)

	w, body := getJSON(t, router, "/api/v1/timeline?minutes=5")

	assert.Equal(t, http.StatusOK, w.Code)
	timeline, ok := body["timeline"].([]interface{})
	require.True(t, ok)
	assert.Len(t, timeline, 1)
}
