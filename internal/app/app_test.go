package app

import (
	"bytes"
	"encoding/json"
	"feelio_backend/internal/config"
	"feelio_backend/internal/model"
	"feelio_backend/pkg/database"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server:     config.ServerConfig{Port: "0", Mode: "test"},
		Database:   config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"},
		Storage:    config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
		Classifier: config.ClassifierConfig{Threshold: 0.5},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		RateLimit:  config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	app, err := Build(testConfig(t), db, nil)
	require.NoError(t, err)
	return app
}

func doJSON(t *testing.T, app *App, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestBuild_SeedsBadgeCatalog(t *testing.T) {
	app := newTestApp(t)

	var count int64
	require.NoError(t, app.DB.Model(&model.Badge{}).Count(&count).Error)
	assert.EqualValues(t, 12, count)
}

func TestHealthAndRequestID(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestLearnerFlow(t *testing.T) {
	app := newTestApp(t)

	// 注册陪伴者与孩子
	w := doJSON(t, app, http.MethodPost, "/api/signup", map[string]interface{}{
		"name": "Ibu Sari", "email": "sari@example.com", "password": "rahasia123", "segment": 2, "role": "pendamping",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var guardian struct {
		ID uint `json:"id"`
	}
	decode(t, w, &guardian)

	w = doJSON(t, app, http.MethodPost, "/api/signup", map[string]interface{}{
		"name": "Dimas", "email": "dimas@example.com", "password": "dimas123", "segment": 1, "parent_id": guardian.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var kid struct {
		ID uint `json:"id"`
	}
	decode(t, w, &kid)

	w = doJSON(t, app, http.MethodPost, "/api/signup", map[string]interface{}{
		"name": "Dup", "email": "dimas@example.com", "password": "dimas123", "segment": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, app, http.MethodPost, "/api/login", map[string]string{"email": "dimas@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, app, http.MethodGet, "/api/pendamping/"+itoa(guardian.ID)+"/children", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var children []map[string]interface{}
	decode(t, w, &children)
	assert.Len(t, children, 1)

	// 故事
	w = doJSON(t, app, http.MethodPost, "/api/narratives", map[string]interface{}{
		"id": "S1N01", "title": "Sepeda Baru", "content": "Rina mendapat sepeda baru.", "emotion_labels": []string{"Happy"}, "segment": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, app, http.MethodGet, "/api/narratives", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errBody map[string]string
	decode(t, w, &errBody)
	assert.Equal(t, "Missing 'segment' parameter", errBody["error"])

	w = doJSON(t, app, http.MethodGet, "/api/narratives?segment=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var narratives []map[string]interface{}
	decode(t, w, &narratives)
	require.Len(t, narratives, 1)
	assert.Equal(t, []interface{}{"happy"}, narratives[0]["expectedEmotions"])

	// 作答
	w = doJSON(t, app, http.MethodPost, "/api/responses", map[string]interface{}{
		"user_id": kid.ID, "narrative_id": "S1N01", "user_answer": "senang", "predicted_emotion": []string{"happy"}, "is_correct": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved struct {
		ID      uint   `json:"id"`
		Message string `json:"message"`
	}
	decode(t, w, &saved)
	assert.NotZero(t, saved.ID)

	userPath := "/api/user/" + itoa(kid.ID)
	w = doJSON(t, app, http.MethodGet, userPath+"/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary map[string]int
	decode(t, w, &summary)
	assert.Equal(t, 35, summary["total_score"])
	assert.Equal(t, 1, summary["total_responses"])

	w = doJSON(t, app, http.MethodGet, userPath+"/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var achievements []map[string]interface{}
	decode(t, w, &achievements)
	assert.Len(t, achievements, 2)

	w = doJSON(t, app, http.MethodGet, userPath+"/upcoming-badges", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var upcoming []map[string]interface{}
	decode(t, w, &upcoming)
	assert.Len(t, upcoming, 10)

	// 改判：已经正确时为空操作
	responsePath := "/api/responses/" + itoa(saved.ID)
	w = doJSON(t, app, http.MethodPatch, responsePath+"/override-correct", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, app, http.MethodPatch, responsePath+"/override-incorrect", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, app, http.MethodPatch, "/api/responses/9999/override-incorrect", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, app, http.MethodGet, userPath+"/summary", nil)
	decode(t, w, &summary)
	assert.Equal(t, 25, summary["total_score"])

	w = doJSON(t, app, http.MethodPatch, responsePath+"/add_followup", map[string]string{"feedback": "Coba lagi ya!"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, app, http.MethodPost, responsePath+"/flag", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, app, http.MethodPatch, responsePath+"/mark-repeatable", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, app, http.MethodPost, "/api/responses/flag-latest", map[string]interface{}{"user_id": kid.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(t, app, http.MethodPost, "/api/responses/flag-latest", map[string]interface{}{"user_id": kid.ID, "narrative_id": "S1N01"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, app, http.MethodGet, userPath+"/responses?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var responses []map[string]interface{}
	decode(t, w, &responses)
	require.Len(t, responses, 1)
	assert.Equal(t, "Coba lagi ya!", responses[0]["feedback"])
	assert.Equal(t, true, responses[0]["flagged"])
	assert.Equal(t, true, responses[0]["repeatable"])
	assert.Equal(t, false, responses[0]["is_correct"])

	w = doJSON(t, app, http.MethodGet, userPath+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	decode(t, w, &stats)
	assert.EqualValues(t, 25, stats["total_score"])

	w = doJSON(t, app, http.MethodPost, userPath+"/verify-password", map[string]string{"password": "dimas123"})
	require.Equal(t, http.StatusOK, w.Code)
	var verify map[string]bool
	decode(t, w, &verify)
	assert.True(t, verify["valid"])
}

func TestSaveResponse_UnknownUserIsServerError(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodPost, "/api/responses", map[string]interface{}{
		"user_id": 404, "narrative_id": "S1N01", "is_correct": true,
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.NotEmpty(t, body["error"])
}

func TestExternalModelsDisabled(t *testing.T) {
	app := newTestApp(t)

	w := doJSON(t, app, http.MethodPost, "/api/predict", map[string]string{"text": "aku senang"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// 10-12 岁组不追问时直接返回 null，不需要模型
	w = doJSON(t, app, http.MethodPost, "/api/gpt-feedback", map[string]interface{}{"segment": "10-12", "answer": "marah"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"feedback":null}`, w.Body.String())
}

func TestUploadNarrativeImage(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.DB.Create(&model.Narrative{
		ID: "S2N01", Title: "Hujan", Content: "Hari hujan.", EmotionLabels: []string{"sad"}, Segment: model.SegmentOlder,
	}).Error)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="hujan.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	part.Write([]byte("\x89PNG fake"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/narratives/S2N01/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]string
	decode(t, w, &body)
	assert.Regexp(t, `^/uploads/narratives/S2N01/[0-9a-f-]+\.png$`, body["image_path"])

	w = doJSON(t, app, http.MethodGet, "/api/narratives/S2N01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var narrative map[string]interface{}
	decode(t, w, &narrative)
	assert.Equal(t, body["image_path"], narrative["image_path"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
