package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/config"
	"github.com/podhost/podhost-backend/routes"
	"github.com/podhost/podhost-backend/services"
)

// fakeUploader stands in for MinIO; it returns the URL the real uploader
// would build without touching a network.
type fakeUploader struct{}

func (fakeUploader) Upload(_ context.Context, _ io.Reader, _ int64, _ string, key string) (string, error) {
	return services.PublicMediaURL("https://media.test", "podhost-media", key), nil
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	mr     *miniredis.Miniredis
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	sessions := services.NewSessionStore(rdb, services.SessionTTL)
	comments := services.NewCommentStore(rdb)

	router := routes.SetupRouter(gin.New(), db, rdb, sessions, comments, fakeUploader{})
	return &testEnv{router: router, db: db, mr: mr}
}

// doJSON sends a JSON request; token is optional.
func (e *testEnv) doJSON(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// doForm sends a urlencoded form, matching what the create/edit pages post.
func (e *testEnv) doForm(t *testing.T, method, path string, fields map[string]string, token string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	for k, v := range fields {
		form.Set(k, v)
	}
	req := httptest.NewRequest(method, path, bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// doMultipart sends a multipart form with one file attached under fileField.
func (e *testEnv) doMultipart(t *testing.T, path string, fields map[string]string, fileField, fileName string, fileBody []byte, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = fw.Write(fileBody)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user through the HTTP surface.
func (e *testEnv) register(t *testing.T, username, email, password, role string) {
	t.Helper()
	rec := e.doJSON(t, http.MethodPost, "/Users/Register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

// login returns the session token for the credentials.
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := e.doJSON(t, http.MethodPost, "/Users/Login", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
