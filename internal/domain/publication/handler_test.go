package publication

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Chekke24/challenger-premios-backend/internal/database"
	"github.com/Chekke24/challenger-premios-backend/internal/filestore"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type createResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type errorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:publication_handler_test_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	dir := t.TempDir()
	files, err := filestore.NewLocal(dir, "/uploads")
	require.NoError(t, err)

	h := NewHandler(NewService(NewRepository(db), files))
	r := gin.New()
	h.RegisterRoutes(r)

	return &testEnv{router: r, db: db, uploadDir: dir}
}

// multipartBody builds a form with fields and, when fileName is not empty, an imagen part.
func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("imagen", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func performRequest(r http.Handler, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func validFields() map[string]string {
	return map[string]string{"titulo": "A", "descripcion": "B", "categoria": "C"}
}

func (e *testEnv) create(t *testing.T, fields map[string]string) createResponse {
	t.Helper()
	body, ct := multipartBody(t, fields, "foto.png", pngBytes)
	rr := performRequest(e.router, http.MethodPost, "/publicaciones", body, ct)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp createResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func (e *testEnv) list(t *testing.T) []Publication {
	t.Helper()
	rr := performRequest(e.router, http.MethodGet, "/publicaciones", nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var items []Publication
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	return items
}

func (e *testEnv) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.uploadDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestListEmptyIsArray(t *testing.T) {
	env := setupRouter(t)

	rr := performRequest(env.router, http.MethodGet, "/publicaciones", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCreateThenList(t *testing.T) {
	env := setupRouter(t)

	resp := env.create(t, validFields())
	assert.Equal(t, msgCreated, resp.Message)
	assert.Positive(t, resp.ID)

	items := env.list(t)
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, resp.ID, got.ID)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Description)
	assert.Equal(t, "C", got.Category)
	assert.True(t, strings.HasSuffix(got.Image, ".png"), got.Image)

	data, err := os.ReadFile(filepath.Join(env.uploadDir, got.Image))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)
}

func TestCreateStoresFieldsVerbatim(t *testing.T) {
	env := setupRouter(t)
	fields := map[string]string{
		"titulo":      " Premio ",
		"descripcion": "Linea 1\nLinea 2\n",
		"categoria":   "Cine ",
	}

	resp := env.create(t, fields)

	items := env.list(t)
	require.Len(t, items, 1)
	assert.Equal(t, resp.ID, items[0].ID)
	assert.Equal(t, " Premio ", items[0].Title)
	assert.Equal(t, "Linea 1\nLinea 2\n", items[0].Description)
	assert.Equal(t, "Cine ", items[0].Category)
}

func TestCreateReturnsDistinctIDs(t *testing.T) {
	env := setupRouter(t)

	first := env.create(t, validFields())
	second := env.create(t, map[string]string{"titulo": "X", "descripcion": "Y", "categoria": "Z"})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, env.list(t), 2)
	assert.Len(t, env.storedFiles(t), 2)
}

func TestCreateMissingFieldIs400(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		file   bool
		field  string
		tag    string
	}{
		{name: "no titulo", fields: map[string]string{"descripcion": "B", "categoria": "C"}, file: true, field: "titulo", tag: "required"},
		{name: "no descripcion", fields: map[string]string{"titulo": "A", "categoria": "C"}, file: true, field: "descripcion", tag: "required"},
		{name: "no categoria", fields: map[string]string{"titulo": "A", "descripcion": "B"}, file: true, field: "categoria", tag: "required"},
		{name: "blank categoria", fields: map[string]string{"titulo": "A", "descripcion": "B", "categoria": "   "}, file: true, field: "categoria", tag: "notblank"},
		{name: "no imagen", fields: validFields(), file: false, field: "imagen", tag: "required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupRouter(t)

			fileName := ""
			if tc.file {
				fileName = "foto.png"
			}
			body, ct := multipartBody(t, tc.fields, fileName, pngBytes)
			rr := performRequest(env.router, http.MethodPost, "/publicaciones", body, ct)

			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			var resp errorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "VALIDATION_ERROR", resp.Code)
			assert.Equal(t, msgRequired, resp.Error)
			assert.Equal(t, tc.tag, resp.Details[tc.field])

			assert.Empty(t, env.list(t), "no row may be created")
			assert.Empty(t, env.storedFiles(t), "no file may be written")
		})
	}
}

func TestCreateWithoutMultipartBodyIs400(t *testing.T) {
	env := setupRouter(t)

	rr := performRequest(env.router, http.MethodPost, "/publicaciones", bytes.NewBufferString(`{"titulo":"A"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = performRequest(env.router, http.MethodPost, "/publicaciones", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Empty(t, env.list(t))
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	env := setupRouter(t)
	created := env.create(t, validFields())
	image := env.list(t)[0].Image

	rr := performRequest(env.router, http.MethodDelete, fmt.Sprintf("/publicaciones/%d", created.ID), nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, msgDeleted), rr.Body.String())

	assert.Empty(t, env.list(t))
	_, err := os.Stat(filepath.Join(env.uploadDir, image))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteSucceedsWhenFileAlreadyGone(t *testing.T) {
	env := setupRouter(t)
	created := env.create(t, validFields())
	image := env.list(t)[0].Image
	require.NoError(t, os.Remove(filepath.Join(env.uploadDir, image)))

	rr := performRequest(env.router, http.MethodDelete, fmt.Sprintf("/publicaciones/%d", created.ID), nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, env.list(t))
}

func TestDeleteUnknownIs404(t *testing.T) {
	env := setupRouter(t)
	env.create(t, validFields())

	rr := performRequest(env.router, http.MethodDelete, "/publicaciones/999999", nil, "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Len(t, env.list(t), 1, "row count unchanged")
}

func TestDeleteOverflowingIDIs404(t *testing.T) {
	env := setupRouter(t)
	env.create(t, validFields())

	rr := performRequest(env.router, http.MethodDelete, "/publicaciones/99999999999999999999", nil, "")
	require.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Len(t, env.list(t), 1)
}

func TestDeleteInvalidIDIs400(t *testing.T) {
	env := setupRouter(t)

	for _, id := range []string{"abc", "0", "-3", "-99999999999999999999"} {
		rr := performRequest(env.router, http.MethodDelete, "/publicaciones/"+id, nil, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code, id)
	}
}

func TestStorageErrorIs500(t *testing.T) {
	env := setupRouter(t)
	require.NoError(t, database.Close(env.db))

	rr := performRequest(env.router, http.MethodGet, "/publicaciones", nil, "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "STORAGE_UNAVAILABLE", resp.Code)
	assert.NotEmpty(t, resp.Error, "underlying message is surfaced")
}
