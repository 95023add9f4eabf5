package http_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	httpapp "portfolio_cms/internal/app/http"
	"portfolio_cms/internal/storage/docstore"
	filestorage "portfolio_cms/internal/storage/filestorage"
	httprouters "portfolio_cms/internal/transport/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "s3cret"

type testEnv struct {
	server     *httptest.Server
	docsDir    string
	uploadsDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	docsDir := t.TempDir()
	uploadsDir := t.TempDir()

	documents, err := docstore.New(docsDir)
	require.NoError(t, err)

	fileStorage, err := filestorage.NewLocalFileStorage(uploadsDir, "/uploads")
	require.NoError(t, err)

	routers := httprouters.NewRouter(log, documents, fileStorage, 1<<20)

	server := httpapp.New(log, testToken, "", "0", routers)
	server.BuildRouters()

	srv := httptest.NewServer(server.Echo())
	t.Cleanup(srv.Close)

	return &testEnv{
		server:     srv,
		docsDir:    docsDir,
		uploadsDir: uploadsDir,
	}
}

func (e *testEnv) get(t *testing.T, path string) (int, string) {
	t.Helper()

	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func (e *testEnv) send(t *testing.T, method, path, contentType, body string) int {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode
}

func TestGalleries_SaveThenListRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	doc := `{"intro":[{"title":"A","video":"v.mp4"}]}`

	code := env.send(t, http.MethodPost, "/api/galleries?token="+testToken, "application/json", doc)
	require.Equal(t, http.StatusOK, code)

	code, body := env.get(t, "/api/galleries")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, doc, body, "the document must come back exactly as posted")
}

func TestGalleries_EmptyBeforeFirstSave(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.get(t, "/api/galleries")

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{}`, body)
}

func TestGalleries_SaveWithWrongTokenLeavesDocumentUntouched(t *testing.T) {
	env := newTestEnv(t)

	original := `{"intro":[{"title":"A"}]}`
	require.Equal(t, http.StatusOK,
		env.send(t, http.MethodPost, "/api/galleries?token="+testToken, "application/json", original))

	code := env.send(t, http.MethodPost, "/api/galleries?token=wrong", "application/json", `{"intro":[]}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, body := env.get(t, "/api/galleries")
	assert.Equal(t, original, body, "a denied write must leave the document byte-for-byte unchanged")
}

func TestGalleries_SaveMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	code := env.send(t, http.MethodPost, "/api/galleries?token="+testToken, "application/json", `{"intro": "not a list"}`)

	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGalleries_SaveRejectsOversizedBody(t *testing.T) {
	env := newTestEnv(t)

	original := `{"intro":[{"title":"A"}]}`
	require.Equal(t, http.StatusOK,
		env.send(t, http.MethodPost, "/api/galleries?token="+testToken, "application/json", original))

	huge := `{"intro":[{"title":"` + strings.Repeat("a", 3<<20) + `"}]}`
	code := env.send(t, http.MethodPost, "/api/galleries?token="+testToken, "application/json", huge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)

	_, body := env.get(t, "/api/galleries")
	assert.Equal(t, original, body)
}

func TestSite_SaveWithWrongTokenIsDeniedAndUnchanged(t *testing.T) {
	env := newTestEnv(t)

	original := `{"bio":"hello","sections":[{"key":"work"}]}`
	require.Equal(t, http.StatusOK,
		env.send(t, http.MethodPost, "/api/site?token="+testToken, "application/json", original))

	code := env.send(t, http.MethodPost, "/api/site?token=WRONG", "application/json", `{"bio":"hacked"}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	_, body := env.get(t, "/api/site")
	assert.Equal(t, original, body)
}

func TestSite_SaveRejectsUnknownSectionStatus(t *testing.T) {
	env := newTestEnv(t)

	code := env.send(t, http.MethodPost, "/api/site?token="+testToken, "application/json",
		`{"sections":[{"key":"work","status":"maybe"}]}`)

	assert.Equal(t, http.StatusBadRequest, code)
}

func uploadRequest(t *testing.T, url, fieldName string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(fieldName, "photo.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func TestUpload_StoresFileAndReturnsPath(t *testing.T) {
	env := newTestEnv(t)

	req := uploadRequest(t, env.server.URL+"/api/upload?token="+testToken, "file", pngHeader)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"path":"/uploads/images/`)
}

func TestUpload_MissingFileField(t *testing.T) {
	env := newTestEnv(t)

	req := uploadRequest(t, env.server.URL+"/api/upload?token="+testToken, "attachment", pngHeader)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpload_UnauthorizedUploadNeverTouchesDisk(t *testing.T) {
	env := newTestEnv(t)

	req := uploadRequest(t, env.server.URL+"/api/upload?token=wrong", "file", pngHeader)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var stored []string
	err = filepath.Walk(env.uploadsDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			stored = append(stored, path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, stored, "a denied upload must not leave files behind")
}

func TestShader_PutThenGet(t *testing.T) {
	env := newTestEnv(t)

	src := "void main() { gl_FragColor = vec4(1.0); }"

	code := env.send(t, http.MethodPut, "/api/mobileShader?token="+testToken, "text/plain", src)
	require.Equal(t, http.StatusOK, code)

	code, body := env.get(t, "/api/mobileShader")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, src, body)
}

func TestShader_PutEmptyBody(t *testing.T) {
	env := newTestEnv(t)

	code := env.send(t, http.MethodPut, "/api/mobileShader?token="+testToken, "text/plain", "")

	assert.Equal(t, http.StatusBadRequest, code)
}

func TestShader_PutWithWrongToken(t *testing.T) {
	env := newTestEnv(t)

	code := env.send(t, http.MethodPut, "/api/mobileShader?token=nope", "text/plain", "void main() {}")

	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.get(t, "/health")

	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}
