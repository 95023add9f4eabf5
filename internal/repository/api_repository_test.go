package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio_cms/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIRepository_ListGalleries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/galleries", r.URL.Path)
		w.Write([]byte(`{"intro":[{"title":"A","video":"v.mp4"}]}`))
	}))
	defer srv.Close()

	repo := NewAPIRepository(nil, srv.URL, "")

	galleries, err := repo.ListGalleries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.Galleries{
		"intro": {{Title: "A", Video: "v.mp4"}},
	}, galleries)
}

func TestAPIRepository_ListGalleriesFallsBackToSnapshot(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer api.Close()

	snapshot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/galleries.json", r.URL.Path)
		w.Write([]byte(`{"archive":[]}`))
	}))
	defer snapshot.Close()

	repo := NewAPIRepository(nil, api.URL, snapshot.URL)

	galleries, err := repo.ListGalleries(context.Background())
	require.NoError(t, err)

	assert.Contains(t, galleries, "archive")
}

func TestAPIRepository_SaveGalleries(t *testing.T) {
	var gotPath, gotToken string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	repo := NewAPIRepository(nil, srv.URL, "")
	galleries := models.Galleries{"intro": {{Title: "A"}}}

	err := repo.SaveGalleries(context.Background(), "s3cret", galleries)
	require.NoError(t, err)

	assert.Equal(t, "/api/galleries", gotPath)
	assert.Equal(t, "s3cret", gotToken)

	var sent models.Galleries
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, galleries, sent)
}

func TestAPIRepository_SaveRejectedTokenMapsToErrInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	repo := NewAPIRepository(nil, srv.URL, "")

	err := repo.SaveSiteConfig(context.Background(), "wrong", models.SiteConfig{Bio: "x"})

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAPIRepository_SaveServerFailureIsNotTokenError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := NewAPIRepository(nil, srv.URL, "")

	err := repo.SaveGalleries(context.Background(), "valid", models.Galleries{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestAPIRepository_ShaderRoundTripCalls(t *testing.T) {
	var gotMethod, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/mobileShader", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte("void main() {}"))
		case http.MethodPut:
			gotMethod = r.Method
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
		}
	}))
	defer srv.Close()

	repo := NewAPIRepository(nil, srv.URL, "")

	src, err := repo.GetShader(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", src)

	require.NoError(t, repo.SaveShader(context.Background(), "s3cret", "void main() { discard; }"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "void main() { discard; }", gotBody)
}
