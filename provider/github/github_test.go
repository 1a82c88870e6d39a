package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUserRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/octo/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, "created:asc", r.URL.Query().Get("sort"))
		assert.Equal(t, "go-devconnect", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "hello", "html_url": "https://github.com/octo/hello", "stargazers_count": 3},
			{"id": 2, "name": "world", "html_url": "https://github.com/octo/world"},
		})
	}))
	defer server.Close()

	client := New(Config{APIURL: server.URL + "/", Token: "secret"})

	repos, err := client.UserRepos(context.Background(), "octo")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "hello", repos[0].Name)
	assert.Equal(t, 3, repos[0].StargazersCount)
	assert.Equal(t, "https://github.com/octo/world", repos[1].HTMLURL)
}

func TestClientUserReposWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	repos, err := New(Config{APIURL: server.URL}).UserRepos(context.Background(), "octo")
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestClientUserReposNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	_, err := New(Config{APIURL: server.URL}).UserRepos(context.Background(), "ghost")
	require.Error(t, err)

	var richErr *errors.Error
	require.True(t, errors.As(err, &richErr))
	assert.Equal(t, errors.CategoryNotFound, richErr.Category)
	assert.Equal(t, http.StatusNotFound, richErr.Code)
	assert.Equal(t, "No Github profile found", richErr.Message)
	assert.Equal(t, "Not Found", richErr.Metadata["description"])
}

func TestClientUserReposTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(Config{APIURL: server.URL, Timeout: 20 * time.Millisecond})

	_, err := client.UserRepos(context.Background(), "octo")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryExternal))
}

func TestClientUserReposOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"`))
		_, _ = w.Write([]byte(strings.Repeat("a", maxResponseBytes)))
		_, _ = w.Write([]byte(`"}]`))
	}))
	defer server.Close()

	_, err := New(Config{APIURL: server.URL}).UserRepos(context.Background(), "octo")
	require.Error(t, err)

	var richErr *errors.Error
	require.True(t, errors.As(err, &richErr))
	assert.Equal(t, errors.CategoryExternal, richErr.Category)
	assert.Equal(t, "GITHUB_RESPONSE_TOO_LARGE", richErr.TextCode)
}

func TestClientUserReposEmptyUsername(t *testing.T) {
	_, err := New(Config{}).UserRepos(context.Background(), "  ")
	assert.True(t, errors.IsNotFound(err))
}
