package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
)

const (
	defaultAPIURL    = "https://api.github.com"
	defaultUserAgent = "go-devconnect"
	defaultTimeout   = 10 * time.Second
	reposPerPage     = "5"
	reposSort        = "created:asc"

	// maxResponseBytes caps how much of a GitHub response body is read
	maxResponseBytes = 1 << 20
)

// Config holds GitHub API configuration.
type Config struct {
	APIURL    string
	Token     string
	UserAgent string
	Timeout   time.Duration

	HTTPClient *http.Client
}

// Repo is the subset of the repository payload clients render
type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Client lists public repositories through the GitHub REST API.
type Client struct {
	config     Config
	httpClient *http.Client
}

// New creates a new GitHub client.
func New(cfg Config) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		config:     cfg,
		httpClient: client,
	}
}

// UserRepos returns the five oldest public repositories of username.
// A non 200 answer is reported as a not found error.
func (c *Client) UserRepos(ctx context.Context, username string) ([]Repo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, notFound(username, 0, "empty username")
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.config.APIURL, url.PathEscape(username), url.Values{
		"per_page": {reposPerPage},
		"sort":     {reposSort},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to build github request")
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "github request failed").
			WithTextCode("GITHUB_UNAVAILABLE")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "failed to read github response")
	}
	if len(body) > maxResponseBytes {
		return nil, errors.New("github response too large", errors.CategoryExternal).
			WithTextCode("GITHUB_RESPONSE_TOO_LARGE")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, notFound(username, resp.StatusCode, apiErrorMessage(body))
	}

	var repos []Repo
	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "failed to decode github response")
	}

	return repos, nil
}

type githubAPIError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
}

func apiErrorMessage(body []byte) string {
	var apiErr githubAPIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "github request failed"
	}

	return msg
}

func notFound(username string, status int, description string) *errors.Error {
	return errors.New("No Github profile found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithTextCode("GITHUB_NOT_FOUND").
		WithMetadata(map[string]any{
			"username":    username,
			"status":      status,
			"description": description,
		})
}
