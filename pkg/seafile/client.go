// Package seafile is a minimal Seafile web API client for share links.
package seafile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoLink is returned when no share link could be created or found.
var ErrNoLink = errors.New("no share link")

const shareLinksPath = "/api/v2.1/share-links/"

// Client talks to one Seafile library.
type Client struct {
	host       string
	token      string
	repoID     string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "seafile")
	}
}

// New creates a client for the library repoID on host.
func New(host, token, repoID string, opts ...Option) *Client {
	c := &Client{
		host:   strings.TrimRight(host, "/"),
		token:  token,
		repoID: repoID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createRequest struct {
	RepoID      string      `json:"repo_id"`
	Path        string      `json:"path"`
	Permissions permissions `json:"permissions"`
}

type permissions struct {
	CanEdit     bool `json:"can_edit"`
	CanDownload bool `json:"can_download"`
}

// ShareLink is one entry of the share-links API.
type ShareLink struct {
	Token  string `json:"token"`
	Link   string `json:"link"`
	Path   string `json:"path"`
	RepoID string `json:"repo_id"`
}

// GetShareLink returns a download link for path inside the library,
// creating one when needed. Seafile answers 400 when the path is already
// shared; the existing links are then listed and the first is returned.
func (c *Client) GetShareLink(ctx context.Context, path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	link, status, err := c.create(ctx, path)
	if err != nil {
		return "", err
	}
	if status != http.StatusBadRequest {
		return link, nil
	}

	if c.log != nil {
		c.log.Debug("share link exists, fetching", "remote", path)
	}
	links, err := c.list(ctx, path)
	if err != nil {
		return "", err
	}
	if len(links) == 0 || links[0].Link == "" {
		return "", fmt.Errorf("%w for %s", ErrNoLink, path)
	}
	return links[0].Link, nil
}

// create posts a new share link. A 400 is reported through status with no
// error so the caller can fall back to listing.
func (c *Client) create(ctx context.Context, path string) (string, int, error) {
	body, err := json.Marshal(createRequest{
		RepoID:      c.repoID,
		Path:        path,
		Permissions: permissions{CanEdit: false, CanDownload: true},
	})
	if err != nil {
		return "", 0, fmt.Errorf("marshal share request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+shareLinksPath, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.log != nil {
			c.log.Debug("create share link rejected", "remote", path, "body", strings.TrimSpace(string(msg)))
		}
		return "", resp.StatusCode, nil
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return "", resp.StatusCode, c.statusError("create share link", resp)
	}

	var link ShareLink
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode share link: %w", err)
	}
	if link.Link == "" {
		return "", resp.StatusCode, fmt.Errorf("%w for %s: empty link in response", ErrNoLink, path)
	}
	return link.Link, resp.StatusCode, nil
}

func (c *Client) list(ctx context.Context, path string) ([]ShareLink, error) {
	q := url.Values{}
	q.Set("repo_id", c.repoID)
	q.Set("path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+shareLinksPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError("list share links", resp)
	}

	var links []ShareLink
	if err := json.NewDecoder(resp.Body).Decode(&links); err != nil {
		return nil, fmt.Errorf("decode share links: %w", err)
	}
	return links, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, shareLinksPath, err)
	}
	return resp, nil
}

func (c *Client) statusError(op string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%s: %s: %s", op, resp.Status, strings.TrimSpace(string(msg)))
}
