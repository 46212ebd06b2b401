package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/client/models"
	"github.com/dmitrijs2005/devconnector/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorReply struct {
	Msg    string `json:"msg"`
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// do sends in as JSON (when non-nil) and decodes the reply into out (when
// non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set(common.AuthTokenHeaderName, tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: replyMessage(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func replyMessage(data []byte) string {
	var r errorReply
	if err := json.Unmarshal(data, &r); err == nil {
		if r.Msg != "" {
			return r.Msg
		}
		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, e.Msg)
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return strings.TrimSpace(string(data))
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	var out tokenResponse
	in := map[string]string{"name": name, "email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/users", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	var out tokenResponse
	in := map[string]string{"email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/auth", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) MyProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpsertProfile(ctx context.Context, in *models.ProfileInput) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPost, "/api/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Posts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Post(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, text string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) Like(ctx context.Context, id string) ([]models.Like, error) {
	var out []models.Like
	if err := c.do(ctx, http.MethodPut, "/api/posts/like/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Unlike(ctx context.Context, id string) ([]models.Like, error) {
	var out []models.Like
	if err := c.do(ctx, http.MethodPut, "/api/posts/unlike/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Comment(ctx context.Context, id, text string) ([]models.Comment, error) {
	var out []models.Comment
	in := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/api/posts/comment/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) PresignAvatar(ctx context.Context, contentType string) (*models.AvatarUpload, error) {
	var out models.AvatarUpload
	in := map[string]string{"contentType": contentType}
	if err := c.do(ctx, http.MethodPost, "/api/avatar", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
