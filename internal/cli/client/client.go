package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/RahulRR-10/EchoSQL/internal/cli/types"
)

// APIClient wraps Hertz Client for HTTP communication with the API server
type APIClient struct {
	client *client.Client
	server string
	token  string
}

// NewAPIClient creates a new API client
func NewAPIClient(server, token string) (*APIClient, error) {
	normalizedServer, err := normalizeServerURL(server)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	c, err := client.NewClient(
		client.WithDialTimeout(10*time.Second),
		client.WithMaxIdleConnDuration(60*time.Second),
		client.WithDialer(standard.NewDialer()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &APIClient{
		client: c,
		server: normalizedServer,
		token:  token,
	}, nil
}

// normalizeServerURL normalizes server URL to ensure it has a scheme and no trailing slash
func normalizeServerURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}

	u, err := url.Parse(server)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid server URL")
	}

	return fmt.Sprintf("%s://%s", u.Scheme, u.Host), nil
}

// do runs one JSON request and returns the raw response body.
func (c *APIClient) do(ctx context.Context, method, uri string, body []byte) ([]byte, error) {
	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(method)
	req.SetRequestURI(c.server + uri)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.SetContentTypeBytes([]byte("application/json"))
		req.SetBody(body)
	}

	if err := c.client.Do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode < 200 || statusCode >= 300 {
		return nil, apiError(statusCode, resp.Body())
	}

	// Copy: the response buffer is released on return
	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

// apiError surfaces the server's error message when the body carries one.
func apiError(statusCode int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return fmt.Errorf("HTTP %d: %s", statusCode, envelope.Message)
	}
	return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
}

// Login performs user login
func (c *APIClient) Login(ctx context.Context, username, password string) (*types.APIResponse[types.LoginData], error) {
	bodyBytes, err := sonic.Marshal(types.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, consts.MethodPost, endpointLogin, bodyBytes)
	if err != nil {
		return nil, err
	}

	var loginResp types.APIResponse[types.LoginData]
	if err := sonic.Unmarshal(body, &loginResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &loginResp, nil
}

// CreateSession starts a new query session
func (c *APIClient) CreateSession(ctx context.Context, title, databaseID string) (*types.Session, error) {
	bodyBytes, err := sonic.Marshal(types.CreateSessionRequest{
		Title:      title,
		DatabaseID: databaseID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, consts.MethodPost, endpointSessions, bodyBytes)
	if err != nil {
		return nil, err
	}

	var resp types.APIResponse[types.Session]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &resp.Data, nil
}

// ListSessions lists the caller's sessions
func (c *APIClient) ListSessions(ctx context.Context) ([]types.Session, int, error) {
	body, err := c.do(ctx, consts.MethodGet, endpointSessions, nil)
	if err != nil {
		return nil, 0, err
	}

	var resp types.APIResponse[types.SessionListData]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return resp.Data.Sessions, resp.Data.Total, nil
}

// DeleteSession removes a session and its messages
func (c *APIClient) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointSessionByID, sessionID), nil)
	return err
}

// ListMessages retrieves the session transcript
func (c *APIClient) ListMessages(ctx context.Context, sessionID string) ([]types.Message, error) {
	body, err := c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointSessionMessages, sessionID), nil)
	if err != nil {
		return nil, err
	}

	var resp types.APIResponse[types.ListData[types.Message]]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return resp.Data.Items, nil
}

// ExportSessionPDF downloads the session transcript as PDF bytes
func (c *APIClient) ExportSessionPDF(ctx context.Context, sessionID string) ([]byte, error) {
	return c.do(ctx, consts.MethodGet, fmt.Sprintf(endpointSessionPDF, sessionID), nil)
}

// Ask sends one natural-language question and returns the full exchange
func (c *APIClient) Ask(ctx context.Context, req *types.AskRequest) (*types.Message, error) {
	bodyBytes, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, consts.MethodPost, endpointMessages, bodyBytes)
	if err != nil {
		return nil, err
	}

	var resp types.APIResponse[types.Message]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &resp.Data, nil
}

// ListBookmarks lists saved questions, optionally filtered by term
func (c *APIClient) ListBookmarks(ctx context.Context, term string) ([]types.Bookmark, error) {
	uri := endpointBookmarks
	if term != "" {
		uri += "?q=" + url.QueryEscape(term)
	}

	body, err := c.do(ctx, consts.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	var resp types.APIResponse[types.ListData[types.Bookmark]]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return resp.Data.Items, nil
}

// AddBookmark saves a question
func (c *APIClient) AddBookmark(ctx context.Context, req *types.AddBookmarkRequest) (*types.Bookmark, error) {
	bodyBytes, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	body, err := c.do(ctx, consts.MethodPost, endpointBookmarks, bodyBytes)
	if err != nil {
		return nil, err
	}

	var resp types.APIResponse[types.Bookmark]
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &resp.Data, nil
}

// DeleteBookmark removes a saved question
func (c *APIClient) DeleteBookmark(ctx context.Context, bookmarkID string) error {
	_, err := c.do(ctx, consts.MethodDelete, fmt.Sprintf(endpointBookmarkByID, bookmarkID), nil)
	return err
}
