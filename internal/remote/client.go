// Package remote is the terminal client's HTTP transport to the ELI5 server.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eli5-bot/internal/dto"
	"eli5-bot/internal/entity"
	"eli5-bot/internal/identity"
	"eli5-bot/pkg/apperror"

	"github.com/pkg/errors"
)

const userIDHeader = "X-User-ID"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Live replies can take a while.
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path, userId string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userId != "" {
		req.Header.Set(userIDHeader, userId)
	}
	return req, nil
}

// do sends the request and decodes the envelope's data into out.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	var env dto.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return apperror.New(apperror.KindUnknown, fmt.Sprintf("server returned %d", resp.StatusCode))
		}
		return errors.Wrap(err, "decode response")
	}

	if resp.StatusCode >= 300 || !env.Success {
		return apperror.New(kindOf(env.ErrorType, resp.StatusCode), env.Message)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "decode response data")
		}
	}
	return nil
}

func kindOf(errorType string, status int) apperror.Kind {
	switch kind := apperror.Kind(errorType); kind {
	case apperror.KindValidation, apperror.KindNotFound, apperror.KindInvalidCredentials,
		apperror.KindAlreadyExists, apperror.KindConnectivity, apperror.KindSchema, apperror.KindUpstream:
		return kind
	}
	if status == http.StatusNotFound {
		return apperror.KindNotFound
	}
	return apperror.KindUnknown
}

// transportError marks failures to reach the server at all.
func transportError(err error) error {
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return apperror.Wrap(apperror.KindConnectivity, "", err)
	}
	return err
}

func toUser(res dto.UserResponse) *identity.User {
	return &identity.User{Id: res.Id.String(), Email: res.Email, Name: res.Name}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*identity.User, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var res dto.UserResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return toUser(res), nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*identity.User, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var res dto.UserResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return toUser(res), nil
}

func (c *Client) ListSessions(ctx context.Context, userId string) ([]entity.ChatSession, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/chats", userId, nil)
	if err != nil {
		return nil, err
	}
	var res []dto.ChatSessionDTO
	if err := c.do(req, &res); err != nil {
		return nil, errors.WithMessage(err, "list sessions")
	}
	out := make([]entity.ChatSession, 0, len(res))
	for _, s := range res {
		messages := s.Messages
		if messages == nil {
			messages = []entity.Message{}
		}
		out = append(out, entity.ChatSession{
			Id:          s.Id,
			Title:       s.Title,
			Messages:    messages,
			LastUpdated: time.UnixMilli(s.LastUpdated),
		})
	}
	return out, nil
}

func (c *Client) CreateSession(ctx context.Context, userId string, session entity.ChatSession) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/chats", userId, dto.CreateChatRequest{
		Id:          session.Id,
		Title:       session.Title,
		Messages:    session.Messages,
		LastUpdated: session.LastUpdated.UnixMilli(),
	})
	if err != nil {
		return err
	}
	return errors.WithMessage(c.do(req, nil), "create session")
}

func (c *Client) UpdateSession(ctx context.Context, userId, id string, patch entity.ChatSessionPatch) error {
	body := dto.PatchChatRequest{
		Title:    patch.Title,
		Messages: patch.Messages,
	}
	if patch.LastUpdated != nil {
		ms := patch.LastUpdated.UnixMilli()
		body.LastUpdated = &ms
	}
	req, err := c.newRequest(ctx, http.MethodPatch, "/api/chats/"+url.PathEscape(id), userId, body)
	if err != nil {
		return err
	}
	return errors.WithMessage(c.do(req, nil), "update session")
}

func (c *Client) DeleteSession(ctx context.Context, userId, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/chats/"+url.PathEscape(id), userId, nil)
	if err != nil {
		return err
	}
	return errors.WithMessage(c.do(req, nil), "delete session")
}

// Generate calls the server's generation proxy. Failures keep the server's
// error text so the caller can classify them.
func (c *Client) Generate(ctx context.Context, body dto.GenerateRequest) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/generate", "", body)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		var e dto.GenerateErrorResponse
		text := string(raw)
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			text = e.Error
		}
		return "", apperror.Wrap(apperror.KindUpstream, "", fmt.Errorf("proxy error: %d %s", resp.StatusCode, text))
	}

	var res dto.GenerateResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", errors.Wrap(err, "decode generate response")
	}
	return res.Text, nil
}
