package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin HTTP client for the AuthGate API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type apiError struct {
	Errors []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
	Msg string `json:"msg"`
}

// decodeError turns a non-2xx response into an error carrying the server's
// own messages when the body matches the API error shape.
func decodeError(status int, body []byte) error {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil {
		if len(e.Errors) > 0 {
			msgs := make([]string, 0, len(e.Errors))
			for _, item := range e.Errors {
				msgs = append(msgs, item.Msg)
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		if e.Msg != "" {
			return fmt.Errorf("%s", e.Msg)
		}
	}
	return fmt.Errorf("server returned status %d", status)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, data)
	}

	return json.Unmarshal(data, out)
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var out tokenResponse
	err := c.postJSON(ctx, "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login authenticates and returns the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenResponse
	err := c.postJSON(ctx, "/api/auth", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// UserInfo is the sanitized profile the server returns for a valid token.
type UserInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Whoami fetches the profile for the given token.
func (c *Client) Whoami(ctx context.Context, token string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-auth-token", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, data)
	}

	info := &UserInfo{}
	if err := json.Unmarshal(data, info); err != nil {
		return nil, err
	}
	return info, nil
}
