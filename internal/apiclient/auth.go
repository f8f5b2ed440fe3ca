package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"archiveweb/internal/model"
)

// RegisterRequest is the account sign-up body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Grade    string `json:"grade"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, nil, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, "/api/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	var out loginResponse
	if err := c.call("login", req, "로그인 중 오류가 발생했습니다.", &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", &Error{Op: "login", StatusCode: http.StatusBadGateway, Message: "로그인 중 오류가 발생했습니다."}
	}
	return out.Token, nil
}

// Register creates an account. The backend answers with the created user.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (*model.User, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, "/api/register", r)
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := c.call("register", req, "회원가입 중 오류가 발생했습니다.", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CurrentUser resolves a token to its user.
func (c *Client) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/user", nil, nil)
	if err != nil {
		return nil, err
	}
	bearer(req, token)
	var u model.User
	if err := c.call("current_user", req, "사용자 정보를 가져오는데 실패했습니다.", &u); err != nil {
		return nil, err
	}
	return &u, nil
}
