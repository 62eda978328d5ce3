package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	loginPath  = "/api/auth/login"
	signupPath = "/api/auth/signup"
)

type Client interface {
	Login(ctx context.Context, identifier string, password string) (Result, error) // POST /api/auth/login
	Signup(ctx context.Context, name string, userId string, password string) (Result, error) // POST /api/auth/signup
}

type ClientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the auth service at baseURL. A zero timeout
// leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *ClientImpl {
	return &ClientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *ClientImpl) Login(ctx context.Context, identifier string, password string) (Result, error) {
	body := struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}{identifier, password}
	return c.post(ctx, loginPath, body)
}

func (c *ClientImpl) Signup(ctx context.Context, name string, userId string, password string) (Result, error) {
	body := struct {
		Name     string `json:"name"`
		UserId   string `json:"userId"`
		Password string `json:"password"`
	}{name, userId, password}
	return c.post(ctx, signupPath, body)
}

func (c *ClientImpl) post(ctx context.Context, path string, body any) (Result, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request to %s: %v", path, err)
		return Result{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
			log.Debugf("auth service error body not decodable: %v", err)
		}
		log.Debugf("auth service returned status %d for %s", resp.StatusCode, path)
		return Result{}, &RejectedError{StatusCode: resp.StatusCode, Message: failure.Message}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return Result{}, fmt.Errorf("%w: invalid response: %v", ErrUnreachable, err)
	}
	return result, nil
}
