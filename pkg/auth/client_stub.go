package auth

import (
	"context"
	"sync"
)

type ClientStub struct {
	mu          sync.Mutex
	result      Result
	err         error
	block       chan struct{}
	LoginCalls  []LoginRequest
	SignupCalls []SignupRequest
}

func NewClientStub() *ClientStub {
	return &ClientStub{}
}

func (c *ClientStub) SetResult(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = result
	c.err = nil
}

func (c *ClientStub) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Block makes calls wait until the returned function is invoked.
func (c *ClientStub) Block() (release func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.block = make(chan struct{})
	ch := c.block
	return func() { close(ch) }
}

func (c *ClientStub) Login(ctx context.Context, identifier string, password string) (Result, error) {
	c.mu.Lock()
	c.LoginCalls = append(c.LoginCalls, LoginRequest{Identifier: identifier, Password: password})
	c.mu.Unlock()
	return c.respond(ctx)
}

func (c *ClientStub) Signup(ctx context.Context, name string, userId string, password string) (Result, error) {
	c.mu.Lock()
	c.SignupCalls = append(c.SignupCalls, SignupRequest{Name: name, UserId: userId, Password: password})
	c.mu.Unlock()
	return c.respond(ctx)
}

func (c *ClientStub) respond(ctx context.Context) (Result, error) {
	c.mu.Lock()
	block := c.block
	c.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result, c.err
}

func (c *ClientStub) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.LoginCalls) + len(c.SignupCalls)
}
