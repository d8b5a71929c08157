package chek

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// StaticToken is a TokenSource returning a fixed bearer token
type StaticToken string

// Token returns the token or ErrNoToken when empty
func (t StaticToken) Token(_ context.Context) (string, error) {
	if t == "" {
		return "", goerr.Wrap(ErrNoToken, "static token is empty")
	}
	return string(t), nil
}

// TokenFunc adapts a function to a TokenSource
type TokenFunc func(ctx context.Context) (string, error)

// Token calls f
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}
