package identity

import "context"

type backendTokenKey struct{}

// WithBackendToken attaches the caller's backend token so REST backends can
// forward it as a bearer token
func WithBackendToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, backendTokenKey{}, token)
}

// BackendToken returns the token attached by WithBackendToken
func BackendToken(ctx context.Context) string {
	token, _ := ctx.Value(backendTokenKey{}).(string)
	return token
}
