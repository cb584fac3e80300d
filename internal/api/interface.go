package api

import "context"

// Gateway defines the HTTP operations the stores depend on. The interface
// enables testability through mock implementations; out, when non-nil, is
// filled with the decoded JSON response body.
type Gateway interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Ensure Client implements the interface
var _ Gateway = (*Client)(nil)
