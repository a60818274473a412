package rest

import (
	"context"
	"encoding/json"
	"net/http"
)

// RPC invokes a remote procedure with named arguments and returns the
// raw JSON payload. The shape of the payload is procedure-defined: an
// array, a bare object, a scalar, or null.
func (c *Client) RPC(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}
	return c.do(ctx, http.MethodPost, "/rpc/"+name, nil, args, "")
}
