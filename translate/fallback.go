package translate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sqlbridge/sqlbridge/rest"
)

// execRaw inlines the parameters and submits the full statement text
// to the exec remote procedure.
//
// When the procedure was never provisioned on the backend, the failure
// is swallowed: a warning is logged and an empty result returned, so
// callers in degraded environments see "no data" rather than an error.
// A present procedure rejecting the statement still fails loudly.
func (t *Translator) execRaw(ctx context.Context, text string, params []any) (*Result, error) {
	inlined := InlineParams(text, params)
	raw, err := t.client.RPC(ctx, t.ExecFunction, map[string]any{"query": inlined})
	if err != nil {
		if rest.IsMissingFunction(err) {
			t.Logf("warning: remote procedure %q not found; returning empty result for: %s", t.ExecFunction, text)
			return newResult(nil), nil
		}
		return nil, err
	}
	rows, err := coerceRows(raw)
	if err != nil {
		return nil, err
	}
	return newResult(rows), nil
}

// coerceRows normalizes a procedure payload to a row array: arrays pass
// through, a bare object becomes a singleton, null becomes empty, and
// scalar elements are wrapped under a "result" key.
func coerceRows(raw json.RawMessage) ([]map[string]any, error) {
	var payload any
	if len(raw) == 0 {
		return []map[string]any{}, nil
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding procedure response: %w", err)
	}
	switch v := payload.(type) {
	case nil:
		return []map[string]any{}, nil
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, el := range v {
			if obj, ok := el.(map[string]any); ok {
				rows = append(rows, obj)
			} else {
				rows = append(rows, map[string]any{"result": el})
			}
		}
		return rows, nil
	case map[string]any:
		return []map[string]any{v}, nil
	default:
		return []map[string]any{{"result": v}}, nil
	}
}
