// Package translate turns SQL-shaped statements into resource-API
// calls, falling back to raw-text execution through a remote procedure
// for anything the minimal dialect cannot express.
package translate

import (
	"context"
	"fmt"
	"log"

	"github.com/sqlbridge/sqlbridge/rest"
	"github.com/sqlbridge/sqlbridge/sql/ast"
	"github.com/sqlbridge/sqlbridge/sql/parser"
)

// DefaultExecFunction is the remote procedure used for raw-text
// execution when none is configured.
const DefaultExecFunction = "exec_sql"

// Result is the uniform outcome of every statement. RowCount always
// equals len(Rows) and Rows is never nil.
type Result struct {
	Rows     []map[string]any
	RowCount int
}

func newResult(rows []map[string]any) *Result {
	if rows == nil {
		rows = []map[string]any{}
	}
	return &Result{Rows: rows, RowCount: len(rows)}
}

// Translator executes statements against a resource-API backend.
// Translators are stateless between calls and safe for concurrent use.
type Translator struct {
	client *rest.Client

	// ExecFunction names the remote procedure used by the fallback
	// path. Defaults to DefaultExecFunction.
	ExecFunction string

	// RefreshFunction names the remote procedure used to refresh
	// materialized views.
	RefreshFunction string

	// Logf receives warnings (missing fallback procedure). Defaults to
	// log.Printf.
	Logf func(format string, args ...any)
}

// New creates a Translator over the given client.
func New(client *rest.Client) *Translator {
	return &Translator{
		client:          client,
		ExecFunction:    DefaultExecFunction,
		RefreshFunction: "refresh_materialized_view",
		Logf:            log.Printf,
	}
}

// Exec classifies, translates, and executes one statement. Params are
// positional, referenced as $1, $2, ... in the text.
func (t *Translator) Exec(ctx context.Context, text string, params []any) (*Result, error) {
	stmt := parser.Parse(text)
	switch s := stmt.(type) {
	case *ast.Select:
		return t.execSelect(ctx, s, params)
	case *ast.Insert:
		return t.execInsert(ctx, s, params)
	case *ast.Update:
		return t.execUpdate(ctx, s, params)
	case *ast.Delete:
		return t.execDelete(ctx, s, params)
	case *ast.Truncate:
		return t.execTruncate(ctx, s)
	case *ast.Refresh:
		return t.execRefresh(ctx, s, text)
	case *ast.Unsupported:
		return t.execRaw(ctx, s.Text, params)
	default:
		return nil, fmt.Errorf("unhandled statement kind %q", stmt.Kind())
	}
}

// paramAt bounds-checks a 1-based parameter ordinal.
func paramAt(params []any, ordinal int) (any, error) {
	if ordinal < 1 || ordinal > len(params) {
		return nil, fmt.Errorf("statement references $%d but only %d parameters were supplied", ordinal, len(params))
	}
	return params[ordinal-1], nil
}
