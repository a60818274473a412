package translate

import (
	"context"
	"fmt"

	"github.com/sqlbridge/sqlbridge/rest"
	"github.com/sqlbridge/sqlbridge/sql/ast"
)

func (t *Translator) execInsert(ctx context.Context, stmt *ast.Insert, params []any) (*Result, error) {
	// Columns zip 1:1 with the positional parameters, by index.
	if len(stmt.Columns) > len(params) {
		return nil, fmt.Errorf("insert into %s names %d columns but only %d parameters were supplied",
			stmt.Table, len(stmt.Columns), len(params))
	}
	record := make(map[string]any, len(stmt.Columns))
	for i, column := range stmt.Columns {
		record[column] = params[i]
	}
	rows, err := t.client.From(stmt.Table).Insert(ctx, record)
	if err != nil {
		return nil, err
	}
	return newResult(rows), nil
}

func (t *Translator) execUpdate(ctx context.Context, stmt *ast.Update, params []any) (*Result, error) {
	patch := make(map[string]any, len(stmt.Assignments))
	for _, set := range stmt.Assignments {
		value, err := paramAt(params, set.Param)
		if err != nil {
			return nil, err
		}
		// Nil parameters mean "keep the existing value": the column is
		// omitted from the patch entirely. Explicitly nulling a column
		// is not expressible through this layer.
		if value == nil {
			continue
		}
		patch[set.Column] = value
	}

	target, err := paramAt(params, stmt.Where.Param)
	if err != nil {
		return nil, err
	}
	b := t.client.From(stmt.Table).Eq(stmt.Where.Column, target)

	// Every assignment was nil: nothing to patch, so return the
	// current row unchanged rather than sending an empty body.
	if len(patch) == 0 {
		rows, err := b.Get(ctx)
		if err != nil {
			return nil, err
		}
		return newResult(rows), nil
	}

	rows, err := b.Update(ctx, patch)
	if err != nil {
		return nil, err
	}
	return newResult(rows), nil
}

func (t *Translator) execDelete(ctx context.Context, stmt *ast.Delete, params []any) (*Result, error) {
	if stmt.Where == nil {
		return nil, fmt.Errorf("delete from %s without a where clause is not allowed", stmt.Table)
	}
	target, err := paramAt(params, stmt.Where.Param)
	if err != nil {
		return nil, err
	}
	rows, err := t.client.From(stmt.Table).Eq(stmt.Where.Column, target).Delete(ctx)
	if err != nil {
		return nil, err
	}
	return newResult(rows), nil
}

func (t *Translator) execTruncate(ctx context.Context, stmt *ast.Truncate) (*Result, error) {
	// An unfiltered delete is the closest the resource API comes to
	// TRUNCATE. The deleted rows are not returned.
	if _, err := t.client.From(stmt.Table).Delete(ctx); err != nil {
		return nil, err
	}
	return newResult(nil), nil
}

func (t *Translator) execRefresh(ctx context.Context, stmt *ast.Refresh, text string) (*Result, error) {
	args := map[string]any{
		"view_name":    stmt.View,
		"concurrently": stmt.Concurrently,
	}
	if _, err := t.client.RPC(ctx, t.RefreshFunction, args); err != nil {
		// No dedicated refresh procedure on this backend; the raw path
		// can still execute the statement text.
		if rest.IsMissingFunction(err) {
			return t.execRaw(ctx, text, nil)
		}
		return nil, err
	}
	return newResult(nil), nil
}
