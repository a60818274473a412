package translate

import (
	"context"
	"fmt"
	"reflect"

	"github.com/sqlbridge/sqlbridge/rest"
	"github.com/sqlbridge/sqlbridge/sql/ast"
)

func (t *Translator) execSelect(ctx context.Context, stmt *ast.Select, params []any) (*Result, error) {
	b := t.client.From(stmt.Table).Select(stmt.Columns...)
	for _, pred := range stmt.Predicates {
		if err := applyPredicate(b, pred, params); err != nil {
			return nil, err
		}
	}
	for _, key := range stmt.OrderBy {
		b.Order(key.Column, key.Descending)
	}
	if stmt.Limit != nil {
		b.Limit(*stmt.Limit)
	}
	rows, err := b.Get(ctx)
	if err != nil {
		return nil, err
	}
	return newResult(rows), nil
}

func applyPredicate(b *rest.Builder, pred ast.Predicate, params []any) error {
	value, err := paramAt(params, pred.Param)
	if err != nil {
		return err
	}
	switch pred.Operator {
	case ast.OpEq:
		b.Eq(pred.Column, value)
	case ast.OpNeq:
		b.Neq(pred.Column, value)
	case ast.OpGt:
		b.Gt(pred.Column, value)
	case ast.OpGte:
		b.Gte(pred.Column, value)
	case ast.OpLt:
		b.Lt(pred.Column, value)
	case ast.OpLte:
		b.Lte(pred.Column, value)
	case ast.OpAnyOf:
		elems, err := sliceElements(value)
		if err != nil {
			return fmt.Errorf("predicate %s = ANY($%d): %w", pred.Column, pred.Param, err)
		}
		b.In(pred.Column, elems)
	case ast.OpEqOrNull:
		b.OrIsNull(pred.Column, value)
	default:
		return fmt.Errorf("unhandled predicate operator %q", pred.Operator)
	}
	return nil
}

// sliceElements flattens any slice or array value into []any. ANY($N)
// requires the referenced parameter to be array-shaped.
func sliceElements(value any) ([]any, error) {
	if value == nil {
		return nil, fmt.Errorf("parameter is nil, expected an array")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("parameter is %T, expected an array", value)
	}
	elems := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, nil
}
