package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Builder accumulates filter, order, and limit primitives for one
// table endpoint, then executes a single request. Filters combine with
// AND; the only disjunction offered is OrIsNull.
type Builder struct {
	client  *Client
	table   string
	selects string
	query   url.Values
	order   []string
}

// Select sets the projected columns. Empty means all columns.
func (b *Builder) Select(columns ...string) *Builder {
	if len(columns) == 0 {
		b.selects = "*"
	} else {
		b.selects = strings.Join(columns, ",")
	}
	return b
}

// Eq filters rows where column equals value.
func (b *Builder) Eq(column string, value any) *Builder {
	b.query.Add(column, "eq."+formatValue(value))
	return b
}

// Neq filters rows where column does not equal value.
func (b *Builder) Neq(column string, value any) *Builder {
	b.query.Add(column, "neq."+formatValue(value))
	return b
}

// Gt filters rows where column is greater than value.
func (b *Builder) Gt(column string, value any) *Builder {
	b.query.Add(column, "gt."+formatValue(value))
	return b
}

// Gte filters rows where column is greater than or equal to value.
func (b *Builder) Gte(column string, value any) *Builder {
	b.query.Add(column, "gte."+formatValue(value))
	return b
}

// Lt filters rows where column is less than value.
func (b *Builder) Lt(column string, value any) *Builder {
	b.query.Add(column, "lt."+formatValue(value))
	return b
}

// Lte filters rows where column is less than or equal to value.
func (b *Builder) Lte(column string, value any) *Builder {
	b.query.Add(column, "lte."+formatValue(value))
	return b
}

// In filters rows where column is one of values.
func (b *Builder) In(column string, values []any) *Builder {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatListValue(v)
	}
	b.query.Add(column, "in.("+strings.Join(parts, ",")+")")
	return b
}

// OrIsNull filters rows where column equals value or is null. This is
// the one disjunctive primitive the resource API exposes.
func (b *Builder) OrIsNull(column string, value any) *Builder {
	b.query.Add("or", fmt.Sprintf("(%s.eq.%s,%s.is.null)", column, formatValue(value), column))
	return b
}

// Order appends an ordering key; earlier keys take priority.
func (b *Builder) Order(column string, descending bool) *Builder {
	dir := "asc"
	if descending {
		dir = "desc"
	}
	b.order = append(b.order, column+"."+dir)
	return b
}

// Limit caps the number of returned rows.
func (b *Builder) Limit(n int) *Builder {
	b.query.Set("limit", strconv.Itoa(n))
	return b
}

func (b *Builder) buildQuery() url.Values {
	q := url.Values{}
	for key, vals := range b.query {
		for _, v := range vals {
			q.Add(key, v)
		}
	}
	if b.selects != "" {
		q.Set("select", b.selects)
	}
	if len(b.order) > 0 {
		q.Set("order", strings.Join(b.order, ","))
	}
	return q
}

// Get executes the accumulated read and returns the matching rows.
func (b *Builder) Get(ctx context.Context) ([]map[string]any, error) {
	raw, err := b.client.do(ctx, http.MethodGet, "/"+b.table, b.buildQuery(), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeRows(raw)
}

// Insert creates one record and returns the created row, including
// backend-assigned fields.
func (b *Builder) Insert(ctx context.Context, record map[string]any) ([]map[string]any, error) {
	raw, err := b.client.do(ctx, http.MethodPost, "/"+b.table, b.buildQuery(), record, "return=representation")
	if err != nil {
		return nil, err
	}
	return decodeRows(raw)
}

// Update patches every row matching the accumulated filters and
// returns the updated rows.
func (b *Builder) Update(ctx context.Context, patch map[string]any) ([]map[string]any, error) {
	raw, err := b.client.do(ctx, http.MethodPatch, "/"+b.table, b.buildQuery(), patch, "return=representation")
	if err != nil {
		return nil, err
	}
	return decodeRows(raw)
}

// Delete removes every row matching the accumulated filters and
// returns the deleted rows.
func (b *Builder) Delete(ctx context.Context) ([]map[string]any, error) {
	raw, err := b.client.do(ctx, http.MethodDelete, "/"+b.table, b.buildQuery(), nil, "return=representation")
	if err != nil {
		return nil, err
	}
	return decodeRows(raw)
}

// formatValue renders a filter operand for the query string. The
// resource API compares textually, so quoting is unnecessary here;
// URL encoding happens when the query is serialized.
func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}

// formatListValue renders one element of an in.(...) list; strings are
// double-quoted so embedded commas survive.
func formatListValue(v any) string {
	if s, ok := v.(string); ok {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return formatValue(v)
}
