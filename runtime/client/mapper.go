// Package client provides result mapping utilities.
package client

import (
	"encoding/json"
	"fmt"

	"github.com/sqlbridge/sqlbridge/translate"
)

// MapRows decodes a result's rows into a slice of structs. Column
// names match struct fields through their json tags, which is also how
// the backend serialized them.
func MapRows[T any](result *translate.Result) ([]T, error) {
	out := make([]T, 0, result.RowCount)
	for i, row := range result.Rows {
		var item T
		payload, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("encoding row %d: %w", i, err)
		}
		if err := json.Unmarshal(payload, &item); err != nil {
			return nil, fmt.Errorf("mapping row %d: %w", i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// MapRow decodes the first row of a result into a struct. ok is false
// when the result is empty.
func MapRow[T any](result *translate.Result) (item T, ok bool, err error) {
	if result.RowCount == 0 {
		return item, false, nil
	}
	items, err := MapRows[T](&translate.Result{Rows: result.Rows[:1], RowCount: 1})
	if err != nil {
		return item, false, err
	}
	return items[0], true, nil
}
