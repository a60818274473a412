package translate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// InlineParams substitutes positional parameters into statement text
// as SQL literals, for the raw fallback path. Placeholders are replaced
// in descending ordinal order so $1 cannot clobber the prefix of $12.
//
// Substitution is textual and single-pass per ordinal: a value whose
// own text contains a lower-ordinal placeholder (a string like "$1")
// is rewritten again when that ordinal's pass runs. Parameter values
// must not contain placeholder-shaped text.
//
// This is the one place executable text is assembled by substitution;
// every value passes through Literal, which quotes and escapes by type.
func InlineParams(text string, params []any) string {
	for i := len(params) - 1; i >= 0; i-- {
		placeholder := "$" + strconv.Itoa(i+1)
		text = strings.ReplaceAll(text, placeholder, Literal(params[i]))
	}
	return text
}

// Literal renders a single value as a SQL literal.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quote(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return decimal.NewFromFloat32(val).String()
	case float64:
		// decimal keeps the rendering free of exponent notation, which
		// some backends reject in literal position.
		return decimal.NewFromFloat(val).String()
	case decimal.Decimal:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = Literal(rv.Index(i).Interface())
		}
		return "ARRAY[" + strings.Join(parts, ",") + "]"
	}

	// Last resort: quoted stringification.
	return quote(fmt.Sprint(v))
}

// quote single-quotes a string, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
