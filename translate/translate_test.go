package translate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbridge/sqlbridge/rest"
)

func newTestTranslator(t *testing.T, handler http.HandlerFunc) *Translator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	tr := New(rest.NewClient(server.URL, "test-key"))
	tr.Logf = t.Logf
	return tr
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestExecSelectAppliesPredicates(t *testing.T) {
	var gotQuery string
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/flights", r.URL.Path)
		gotQuery = r.URL.RawQuery
		q := r.URL.Query()
		assert.Equal(t, "eq.SFO", q.Get("origin"))
		assert.Equal(t, "gt.500", q.Get("distance"))
		assert.Equal(t, "departed_at.desc,id.asc", q.Get("order"))
		assert.Equal(t, "25", q.Get("limit"))
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": 1, "origin": "SFO"},
			{"id": 2, "origin": "SFO"},
		})
	})

	result, err := tr.Exec(context.Background(),
		"SELECT * FROM flights WHERE origin = $1 AND distance > $2 ORDER BY departed_at DESC, id LIMIT 25",
		[]any{"SFO", 500})
	require.NoError(t, err)
	require.NotEmpty(t, gotQuery)
	assert.Equal(t, 2, result.RowCount)
	assert.Len(t, result.Rows, result.RowCount)
	assert.Equal(t, "SFO", result.Rows[0]["origin"])
}

func TestExecSelectEmptyResultIsNotNil(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []map[string]any{})
	})
	result, err := tr.Exec(context.Background(), "SELECT * FROM flights", nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Rows)
	assert.Equal(t, 0, result.RowCount)
}

func TestExecSelectAnyOf(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `in.("AA","UA")`, r.URL.Query().Get("carrier"))
		writeJSON(t, w, http.StatusOK, []map[string]any{{"id": 1}})
	})
	result, err := tr.Exec(context.Background(),
		"SELECT * FROM flights WHERE carrier = ANY($1)", []any{[]string{"AA", "UA"}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
}

func TestExecSelectAnyOfRequiresSlice(t *testing.T) {
	requests := 0
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, err := tr.Exec(context.Background(),
		"SELECT * FROM flights WHERE carrier = ANY($1)", []any{"AA"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an array")
	assert.Zero(t, requests, "no request should be issued for a malformed statement")
}

func TestExecSelectEqOrNull(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "(tail_number.eq.N123,tail_number.is.null)", r.URL.Query().Get("or"))
		writeJSON(t, w, http.StatusOK, []map[string]any{})
	})
	_, err := tr.Exec(context.Background(),
		"SELECT * FROM flights WHERE (tail_number = $1 OR tail_number IS NULL)", []any{"N123"})
	require.NoError(t, err)
}

func TestExecSelectMissingParam(t *testing.T) {
	requests := 0
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, err := tr.Exec(context.Background(), "SELECT * FROM flights WHERE origin = $2", []any{"SFO"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$2")
	assert.Zero(t, requests)
}

func TestExecInsertZipsColumnsWithParams(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/flights", r.URL.Path)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var record map[string]any
		require.NoError(t, json.Unmarshal(body, &record))
		assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2), "c": float64(3)}, record)
		writeJSON(t, w, http.StatusCreated, []map[string]any{
			{"id": 99, "a": 1, "b": 2, "c": 3},
		})
	})

	result, err := tr.Exec(context.Background(),
		"INSERT INTO flights (a, b, c) VALUES ($1, $2, $3)", []any{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, float64(99), result.Rows[0]["id"])
}

func TestExecInsertColumnCountExceedsParams(t *testing.T) {
	requests := 0
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, err := tr.Exec(context.Background(),
		"INSERT INTO flights (a, b, c) VALUES ($1, $2, $3)", []any{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 columns")
	assert.Zero(t, requests)
}

func TestExecUpdateOmitsNilColumns(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var patch map[string]any
		require.NoError(t, json.Unmarshal(body, &patch))
		// The nil parameter keeps the existing value: its column must
		// be absent from the patch, not set to null.
		assert.Equal(t, map[string]any{"origin": "SFO"}, patch)
		writeJSON(t, w, http.StatusOK, []map[string]any{{"id": 7, "origin": "SFO"}})
	})

	result, err := tr.Exec(context.Background(),
		"UPDATE flights SET origin = $1, destination = $2 WHERE id = $3",
		[]any{"SFO", nil, 7})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
}

func TestExecUpdateAllNilReadsInsteadOfPatching(t *testing.T) {
	var method string
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))
		writeJSON(t, w, http.StatusOK, []map[string]any{{"id": 7}})
	})

	result, err := tr.Exec(context.Background(),
		"UPDATE flights SET origin = $1 WHERE id = $2", []any{nil, 7})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, method)
	assert.Equal(t, 1, result.RowCount)
}

func TestExecDeleteWithoutWhere(t *testing.T) {
	requests := 0
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})
	_, err := tr.Exec(context.Background(), "DELETE FROM flights", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a where clause")
	assert.Zero(t, requests, "no mutation may reach the backend")
}

func TestExecDeleteReturnsDeletedRows(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))
		writeJSON(t, w, http.StatusOK, []map[string]any{{"id": 7}})
	})
	result, err := tr.Exec(context.Background(), "DELETE FROM flights WHERE id = $1", []any{7})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
}

func TestExecTruncateIssuesUnfilteredDelete(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rest/v1/flights", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("id"))
		writeJSON(t, w, http.StatusOK, []map[string]any{})
	})
	result, err := tr.Exec(context.Background(), "TRUNCATE TABLE flights", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RowCount)
}

func TestExecRefreshUsesRemoteProcedure(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/refresh_materialized_view", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var args map[string]any
		require.NoError(t, json.Unmarshal(body, &args))
		assert.Equal(t, "flight_stats", args["view_name"])
		assert.Equal(t, true, args["concurrently"])
		writeJSON(t, w, http.StatusOK, nil)
	})
	result, err := tr.Exec(context.Background(),
		"REFRESH MATERIALIZED VIEW CONCURRENTLY flight_stats", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.RowCount)
}

func TestFallbackInlinesParameters(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/exec_sql", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var args map[string]any
		require.NoError(t, json.Unmarshal(body, &args))
		assert.Equal(t,
			"SELECT carrier, count(*) FROM flights WHERE origin = 'O''Hare' GROUP BY carrier",
			args["query"])
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"carrier": "AA", "count": 12},
		})
	})

	result, err := tr.Exec(context.Background(),
		"SELECT carrier, count(*) FROM flights WHERE origin = $1 GROUP BY carrier",
		[]any{"O'Hare"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
	assert.Equal(t, "AA", result.Rows[0]["carrier"])
}

func TestFallbackMissingFunctionDegradesToEmptyResult(t *testing.T) {
	var warned bool
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"code":    "PGRST202",
			"message": "Could not find the function public.exec_sql(query) in the schema cache",
		})
	})
	tr.Logf = func(format string, args ...any) { warned = true }

	result, err := tr.Exec(context.Background(),
		"SELECT carrier FROM flights GROUP BY carrier", nil)
	require.NoError(t, err)
	assert.True(t, warned, "degradation must be logged")
	assert.NotNil(t, result.Rows)
	assert.Equal(t, 0, result.RowCount)
}

func TestFallbackPresentButStatementInvalid(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{
			"code":    "42601",
			"message": "syntax error at or near \"FORM\"",
		})
	})
	_, err := tr.Exec(context.Background(), "SELECT * FORM flights GROUP BY x", nil)
	require.Error(t, err)
	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "42601", apiErr.Code)
}

func TestFallbackWrapsBareObject(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"total": 42})
	})
	result, err := tr.Exec(context.Background(),
		"SELECT count(*) AS total FROM flights GROUP BY carrier", nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, float64(42), result.Rows[0]["total"])
}

func TestFallbackWrapsScalarElements(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []any{1, 2})
	})
	result, err := tr.Exec(context.Background(), "SELECT x FROM t GROUP BY x", nil)
	require.NoError(t, err)
	require.Equal(t, 2, result.RowCount)
	assert.Equal(t, float64(1), result.Rows[0]["result"])
}

func TestExecSelectIdempotent(t *testing.T) {
	calls := 0
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(t, w, http.StatusOK, []map[string]any{{"id": 1}, {"id": 2}})
	})
	first, err := tr.Exec(context.Background(), "SELECT * FROM flights WHERE origin = $1", []any{"SFO"})
	require.NoError(t, err)
	second, err := tr.Exec(context.Background(), "SELECT * FROM flights WHERE origin = $1", []any{"SFO"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "no caching: each call reaches the backend")
	assert.Equal(t, first.Rows, second.Rows)
}

func TestBackendRejectionPropagates(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]any{
			"code":    "23505",
			"message": "duplicate key value violates unique constraint",
		})
	})
	_, err := tr.Exec(context.Background(),
		"INSERT INTO flights (a) VALUES ($1)", []any{1})
	require.Error(t, err)
	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "23505", apiErr.Code)
}

func TestResultRowCountMatchesRows(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		rows := make([]map[string]any, n)
		for i := range rows {
			rows[i] = map[string]any{"id": i}
		}
		result := newResult(rows)
		assert.Equal(t, n, result.RowCount)
		assert.Len(t, result.Rows, n)
	}
	assert.NotNil(t, newResult(nil).Rows)
}
