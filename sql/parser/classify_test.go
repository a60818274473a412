package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlbridge/sqlbridge/sql/ast"
)

func TestScanUnsupportedMarkers(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"group by", "SELECT carrier, count(*) FROM flights GROUP BY carrier"},
		{"having", "SELECT carrier FROM flights GROUP BY carrier HAVING count(*) > 10"},
		{"join", "SELECT * FROM flights f INNER JOIN airports a ON f.origin = a.id"},
		{"union", "SELECT id FROM a UNION SELECT id FROM b"},
		{"subselect", "SELECT * FROM flights WHERE id IN (SELECT flight_id FROM delays)"},
		{"stddev", "SELECT stddev(distance) FROM flights"},
		{"percentile", "SELECT percentile_cont(0.5) WITHIN GROUP (ORDER BY distance) FROM flights"},
		{"distinct", "SELECT DISTINCT carrier FROM flights"},
		{"offset", "SELECT * FROM flights LIMIT 10 OFFSET 20"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stmt := Parse(tc.text)
			un, ok := stmt.(*ast.Unsupported)
			require.True(t, ok, "expected fallback classification, got %T", stmt)
			assert.NotEmpty(t, un.Reason)
		})
	}
}

func TestScanSupportedSelectPassesThrough(t *testing.T) {
	// The marker scan must not catch plain statements.
	stmt := Parse("SELECT * FROM flights WHERE origin = $1 ORDER BY id LIMIT 5")
	assert.Equal(t, ast.KindSelect, stmt.Kind())
}
