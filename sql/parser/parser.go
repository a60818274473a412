// Package parser parses the minimal SQL dialect into tagged statement
// variants. Anything outside the dialect becomes ast.Unsupported and is
// executed through the raw fallback path, which is strictly more
// capable than the fast path.
package parser

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/sqlbridge/sqlbridge/sql/ast"
)

func buildOptions() []participle.Option {
	return []participle.Option{
		participle.Lexer(sqlLexer),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
		participle.UseLookahead(8),
	}
}

var (
	selectParser   = participle.MustBuild[selectStmt](buildOptions()...)
	insertParser   = participle.MustBuild[insertStmt](buildOptions()...)
	updateParser   = participle.MustBuild[updateStmt](buildOptions()...)
	deleteParser   = participle.MustBuild[deleteStmt](buildOptions()...)
	truncateParser = participle.MustBuild[truncateStmt](buildOptions()...)
	refreshParser  = participle.MustBuild[refreshStmt](buildOptions()...)
)

// Parse classifies and parses a statement. It never fails: statements
// that do not cleanly match the minimal dialect come back as
// *ast.Unsupported, carrying the original text for the fallback.
func Parse(text string) ast.Statement {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	unsupported := func(reason string) ast.Statement {
		return &ast.Unsupported{Text: text, Reason: reason}
	}

	switch {
	case strings.HasPrefix(lower, "select"):
		if reason := scanUnsupported(lower); reason != "" {
			return unsupported(reason)
		}
		raw, err := selectParser.ParseString("", trimmed)
		if err != nil {
			return unsupported("select outside minimal dialect: " + err.Error())
		}
		return convertSelect(text, raw)

	case strings.HasPrefix(lower, "insert"):
		raw, err := insertParser.ParseString("", trimmed)
		if err != nil {
			return unsupported("insert outside minimal dialect: " + err.Error())
		}
		return convertInsert(raw)

	case strings.HasPrefix(lower, "update"):
		raw, err := updateParser.ParseString("", trimmed)
		if err != nil {
			return unsupported("update outside minimal dialect: " + err.Error())
		}
		return convertUpdate(text, raw)

	case strings.HasPrefix(lower, "delete"):
		raw, err := deleteParser.ParseString("", trimmed)
		if err != nil {
			return unsupported("delete outside minimal dialect: " + err.Error())
		}
		return convertDelete(text, raw)

	case strings.HasPrefix(lower, "truncate"):
		raw, err := truncateParser.ParseString("", trimmed)
		if err != nil {
			return unsupported("truncate outside minimal dialect: " + err.Error())
		}
		return &ast.Truncate{Table: raw.Table}

	case strings.HasPrefix(lower, "refresh"):
		raw, err := refreshParser.ParseString("", trimmed)
		if err != nil {
			return unsupported("refresh outside minimal dialect: " + err.Error())
		}
		return &ast.Refresh{View: raw.View, Concurrently: raw.Concurrently}

	default:
		return unsupported("unrecognized leading keyword")
	}
}

func convertSelect(text string, raw *selectStmt) ast.Statement {
	stmt := &ast.Select{
		Table:   raw.Table,
		Columns: raw.Columns.Names,
		Limit:   raw.Limit,
	}
	if raw.Where != nil {
		for _, cond := range raw.Where.Conditions {
			pred, ok := convertCondition(cond)
			if !ok {
				return &ast.Unsupported{Text: text, Reason: "unparseable where segment"}
			}
			stmt.Predicates = append(stmt.Predicates, pred)
		}
	}
	for _, key := range raw.OrderBy {
		stmt.OrderBy = append(stmt.OrderBy, ast.OrderBy{
			Column:     key.Column,
			Descending: strings.EqualFold(key.Dir, "desc"),
		})
	}
	return stmt
}

func convertCondition(cond condition) (ast.Predicate, bool) {
	switch {
	case cond.OrNull != nil:
		// Both column references must name the same column.
		if !strings.EqualFold(cond.OrNull.Column, cond.OrNull.NullCheck) {
			return ast.Predicate{}, false
		}
		return ast.Predicate{
			Column:   cond.OrNull.Column,
			Operator: ast.OpEqOrNull,
			Param:    paramOrdinal(cond.OrNull.Param),
		}, true
	case cond.AnyOf != nil:
		return ast.Predicate{
			Column:   cond.AnyOf.Column,
			Operator: ast.OpAnyOf,
			Param:    paramOrdinal(cond.AnyOf.Param),
		}, true
	case cond.Cmp != nil:
		op, ok := comparisonOperator(cond.Cmp.Op)
		if !ok {
			return ast.Predicate{}, false
		}
		return ast.Predicate{
			Column:   cond.Cmp.Column,
			Operator: op,
			Param:    paramOrdinal(cond.Cmp.Param),
		}, true
	default:
		return ast.Predicate{}, false
	}
}

func convertInsert(raw *insertStmt) ast.Statement {
	return &ast.Insert{Table: raw.Table, Columns: raw.Columns}
}

func convertUpdate(text string, raw *updateStmt) ast.Statement {
	// Only single-column equality targeting is supported for UPDATE.
	if raw.Where.Op != "=" {
		return &ast.Unsupported{Text: text, Reason: "update where must be a single equality"}
	}
	stmt := &ast.Update{
		Table: raw.Table,
		Where: ast.Predicate{
			Column:   raw.Where.Column,
			Operator: ast.OpEq,
			Param:    paramOrdinal(raw.Where.Param),
		},
	}
	for _, set := range raw.Sets {
		stmt.Assignments = append(stmt.Assignments, ast.Assignment{
			Column: set.Column,
			Param:  paramOrdinal(set.Param),
		})
	}
	return stmt
}

func convertDelete(text string, raw *deleteStmt) ast.Statement {
	stmt := &ast.Delete{Table: raw.Table}
	if raw.Where != nil {
		if raw.Where.Op != "=" {
			return &ast.Unsupported{Text: text, Reason: "delete where must be a single equality"}
		}
		stmt.Where = &ast.Predicate{
			Column:   raw.Where.Column,
			Operator: ast.OpEq,
			Param:    paramOrdinal(raw.Where.Param),
		}
	}
	return stmt
}

func comparisonOperator(op string) (ast.Operator, bool) {
	switch op {
	case "=":
		return ast.OpEq, true
	case "!=", "<>":
		return ast.OpNeq, true
	case ">":
		return ast.OpGt, true
	case ">=":
		return ast.OpGte, true
	case "<":
		return ast.OpLt, true
	case "<=":
		return ast.OpLte, true
	default:
		return "", false
	}
}

// paramOrdinal converts a "$N" token to its 1-based ordinal. The lexer
// guarantees the digits, so a failed conversion cannot happen here.
func paramOrdinal(tok string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(tok, "$"))
	return n
}
