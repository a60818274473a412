package parser

// Raw parse tree structures matching the grammar. These are converted
// to ast.Statement values after parsing; parameter references stay as
// raw "$N" strings until conversion.

type selectStmt struct {
	Columns columnList   `parser:"'select' @@"`
	Table   string       `parser:"'from' @Ident"`
	Where   *whereClause `parser:"('where' @@)?"`
	OrderBy []orderKey   `parser:"('order' 'by' @@ (',' @@)*)?"`
	Limit   *int         `parser:"('limit' @Number)? ';'?"`
}

type columnList struct {
	Star  bool     `parser:"@Star"`
	Names []string `parser:"| @Ident (',' @Ident)*"`
}

type whereClause struct {
	Conditions []condition `parser:"@@ ('and' @@)*"`
}

// condition is one AND-split segment. The three recognized forms, in
// precedence order: parenthesized equals-or-null, = ANY($N), and a
// plain comparison.
type condition struct {
	OrNull *orIsNullCond   `parser:"@@"`
	AnyOf  *anyOfCond      `parser:"| @@"`
	Cmp    *comparisonCond `parser:"| @@"`
}

// orIsNullCond matches `(col = $N OR col IS NULL)`. Both column
// references must name the same column; conversion enforces that.
type orIsNullCond struct {
	Column    string `parser:"'(' @Ident '='"`
	Param     string `parser:"@Param 'or'"`
	NullCheck string `parser:"@Ident 'is' 'null' ')'"`
}

// anyOfCond matches `col = ANY($N)`.
type anyOfCond struct {
	Column string `parser:"@Ident '=' 'any' '('"`
	Param  string `parser:"@Param ')'"`
}

// comparisonCond matches `col <op> $N`.
type comparisonCond struct {
	Column string `parser:"@Ident"`
	Op     string `parser:"@Operator"`
	Param  string `parser:"@Param"`
}

type orderKey struct {
	Column string `parser:"@Ident"`
	Dir    string `parser:"@('asc' | 'desc')?"`
}

type insertStmt struct {
	Table   string   `parser:"'insert' 'into' @Ident"`
	Columns []string `parser:"'(' @Ident (',' @Ident)* ')'"`
	Params  []string `parser:"'values' '(' @Param (',' @Param)* ')' ';'?"`
}

type updateStmt struct {
	Table string          `parser:"'update' @Ident 'set'"`
	Sets  []assignment    `parser:"@@ (',' @@)*"`
	Where *comparisonCond `parser:"'where' @@ ';'?"`
}

type assignment struct {
	Column string `parser:"@Ident '='"`
	Param  string `parser:"@Param"`
}

type deleteStmt struct {
	Table string          `parser:"'delete' 'from' @Ident"`
	Where *comparisonCond `parser:"('where' @@)? ';'?"`
}

type truncateStmt struct {
	Table string `parser:"'truncate' 'table'? @Ident ';'?"`
}

type refreshStmt struct {
	Concurrently bool   `parser:"'refresh' 'materialized' 'view' @'concurrently'?"`
	View         string `parser:"@Ident ';'?"`
}
