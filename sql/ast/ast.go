// Package ast defines the statement AST produced by the SQL parser.
package ast

// Statement is a parsed SQL statement.
type Statement interface {
	Kind() Kind
}

// Kind discriminates statement variants.
type Kind string

const (
	KindSelect      Kind = "Select"
	KindInsert      Kind = "Insert"
	KindUpdate      Kind = "Update"
	KindDelete      Kind = "Delete"
	KindTruncate    Kind = "Truncate"
	KindRefresh     Kind = "Refresh"
	KindUnsupported Kind = "Unsupported"
)

// Select is a single-table SELECT restricted to AND-joined predicates,
// ORDER BY, and LIMIT.
type Select struct {
	Table      string
	Columns    []string // empty means *
	Predicates []Predicate
	OrderBy    []OrderBy
	Limit      *int
}

func (s *Select) Kind() Kind { return KindSelect }

// Insert is a single-row INSERT with an explicit column list.
type Insert struct {
	Table   string
	Columns []string
}

func (s *Insert) Kind() Kind { return KindInsert }

// Update is a single-table UPDATE targeted by one equality predicate.
type Update struct {
	Table       string
	Assignments []Assignment
	Where       Predicate
}

func (s *Update) Kind() Kind { return KindUpdate }

// Delete is a single-table DELETE. Where is nil when the statement
// carried no WHERE clause; the translator rejects that case.
type Delete struct {
	Table string
	Where *Predicate
}

func (s *Delete) Kind() Kind { return KindDelete }

// Truncate removes all rows from a table.
type Truncate struct {
	Table string
}

func (s *Truncate) Kind() Kind { return KindTruncate }

// Refresh refreshes a materialized view.
type Refresh struct {
	View         string
	Concurrently bool
}

func (s *Refresh) Kind() Kind { return KindRefresh }

// Unsupported marks a statement outside the minimal dialect. The raw
// text is executed through the fallback path instead.
type Unsupported struct {
	Text   string
	Reason string
}

func (s *Unsupported) Kind() Kind { return KindUnsupported }

// Operator is a predicate comparison operator.
type Operator string

const (
	OpEq  Operator = "eq"
	OpNeq Operator = "neq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	// OpAnyOf matches `col = ANY($N)`; the parameter must be a slice.
	OpAnyOf Operator = "anyof"
	// OpEqOrNull matches `(col = $N OR col IS NULL)`.
	OpEqOrNull Operator = "eq_or_null"
)

// Predicate is one column/operator/parameter condition. Param is the
// 1-based positional parameter ordinal referenced by the statement.
type Predicate struct {
	Column   string
	Operator Operator
	Param    int
}

// Assignment is one `col = $N` pair in an UPDATE SET list.
type Assignment struct {
	Column string
	Param  int
}

// OrderBy is one ORDER BY key; earlier entries take priority.
type OrderBy struct {
	Column     string
	Descending bool
}
