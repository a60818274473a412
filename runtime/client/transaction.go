// Package client provides the transaction-shaped facade.
package client

import (
	"context"

	"github.com/sqlbridge/sqlbridge/translate"
)

// Tx is a transaction in shape only. The backend has no transaction
// primitive, so statements issued through a Tx execute immediately and
// independently: there is NO atomicity, NO isolation, and NO rollback.
// A failure partway through a callback leaves earlier statements
// applied. Callers that need multi-statement atomicity must move that
// logic into a server-side remote procedure instead.
type Tx struct {
	pool *Pool
}

// Query executes a statement. Despite the receiver, the statement is
// applied immediately; a later failure in the same callback will not
// undo it.
func (tx *Tx) Query(ctx context.Context, text string, params ...any) (*translate.Result, error) {
	return tx.pool.Query(ctx, text, params...)
}

// WithTransaction runs fn against the same stateless execution path as
// Query. The first use logs a warning so the missing guarantee is not
// silently hidden.
func (p *Pool) WithTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	p.txWarn.Do(func() {
		p.logf("warning: WithTransaction provides no atomicity; statements apply immediately and cannot be rolled back")
	})
	return fn(&Tx{pool: p})
}
