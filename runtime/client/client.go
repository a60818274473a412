// Package client provides the pool-shaped facade application code
// queries through. The shape matches a traditional connection pool for
// call-site compatibility; the backend underneath is a stateless
// resource API, so connections carry no state and Release is a no-op.
package client

import (
	"context"
	"log"
	"sync"

	"github.com/sqlbridge/sqlbridge/config"
	"github.com/sqlbridge/sqlbridge/rest"
	"github.com/sqlbridge/sqlbridge/translate"
)

// Pool is the single entry point the rest of the system depends on.
type Pool struct {
	translator  *translate.Translator
	rest        *rest.Client
	middlewares []Middleware
	logf        func(format string, args ...any)
	txWarn      sync.Once
}

// NewPool creates a pool over an existing REST client.
func NewPool(restClient *rest.Client) *Pool {
	return &Pool{
		translator: translate.New(restClient),
		rest:       restClient,
		logf:       log.Printf,
	}
}

// NewPoolFromConfig creates a pool from loaded configuration.
func NewPoolFromConfig(cfg *config.Config) *Pool {
	restClient := rest.NewClientWithHTTP(cfg.URL, cfg.ServiceKey, cfg.HTTPClient())
	p := NewPool(restClient)
	p.translator.ExecFunction = cfg.ExecFunction
	return p
}

// SetLogger redirects pool warnings and middleware logging.
func (p *Pool) SetLogger(logf func(format string, args ...any)) {
	p.logf = logf
	p.translator.Logf = logf
}

// Connect verifies the backend is reachable. There is no persistent
// connection to establish.
func (p *Pool) Connect(ctx context.Context) error {
	return p.rest.Ping(ctx)
}

// Query executes one statement. Params are positional, referenced as
// $1, $2, ... in the text. The result's Rows is never nil and RowCount
// always equals len(Rows).
func (p *Pool) Query(ctx context.Context, text string, params ...any) (*translate.Result, error) {
	var result *translate.Result
	err := p.executeWithMiddleware(ctx, text, params, func() error {
		var execErr error
		result, execErr = p.translator.Exec(ctx, text, params)
		return execErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Conn is a checked-out handle. It exists purely for call sites written
// against a pool API; it shares the pool's stateless execution path.
type Conn struct {
	pool *Pool
}

// Acquire checks out a connection handle.
func (p *Pool) Acquire() *Conn {
	return &Conn{pool: p}
}

// Query executes a statement on the handle.
func (c *Conn) Query(ctx context.Context, text string, params ...any) (*translate.Result, error) {
	return c.pool.Query(ctx, text, params...)
}

// Release returns the handle. It is a no-op: there is nothing to
// return.
func (c *Conn) Release() {}

// WithClient acquires a handle, runs fn, and releases it.
func (p *Pool) WithClient(ctx context.Context, fn func(*Conn) error) error {
	conn := p.Acquire()
	defer conn.Release()
	return fn(conn)
}
