// Package client provides middleware support for query hooks.
package client

import (
	"context"
	"time"
)

// QueryEvent describes one statement execution for middleware.
type QueryEvent struct {
	Statement string
	Params    []any
	Duration  time.Duration
	Error     error
	Start     time.Time
	End       time.Time
}

// Middleware intercepts statement execution. Call next to continue the
// chain; the event's Duration and Error are populated once next
// returns.
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

// Use appends a middleware to the pool's chain.
func (p *Pool) Use(middleware Middleware) {
	p.middlewares = append(p.middlewares, middleware)
}

func (p *Pool) executeWithMiddleware(ctx context.Context, text string, params []any, exec func() error) error {
	if len(p.middlewares) == 0 {
		return exec()
	}

	event := &QueryEvent{
		Statement: text,
		Params:    params,
		Start:     time.Now(),
	}

	var next func() error
	index := 0

	next = func() error {
		if index >= len(p.middlewares) {
			err := exec()
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Error = err
			return err
		}
		middleware := p.middlewares[index]
		index++
		return middleware(ctx, event, next)
	}

	return next()
}

// LoggingMiddleware logs one line per statement once it has finished,
// with its duration and outcome.
func LoggingMiddleware(logger func(format string, args ...any)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil {
			logger("%s (%v): %v", event.Statement, event.Duration, err)
		} else {
			logger("%s (%v)", event.Statement, event.Duration)
		}
		return err
	}
}

// SlowStatementMiddleware invokes onSlow for statements that take
// longer than threshold, successful or not.
func SlowStatementMiddleware(threshold time.Duration, onSlow func(statement string, duration time.Duration)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if event.Duration > threshold && onSlow != nil {
			onSlow(event.Statement, event.Duration)
		}
		return err
	}
}

// ErrorMiddleware invokes onError for every failed statement.
func ErrorMiddleware(onError func(statement string, err error)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil && onError != nil {
			onError(event.Statement, err)
		}
		return err
	}
}
