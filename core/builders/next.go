package builders

import (
	"context"

	"github.com/adata/dbconn/core"
)

// NextSingle creates next and hasNext functions from a provided single value
func NextSingle(value any) (func() (core.Row, error), func() bool) {
	has := true

	// iterator functions
	next := func() (core.Row, error) {
		if !has {
			return nil, core.ErrNoNextRow
		}
		has = false
		return core.Row{value}, nil
	}

	hasNext := func() bool {
		return has
	}

	return next, hasNext
}

// NextSlice creates next and hasNext functions from provided values
// preprocessor is an optional function which parses a single value from slice before adding it to a row
func NextSlice[T any](values []T, preprocess func(T) any) (func() (core.Row, error), func() bool) {
	if preprocess == nil {
		preprocess = func(v T) any { return v }
	}

	index := 0

	hasNext := func() bool {
		return index < len(values)
	}

	// iterator functions
	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, core.ErrNoNextRow
		}

		row := core.Row{preprocess(values[index])}
		index++
		return row, nil
	}

	return next, hasNext
}

// NextRows creates next and hasNext functions from already materialized rows.
// Rows are returned as they are, without copying.
func NextRows(rows []core.Row) (func() (core.Row, error), func() bool) {
	index := 0

	hasNext := func() bool {
		return index < len(rows)
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, core.ErrNoNextRow
		}

		row := rows[index]
		index++
		return row, nil
	}

	return next, hasNext
}

// NextNil creates next and hasNext functions that don't return anything (no rows)
func NextNil() (func() (core.Row, error), func() bool) {
	hasNext := func() bool {
		return false
	}

	// iterator functions
	next := func() (core.Row, error) {
		return nil, core.ErrNoNextRow
	}

	return next, hasNext
}

// NextYield creates next and hasNext functions from a producer function which
// runs in its own goroutine. Every yield call becomes one row. hasNext blocks
// until a row is ready or the producer returned. An error returned by the
// producer is reported by the next call of next.
//
// Canceling ctx unblocks the producer; pending yields are dropped.
func NextYield(ctx context.Context, fn func(yield func(...any)) error) (func() (core.Row, error), func() bool) {
	rowsCh := make(chan core.Row)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowsCh)

		err := fn(func(v ...any) {
			select {
			case rowsCh <- core.Row(v):
			case <-ctx.Done():
			}
		})
		if err != nil {
			errCh <- err
		}
	}()

	var (
		current  core.Row
		err      error
		pending  bool
		finished bool
	)

	hasNext := func() bool {
		if finished {
			return false
		}
		if pending {
			return true
		}

		select {
		case row, ok := <-rowsCh:
			if ok {
				current, pending = row, true
				return true
			}
		case <-ctx.Done():
			err, pending = ctx.Err(), true
			return true
		}

		// producer returned
		select {
		case e := <-errCh:
			err, pending = e, true
			return true
		default:
		}

		finished = true
		return false
	}

	next := func() (core.Row, error) {
		if !hasNext() {
			return nil, core.ErrNoNextRow
		}
		pending = false

		if err != nil {
			finished = true
			return nil, err
		}
		return current, nil
	}

	return next, hasNext
}
