package mock

import (
	"time"

	"github.com/adata/dbconn/core"
)

type resultStreamConfig struct {
	nextSleep time.Duration
	columns   []*core.Column
	failAt    int
	failErr   error
	onNext    func(pulled int)
	onClose   func()
}

type ResultStreamOption func(*resultStreamConfig)

func ResultStreamWithNextSleep(s time.Duration) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.nextSleep = s
	}
}

func ResultStreamWithColumns(columns []*core.Column) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.columns = columns
	}
}

// ResultStreamWithHeader sets untyped columns with the given names.
func ResultStreamWithHeader(header core.Header) ResultStreamOption {
	return func(c *resultStreamConfig) {
		columns := make([]*core.Column, len(header))
		for i, name := range header {
			columns[i] = &core.Column{Name: name}
		}
		c.columns = columns
	}
}

// ResultStreamWithFailure makes the row at index fail with err.
// The stream yields nothing after the failure.
func ResultStreamWithFailure(index int, err error) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.failAt = index
		c.failErr = err
	}
}

// ResultStreamWithOnNext registers a hook called after every produced row.
func ResultStreamWithOnNext(fn func(pulled int)) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.onNext = fn
	}
}

func ResultStreamWithOnClose(fn func()) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.onClose = fn
	}
}
