package builders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
)

func testNextYield(t *testing.T, sleep bool) {
	r := require.New(t)

	rows := [][]any{{"first", "row"}, {"second"}, {"third"}, {"fourth"}, {"fifth"}, {"and", "last", "row"}}

	next, hasNext := builders.NextYield(context.Background(), func(yield func(...any)) error {
		for i, row := range rows {
			if sleep && (i == 2 || i == 4) {
				time.Sleep(100 * time.Millisecond)
			}
			yield(row...)
		}

		return nil
	})

	i := 0
	for hasNext() {
		row, err := next()

		r.NoError(err)

		r.NotEqual(0, len(row))

		r.Equal(core.Row(rows[i]), row)

		i++
	}

	r.Equal(len(rows), i)
}

func TestNextYield_Success(t *testing.T) {
	// test with random sleeping
	testNextYield(t, true)

	for i := 0; i < 1000; i++ {
		testNextYield(t, false)
	}
}

func TestNextYield_Error(t *testing.T) {
	r := require.New(t)
	expectedError := errors.New("expected error")

	next, hasNext := builders.NextYield(context.Background(), func(yield func(...any)) error {
		yield("before failure")
		return expectedError
	})

	r.True(hasNext())
	row, err := next()
	r.NoError(err)
	r.Equal(core.Row{"before failure"}, row)

	r.True(hasNext())
	_, err = next()
	r.ErrorIs(err, expectedError)

	r.False(hasNext())
}

func TestNextYield_NoRows(t *testing.T) {
	_, hasNext := builders.NextYield(context.Background(), func(yield func(...any)) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	require.False(t, hasNext())
}

func TestNextYield_SingleRow(t *testing.T) {
	r := require.New(t)
	next, hasNext := builders.NextYield(context.Background(), func(yield func(...any)) error {
		yield(1)
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	r.True(hasNext())
	// repeated checks don't consume rows
	r.True(hasNext())

	row, err := next()
	r.NoError(err)
	r.Equal(1, len(row))
	r.Equal(1, row[0])

	r.False(hasNext())
}

func TestNextYield_Canceled(t *testing.T) {
	r := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	produced := make(chan struct{})

	next, hasNext := builders.NextYield(ctx, func(yield func(...any)) error {
		yield("only")
		close(produced)
		<-ctx.Done()
		return nil
	})

	r.True(hasNext())
	_, err := next()
	r.NoError(err)

	<-produced
	cancel()

	if hasNext() {
		_, err = next()
		r.ErrorIs(err, context.Canceled)
	}
	r.False(hasNext())
}

func TestNextSlice(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSlice([]int{1, 2, 3}, func(i int) any { return i * 10 })

	var got []core.Row
	for hasNext() {
		row, err := next()
		r.NoError(err)
		got = append(got, row)
	}

	r.Equal([]core.Row{{10}, {20}, {30}}, got)

	_, err := next()
	r.ErrorIs(err, core.ErrNoNextRow)
}

func TestNextSingle(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSingle("reply")

	r.True(hasNext())
	row, err := next()
	r.NoError(err)
	r.Equal(core.Row{"reply"}, row)
	r.False(hasNext())
}
