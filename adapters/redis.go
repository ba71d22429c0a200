package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/adata/dbconn/core"
	"github.com/adata/dbconn/core/builders"
	"github.com/adata/dbconn/grammar"
)

// Register client
func init() {
	_ = register(&Redis{}, "redis")
}

var _ core.Adapter = (*Redis)(nil)

// Redis runs plain redis commands. It has no query grammar: builders
// report core.ErrMissingGrammar.
type Redis struct{}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Dialect() core.Dialect { return grammar.KeyValue() }

// Connect uses Database as the numeric database index.
func (r *Redis) Connect(_ context.Context, params *core.ConnectionParams) (core.Driver, error) {
	opt, err := redisOptions(params)
	if err != nil {
		return nil, err
	}

	return &redisDriver{
		redis: redis.NewClient(opt),
	}, nil
}

func redisOptions(params *core.ConnectionParams) (*redis.Options, error) {
	if params.URL != "" {
		opt, err := redis.ParseURL(params.URL)
		if err != nil {
			return nil, fmt.Errorf("redis.ParseURL: %w", err)
		}
		return opt, nil
	}

	db := 0
	if params.Database != "" {
		var err error
		db, err = strconv.Atoi(params.Database)
		if err != nil {
			return nil, fmt.Errorf("redis database must be a number: %w", err)
		}
	}

	return &redis.Options{
		Addr:     params.Address(),
		Username: params.User,
		Password: params.Password,
		DB:       db,
	}, nil
}

var (
	_ core.Driver = (*redisDriver)(nil)
	_ core.Pinger = (*redisDriver)(nil)
)

type redisDriver struct {
	redis *redis.Client
}

func redisResponseToNext(response any) (func() (core.Row, error), func() bool) {
	// parse response
	switch resp := response.(type) {
	case string, int64, map[any]any:
		return builders.NextSingle(newRedisResponse(resp))
	case []any:
		return builders.NextSlice(resp, newRedisResponse)
	default:
		return builders.NextNil()
	}
}

// Query parses the command line and appends bindings as extra arguments.
// "KEYS pattern" is served by SCAN so that large keyspaces are streamed.
func (c *redisDriver) Query(ctx context.Context, query string, bindings ...any) (core.ResultStream, error) {
	cmd, err := parseRedisCmd(query)
	if err != nil {
		return nil, err
	}
	cmd = append(cmd, bindings...)
	if len(cmd) < 1 {
		return nil, errors.New("empty command")
	}

	if name, _ := cmd[0].(string); strings.EqualFold(name, "keys") && len(cmd) == 2 {
		return c.scan(ctx, fmt.Sprint(cmd[1])), nil
	}

	response, err := c.redis.Do(ctx, cmd...).Result()
	if errors.Is(err, redis.Nil) {
		response, err = nil, nil
	}
	if err != nil {
		return nil, c.classify(err)
	}

	next, hasNext := redisResponseToNext(response)

	// build result
	return builders.NewResultStreamBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(core.Header{"Reply"}).
		Build(), nil
}

func (c *redisDriver) scan(ctx context.Context, pattern string) core.ResultStream {
	ctx, cancel := context.WithCancel(ctx)

	next, hasNext := builders.NextYield(ctx, func(yield func(...any)) error {
		iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			yield(newRedisResponse(iter.Val()))
		}
		return c.classify(iter.Err())
	})

	return builders.NewResultStreamBuilder().
		WithNextFunc(next, hasNext).
		WithHeader(core.Header{"Reply"}).
		WithCloseFunc(cancel).
		Build()
}

func (c *redisDriver) classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, redis.ErrClosed) || errors.As(err, &netErr) {
		return core.NewConnectionError("redis", err)
	}
	return err
}

func (c *redisDriver) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

func (c *redisDriver) Close() {
	_ = c.redis.Close()
}

// printSlice pretty prints nested slice using recursion
func printSlice(slice []any, level int) string {
	prefix := strings.Repeat("  ", level)

	var ret []string
	for _, v := range slice {
		if nested, ok := v.([]any); ok {
			ret = append(ret, printSlice(nested, level+1))
		} else {
			ret = append(ret, fmt.Sprintf("%s%v", prefix, v))
		}
	}
	return strings.Join(ret, "\n")
}

// printMap pretty prints map records
func printMap(m map[any]any) string {
	var ret []string
	for k, v := range m {
		ret = append(ret, fmt.Sprintf("%v: %v", k, v))
	}

	return strings.Join(ret, "\n")
}

// redisResponse serves as a wrapper around the redis response
// to stringify the return values
type redisResponse struct {
	Value any
}

// a preprocessor for redis response
func newRedisResponse(val any) any {
	return &redisResponse{
		Value: val,
	}
}

func (rr *redisResponse) String() string {
	switch value := rr.Value.(type) {
	case []any:
		return printSlice(value, 0)
	case map[any]any:
		return printMap(value)
	}
	return fmt.Sprint(rr.Value)
}

func (rr *redisResponse) MarshalJSON() ([]byte, error) {
	m, ok := rr.Value.(map[any]any)
	if ok {
		ret := make(map[string]any)
		for k, v := range m {
			ret[fmt.Sprint(k)] = v
		}
		return json.Marshal(ret)
	}
	return json.Marshal(rr.Value)
}

// ErrUnmatchedDoubleQuote and ErrUnmatchedSingleQuote are errors returned from parseRedisCmd
var (
	ErrUnmatchedDoubleQuote = func(position int) error { return fmt.Errorf("syntax error: unmatched double quote at: %d", position) }
	ErrUnmatchedSingleQuote = func(position int) error { return fmt.Errorf("syntax error: unmatched single quote at: %d", position) }
)

// parseRedisCmd parses string command into args for redis.Do
func parseRedisCmd(unparsed string) ([]any, error) {
	quoteErr := func(quote rune, position int) error {
		if quote == '"' {
			return ErrUnmatchedDoubleQuote(position)
		}
		return ErrUnmatchedSingleQuote(position)
	}

	var (
		fields []any
		blank  rune
		quote  struct {
			char     rune
			position int
		}
		escaped bool
	)

	sb := &strings.Builder{}
	for i, r := range unparsed {
		// unescaped quotes open or close a field
		if !escaped && (r == '"' || r == '\'') {
			next := byte(' ')
			if i < len(unparsed)-1 {
				next = unparsed[i+1]
			}

			if r == quote.char {
				if next != ' ' {
					return nil, quoteErr(r, i+1)
				}
				quote.char = blank
				continue
			} else if quote.char == blank {
				quote.char = r
				quote.position = i + 1
				continue
			}
		}

		if r == '\\' {
			escaped = true
			continue
		}

		// word end
		if quote.char == blank && r == ' ' {
			if sb.Len() > 0 {
				fields = append(fields, sb.String())
				sb.Reset()
			}
			continue
		}

		escaped = false
		sb.WriteRune(r)
	}

	if quote.char != blank {
		return nil, quoteErr(quote.char, quote.position)
	}

	if sb.Len() > 0 {
		fields = append(fields, sb.String())
	}

	return fields, nil
}
