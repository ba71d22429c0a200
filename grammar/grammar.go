// Package grammar holds the default query and schema grammars of the
// supported engines. They compile builder state only; they are not a full
// dialect translation layer.
package grammar

import (
	"fmt"
	"strings"

	"github.com/adata/dbconn/core"
)

var _ core.Grammar = (*Base)(nil)

// Placeholder renders the n-th (1 based) binding placeholder.
type Placeholder func(n int) string

func QuestionMark(int) string  { return "?" }
func Dollar(n int) string      { return fmt.Sprintf("$%d", n) }
func AtP(n int) string         { return fmt.Sprintf("@p%d", n) }
func ColonNumber(n int) string { return fmt.Sprintf(":%d", n) }

// Base is an ANSI-ish grammar configurable by options.
type Base struct {
	quoteOpen   string
	quoteClose  string
	placeholder Placeholder
	// OFFSET .. ROWS FETCH NEXT .. ROWS ONLY instead of LIMIT .. OFFSET ..
	fetch bool
	// order clause to use with fetch when the query has none
	fetchDefaultOrder string
	// LIMIT used when only an offset is set
	offsetOnlyLimit string
}

type Option func(*Base)

func WithQuotes(open, close string) Option {
	return func(b *Base) {
		b.quoteOpen = open
		b.quoteClose = close
	}
}

func WithPlaceholder(p Placeholder) Option {
	return func(b *Base) {
		b.placeholder = p
	}
}

// WithFetch switches limit/offset to the OFFSET/FETCH form. defaultOrder is
// used when the query has no order, empty means none is required.
func WithFetch(defaultOrder string) Option {
	return func(b *Base) {
		b.fetch = true
		b.fetchDefaultOrder = defaultOrder
	}
}

// WithOffsetOnlyLimit sets the LIMIT value used for queries with an offset
// but no limit, for engines that do not accept a bare OFFSET.
func WithOffsetOnlyLimit(limit string) Option {
	return func(b *Base) {
		b.offsetOnlyLimit = limit
	}
}

func New(opts ...Option) *Base {
	b := &Base{
		quoteOpen:   `"`,
		quoteClose:  `"`,
		placeholder: QuestionMark,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Wrap quotes an identifier. Dotted parts are quoted one by one, "*" is left
// alone and "expr as alias" keeps the alias.
func (g *Base) Wrap(identifier string) string {
	identifier = strings.TrimSpace(identifier)

	if i := strings.Index(strings.ToLower(identifier), " as "); i > 0 {
		return g.Wrap(identifier[:i]) + " AS " + g.Wrap(identifier[i+4:])
	}

	parts := strings.Split(identifier, ".")
	for i, part := range parts {
		parts[i] = g.wrapValue(part)
	}
	return strings.Join(parts, ".")
}

func (g *Base) wrapValue(value string) string {
	if value == "*" {
		return value
	}
	escaped := strings.ReplaceAll(value, g.quoteClose, g.quoteClose+g.quoteClose)
	return g.quoteOpen + escaped + g.quoteClose
}

func (g *Base) columnize(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	wrapped := make([]string, len(columns))
	for i, col := range columns {
		wrapped[i] = g.Wrap(col)
	}
	return strings.Join(wrapped, ", ")
}

// compiler keeps placeholder numbering across a single statement.
type compiler struct {
	g        *Base
	sb       strings.Builder
	bindings []any
}

func (c *compiler) param(value any) string {
	c.bindings = append(c.bindings, value)
	return c.g.placeholder(len(c.bindings))
}

func (c *compiler) wheres(wheres []core.Where) {
	if len(wheres) == 0 {
		return
	}

	c.sb.WriteString(" WHERE ")
	for i, w := range wheres {
		if i > 0 {
			if w.Or {
				c.sb.WriteString(" OR ")
			} else {
				c.sb.WriteString(" AND ")
			}
		}
		c.where(w)
	}
}

func (c *compiler) where(w core.Where) {
	column := c.g.Wrap(w.Column)

	switch w.Operator {
	case "in", "not in":
		if len(w.Values) == 0 {
			// nothing is in an empty set
			if w.Operator == "in" {
				c.sb.WriteString("1 = 0")
			} else {
				c.sb.WriteString("1 = 1")
			}
			return
		}
		params := make([]string, len(w.Values))
		for i, v := range w.Values {
			params[i] = c.param(v)
		}
		fmt.Fprintf(&c.sb, "%s %s (%s)", column, strings.ToUpper(w.Operator), strings.Join(params, ", "))
	case "is null", "is not null":
		fmt.Fprintf(&c.sb, "%s %s", column, strings.ToUpper(w.Operator))
	default:
		fmt.Fprintf(&c.sb, "%s %s %s", column, strings.ToUpper(w.Operator), c.param(w.Value))
	}
}

func (c *compiler) orders(orders []core.Order) bool {
	if len(orders) == 0 {
		return false
	}

	parts := make([]string, len(orders))
	for i, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = c.g.Wrap(o.Column) + " " + dir
	}
	c.sb.WriteString(" ORDER BY ")
	c.sb.WriteString(strings.Join(parts, ", "))
	return true
}

func (c *compiler) limit(limit, offset int, ordered bool) {
	if limit <= 0 && offset <= 0 {
		return
	}

	if c.g.fetch {
		if !ordered && c.g.fetchDefaultOrder != "" {
			c.sb.WriteString(" ORDER BY " + c.g.fetchDefaultOrder)
		}
		fmt.Fprintf(&c.sb, " OFFSET %d ROWS", max(offset, 0))
		if limit > 0 {
			fmt.Fprintf(&c.sb, " FETCH NEXT %d ROWS ONLY", limit)
		}
		return
	}

	switch {
	case limit > 0:
		fmt.Fprintf(&c.sb, " LIMIT %d", limit)
	case c.g.offsetOnlyLimit != "":
		c.sb.WriteString(" LIMIT " + c.g.offsetOnlyLimit)
	}
	if offset > 0 {
		fmt.Fprintf(&c.sb, " OFFSET %d", offset)
	}
}

func (g *Base) CompileSelect(q *core.SelectQuery) (string, []any) {
	c := &compiler{g: g}

	c.sb.WriteString("SELECT ")
	if q.Distinct {
		c.sb.WriteString("DISTINCT ")
	}
	c.sb.WriteString(g.columnize(q.Columns))
	c.sb.WriteString(" FROM ")
	c.sb.WriteString(g.Wrap(q.Table))

	c.wheres(q.Wheres)
	ordered := c.orders(q.Orders)
	c.limit(q.Limit, q.Offset, ordered)

	return c.sb.String(), c.bindings
}

func (g *Base) CompileInsert(table string, columns []string, values []any) (string, []any) {
	c := &compiler{g: g}

	params := make([]string, len(values))
	for i, v := range values {
		params[i] = c.param(v)
	}

	fmt.Fprintf(&c.sb, "INSERT INTO %s (%s) VALUES (%s)",
		g.Wrap(table),
		g.columnize(columns),
		strings.Join(params, ", "),
	)

	return c.sb.String(), c.bindings
}

func (g *Base) CompileUpdate(q *core.SelectQuery, columns []string, values []any) (string, []any) {
	c := &compiler{g: g}

	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = g.Wrap(col) + " = " + c.param(values[i])
	}

	fmt.Fprintf(&c.sb, "UPDATE %s SET %s", g.Wrap(q.Table), strings.Join(sets, ", "))
	c.wheres(q.Wheres)

	return c.sb.String(), c.bindings
}

func (g *Base) CompileDelete(q *core.SelectQuery) (string, []any) {
	c := &compiler{g: g}

	c.sb.WriteString("DELETE FROM " + g.Wrap(q.Table))
	c.wheres(q.Wheres)

	return c.sb.String(), c.bindings
}
