package builders

import "strings"

type clientConfig struct {
	name           string
	typeProcessors map[string]func(any) any
	affectedQuery  string
}

type ClientOption func(*clientConfig)

// WithName sets the driver name reported by connection errors.
func WithName(name string) ClientOption {
	return func(cc *clientConfig) {
		cc.name = name
	}
}

func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		t := strings.ToLower(typ)
		_, ok := cc.typeProcessors[t]
		if ok {
			// processor already registered for this type
			return
		}

		cc.typeProcessors[t] = fn
	}
}

// WithAffectedRowsQuery sets a query that is run on the same connection
// when a statement returns no columns, e.g. "SELECT changes()".
func WithAffectedRowsQuery(query string) ClientOption {
	return func(cc *clientConfig) {
		cc.affectedQuery = query
	}
}
