// Package adapters holds the engine adapters. Each adapter registers itself
// under one or more type aliases in its init function; connections are then
// created from a descriptor by looking up its type.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/adata/dbconn/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no driver registered for provided type alias")
)

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var registeredAdapters = make(map[string]core.Adapter)

// register registers a new adapter for specific database
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	adapter, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return adapter, nil
}

func (*Mux) AddAdapter(typ string, adapter core.Adapter) error {
	return register(adapter, typ)
}

// Aliases returns registered type aliases grouped by adapter name.
func (*Mux) Aliases() map[string][]string {
	out := make(map[string][]string)
	for alias, adapter := range registeredAdapters {
		out[adapter.Name()] = append(out[adapter.Name()], alias)
	}
	for _, aliases := range out {
		slices.Sort(aliases)
	}
	return out
}

// Names returns sorted adapter names.
func (m *Mux) Names() []string {
	var names []string
	for name := range m.Aliases() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NewConnection is a wrapper around core.NewConnection that uses the internal mux for
// adapter registration.
func NewConnection(ctx context.Context, params *core.ConnectionParams, opts ...core.ConnectionOption) (*core.Connection, error) {
	typ := params.Expand().Type

	adapter, err := new(Mux).GetAdapter(typ)
	if err != nil {
		return nil, core.NewConnectionError(typ, err)
	}

	return core.NewConnection(ctx, params, adapter, opts...)
}
