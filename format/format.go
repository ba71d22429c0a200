// Package format renders result chunks for terminals and files.
package format

import (
	"fmt"
	"slices"

	"github.com/adata/dbconn/core"
)

var formatters = map[string]func() core.Formatter{
	"table": func() core.Formatter { return NewTable() },
	"json":  func() core.Formatter { return NewJSON() },
	"csv":   func() core.Formatter { return NewCSV() },
}

// Get returns the formatter registered under name.
func Get(name string) (core.Formatter, error) {
	newFormatter, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q, expected one of %v", name, Names())
	}
	return newFormatter(), nil
}

func Names() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
