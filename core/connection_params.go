package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

type ConnectionID string

// ConnectionParams is the connection descriptor. Adapters format it into
// whatever their native client expects. URL, when set, is passed to the
// client as is and takes precedence over the discrete fields.
type ConnectionParams struct {
	ID       ConnectionID      `mapstructure:"id"`
	Name     string            `mapstructure:"name"`
	Type     string            `mapstructure:"type"`
	Host     string            `mapstructure:"host"`
	Port     int               `mapstructure:"port"`
	User     string            `mapstructure:"user"`
	Password string            `mapstructure:"password"`
	Database string            `mapstructure:"database"`
	URL      string            `mapstructure:"url"`
	Options  map[string]string `mapstructure:"options"`
}

// Expand returns a copy of the original parameters with expanded fields.
// Fields whose template fails keep their literal value.
func (p *ConnectionParams) Expand() *ConnectionParams {
	expanded, _ := p.expand()
	return expanded
}

// ExpandStrict is Expand that also reports every field whose template
// failed to parse or execute.
func (p *ConnectionParams) ExpandStrict() (*ConnectionParams, error) {
	return p.expand()
}

func (p *ConnectionParams) expand() (*ConnectionParams, error) {
	var errs []error
	field := func(name, value string) string {
		ex, err := expand(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			return value
		}
		return ex
	}

	var options map[string]string
	if p.Options != nil {
		options = make(map[string]string, len(p.Options))
		for _, k := range slices.Sorted(maps.Keys(p.Options)) {
			options[k] = field("options."+k, p.Options[k])
		}
	}

	expanded := &ConnectionParams{
		ID:       ConnectionID(field("id", string(p.ID))),
		Name:     field("name", p.Name),
		Type:     field("type", p.Type),
		Host:     field("host", p.Host),
		Port:     p.Port,
		User:     field("user", p.User),
		Password: field("password", p.Password),
		Database: field("database", p.Database),
		URL:      field("url", p.URL),
		Options:  options,
	}

	return expanded, errors.Join(errs...)
}

// Validate reports descriptors that no adapter could connect with.
func (p *ConnectionParams) Validate() error {
	if strings.TrimSpace(p.Type) == "" {
		return fmt.Errorf("%w: missing type", ErrInvalidParams)
	}
	if strings.TrimSpace(p.Host) == "" && strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("%w: either host or url is required", ErrInvalidParams)
	}
	if p.Port < 0 || p.Port > 65535 {
		return fmt.Errorf("%w: port out of range: %d", ErrInvalidParams, p.Port)
	}
	return nil
}

// Address returns "host:port", or just the host if no port is set.
func (p *ConnectionParams) Address() string {
	if p.Port == 0 {
		return p.Host
	}
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Option returns the named driver option or the fallback.
func (p *ConnectionParams) Option(name, fallback string) string {
	if v, ok := p.Options[name]; ok {
		return v
	}
	return fallback
}

func (p *ConnectionParams) clone() *ConnectionParams {
	c := *p
	c.Options = maps.Clone(p.Options)
	return &c
}

// MarshalJSON never includes the password.
func (p *ConnectionParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Host     string `json:"host,omitempty"`
		Port     int    `json:"port,omitempty"`
		User     string `json:"user,omitempty"`
		Database string `json:"database,omitempty"`
	}{
		ID:       string(p.ID),
		Name:     p.Name,
		Type:     p.Type,
		Host:     p.Host,
		Port:     p.Port,
		User:     p.User,
		Database: p.Database,
	})
}
