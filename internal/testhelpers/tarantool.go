package testhelpers

import (
	"context"
	"fmt"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/adata/dbconn/adapters"
	"github.com/adata/dbconn/core"
)

const (
	tarantoolUser     = "dbconn"
	tarantoolPassword = "dbconn"
)

type TarantoolContainer struct {
	tc.Container
	Address string
	Conn    *core.Connection
}

// NewTarantoolContainer starts the official image with a user that may run
// SQL. Host, Port, User and Password of params are overwritten.
func NewTarantoolContainer(ctx context.Context, params *core.ConnectionParams) (*TarantoolContainer, error) {
	ctr, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ProviderType: GetContainerProvider(),
		ContainerRequest: tc.ContainerRequest{
			Image:        "tarantool/tarantool:3",
			ExposedPorts: []string{"3301/tcp"},
			Env: map[string]string{
				"TARANTOOL_USER_NAME":     tarantoolUser,
				"TARANTOOL_USER_PASSWORD": tarantoolPassword,
			},
			WaitingFor: wait.ForListeningPort("3301/tcp"),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		return nil, err
	}
	port, err := ctr.MappedPort(ctx, "3301/tcp")
	if err != nil {
		return nil, err
	}

	if params.Type == "" {
		params.Type = "tarantool"
	}
	params.Host = host
	params.Port = port.Int()
	params.User = tarantoolUser
	params.Password = tarantoolPassword

	conn, err := adapters.NewConnection(ctx, params)
	if err != nil {
		return nil, err
	}

	return &TarantoolContainer{
		Container: ctr,
		Address:   fmt.Sprintf("%s:%d", host, port.Int()),
		Conn:      conn,
	}, nil
}
