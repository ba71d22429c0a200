// Package testhelpers provides container helpers for integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/testcontainers/testcontainers-go"

	"github.com/adata/dbconn/core"
)

// GetContainerProvider returns the container provider type to use for the tests.
// If we detect podman is available, we use it, otherwise we use docker.
func GetContainerProvider() testcontainers.ProviderType {
	if _, err := exec.LookPath("podman"); err == nil {
		fmt.Println("Podman detected. Remember to set TESTCONTAINERS_RYUK_CONTAINER_PRIVILEGED=true;")
		return testcontainers.ProviderPodman
	}
	return testcontainers.ProviderDocker
}

// Seed runs the statements one by one and stops at the first failure.
func Seed(ctx context.Context, conn *core.Connection, statements ...string) error {
	for _, stmt := range statements {
		if _, err := conn.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("seed %q: %w", stmt, err)
		}
	}
	return nil
}
