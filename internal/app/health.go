package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/cinevault/internal/catalog"
)

const healthTimeout = 3 * time.Second

// ensureCatalogAvailable probes the backend health endpoint once.
func ensureCatalogAvailable(ctx context.Context, client *catalog.Client) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if _, err := client.FetchJSON(ctx, "/api/health"); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}
