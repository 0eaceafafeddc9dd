// Package schema holds the postgres DDL the service expects
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"interestd/internal/platform/store"
)

//go:embed *.sql
var files embed.FS

// Execer is the part of a querier Apply needs
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error)
}

// Files returns the migration file names in apply order
func Files() []string {
	names, _ := fs.Glob(files, "*.sql")
	sort.Strings(names)
	return names
}

// Apply runs every migration in order; statements are idempotent
func Apply(ctx context.Context, q Execer) error {
	for _, name := range Files() {
		body, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", name, err)
		}
		if _, err := q.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("schema: apply %s: %w", name, err)
		}
	}
	return nil
}
