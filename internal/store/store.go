package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/config"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

// ErrNotFound is returned when a layout set does not exist.
var ErrNotFound = errors.New("layout set not found")

// Store persists named layout sets.
type Store interface {
	// Sets lists the stored set names.
	Sets(ctx context.Context) ([]string, error)
	// Load returns a copy of one set, or ErrNotFound.
	Load(ctx context.Context, set string) (grid.Layouts, error)
	// Save replaces a set, creating it if needed.
	Save(ctx context.Context, set string, layouts grid.Layouts) error
	// Delete removes a set, or returns ErrNotFound.
	Delete(ctx context.Context, set string) error
}

// Open returns the store selected by the config's storage driver.
// configPath is the file the file store writes back to.
func Open(ctx context.Context, cfg *config.Config, configPath string) (Store, error) {
	st := cfg.GetStorage()
	switch st.Driver {
	case config.DriverFile:
		return NewFileStore(cfg, configPath), nil
	case config.DriverPostgres:
		if st.DSN == "" {
			return nil, fmt.Errorf("storage driver %s requires a dsn", st.Driver)
		}
		db, err := OpenDB(st.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.Seed(ctx, cfg); err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown storage driver '%s'", st.Driver)
	}
}
