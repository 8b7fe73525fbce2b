package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/config"
	"github.com/timjtrainor/Trainium-Job-Center-sub004/internal/grid"
)

// LayoutRecord is one breakpoint of one layout set.
type LayoutRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SetName    string `gorm:"uniqueIndex:idx_set_breakpoint;not null" json:"set"`
	Breakpoint string `gorm:"uniqueIndex:idx_set_breakpoint;not null" json:"breakpoint"`
	// Items is the breakpoint's layout encoded as JSON.
	Items string `gorm:"type:text;not null" json:"items"`
}

// DBStore keeps layout sets in a SQL database through gorm.
type DBStore struct {
	DB *gorm.DB
}

// OpenDB connects to Postgres and migrates the layout table.
func OpenDB(dsn string) (*DBStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	log.Println("Database connection established")
	return NewDBStore(db)
}

// NewDBStore wraps an open gorm handle and runs migrations.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&LayoutRecord{}); err != nil {
		return nil, fmt.Errorf("migrating layout records: %w", err)
	}
	return &DBStore{DB: db}, nil
}

func (s *DBStore) Sets(ctx context.Context) ([]string, error) {
	var names []string
	err := s.DB.WithContext(ctx).
		Model(&LayoutRecord{}).
		Distinct("set_name").
		Order("set_name").
		Pluck("set_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("listing layout sets: %w", err)
	}
	return names, nil
}

func (s *DBStore) Load(ctx context.Context, set string) (grid.Layouts, error) {
	var recs []LayoutRecord
	err := s.DB.WithContext(ctx).
		Where(&LayoutRecord{SetName: set}).
		Order("breakpoint").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("loading layout set '%s': %w", set, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, set)
	}
	return fromRecords(recs)
}

// Save replaces every breakpoint of a set in one transaction.
func (s *DBStore) Save(ctx context.Context, set string, layouts grid.Layouts) error {
	recs, err := toRecords(set, layouts)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_name = ?", set).Delete(&LayoutRecord{}).Error; err != nil {
			return fmt.Errorf("clearing layout set '%s': %w", set, err)
		}
		if len(recs) == 0 {
			return nil
		}
		if err := tx.Create(&recs).Error; err != nil {
			return fmt.Errorf("saving layout set '%s': %w", set, err)
		}
		return nil
	})
}

func (s *DBStore) Delete(ctx context.Context, set string) error {
	res := s.DB.WithContext(ctx).Where("set_name = ?", set).Delete(&LayoutRecord{})
	if res.Error != nil {
		return fmt.Errorf("deleting layout set '%s': %w", set, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, set)
	}
	return nil
}

// Seed copies the config's layout sets into the database, skipping sets
// that already exist.
func (s *DBStore) Seed(ctx context.Context, cfg *config.Config) error {
	for _, name := range cfg.GetLayoutSetOrder() {
		_, err := s.Load(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := s.Save(ctx, name, cfg.Layouts[name]); err != nil {
			return err
		}
		log.Printf("Seeded layout set %s", name)
	}
	return nil
}

func toRecords(set string, layouts grid.Layouts) ([]LayoutRecord, error) {
	bps := make([]string, 0, len(layouts))
	for bp := range layouts {
		bps = append(bps, bp)
	}
	sort.Strings(bps)

	recs := make([]LayoutRecord, 0, len(bps))
	for _, bp := range bps {
		l := layouts[bp]
		if l == nil {
			l = grid.Layout{}
		}
		data, err := json.Marshal(l)
		if err != nil {
			return nil, fmt.Errorf("encoding %s/%s: %w", set, bp, err)
		}
		recs = append(recs, LayoutRecord{SetName: set, Breakpoint: bp, Items: string(data)})
	}
	return recs, nil
}

func fromRecords(recs []LayoutRecord) (grid.Layouts, error) {
	ls := make(grid.Layouts, len(recs))
	for _, rec := range recs {
		l := grid.Layout{}
		if err := json.Unmarshal([]byte(rec.Items), &l); err != nil {
			return nil, fmt.Errorf("decoding %s/%s: %w", rec.SetName, rec.Breakpoint, err)
		}
		if l == nil {
			l = grid.Layout{}
		}
		ls[rec.Breakpoint] = l
	}
	return ls, nil
}
