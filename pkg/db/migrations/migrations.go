package migrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwantia/gopay/pkg/db/models"
	"gorm.io/gorm"
)

// ErrNothingToRollback is returned by Rollback when no migration is applied
var ErrNothingToRollback = errors.New("no migrations to rollback")

// storePaymentMethodsTable is the many2many join between stores and payment methods
const storePaymentMethodsTable = "store_payment_methods"

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	Up          func(*gorm.DB) error
	Down        func(*gorm.DB) error
}

// MigrationStatus represents the status of a migration
type MigrationStatus struct {
	Version     int
	Description string
	Applied     bool
}

// migrationHistory tracks applied migrations
type migrationHistory struct {
	ID          uint   `gorm:"primaryKey"`
	Version     int    `gorm:"uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	AppliedAt   int64  `gorm:"autoCreateTime"`
}

// Migrator applies the versioned schema for payment methods and stores
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

// NewMigrator creates a new migrator instance
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: allMigrations(),
	}
}

// Migrate runs all pending migrations and returns how many were applied
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, migration := range m.migrations {
		if applied[migration.Version] {
			continue
		}

		if err := m.runMigration(ctx, migration); err != nil {
			return count, fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}
		count++
	}

	return count, nil
}

// Rollback reverts the last applied migration
func (m *Migrator) Rollback(ctx context.Context) (*MigrationStatus, error) {
	if err := m.ensureHistory(ctx); err != nil {
		return nil, err
	}

	var last migrationHistory
	if err := m.db.WithContext(ctx).Order("version DESC").First(&last).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNothingToRollback
		}
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}

	migration, ok := m.find(last.Version)
	if !ok {
		return nil, fmt.Errorf("migration %d not found", last.Version)
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := migration.Down(tx); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		if err := tx.Delete(&last).Error; err != nil {
			return fmt.Errorf("failed to update migration history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &MigrationStatus{
		Version:     migration.Version,
		Description: migration.Description,
	}, nil
}

// Status returns migration status
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.migrations))
	for _, migration := range m.migrations {
		statuses = append(statuses, MigrationStatus{
			Version:     migration.Version,
			Description: migration.Description,
			Applied:     applied[migration.Version],
		})
	}

	return statuses, nil
}

func (m *Migrator) ensureHistory(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&migrationHistory{}); err != nil {
		return fmt.Errorf("failed to create migration history table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]bool, error) {
	if err := m.ensureHistory(ctx); err != nil {
		return nil, err
	}

	var applied []migrationHistory
	if err := m.db.WithContext(ctx).Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}

	versions := make(map[int]bool, len(applied))
	for _, a := range applied {
		versions[a.Version] = true
	}
	return versions, nil
}

func (m *Migrator) find(version int) (Migration, bool) {
	for _, migration := range m.migrations {
		if migration.Version == version {
			return migration, true
		}
	}
	return Migration{}, false
}

func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := migration.Up(tx); err != nil {
			return err
		}

		return tx.Create(&migrationHistory{
			Version:     migration.Version,
			Description: migration.Description,
		}).Error
	})
}

// allMigrations returns all migrations in order
func allMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create payment methods and stores",
			Up: func(db *gorm.DB) error {
				return db.AutoMigrate(
					&models.PaymentMethod{},
					&models.Store{},
				)
			},
			Down: func(db *gorm.DB) error {
				return db.Migrator().DropTable(
					storePaymentMethodsTable,
					&models.Store{},
					&models.PaymentMethod{},
				)
			},
		},
	}
}
