package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/gopay/pkg/db/migrations"
	"github.com/mwantia/gopay/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements PaymentStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

var _ PaymentStore = (*SQLiteStore)(nil)

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed payment store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite only supports 1 writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate applies all pending schema migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := migrations.NewMigrator(s.db).Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", s.path, err)
	}
	return nil
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) Transaction(ctx context.Context, fn func(PaymentStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SQLiteStore{db: tx, path: s.path})
	})
}

// Payment method operations

func (s *SQLiteStore) CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	if method.Name == "" {
		return fmt.Errorf("payment method name is required")
	}
	return s.db.WithContext(ctx).Omit("Stores").Create(method).Error
}

func (s *SQLiteStore) GetPaymentMethod(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := s.db.WithContext(ctx).Preload("Stores").First(&method, id).Error
	if err != nil {
		return nil, notFound(err, "payment method", id)
	}
	return &method, nil
}

// ListPaymentMethods returns the payment methods matching every scope,
// ordered by position
func (s *SQLiteStore) ListPaymentMethods(ctx context.Context, scopes ...Scope) ([]*models.PaymentMethod, error) {
	methods := []*models.PaymentMethod{}
	err := s.db.WithContext(ctx).
		Model(&models.PaymentMethod{}).
		Scopes(scopes...).
		Order("payment_methods.position ASC").
		Order("payment_methods.id ASC").
		Find(&methods).Error
	return methods, err
}

func (s *SQLiteStore) UpdatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	return s.db.WithContext(ctx).Omit("Stores").Save(method).Error
}

func (s *SQLiteStore) DeletePaymentMethod(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.PaymentMethod{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("payment method %d: %w", id, ErrNotFound)
	}
	return nil
}

// Store operations

func (s *SQLiteStore) CreateStore(ctx context.Context, store *models.Store) error {
	if store.Code == "" {
		return fmt.Errorf("store code is required")
	}
	return s.db.WithContext(ctx).Omit("PaymentMethods").Create(store).Error
}

// GetStore returns the store with its live payment methods preloaded
func (s *SQLiteStore) GetStore(ctx context.Context, code string) (*models.Store, error) {
	var store models.Store
	err := s.db.WithContext(ctx).
		Preload("PaymentMethods", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_methods.position ASC").Order("payment_methods.id ASC")
		}).
		Where("code = ?", code).
		First(&store).Error
	if err != nil {
		return nil, notFound(err, "store", code)
	}
	return &store, nil
}

func (s *SQLiteStore) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := s.db.WithContext(ctx).Preload("PaymentMethods").Order("code ASC").Find(&stores).Error
	return stores, err
}

func (s *SQLiteStore) DeleteStore(ctx context.Context, code string) error {
	store, err := s.GetStore(ctx, code)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(store).Association("PaymentMethods").Clear(); err != nil {
			return fmt.Errorf("failed to clear payment methods of store %s: %w", code, err)
		}
		return tx.Delete(store).Error
	})
}

// AssignPaymentMethods adds payment methods to a store. Every id must exist.
func (s *SQLiteStore) AssignPaymentMethods(ctx context.Context, code string, ids ...uint) error {
	if len(ids) == 0 {
		return nil
	}

	store, err := s.GetStore(ctx, code)
	if err != nil {
		return err
	}

	var methods []models.PaymentMethod
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&methods).Error; err != nil {
		return fmt.Errorf("failed to load payment methods: %w", err)
	}
	if len(methods) != len(uniqueIDs(ids)) {
		return fmt.Errorf("assigning payment methods %v to store %s: %w", ids, code, ErrNotFound)
	}

	return s.db.WithContext(ctx).Model(store).Association("PaymentMethods").Append(&methods)
}

func notFound(err error, what string, key any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", what, key, ErrNotFound)
	}
	return err
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
