package store

import (
	"context"
	"errors"

	"github.com/mwantia/gopay/pkg/db/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Scope narrows a payment method query, see scopes.go
type Scope = func(*gorm.DB) *gorm.DB

// PaymentStore defines the interface for payment method and store persistence
type PaymentStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Transaction runs fn against a store bound to a single transaction.
	// Every change made through it is rolled back when fn returns an error.
	Transaction(ctx context.Context, fn func(PaymentStore) error) error

	// Payment method operations
	CreatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error
	GetPaymentMethod(ctx context.Context, id uint) (*models.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, scopes ...Scope) ([]*models.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, method *models.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, id uint) error

	// Store operations
	CreateStore(ctx context.Context, store *models.Store) error
	GetStore(ctx context.Context, code string) (*models.Store, error)
	ListStores(ctx context.Context) ([]models.Store, error)
	DeleteStore(ctx context.Context, code string) error
	AssignPaymentMethods(ctx context.Context, code string, ids ...uint) error
}
