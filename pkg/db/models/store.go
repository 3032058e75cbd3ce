package models

import (
	"time"

	"github.com/mwantia/gopay/pkg/availability"
	"gorm.io/gorm"
)

// Store represents a storefront that may restrict which payment methods it offers
type Store struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"type:text;not null;uniqueIndex"`
	Name string `gorm:"type:text;not null"`
	URL  string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	PaymentMethods []PaymentMethod `gorm:"many2many:store_payment_methods;"`
}

// Container returns the store's payment methods as an availability container.
// A store without payment methods does not restrict anything.
func (s *Store) Container() *availability.Container {
	ids := make([]uint, 0, len(s.PaymentMethods))
	for _, pm := range s.PaymentMethods {
		ids = append(ids, pm.ID)
	}
	return availability.NewContainer(ids...)
}
