package models

import (
	"time"

	"github.com/mwantia/gopay/pkg/availability"
	"gorm.io/gorm"
)

// SettingAutoCapture is the defaults key consulted when a payment method has
// no auto-capture override.
const SettingAutoCapture = "auto_capture"

// Payment method types known to the seed loader and the CLI.
const (
	TypeCheck       = "check"
	TypeCreditCard  = "credit_card"
	TypeStoreCredit = "store_credit"
)

// PaymentMethod represents a way of paying that can be offered on the
// storefront, in the admin, or both
type PaymentMethod struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:text;not null"`
	Type        string `gorm:"type:text;not null"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null"`

	// Nullable columns, NULL inherits availability
	AvailableToUsers availability.Flag
	AvailableToAdmin availability.Flag

	// Nullable column, NULL defers to payments.auto_capture
	AutoCapture availability.Override

	Position int `gorm:"not null;default:0;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Stores []Store `gorm:"many2many:store_payment_methods;"`
}

func (pm *PaymentMethod) EntityID() uint {
	return pm.ID
}

func (pm *PaymentMethod) IsActive() bool {
	return pm.Active
}

func (pm *PaymentMethod) UserAvailability() availability.Flag {
	return pm.AvailableToUsers
}

func (pm *PaymentMethod) AdminAvailability() availability.Flag {
	return pm.AvailableToAdmin
}

// AutoCaptureEnabled resolves whether payments through this method are
// captured on authorization. The override wins; otherwise defaults is read.
func (pm *PaymentMethod) AutoCaptureEnabled(defaults availability.Defaults) bool {
	return availability.ResolveSetting(pm.AutoCapture, SettingAutoCapture, defaults)
}
