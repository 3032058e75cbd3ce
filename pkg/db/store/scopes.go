package store

import "gorm.io/gorm"

// storeMembersSQL selects the live payment methods assigned to a store.
const storeMembersSQL = `SELECT spm.payment_method_id FROM store_payment_methods spm
	JOIN payment_methods pm ON pm.id = spm.payment_method_id AND pm.deleted_at IS NULL
	WHERE spm.store_id = ?`

// ScopeActive keeps payment methods that are switched on
func ScopeActive(db *gorm.DB) *gorm.DB {
	return db.Where("payment_methods.active = ?", true)
}

// ScopeAvailableToUsers keeps payment methods not hidden from the storefront.
// NULL inherits availability.
func ScopeAvailableToUsers(db *gorm.DB) *gorm.DB {
	return db.Where("(payment_methods.available_to_users IS NULL OR payment_methods.available_to_users = ?)", true)
}

// ScopeAvailableToAdmin keeps payment methods not hidden from the admin.
func ScopeAvailableToAdmin(db *gorm.DB) *gorm.DB {
	return db.Where("(payment_methods.available_to_admin IS NULL OR payment_methods.available_to_admin = ?)", true)
}

// ScopeAvailableToStore keeps the payment methods of a store. A store without
// payment methods does not restrict the query.
func ScopeAvailableToStore(storeID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(NOT EXISTS ("+storeMembersSQL+") OR payment_methods.id IN ("+storeMembersSQL+"))",
			storeID, storeID,
		)
	}
}
