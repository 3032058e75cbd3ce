package availability

// Entity is anything whose visibility can be scoped: it has an identity, an
// active switch and one availability flag per audience.
type Entity interface {
	EntityID() uint
	IsActive() bool
	UserAvailability() Flag
	AdminAvailability() Flag
}

// Predicate decides whether a single entity is included.
type Predicate func(Entity) bool

// Active matches entities that are switched on.
func Active(e Entity) bool {
	return e.IsActive()
}

// AvailableToUsers matches entities the storefront may show.
func AvailableToUsers(e Entity) bool {
	return e.UserAvailability().Allows()
}

// AvailableToAdmin matches entities the admin surface may show.
func AvailableToAdmin(e Entity) bool {
	return e.AdminAvailability().Allows()
}

// All matches when every predicate matches. No predicates match everything.
func All(preds ...Predicate) Predicate {
	return func(e Entity) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches.
func Any(preds ...Predicate) Predicate {
	return func(e Entity) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}
