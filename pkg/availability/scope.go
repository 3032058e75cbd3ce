package availability

// Container groups entities by reference. A container without members means
// no restriction is configured, not that nothing is allowed.
type Container struct {
	members []uint
	index   map[uint]struct{}
}

// NewContainer builds a container from member IDs, dropping duplicates and
// keeping first-seen order.
func NewContainer(ids ...uint) *Container {
	c := &Container{
		members: make([]uint, 0, len(ids)),
		index:   make(map[uint]struct{}, len(ids)),
	}
	for _, id := range ids {
		if _, ok := c.index[id]; ok {
			continue
		}
		c.index[id] = struct{}{}
		c.members = append(c.members, id)
	}
	return c
}

// Members returns a copy of the member IDs.
func (c *Container) Members() []uint {
	if c == nil {
		return nil
	}
	return append([]uint(nil), c.members...)
}

// Contains reports whether id is a member.
func (c *Container) Contains(id uint) bool {
	if c == nil {
		return false
	}
	_, ok := c.index[id]
	return ok
}

// Restricts reports whether filtering by c narrows anything. Nil and empty
// containers do not.
func (c *Container) Restricts() bool {
	return c != nil && len(c.members) > 0
}

// FilterByContainer keeps the entities that belong to c. When c does not
// restrict, entities is returned unchanged.
func FilterByContainer[E Entity](entities []E, c *Container) []E {
	if !c.Restricts() {
		return entities
	}

	filtered := make([]E, 0, len(entities))
	for _, e := range entities {
		if c.Contains(e.EntityID()) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// FilterByPredicates keeps the entities matching every predicate.
func FilterByPredicates[E Entity](entities []E, preds ...Predicate) []E {
	match := All(preds...)

	filtered := make([]E, 0, len(entities))
	for _, e := range entities {
		if match(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
