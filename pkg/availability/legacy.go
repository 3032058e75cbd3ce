package availability

import "fmt"

// DeprecationNotice is emitted once for every call to QueryAvailable.
const DeprecationNotice = "QueryAvailable is deprecated. Use the Active, AvailableToUsers and AvailableToAdmin predicates instead; " +
	"for entities of a specific container, narrow with FilterByContainer before applying further predicates"

// Notifier receives deprecation notices. log.LoggerService satisfies it.
type Notifier interface {
	Warn(msg string, args ...any)
}

// QueryAvailable is the deprecated combined query. It narrows entities to the
// container when the container has members, otherwise considers all of them,
// and then keeps the entities matching mode. The unset mode means ModeBoth.
//
// Deprecated: compose FilterByContainer and FilterByPredicates instead.
func QueryAvailable[E Entity](notifier Notifier, mode Mode, container *Container, entities []E) ([]E, error) {
	Notify(notifier)

	if entities == nil {
		return nil, fmt.Errorf("%w: entity snapshot is nil", ErrInvalidArgument)
	}

	match, err := mode.Predicate()
	if err != nil {
		return nil, err
	}

	candidates := FilterByContainer(entities, container)

	seen := make(map[uint]struct{}, len(candidates))
	result := make([]E, 0, len(candidates))
	for _, e := range candidates {
		if !match(e) {
			continue
		}
		if _, dup := seen[e.EntityID()]; dup {
			continue
		}
		seen[e.EntityID()] = struct{}{}
		result = append(result, e)
	}
	return result, nil
}

// Notify delivers the deprecation notice. A nil notifier is silent, and a
// panicking one does not affect the caller.
func Notify(notifier Notifier) {
	if notifier == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	notifier.Warn("%s", DeprecationNotice)
}
