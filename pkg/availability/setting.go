package availability

// Defaults is a read-only view of process-wide setting defaults. Resolution
// reads it on every call, so a changed default applies to every entity that
// has no override of its own.
type Defaults interface {
	Bool(key string) bool
}

// StaticDefaults is a fixed Defaults snapshot.
type StaticDefaults map[string]bool

func (d StaticDefaults) Bool(key string) bool {
	return d[key]
}

// Resolve returns the override when it is set and globalDefault otherwise.
func Resolve(override Override, globalDefault bool) bool {
	if b := override.Bool(); b != nil {
		return *b
	}
	return globalDefault
}

// ResolveSetting resolves key against defaults. The default is only consulted
// when the override is unset; a nil Defaults yields false.
func ResolveSetting(override Override, key string, defaults Defaults) bool {
	if b := override.Bool(); b != nil {
		return *b
	}
	if defaults == nil {
		return false
	}
	return defaults.Bool(key)
}
