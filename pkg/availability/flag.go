package availability

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Flag is a per-entity availability setting. Inherit means no explicit value
// was stored and is treated as available.
type Flag uint8

const (
	Inherit Flag = iota
	Available
	Unavailable
)

// FlagOf converts a nullable boolean into a Flag.
func FlagOf(b *bool) Flag {
	switch {
	case b == nil:
		return Inherit
	case *b:
		return Available
	default:
		return Unavailable
	}
}

// Allows reports whether the flag exposes the entity. Only an explicit
// Unavailable hides it.
func (f Flag) Allows() bool {
	return f != Unavailable
}

// Bool returns the stored value, or nil for Inherit.
func (f Flag) Bool() *bool {
	switch f {
	case Available:
		return boolPtr(true)
	case Unavailable:
		return boolPtr(false)
	default:
		return nil
	}
}

func (f Flag) String() string {
	switch f {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	default:
		return "inherit"
	}
}

// Value stores the flag as a nullable boolean column.
func (f Flag) Value() (driver.Value, error) {
	if b := f.Bool(); b != nil {
		return *b, nil
	}
	return nil, nil
}

func (f *Flag) Scan(src any) error {
	b, err := scanNullBool(src)
	if err != nil {
		return fmt.Errorf("failed to scan availability flag: %w", err)
	}
	*f = FlagOf(b)
	return nil
}

func (Flag) GormDataType() string {
	return "boolean"
}

// Override is an instance-level setting override. Unset defers to the
// configured default.
type Override uint8

const (
	Unset Override = iota
	Enabled
	Disabled
)

// OverrideOf converts a nullable boolean into an Override.
func OverrideOf(b *bool) Override {
	switch {
	case b == nil:
		return Unset
	case *b:
		return Enabled
	default:
		return Disabled
	}
}

// Bool returns the override value, or nil when unset.
func (o Override) Bool() *bool {
	switch o {
	case Enabled:
		return boolPtr(true)
	case Disabled:
		return boolPtr(false)
	default:
		return nil
	}
}

func (o Override) String() string {
	switch o {
	case Enabled:
		return "enabled"
	case Disabled:
		return "disabled"
	default:
		return "unset"
	}
}

func (o Override) Value() (driver.Value, error) {
	if b := o.Bool(); b != nil {
		return *b, nil
	}
	return nil, nil
}

func (o *Override) Scan(src any) error {
	b, err := scanNullBool(src)
	if err != nil {
		return fmt.Errorf("failed to scan setting override: %w", err)
	}
	*o = OverrideOf(b)
	return nil
}

func (Override) GormDataType() string {
	return "boolean"
}

func scanNullBool(src any) (*bool, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case bool:
		return boolPtr(v), nil
	case int64:
		return boolPtr(v != 0), nil
	case int:
		return boolPtr(v != 0), nil
	case []byte:
		return parseBool(string(v))
	case string:
		return parseBool(v)
	default:
		return nil, fmt.Errorf("unsupported type %T", src)
	}
}

func parseBool(s string) (*bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return boolPtr(b), nil
}

func boolPtr(b bool) *bool {
	return &b
}
