package availability

import (
	"fmt"
	"strings"
)

// Mode selects the audience for the combined Available query.
type Mode string

const (
	ModeUnset    Mode = ""
	ModeFrontEnd Mode = "front_end"
	ModeBackEnd  Mode = "back_end"
	ModeBoth     Mode = "both"
)

// ParseMode parses a mode name. The empty string is the unset mode.
func ParseMode(s string) (Mode, error) {
	return Mode(strings.TrimSpace(s)).Normalize()
}

// Normalize maps the unset mode to ModeBoth and rejects unknown values.
func (m Mode) Normalize() (Mode, error) {
	switch m {
	case ModeUnset:
		return ModeBoth, nil
	case ModeFrontEnd, ModeBackEnd, ModeBoth:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, string(m))
	}
}

// Predicate returns the selection rule for the mode.
func (m Mode) Predicate() (Predicate, error) {
	m, err := m.Normalize()
	if err != nil {
		return nil, err
	}

	switch m {
	case ModeFrontEnd:
		return All(Active, AvailableToUsers), nil
	case ModeBackEnd:
		return All(Active, AvailableToAdmin), nil
	default:
		return All(Active, AvailableToUsers, AvailableToAdmin), nil
	}
}
