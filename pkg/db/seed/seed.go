package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/mwantia/gopay/pkg/availability"
	"github.com/mwantia/gopay/pkg/db/models"
	"github.com/mwantia/gopay/pkg/db/store"
	"gopkg.in/yaml.v3"
)

// Fixture is a YAML document describing payment methods and the stores
// offering them
type Fixture struct {
	PaymentMethods []PaymentMethodFixture `yaml:"payment_methods"`
	Stores         []StoreFixture         `yaml:"stores"`
}

// PaymentMethodFixture leaves a flag out (nil) to inherit it
type PaymentMethodFixture struct {
	Name             string `yaml:"name"`
	Type             string `yaml:"type"`
	Description      string `yaml:"description,omitempty"`
	Active           bool   `yaml:"active"`
	AvailableToUsers *bool  `yaml:"available_to_users,omitempty"`
	AvailableToAdmin *bool  `yaml:"available_to_admin,omitempty"`
	AutoCapture      *bool  `yaml:"auto_capture,omitempty"`
	Position         int    `yaml:"position,omitempty"`
}

// StoreFixture references payment methods by name
type StoreFixture struct {
	Code           string   `yaml:"code"`
	Name           string   `yaml:"name"`
	URL            string   `yaml:"url,omitempty"`
	PaymentMethods []string `yaml:"payment_methods,omitempty"`
}

// Result reports what Apply created
type Result struct {
	PaymentMethods int
	Stores         int
}

// LoadFile reads and parses a fixture file
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a fixture document and validates its references
func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if err := fixture.Validate(); err != nil {
		return nil, err
	}
	return &fixture, nil
}

// Validate checks names are present and unique and that stores only
// reference payment methods defined in the fixture
func (f *Fixture) Validate() error {
	methods := make(map[string]bool, len(f.PaymentMethods))
	for i, pm := range f.PaymentMethods {
		if pm.Name == "" {
			return fmt.Errorf("payment method #%d has no name", i)
		}
		if methods[pm.Name] {
			return fmt.Errorf("payment method '%s' is defined twice", pm.Name)
		}
		methods[pm.Name] = true
	}

	codes := make(map[string]bool, len(f.Stores))
	for i, s := range f.Stores {
		if s.Code == "" {
			return fmt.Errorf("store #%d has no code", i)
		}
		if codes[s.Code] {
			return fmt.Errorf("store '%s' is defined twice", s.Code)
		}
		codes[s.Code] = true

		for _, name := range s.PaymentMethods {
			if !methods[name] {
				return fmt.Errorf("store '%s' references unknown payment method '%s'", s.Code, name)
			}
		}
	}
	return nil
}

// Apply creates every payment method, then every store with its assignments.
// It runs in a single transaction, so a failing fixture leaves nothing behind.
func Apply(ctx context.Context, ps store.PaymentStore, f *Fixture) (Result, error) {
	var result Result
	err := ps.Transaction(ctx, func(tx store.PaymentStore) error {
		var err error
		result, err = apply(ctx, tx, f)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func apply(ctx context.Context, ps store.PaymentStore, f *Fixture) (Result, error) {
	var result Result
	ids := make(map[string]uint, len(f.PaymentMethods))

	for _, pmf := range f.PaymentMethods {
		pm := pmf.model()
		if err := ps.CreatePaymentMethod(ctx, pm); err != nil {
			return result, fmt.Errorf("failed to create payment method '%s': %w", pmf.Name, err)
		}
		ids[pmf.Name] = pm.ID
		result.PaymentMethods++
	}

	for _, sf := range f.Stores {
		name := sf.Name
		if name == "" {
			name = sf.Code
		}
		if err := ps.CreateStore(ctx, &models.Store{Code: sf.Code, Name: name, URL: sf.URL}); err != nil {
			return result, fmt.Errorf("failed to create store '%s': %w", sf.Code, err)
		}

		members := make([]uint, 0, len(sf.PaymentMethods))
		for _, pmName := range sf.PaymentMethods {
			members = append(members, ids[pmName])
		}
		if err := ps.AssignPaymentMethods(ctx, sf.Code, members...); err != nil {
			return result, fmt.Errorf("failed to assign payment methods to store '%s': %w", sf.Code, err)
		}
		result.Stores++
	}

	return result, nil
}

func (pmf PaymentMethodFixture) model() *models.PaymentMethod {
	kind := pmf.Type
	if kind == "" {
		kind = models.TypeCheck
	}
	return &models.PaymentMethod{
		Name:             pmf.Name,
		Type:             kind,
		Description:      pmf.Description,
		Active:           pmf.Active,
		AvailableToUsers: availability.FlagOf(pmf.AvailableToUsers),
		AvailableToAdmin: availability.FlagOf(pmf.AvailableToAdmin),
		AutoCapture:      availability.OverrideOf(pmf.AutoCapture),
		Position:         pmf.Position,
	}
}
