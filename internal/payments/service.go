package payments

import (
	"context"
	"fmt"

	"github.com/mwantia/gopay/pkg/availability"
	"github.com/mwantia/gopay/pkg/db/models"
	"github.com/mwantia/gopay/pkg/db/store"
	"github.com/mwantia/gopay/pkg/log"
)

// Filter selects payment methods. Zero value selects everything.
type Filter struct {
	Users      bool
	Admin      bool
	ActiveOnly bool
	StoreCode  string
}

func (f Filter) predicates() []availability.Predicate {
	var preds []availability.Predicate
	if f.ActiveOnly {
		preds = append(preds, availability.Active)
	}
	if f.Users {
		preds = append(preds, availability.AvailableToUsers)
	}
	if f.Admin {
		preds = append(preds, availability.AvailableToAdmin)
	}
	return preds
}

func (f Filter) scopes() []store.Scope {
	var scopes []store.Scope
	if f.ActiveOnly {
		scopes = append(scopes, store.ScopeActive)
	}
	if f.Users {
		scopes = append(scopes, store.ScopeAvailableToUsers)
	}
	if f.Admin {
		scopes = append(scopes, store.ScopeAvailableToAdmin)
	}
	return scopes
}

// Service answers availability questions about the payment methods in a store
type Service struct {
	store    store.PaymentStore
	log      log.LoggerService
	notifier availability.Notifier
	defaults availability.Defaults
}

// NewService wires the service. A nil notifier silences deprecation notices.
func NewService(ps store.PaymentStore, logger log.LoggerService, notifier availability.Notifier, defaults availability.Defaults) *Service {
	return &Service{
		store:    ps,
		log:      logger,
		notifier: notifier,
		defaults: defaults,
	}
}

// List filters a snapshot of all payment methods in memory.
func (s *Service) List(ctx context.Context, filter Filter) ([]*models.PaymentMethod, error) {
	snapshot, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}

	container, err := s.container(ctx, filter.StoreCode)
	if err != nil {
		return nil, err
	}

	methods := availability.FilterByPredicates(availability.FilterByContainer(snapshot, container), filter.predicates()...)
	s.log.Debug("Selected %d of %d payment methods (users=%t admin=%t active=%t store='%s')",
		len(methods), len(snapshot), filter.Users, filter.Admin, filter.ActiveOnly, filter.StoreCode)

	return methods, nil
}

// ListSQL selects the same payment methods as List, but in the database.
func (s *Service) ListSQL(ctx context.Context, filter Filter) ([]*models.PaymentMethod, error) {
	scopes := filter.scopes()

	if filter.StoreCode != "" {
		st, err := s.store.GetStore(ctx, filter.StoreCode)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, store.ScopeAvailableToStore(st.ID))
	}

	methods, err := s.store.ListPaymentMethods(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	return methods, nil
}

// Available runs the deprecated combined query. An empty store code
// considers payment methods regardless of store.
//
// Deprecated: use List with a Filter instead.
func (s *Service) Available(ctx context.Context, mode availability.Mode, storeCode string) ([]*models.PaymentMethod, error) {
	// Warn before any lookup can fail; the query below must not warn again
	availability.Notify(s.notifier)

	snapshot, err := s.store.ListPaymentMethods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment methods: %w", err)
	}

	container, err := s.container(ctx, storeCode)
	if err != nil {
		return nil, err
	}

	return availability.QueryAvailable(nil, mode, container, snapshot)
}

// AutoCapture resolves whether payments through the method are captured on
// authorization, reading the configured default at call time.
func (s *Service) AutoCapture(ctx context.Context, id uint) (bool, error) {
	method, err := s.store.GetPaymentMethod(ctx, id)
	if err != nil {
		return false, err
	}
	return method.AutoCaptureEnabled(s.defaults), nil
}

func (s *Service) container(ctx context.Context, storeCode string) (*availability.Container, error) {
	if storeCode == "" {
		return nil, nil
	}

	st, err := s.store.GetStore(ctx, storeCode)
	if err != nil {
		return nil, err
	}
	return st.Container(), nil
}
