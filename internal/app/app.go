package app

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	"github.com/mwantia/gopay/internal/config"
	"github.com/mwantia/gopay/internal/payments"
	"github.com/mwantia/gopay/pkg/availability"
	"github.com/mwantia/gopay/pkg/db/store"
	"github.com/mwantia/gopay/pkg/log"
)

var paymentStoreType = reflect.TypeOf((*store.PaymentStore)(nil)).Elem()

// GoPayApp owns the process-wide services: logger, payment store and the
// payments service built on top of them.
type GoPayApp struct {
	mutex sync.RWMutex

	cfg      *config.BaseConfig
	sc       *container.ServiceContainer
	log      log.LoggerService
	store    *store.SQLiteStore
	payments *payments.Service
	defaults availability.Defaults
}

func NewApp(cfg *config.BaseConfig, defaults availability.Defaults) *GoPayApp {
	return &GoPayApp{
		cfg:      cfg,
		sc:       container.NewServiceContainer(),
		log:      log.NewLoggerService("gopay", cfg.Log),
		defaults: defaults,
	}
}

// OpenOptions controls how Open prepares the payment store
type OpenOptions struct {
	// SkipMigrate leaves the schema untouched, for commands that inspect or
	// change the migration state themselves
	SkipMigrate bool
}

// Open connects and migrates the store and registers every service.
func (app *GoPayApp) Open(ctx context.Context) error {
	return app.OpenWith(ctx, OpenOptions{})
}

// OpenWith connects the store, migrates it unless opts say otherwise and
// registers every service. On error the store is closed again.
func (app *GoPayApp) OpenWith(ctx context.Context, opts OpenOptions) error {
	app.mutex.Lock()
	defer app.mutex.Unlock()

	if app.store != nil {
		return fmt.Errorf("app is already open")
	}

	s, err := store.NewSQLiteStore(store.SQLiteConfig{
		Path: app.cfg.Metadata.SQLite.Path,
	})
	if err != nil {
		return err
	}

	if err := s.Connect(ctx); err != nil {
		s.Close()
		return fmt.Errorf("failed to connect to '%s': %w", app.cfg.Metadata.SQLite.Path, err)
	}

	if !opts.SkipMigrate {
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return err
		}
	}

	app.store = s
	if err := app.setupServices(ctx); err != nil {
		app.store = nil
		s.Close()
		return err
	}
	return nil
}

func (app *GoPayApp) setupServices(ctx context.Context) error {
	errs := container.Errors{}

	app.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](app.sc,
		container.With[log.LoggerService](),
		container.WithInstance(app.log)))

	app.log.Debug("Registering 'PaymentStore'...")
	errs.Add(container.Register[store.SQLiteStore](app.sc,
		container.With[store.PaymentStore](),
		container.WithInstance(app.store)))

	if err := errs.Errors(); err != nil {
		return err
	}

	logger, err := log.Resolve(ctx, app.sc, "payments")
	if err != nil {
		return err
	}

	ps, err := resolveStore(ctx, app.sc)
	if err != nil {
		return err
	}

	var notifier availability.Notifier = logger
	if app.cfg.Payments.SilenceDeprecations {
		notifier = nil
	}

	app.payments = payments.NewService(ps, logger, notifier, app.defaults)
	return nil
}

func resolveStore(ctx context.Context, sc *container.ServiceContainer) (store.PaymentStore, error) {
	ok, resolved := sc.ResolveByType(ctx, paymentStoreType)
	if !ok {
		return nil, fmt.Errorf("failed to resolve PaymentStore: no payment store registered")
	}

	ps, ok := resolved.(store.PaymentStore)
	if !ok {
		return nil, fmt.Errorf("resolved service is not a PaymentStore")
	}
	return ps, nil
}

// Payments returns the payments service; Open must have succeeded.
func (app *GoPayApp) Payments() *payments.Service {
	app.mutex.RLock()
	defer app.mutex.RUnlock()

	return app.payments
}

// Store returns the payment store; Open must have succeeded.
func (app *GoPayApp) Store() *store.SQLiteStore {
	app.mutex.RLock()
	defer app.mutex.RUnlock()

	return app.store
}

func (app *GoPayApp) Logger() log.LoggerService {
	return app.log
}

// Close cleans up the service container within the shutdown timeout and
// closes the store.
func (app *GoPayApp) Close() error {
	app.mutex.Lock()
	defer app.mutex.Unlock()

	timeout, err := time.ParseDuration(app.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	if app.store != nil {
		if err := app.store.Close(); err != nil {
			return fmt.Errorf("failed to close payment store: %w", err)
		}
		app.store = nil
	}

	if impl, ok := app.log.(*log.LoggerServiceImpl); ok {
		return impl.Close()
	}
	return nil
}
