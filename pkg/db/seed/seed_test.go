package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwantia/gopay/pkg/availability"
	"github.com/mwantia/gopay/pkg/db/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paymentFixture = `
payment_methods:
  - name: nil_display
    active: true
  - name: both_display
    active: true
    available_to_users: true
    available_to_admin: true
  - name: front_display
    type: credit_card
    active: true
    available_to_users: true
    available_to_admin: false
    auto_capture: true
  - name: back_display
    active: true
    available_to_users: false
    available_to_admin: true
stores:
  - code: store_1
    name: Store One
    payment_methods: [nil_display, both_display, front_display, back_display]
  - code: store_3
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(paymentFixture))
	require.NoError(t, err)

	require.Len(t, f.PaymentMethods, 4)
	require.Len(t, f.Stores, 2)

	nilDisplay := f.PaymentMethods[0].model()
	assert.Equal(t, availability.Inherit, nilDisplay.AvailableToUsers)
	assert.Equal(t, availability.Inherit, nilDisplay.AvailableToAdmin)
	assert.Equal(t, "check", nilDisplay.Type)

	front := f.PaymentMethods[2].model()
	assert.Equal(t, availability.Unavailable, front.AvailableToAdmin)
	assert.Equal(t, availability.Enabled, front.AutoCapture)
	assert.Equal(t, "credit_card", front.Type)
}

func TestParseRejectsInvalidFixtures(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown member", doc: "payment_methods: [{name: a}]\nstores: [{code: s, payment_methods: [b]}]"},
		{name: "duplicate method", doc: "payment_methods: [{name: a}, {name: a}]"},
		{name: "missing method name", doc: "payment_methods: [{type: check}]"},
		{name: "duplicate store", doc: "stores: [{code: s}, {code: s}]"},
		{name: "missing store code", doc: "stores: [{name: s}]"},
		{name: "malformed yaml", doc: "payment_methods: {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(paymentFixture), 0644))

	f, err := LoadFile(path)
	require.NoError(t, err)

	s, err := store.NewSQLiteStore(store.SQLiteConfig{Path: filepath.Join(dir, "gopay.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Connect(ctx))
	require.NoError(t, s.Migrate(ctx))

	result, err := Apply(ctx, s, f)
	require.NoError(t, err)
	assert.Equal(t, Result{PaymentMethods: 4, Stores: 2}, result)

	store1, err := s.GetStore(ctx, "store_1")
	require.NoError(t, err)
	assert.Equal(t, "Store One", store1.Name)
	assert.Len(t, store1.PaymentMethods, 4)

	store3, err := s.GetStore(ctx, "store_3")
	require.NoError(t, err)
	assert.Equal(t, "store_3", store3.Name)
	assert.False(t, store3.Container().Restricts())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()

	s, err := store.NewSQLiteStore(store.SQLiteConfig{Path: filepath.Join(t.TempDir(), "gopay.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Connect(ctx))
	require.NoError(t, s.Migrate(ctx))

	f, err := Parse([]byte(paymentFixture))
	require.NoError(t, err)

	_, err = Apply(ctx, s, f)
	require.NoError(t, err)

	// store_1 exists already, so the second run fails after creating methods
	result, err := Apply(ctx, s, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store_1")
	assert.Equal(t, Result{}, result)

	methods, err := s.ListPaymentMethods(ctx)
	require.NoError(t, err)
	assert.Len(t, methods, 4)

	stores, err := s.ListStores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}
