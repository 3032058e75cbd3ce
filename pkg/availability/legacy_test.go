package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	warnings []string
}

func (r *recorder) Warn(msg string, args ...any) {
	r.warnings = append(r.warnings, msg)
}

type panicker struct{}

func (panicker) Warn(msg string, args ...any) {
	panic("sink unavailable")
}

func TestQueryAvailableModes(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name string
		mode Mode
		want []string
	}{
		{name: "no mode", mode: ModeUnset, want: []string{"nil", "both"}},
		{name: "both", mode: ModeBoth, want: []string{"nil", "both"}},
		{name: "front end", mode: ModeFrontEnd, want: []string{"nil", "both", "front"}},
		{name: "back end", mode: ModeBackEnd, want: []string{"nil", "both", "back"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryAvailable(nil, tt.mode, nil, f.all())
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestQueryAvailableWithStores(t *testing.T) {
	f := newFixture()
	store2Method := &method{id: 5, name: "store_2", active: true}
	noStoreMethod := &method{id: 6, name: "no_store", active: true}
	all := append(f.all(), store2Method, noStoreMethod)

	store1 := NewContainer(1, 2, 3, 4)
	store3 := NewContainer()

	t.Run("store with payment methods", func(t *testing.T) {
		got, err := QueryAvailable(nil, ModeBoth, store1, all)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"nil", "both"}, names(got))
	})

	t.Run("store without payment methods", func(t *testing.T) {
		got, err := QueryAvailable(nil, ModeBoth, store3, all)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"nil", "both", "store_2", "no_store"}, names(got))
	})

	t.Run("no store", func(t *testing.T) {
		got, err := QueryAvailable(nil, ModeBoth, nil, all)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"nil", "both", "store_2", "no_store"}, names(got))
	})
}

func TestQueryAvailableInactive(t *testing.T) {
	f := newFixture()
	f.nilDisplay.active = false

	got, err := QueryAvailable(nil, ModeFrontEnd, nil, f.all())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"both", "front"}, names(got))
}

func TestQueryAvailableDeduplicates(t *testing.T) {
	f := newFixture()
	snapshot := []*method{f.bothDisplay, f.nilDisplay, f.bothDisplay}

	got, err := QueryAvailable(nil, ModeBoth, nil, snapshot)
	require.NoError(t, err)
	assert.Equal(t, []string{"both", "nil"}, names(got))
}

func TestQueryAvailableNotifiesOnce(t *testing.T) {
	f := newFixture()

	rec := &recorder{}
	_, err := QueryAvailable(rec, ModeFrontEnd, nil, f.all())
	require.NoError(t, err)
	assert.Len(t, rec.warnings, 1)

	_, err = QueryAvailable(rec, "sideways", nil, f.all())
	require.Error(t, err)
	assert.Len(t, rec.warnings, 2)
}

func TestQueryAvailableIgnoresNotifierFailure(t *testing.T) {
	f := newFixture()

	got, err := QueryAvailable(panicker{}, ModeBoth, nil, f.all())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestQueryAvailableInvalidArguments(t *testing.T) {
	f := newFixture()

	_, err := QueryAvailable(nil, Mode("sideways"), nil, f.all())
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = QueryAvailable[*method](nil, ModeBoth, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	got, err := QueryAvailable(nil, ModeBoth, nil, []*method{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeBoth},
		{in: "both", want: ModeBoth},
		{in: " front_end ", want: ModeFrontEnd},
		{in: "back_end", want: ModeBackEnd},
		{in: "FRONT_END", wantErr: true},
		{in: "all", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
