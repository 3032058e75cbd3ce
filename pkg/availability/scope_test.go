package availability

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type method struct {
	id     uint
	name   string
	active bool
	users  Flag
	admin  Flag
}

func (m *method) EntityID() uint          { return m.id }
func (m *method) IsActive() bool          { return m.active }
func (m *method) UserAvailability() Flag  { return m.users }
func (m *method) AdminAvailability() Flag { return m.admin }

type fixture struct {
	nilDisplay   *method
	bothDisplay  *method
	frontDisplay *method
	backDisplay  *method
}

func newFixture() fixture {
	return fixture{
		nilDisplay:   &method{id: 1, name: "nil", active: true, users: Inherit, admin: Inherit},
		bothDisplay:  &method{id: 2, name: "both", active: true, users: Available, admin: Available},
		frontDisplay: &method{id: 3, name: "front", active: true, users: Available, admin: Unavailable},
		backDisplay:  &method{id: 4, name: "back", active: true, users: Unavailable, admin: Available},
	}
}

func (f fixture) all() []*method {
	return []*method{f.nilDisplay, f.bothDisplay, f.frontDisplay, f.backDisplay}
}

func names(ms []*method) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.name)
	}
	return out
}

func TestFilterByPredicates(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name  string
		preds []Predicate
		want  []string
	}{
		{
			name:  "available to users and admin",
			preds: []Predicate{AvailableToUsers, AvailableToAdmin},
			want:  []string{"nil", "both"},
		},
		{
			name:  "available to admin and users",
			preds: []Predicate{AvailableToAdmin, AvailableToUsers},
			want:  []string{"nil", "both"},
		},
		{
			name:  "available to users",
			preds: []Predicate{AvailableToUsers},
			want:  []string{"nil", "both", "front"},
		},
		{
			name:  "available to admin",
			preds: []Predicate{AvailableToAdmin},
			want:  []string{"nil", "both", "back"},
		},
		{
			name: "no predicates",
			want: []string{"nil", "both", "front", "back"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPredicates(f.all(), tt.preds...)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}
}

func TestFilterByPredicatesActive(t *testing.T) {
	f := newFixture()
	f.bothDisplay.active = false

	got := FilterByPredicates(f.all(), Active, AvailableToUsers)
	assert.ElementsMatch(t, []string{"nil", "front"}, names(got))
}

func TestFilterByPredicatesIdempotent(t *testing.T) {
	f := newFixture()

	once := FilterByPredicates(f.all(), AvailableToUsers)
	twice := FilterByPredicates(once, AvailableToUsers)
	assert.Equal(t, names(once), names(twice))
}

func TestFilterByContainer(t *testing.T) {
	f := newFixture()
	extra := &method{id: 5, name: "extra", active: true, users: Available, admin: Available}
	all := append(f.all(), extra)

	t.Run("store with members then both predicates", func(t *testing.T) {
		store := NewContainer(1, 2, 3, 4)
		got := FilterByPredicates(FilterByContainer(all, store), AvailableToUsers, AvailableToAdmin)
		assert.ElementsMatch(t, []string{"nil", "both"}, names(got))
	})

	t.Run("store without members returns everything", func(t *testing.T) {
		got := FilterByContainer(all, NewContainer())
		assert.Len(t, got, 5)
		assert.Equal(t, names(all), names(got))
	})

	t.Run("store without members is further scopable for admin", func(t *testing.T) {
		got := FilterByPredicates(FilterByContainer(all, NewContainer()), AvailableToAdmin)
		assert.NotContains(t, names(got), "front")
	})

	t.Run("store without members is further scopable for users", func(t *testing.T) {
		got := FilterByPredicates(FilterByContainer(all, NewContainer()), AvailableToUsers)
		assert.NotContains(t, names(got), "back")
	})

	t.Run("nil container returns everything", func(t *testing.T) {
		assert.Equal(t, names(all), names(FilterByContainer(all, nil)))
	})

	t.Run("members outside the snapshot are ignored", func(t *testing.T) {
		got := FilterByContainer(all, NewContainer(5, 42))
		assert.Equal(t, []string{"extra"}, names(got))
	})
}

func TestFilterStagesCommute(t *testing.T) {
	f := newFixture()
	extra := &method{id: 5, name: "extra", active: false, users: Inherit, admin: Unavailable}
	all := append(f.all(), extra)

	containers := map[string]*Container{
		"nil":     nil,
		"empty":   NewContainer(),
		"partial": NewContainer(2, 4, 5),
		"full":    NewContainer(1, 2, 3, 4, 5),
	}
	predicateSets := [][]Predicate{
		nil,
		{Active},
		{AvailableToUsers},
		{AvailableToAdmin},
		{Active, AvailableToUsers, AvailableToAdmin},
	}

	for cname, c := range containers {
		for i, preds := range predicateSets {
			t.Run(fmt.Sprintf("%s/%d", cname, i), func(t *testing.T) {
				containerFirst := FilterByPredicates(FilterByContainer(all, c), preds...)
				predicatesFirst := FilterByContainer(FilterByPredicates(all, preds...), c)
				assert.ElementsMatch(t, names(containerFirst), names(predicatesFirst))
			})
		}
	}
}

func TestContainer(t *testing.T) {
	c := NewContainer(3, 1, 3, 2)
	assert.Equal(t, []uint{3, 1, 2}, c.Members())
	assert.True(t, c.Contains(1))
	assert.False(t, c.Contains(4))
	assert.True(t, c.Restricts())

	var none *Container
	assert.False(t, none.Restricts())
	assert.False(t, none.Contains(1))
	assert.Nil(t, none.Members())

	require.False(t, NewContainer().Restricts())
}

func TestFiltersAcceptNilSnapshot(t *testing.T) {
	assert.Empty(t, FilterByContainer[*method](nil, nil))
	assert.Empty(t, FilterByContainer[*method](nil, NewContainer(1, 2)))
	assert.Empty(t, FilterByPredicates[*method](nil, Active, AvailableToUsers))

	_, err := QueryAvailable[*method](nil, ModeBoth, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
