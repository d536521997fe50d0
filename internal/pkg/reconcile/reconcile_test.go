package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tour-microservice/internal/pkg/reconcile"
)

type row struct {
	ID    int64
	Value string
}

func byID(r row) (int64, bool) { return r.ID, r.ID != 0 }

func sameValue(a, b row) bool { return a.Value == b.Value }

func TestDiff(t *testing.T) {
	tests := []struct {
		name       string
		existing   []row
		incoming   []row
		wantInsert []row
		wantUpdate []row
		wantDelete []int64
	}{
		{
			name:       "all new rows",
			incoming:   []row{{Value: "a"}, {Value: "b"}},
			wantInsert: []row{{Value: "a"}, {Value: "b"}},
		},
		{
			name:       "empty incoming removes everything",
			existing:   []row{{ID: 1, Value: "a"}, {ID: 2, Value: "b"}, {ID: 3, Value: "c"}},
			wantDelete: []int64{1, 2, 3},
		},
		{
			name:     "unchanged rows are not written",
			existing: []row{{ID: 1, Value: "a"}},
			incoming: []row{{ID: 1, Value: "a"}},
		},
		{
			name:       "mixed insert update delete",
			existing:   []row{{ID: 1, Value: "a"}, {ID: 2, Value: "b"}, {ID: 3, Value: "c"}},
			incoming:   []row{{ID: 2, Value: "B"}, {Value: "d"}, {ID: 3, Value: "c"}},
			wantInsert: []row{{Value: "d"}},
			wantUpdate: []row{{ID: 2, Value: "B"}},
			wantDelete: []int64{1},
		},
		{
			name:       "unknown id is inserted",
			existing:   []row{{ID: 1, Value: "a"}},
			incoming:   []row{{ID: 99, Value: "z"}},
			wantInsert: []row{{ID: 99, Value: "z"}},
			wantDelete: []int64{1},
		},
		{
			name:       "duplicate key inserts the second occurrence",
			existing:   []row{{ID: 1, Value: "a"}},
			incoming:   []row{{ID: 1, Value: "a"}, {ID: 1, Value: "a2"}},
			wantInsert: []row{{ID: 1, Value: "a2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := reconcile.Diff(tt.existing, tt.incoming, byID, sameValue)

			assert.Equal(t, tt.wantInsert, plan.Insert)
			assert.Equal(t, tt.wantUpdate, plan.Update)
			assert.Equal(t, tt.wantDelete, plan.Delete)
		})
	}
}

func TestPlan_Empty(t *testing.T) {
	plan := reconcile.Diff([]row{{ID: 1, Value: "a"}}, []row{{ID: 1, Value: "a"}}, byID, sameValue)
	assert.True(t, plan.Empty())

	plan = reconcile.Diff(nil, []row{{Value: "a"}}, byID, sameValue)
	assert.False(t, plan.Empty())
}

func TestDiff_NaturalKey(t *testing.T) {
	type link struct {
		DestinoID int64
		Orden     int
	}
	key := func(l link) (int64, bool) { return l.DestinoID, true }
	equal := func(a, b link) bool { return a.Orden == b.Orden }

	existing := []link{{DestinoID: 10, Orden: 1}, {DestinoID: 20, Orden: 2}, {DestinoID: 30, Orden: 3}}
	incoming := []link{{DestinoID: 30, Orden: 1}, {DestinoID: 10, Orden: 2}}

	plan := reconcile.Diff(existing, incoming, key, equal)

	assert.Empty(t, plan.Insert)
	assert.Equal(t, []link{{DestinoID: 30, Orden: 1}, {DestinoID: 10, Orden: 2}}, plan.Update)
	assert.Equal(t, []int64{20}, plan.Delete)
}
