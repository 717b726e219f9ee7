package seed

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unidesk/internal/aggregate"
	"github.com/yigit/unidesk/internal/pkg/blobstore"
	"github.com/yigit/unidesk/internal/pkg/validation"
	"github.com/yigit/unidesk/internal/store"
)

func TestCreateDefaultDataFillsEveryCollection(t *testing.T) {
	s := store.New(blobstore.NewMemoryStore(), zerolog.Nop())
	require.True(t, s.Empty())

	require.NoError(t, CreateDefaultData(context.Background(), s, zerolog.Nop()))

	counts := s.Counts()
	for name, n := range counts {
		if name == store.KeySalaries {
			assert.Zero(t, n, "salaries come from payroll runs")
			continue
		}
		assert.Positive(t, n, name)
	}
}

func TestDefaultDataIsValid(t *testing.T) {
	v := validation.New()
	assertValid := func(t *testing.T, v *validator.Validate, item any) {
		t.Helper()
		assert.NoError(t, v.Struct(item))
	}
	for _, st := range students() {
		assertValid(t, v, st)
	}
	for _, f := range faculty() {
		assertValid(t, v, f)
	}
	for _, e := range exams() {
		assertValid(t, v, e)
	}
	for _, h := range hostels() {
		assertValid(t, v, h)
	}
	for _, n := range notices() {
		assertValid(t, v, n)
	}
	for _, b := range books() {
		assertValid(t, v, b)
	}
	for _, l := range leaveRequests() {
		assertValid(t, v, l)
	}
}

func TestDefaultFeeStructuresAddUp(t *testing.T) {
	for _, f := range feeStructures() {
		assert.Equal(t, aggregate.RoundCurrency(f.ComputedTotal()), f.TotalFee, f.ID)
	}
}

func TestDefaultRoomOccupancyMatchesApprovals(t *testing.T) {
	allocs := allocations()
	for _, h := range hostels() {
		for _, r := range h.Rooms {
			assert.Equal(t, aggregate.RoomOccupancy(h.ID, r.ID, allocs), r.Occupied, r.ID)
		}
	}
}
