//go:build unit

package zone_test

import (
	"testing"
	"time"

	"campus-parking/internal/domain/user"
	"campus-parking/internal/domain/zone"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

func TestNewZone(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		z, err := zone.NewZone("  North Lot  ", zone.TypeGeneral, 20, " North Campus ", now)
		require.NoError(t, err)
		require.NotNil(t, z)

		assert.NotEqual(t, uuid.Nil, z.ID())
		assert.Equal(t, "North Lot", z.Name())
		assert.Equal(t, "North Campus", z.Location())
		assert.Equal(t, 20, z.TotalSlots())
		assert.True(t, z.Active(), "new zones start active")
	})

	cases := []struct {
		name       string
		zoneName   string
		zoneType   zone.Type
		totalSlots int
		errIs      error
	}{
		{"empty name", "", zone.TypeGeneral, 10, zone.ErrEmptyName},
		{"whitespace name", "   ", zone.TypeGeneral, 10, zone.ErrEmptyName},
		{"invalid type", "Lot", zone.Type("rooftop"), 10, zone.ErrInvalidType},
		{"zero capacity", "Lot", zone.TypeGeneral, 0, zone.ErrInvalidCapacity},
		{"negative capacity", "Lot", zone.TypeGeneral, -5, zone.ErrInvalidCapacity},
		{"single slot", "Lot", zone.TypeGeneral, 1, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			z, err := zone.NewZone(tc.zoneName, tc.zoneType, tc.totalSlots, "", now)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, z)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestZoneApply(t *testing.T) {
	base := func(t *testing.T) *zone.Zone {
		t.Helper()
		z, err := zone.NewZone("North Lot", zone.TypeGeneral, 20, "North Campus", now)
		require.NoError(t, err)
		return z
	}

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		z := base(t)
		slots := 5
		require.NoError(t, z.Apply(zone.Patch{TotalSlots: &slots}, now.Add(time.Hour)))

		assert.Equal(t, 5, z.TotalSlots())
		assert.Equal(t, "North Lot", z.Name())
		assert.Equal(t, now.Add(time.Hour), z.UpdatedAt())
	})

	t.Run("deactivate", func(t *testing.T) {
		z := base(t)
		inactive := false
		require.NoError(t, z.Apply(zone.Patch{Active: &inactive}, now))
		assert.False(t, z.Active())
	})

	t.Run("invalid patch values are rejected", func(t *testing.T) {
		z := base(t)

		empty := ""
		assert.ErrorIs(t, z.Apply(zone.Patch{Name: &empty}, now), zone.ErrEmptyName)

		bad := zone.Type("rooftop")
		assert.ErrorIs(t, z.Apply(zone.Patch{ZoneType: &bad}, now), zone.ErrInvalidType)

		zero := 0
		assert.ErrorIs(t, z.Apply(zone.Patch{TotalSlots: &zero}, now), zone.ErrInvalidCapacity)

		// Rejected patches leave the zone untouched.
		assert.Equal(t, "North Lot", z.Name())
		assert.Equal(t, 20, z.TotalSlots())
	})
}

func TestTypeBookableBy(t *testing.T) {
	cases := []struct {
		role    user.Role
		allowed []zone.Type
		denied  []zone.Type
	}{
		{
			role:    user.RoleStudent,
			allowed: []zone.Type{zone.TypeStudent, zone.TypeGeneral},
			denied:  []zone.Type{zone.TypeStaff, zone.TypeVisitor, zone.TypeEvent},
		},
		{
			role:    user.RoleStaff,
			allowed: []zone.Type{zone.TypeStaff, zone.TypeGeneral, zone.TypeStudent},
			denied:  []zone.Type{zone.TypeVisitor, zone.TypeEvent},
		},
		{
			role:    user.RoleVisitor,
			allowed: []zone.Type{zone.TypeVisitor, zone.TypeGeneral},
			denied:  []zone.Type{zone.TypeStudent, zone.TypeStaff, zone.TypeEvent},
		},
		{
			role:    user.RoleAdmin,
			allowed: []zone.Type{zone.TypeStudent, zone.TypeStaff, zone.TypeVisitor, zone.TypeGeneral, zone.TypeEvent},
		},
	}
	for _, tc := range cases {
		t.Run(tc.role.String(), func(t *testing.T) {
			for _, zt := range tc.allowed {
				assert.True(t, zt.BookableBy(tc.role), "%s should book %s zones", tc.role, zt)
			}
			for _, zt := range tc.denied {
				assert.False(t, zt.BookableBy(tc.role), "%s should not book %s zones", tc.role, zt)
			}
		})
	}
}
