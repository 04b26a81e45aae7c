//go:build unit

package queries_test

import (
	"testing"

	"campus-parking/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSlots(t *testing.T) {
	cases := []struct {
		name                      string
		total, holders, allocated int
		want                      int
	}{
		{"empty zone", 10, 0, 0, 10},
		{"holders only", 10, 3, 0, 7},
		{"allocations only", 10, 0, 4, 6},
		{"holders and allocations", 10, 3, 4, 3},
		{"exactly full", 10, 6, 4, 0},
		{"oversubscribed clamps to zero", 10, 8, 4, 0},
		{"capacity shrunk below holders", 2, 5, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, queries.AvailableSlots(tc.total, tc.holders, tc.allocated))
		})
	}
}
