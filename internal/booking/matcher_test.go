package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTarget(t *testing.T) {
	today := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)

	t.Run("matches name case-insensitively with opening date today", func(t *testing.T) {
		catalog := []Class{
			{ID: "c1", Name: "SPIN", PartitionDate: 20260907, BookingOpensOn: "2026-09-07T22:00:00"},
		}
		got, ok := FindTarget(catalog, "Spin", today)
		require.True(t, ok)
		assert.Equal(t, "c1", got.ID)
	})

	t.Run("rejects instance opening tomorrow", func(t *testing.T) {
		catalog := []Class{
			{ID: "c1", Name: "Spin", BookingOpensOn: "2026-09-08T22:00:00"},
		}
		_, ok := FindTarget(catalog, "Spin", today)
		assert.False(t, ok)
	})

	t.Run("rejects instance that opened yesterday", func(t *testing.T) {
		catalog := []Class{
			{ID: "c1", Name: "Spin", BookingOpensOn: "2026-09-06T22:00:00"},
		}
		_, ok := FindTarget(catalog, "Spin", today)
		assert.False(t, ok)
	})

	t.Run("rejects different class name opening today", func(t *testing.T) {
		catalog := []Class{
			{ID: "c1", Name: "Yoga", BookingOpensOn: "2026-09-07T22:00:00"},
		}
		_, ok := FindTarget(catalog, "Spin", today)
		assert.False(t, ok)
	})

	t.Run("first qualifying instance in catalog order wins", func(t *testing.T) {
		catalog := []Class{
			{ID: "early", Name: "Spin", BookingOpensOn: "2026-09-07T06:00:00"},
			{ID: "late", Name: "Spin", BookingOpensOn: "2026-09-07T18:00:00"},
		}
		got, ok := FindTarget(catalog, "Spin", today)
		require.True(t, ok)
		assert.Equal(t, "early", got.ID)
	})

	t.Run("skips instances with unparseable timestamps", func(t *testing.T) {
		catalog := []Class{
			{ID: "bad", Name: "Spin", BookingOpensOn: "not-a-date"},
			{ID: "good", Name: "Spin", BookingOpensOn: "2026-09-07T10:00:00"},
		}
		got, ok := FindTarget(catalog, "Spin", today)
		require.True(t, ok)
		assert.Equal(t, "good", got.ID)
	})

	t.Run("accepts zoned and date-only timestamps", func(t *testing.T) {
		for _, opensOn := range []string{"2026-09-07T08:00:00Z", "2026-09-07"} {
			catalog := []Class{{ID: "c1", Name: "Spin", BookingOpensOn: opensOn}}
			_, ok := FindTarget(catalog, "Spin", today)
			assert.True(t, ok, "layout %q", opensOn)
		}
	})

	t.Run("empty catalog yields no match", func(t *testing.T) {
		_, ok := FindTarget(nil, "Spin", today)
		assert.False(t, ok)
	})
}
