package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileExactLength(t *testing.T) {
	items := []Item{
		{Day: 1, Title: "Intro", Brief: "Kick things off"},
		{Day: 2, Title: "Deep dive", Brief: "Go deeper"},
		{Day: 3, Title: "Wrap up", Brief: "Close out"},
	}

	got := Reconcile(items, 3, "Go concurrency")

	require.Len(t, got, 3)
	assert.Equal(t, "Intro", got[0].Title)
	assert.Equal(t, "Wrap up", got[2].Title)
}

func TestReconcileTruncatesLongPlans(t *testing.T) {
	items := []Item{
		{Day: 1, Title: "One"},
		{Day: 2, Title: "Two"},
		{Day: 3, Title: "Three"},
		{Day: 4, Title: "Four"},
		{Day: 5, Title: "Five"},
	}

	got := Reconcile(items, 3, "topic")

	require.Len(t, got, 3)
	assert.Equal(t, "Three", got[2].Title)
}

func TestReconcilePadsShortPlans(t *testing.T) {
	items := []Item{
		{Day: 1, Title: "One", Brief: "first"},
		{Day: 2, Title: "Two", Brief: "second"},
	}

	got := Reconcile(items, 5, "Morning routines")

	require.Len(t, got, 5)
	assert.Equal(t, "One", got[0].Title)
	assert.Equal(t, "Morning routines - Day 3", got[2].Title)
	assert.Contains(t, got[4].Brief, "Morning routines")
}

func TestReconcileRenumbersDays(t *testing.T) {
	// Model output with out-of-order and duplicate day numbers.
	items := []Item{
		{Day: 7, Title: "A"},
		{Day: 7, Title: "B"},
		{Day: 1, Title: "C"},
	}

	got := Reconcile(items, 3, "topic")

	for i, item := range got {
		assert.Equal(t, i+1, item.Day)
	}
}

func TestReconcileEmptyPlan(t *testing.T) {
	got := Reconcile(nil, 4, "Street photography")

	require.Len(t, got, 4)
	for i, item := range got {
		assert.Equal(t, i+1, item.Day)
		assert.NotEmpty(t, item.Title)
	}
}

func TestReconcileClampsMinimum(t *testing.T) {
	got := Reconcile(nil, 0, "topic")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Day)
}

func TestDateForDay(t *testing.T) {
	base := time.Date(2026, 1, 30, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "2026-01-30", DateForDay(base, 1))
	assert.Equal(t, "2026-01-31", DateForDay(base, 2))
	// Month rollover
	assert.Equal(t, "2026-02-01", DateForDay(base, 3))
	assert.Equal(t, "2026-02-28", DateForDay(base, 30))
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", DateForDay(d, 1))

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)
}
