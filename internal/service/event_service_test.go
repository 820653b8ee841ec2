package service

import (
	"testing"
	"time"

	"github.com/bgaal/passhub/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTwoWeekWindow(t *testing.T) {
	today := time.Date(2026, 3, 4, 15, 42, 7, 0, time.UTC)
	start, end := TwoWeekWindow(today)

	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), end)

	// 14 calendar days inclusive.
	assert.Equal(t, 13*24*time.Hour, end.Sub(start))
}

func TestGridLayout_SplitsAcrossHours(t *testing.T) {
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events := []models.Event{{
		ID:        1,
		Name:      "Jóga",
		StartTime: time.Date(2026, 3, 4, 10, 15, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 4, 12, 45, 0, 0, time.UTC),
	}}

	cells := GridLayout(events, windowStart)
	assert.Len(t, cells, 3)

	assert.Equal(t, 2, cells[0].Day)
	assert.Equal(t, 10, cells[0].Hour)
	assert.Equal(t, 15, cells[0].StartMinute)
	assert.Equal(t, 60, cells[0].EndMinute)
	assert.True(t, cells[0].IsFirst)

	assert.Equal(t, 11, cells[1].Hour)
	assert.Equal(t, 0, cells[1].StartMinute)
	assert.Equal(t, 60, cells[1].EndMinute)
	assert.False(t, cells[1].IsFirst)

	assert.Equal(t, 12, cells[2].Hour)
	assert.Equal(t, 0, cells[2].StartMinute)
	assert.Equal(t, 45, cells[2].EndMinute)
	assert.False(t, cells[2].IsFirst)
}

func TestGridLayout_ExactHourEnd(t *testing.T) {
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events := []models.Event{{
		ID:        1,
		StartTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}}

	// The end hour gets its own cell even when the event ends exactly on
	// the hour; its EndMinute is the end minute, zero here.
	cells := GridLayout(events, windowStart)
	assert.Len(t, cells, 2)

	assert.Equal(t, 9, cells[0].Hour)
	assert.Equal(t, 0, cells[0].StartMinute)
	assert.Equal(t, 60, cells[0].EndMinute)
	assert.True(t, cells[0].IsFirst)

	assert.Equal(t, 10, cells[1].Hour)
	assert.Equal(t, 0, cells[1].StartMinute)
	assert.Equal(t, 0, cells[1].EndMinute)
	assert.False(t, cells[1].IsFirst)
}

func TestGridLayout_SkipsEventsOutsideWindow(t *testing.T) {
	windowStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		{
			ID:        1,
			StartTime: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			StartTime: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:        3,
			StartTime: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC),
		},
	}

	cells := GridLayout(events, windowStart)
	// Day 13 is the last one on the grid.
	assert.Len(t, cells, 2)
	for _, cell := range cells {
		assert.Equal(t, uint(2), cell.Event.ID)
		assert.Equal(t, 13, cell.Day)
	}
}

func TestValidateEvent(t *testing.T) {
	base := models.Event{
		Name:      "Edzés",
		StartTime: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC),
		Capacity:  10,
	}

	assert.NoError(t, validateEvent(&base))

	noName := base
	noName.Name = ""
	assert.ErrorIs(t, validateEvent(&noName), ErrValidation)

	backwards := base
	backwards.EndTime = backwards.StartTime.Add(-time.Hour)
	assert.ErrorIs(t, validateEvent(&backwards), ErrValidation)

	zeroCap := base
	zeroCap.Capacity = 0
	assert.ErrorIs(t, validateEvent(&zeroCap), ErrValidation)

	badColor := base
	badColor.Color = "pink"
	assert.ErrorIs(t, validateEvent(&badColor), ErrValidation)

	goodColor := base
	goodColor.Color = "burgundy"
	assert.NoError(t, validateEvent(&goodColor))
}
