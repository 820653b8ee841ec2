package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPassUsableOn(t *testing.T) {
	pass := Pass{
		TotalUses: 10,
		Used:      3,
		StartDate: day(2026, 3, 1),
		EndDate:   day(2026, 3, 31),
	}

	assert.True(t, pass.UsableOn(day(2026, 3, 15)))

	// Usable on the expiry day itself, even late in the evening.
	assert.True(t, pass.UsableOn(time.Date(2026, 3, 31, 23, 30, 0, 0, time.UTC)))

	assert.False(t, pass.UsableOn(day(2026, 4, 1)))
}

func TestPassUsableOn_Exhausted(t *testing.T) {
	pass := Pass{
		TotalUses: 5,
		Used:      5,
		StartDate: day(2026, 3, 1),
		EndDate:   day(2026, 3, 31),
	}

	assert.False(t, pass.UsableOn(day(2026, 3, 15)))

	pass.Used = 4
	assert.True(t, pass.UsableOn(day(2026, 3, 15)))
}

func TestPassRemaining(t *testing.T) {
	pass := Pass{TotalUses: 10, Used: 4}
	assert.Equal(t, 6, pass.Remaining())

	pass.Used = 10
	assert.Equal(t, 0, pass.Remaining())
}
