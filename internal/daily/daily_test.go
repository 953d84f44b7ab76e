package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	// 01:30 local on Jan 8 is still Jan 7 in UTC.
	ts := time.Date(2022, 1, 8, 1, 30, 0, 0, loc)
	assert.Equal(t, "2022-01-07", DateKey(ts))
}

func TestIndexCountsDaysFromEpoch(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"epoch day", Epoch, 0},
		{"next day", Epoch.AddDate(0, 0, 1), 1},
		{"mid list", Epoch.AddDate(0, 0, 17), 17},
		{"wraps around", Epoch.AddDate(0, 0, 41), 1},
		{"before epoch", Epoch.AddDate(0, 0, -3), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Index(tc.date, 40))
		})
	}
}

func TestIndexEmptyList(t *testing.T) {
	assert.Equal(t, 0, Index(Epoch.AddDate(0, 0, 12), 0))
}

func TestIndexIgnoresTimeOfDay(t *testing.T) {
	morning := Epoch.AddDate(0, 0, 5).Add(2 * time.Hour)
	evening := Epoch.AddDate(0, 0, 5).Add(23 * time.Hour)
	assert.Equal(t, Index(morning, 40), Index(evening, 40))
}
