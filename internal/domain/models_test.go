package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInventoryLevelFreshAt(t *testing.T) {
	updated := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	synced := time.Date(2026, 5, 30, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		level InventoryLevel
		want  time.Time
		ok    bool
	}{
		{
			name:  "updated_at wins when both are set",
			level: InventoryLevel{UpdatedAt: &updated, SyncedAt: &synced},
			want:  updated,
			ok:    true,
		},
		{
			name:  "synced_at fills in when updated_at is missing",
			level: InventoryLevel{SyncedAt: &synced},
			want:  synced,
			ok:    true,
		},
		{
			name:  "no timestamp at all",
			level: InventoryLevel{},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.level.FreshAt()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want))
			}
		})
	}
}
