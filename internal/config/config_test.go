package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampCacheTTL(t *testing.T) {
	tests := []struct {
		name        string
		ttl         int
		snapshotTTL int
		want        int
	}{
		{"below snapshot ttl passes through", 60, 300, 60},
		{"equal to snapshot ttl is halved", 300, 300, 150},
		{"above snapshot ttl is halved", 900, 300, 150},
		{"snapshot ttl disabled leaves ttl alone", 600, 0, 600},
		{"tiny snapshot ttl still yields a positive ttl", 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampCacheTTL(tt.ttl, tt.snapshotTTL))
		})
	}
}
