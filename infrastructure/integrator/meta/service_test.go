package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFields(t *testing.T) {
	tests := []struct {
		name     string
		base     []string
		extra    []string
		expected []string
	}{
		{
			name:     "sem campos extras",
			base:     []string{"account_id", "ad_id"},
			expected: []string{"account_id", "ad_id"},
		},
		{
			name:     "remove repetidos mantendo a ordem",
			base:     []string{"account_id", "ad_id"},
			extra:    []string{"spend", "ad_id", "actions", "spend"},
			expected: []string{"account_id", "ad_id", "spend", "actions"},
		},
		{
			name:     "ignora campos vazios",
			base:     []string{"ad_id"},
			extra:    []string{"", "reach"},
			expected: []string{"ad_id", "reach"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeFields(tt.base, tt.extra))
		})
	}
}
