package exporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnIndexAndLetter(t *testing.T) {
	tests := []struct {
		letter string
		index  int
	}{
		{"A", 0},
		{"F", 5},
		{"Z", 25},
		{"AA", 26},
		{"AZ", 51},
		{"BA", 52},
		{"ZZ", 701},
		{"AAA", 702},
		{"ZZZ", 18277},
	}

	for _, tt := range tests {
		t.Run(tt.letter, func(t *testing.T) {
			index, err := ColumnIndex(tt.letter)
			require.NoError(t, err)
			assert.Equal(t, tt.index, index)
			assert.Equal(t, tt.letter, ColumnLetter(tt.index))
		})
	}
}

func TestColumnIndex_Invalid(t *testing.T) {
	for _, letter := range []string{"", "A1", "-", "Ç", "AAAA", "AAAAAAAAAAAAAAAAAAAA"} {
		_, err := ColumnIndex(letter)
		assert.Error(t, err, letter)
	}

	index, err := ColumnIndex(" ab ")
	require.NoError(t, err)
	assert.Equal(t, 27, index)
}

func TestA1Range(t *testing.T) {
	assert.Equal(t, "'Dados'!F11:H12", A1Range("Dados", 5, 7, 11, 12))
	assert.Equal(t, "'Dados'!F2:H", A1Range("Dados", 5, 7, 2, 0))
	assert.Equal(t, "'Ana''s'!A2:A2", A1Range("Ana's", 0, 0, 2, 2))
}
