package utils_test

import (
	"testing"

	"crm-sync/core/utils"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"Nil", nil, ""},
		{"String", "abc", "abc"},
		{"Bytes", []byte("xyz"), "xyz"},
		{"Float", float64(123), "123"},
		{"Int", 42, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.ToString(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 25, utils.ToInt(" 25 "))
	assert.Equal(t, 0, utils.ToInt(nil))
	assert.Equal(t, 7, utils.ToInt(float64(7.9)))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, utils.Unique([]string{"b", "a", "", "b", "c", "a"}))
	assert.Empty(t, utils.Unique(nil))
}

func TestChunk(t *testing.T) {
	items := make([]int, 250)
	for i := range items {
		items[i] = i
	}

	chunks := utils.Chunk(items, 100)
	if assert.Len(t, chunks, 3) {
		assert.Len(t, chunks[0], 100)
		assert.Len(t, chunks[1], 100)
		assert.Len(t, chunks[2], 50)
		assert.Equal(t, 0, chunks[0][0])
		assert.Equal(t, 249, chunks[2][49])
	}

	assert.Nil(t, utils.Chunk([]int{}, 100))
	assert.Len(t, utils.Chunk([]int{1, 2, 3}, 0), 1)
	assert.Len(t, utils.Chunk([]int{1, 2, 3}, 3), 1)
}
