package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 10, 0},
		{2, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPaginationParams_Skip(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, Size: 10}.Skip())
	assert.Equal(t, 20, PaginationParams{Page: 3, Size: 10}.Skip())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "John Doe", NormalizeName("  John Doe \t"))
	assert.Equal(t, "john@example.com", NormalizeEmail("  John@Example.COM "))
}

func TestUserUpdate_IsEmpty(t *testing.T) {
	name := "x"
	assert.True(t, UserUpdate{}.IsEmpty())
	assert.False(t, UserUpdate{Name: &name}.IsEmpty())
}
