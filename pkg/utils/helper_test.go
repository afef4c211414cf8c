package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 10},
		{"3", 3},
		{"abc", 10},
		{"0", 10},
		{"-4", 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseInt(tt.in, 10), "input %q", tt.in)
	}
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(-5, 1, 50))
	assert.Equal(t, 50, ClampInt(500, 1, 50))
	assert.Equal(t, 7, ClampInt(7, 1, 50))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, SplitCSV(" http://a.test, ,http://b.test,"))
	assert.Empty(t, SplitCSV(""))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr("   "))
	if p := StringPtr(" hello "); assert.NotNil(t, p) {
		assert.Equal(t, "hello", *p)
	}
}

func TestPagination(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 3, CalculateTotalPages(21, 10))
	assert.Equal(t, 0, CalculateTotalPages(5, 0))

	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
	// huge pages saturate instead of wrapping negative
	assert.Equal(t, math.MaxInt32, CalculateOffset(922337203685477580, 100))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}
