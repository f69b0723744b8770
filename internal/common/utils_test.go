package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	assert.True(t, HasAny("freezing drizzle", "rain", "drizzle"))
	assert.False(t, HasAny("clear sky", "rain", "drizzle"))
	assert.False(t, HasAny("anything"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "GB", FirstNonEmpty("", "GB", "United Kingdom"))
	assert.Equal(t, "", FirstNonEmpty("", ""))
}
