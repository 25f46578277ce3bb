package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("admin@rleomotos.com"))
	assert.True(t, IsValidEmail("first.last+tag@example.co"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("senha123"))
	assert.False(t, IsValidPassword("12345"))
}

func TestIsValidYear(t *testing.T) {
	assert.True(t, IsValidYear(2024))
	assert.False(t, IsValidYear(1850))
	assert.False(t, IsValidYear(3000))
}
