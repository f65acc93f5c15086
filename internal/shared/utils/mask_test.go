package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@example.com", MaskEmail("ana@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("@example.com"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******5678", MaskPhone("(55) 1234-5678"))
	assert.Equal(t, "***", MaskPhone("123"))
}
