package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize(" v1.2.3 "))
	assert.Equal(t, "", Normalize(""))
}

func TestIsRelease(t *testing.T) {
	assert.True(t, IsRelease("1.0.0"))
	assert.False(t, IsRelease("v1.1.0-rc.1"))
	assert.False(t, IsRelease("dev"))
}

func TestString(t *testing.T) {
	orig := Current
	t.Cleanup(func() { Current = orig })

	Current = "dev"
	assert.Equal(t, "dev", String())

	Current = "1.4"
	assert.Equal(t, "v1.4.0", String())
}
