package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "pago parcial", SanitizeText("  <b>pago</b> parcial<script>alert(1)</script> "))
	assert.Equal(t, "", SanitizeText("<img src=x onerror=alert(1)>"))
	assert.Nil(t, SanitizeOptional(nil))

	in := "<i>ok</i>"
	out := SanitizeOptional(&in)
	if assert.NotNil(t, out) {
		assert.Equal(t, "ok", *out)
	}
}

func TestNormalizePersonName(t *testing.T) {
	assert.Equal(t, "María José", NormalizePersonName("  maría   JOSÉ "))
	assert.Equal(t, "De La Cruz", NormalizePersonName("de la cruz"))
	assert.Equal(t, "", NormalizePersonName("   "))
}

func TestDigitsAndEmail(t *testing.T) {
	assert.Equal(t, "5512345678", DigitsOnly("(55) 1234-5678"))
	assert.Equal(t, "ana@f3.mx", NormalizeEmail("  Ana@F3.MX "))
}
