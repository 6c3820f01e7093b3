package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anish9011/plant/internal/platform/apierr"
)

func TestParseQuantity(t *testing.T) {
	for raw, want := range map[string]int{
		"3":    3,
		" 2 ":  2,
		"2.0":  2,
		"4.00": 4,
		"3e0":  3,
	} {
		got, err := parseQuantity(raw)
		if assert.NoError(t, err, raw) {
			assert.Equal(t, want, got, raw)
		}
	}

	for raw, code := range map[string]string{
		"":            codeInvalidRequest,
		"2.5":         "invalid_quantity",
		"0":           "invalid_quantity",
		"-1":          "invalid_quantity",
		"abc":         "invalid_quantity",
		"99999999999": "invalid_quantity",
	} {
		_, err := parseQuantity(raw)
		assert.Equal(t, code, apierr.CodeOf(err), raw)
	}
}
