package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formatted national number", "(11) 98765-4321", "5511987654321"},
		{"already has country code", "5511987654321", "5511987654321"},
		{"plus prefix stripped", "+55 11 98765-4321", "5511987654321"},
		{"spaces and dots", "11 9.8765.4321", "5511987654321"},
		{"empty", "", ""},
		{"no digits at all", "abc-def", ""},
		{"local number starting with 55", "5587654321", "5587654321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"(11) 98765-4321", "+55 21 3333-4444", "0800 123 456"}
	for _, in := range inputs {
		once := NormalizePhone(in)
		assert.Equal(t, once, NormalizePhone(once), "normalizing twice must not change %q", in)
	}
}
