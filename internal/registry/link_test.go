package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSignupLink(t *testing.T) {
	link := BuildSignupLink("https://rede-guti.app/", "Maria Silva", "https://wa.me/5511999999999")
	assert.Equal(t, "https://rede-guti.app#/cadastro?indicador=Maria+Silva&zap=https%3A%2F%2Fwa.me%2F5511999999999", link)

	link = BuildSignupLink("https://rede-guti.app", "", "")
	assert.Equal(t, "https://rede-guti.app#/cadastro", link)
}

func TestParseIndicator(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{"current spelling", "https://x.app#/cadastro?indicador=Maria+Silva", "Maria Silva"},
		{"legacy indicado", "https://x.app#/cadastro?indicado=Jo%C3%A3o", "João"},
		{"legacy ref", "https://x.app#/cadastro?ref=Ana", "Ana"},
		{"no query", "https://x.app#/cadastro", ""},
		{"query without fragment still accepted", "https://x.app/?indicador=Maria", "Maria"},
		{"empty value", "https://x.app#/cadastro?indicador=", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIndicator(tt.link))
		})
	}
}

func TestBuildParseRoundTrip(t *testing.T) {
	link := BuildSignupLink("https://rede-guti.app", "Pr. José da Silva", "")
	assert.Equal(t, "Pr. José da Silva", ParseIndicator(link))
}
