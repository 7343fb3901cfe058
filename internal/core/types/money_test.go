package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoneyLenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain integer", "1500", "1500"},
		{"decimal", "12.345", "12.345"},
		{"empty is zero", "", "0"},
		{"whitespace is zero", "   ", "0"},
		{"garbage is zero", "abc", "0"},
		{"negative", "-200", "-200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMoneyLenient(tt.input)
			assert.True(t, got.Equal(MustMoney(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestMustMoneyPanicsOnGarbage(t *testing.T) {
	assert.Panics(t, func() { MustMoney("not-a-number") })
}
