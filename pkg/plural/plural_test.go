package plural_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/xcstrings/pkg/plural"
)

func TestRuleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		n    int
		want string
	}{
		{"en", 0, plural.Other},
		{"en", 1, plural.One},
		{"en", 2, plural.Other},
		{"en-GB", 1, plural.One},
		{"de", -1, plural.One},
		{"uk", 1, plural.One},
		{"uk", 3, plural.Few},
		{"uk", 5, plural.Many},
		{"uk", 11, plural.Many},
		{"uk", 21, plural.One},
		{"uk", 22, plural.Few},
		{"ru", 112, plural.Many},
		{"pl", 1, plural.One},
		{"pl", 21, plural.Many},
		{"pl", 24, plural.Few},
		{"cs", 3, plural.Few},
		{"cs", 7, plural.Other},
		{"fr", 0, plural.One},
		{"fr", 2, plural.Other},
		{"fr", 1000000, plural.Many},
		{"pt-BR", 1, plural.One},
		{"es", 0, plural.Other},
		{"es", 1, plural.One},
		{"ja", 1, plural.Other},
		{"zh-Hans", 5, plural.Other},
		{"ar", 0, plural.Zero},
		{"ar", 2, plural.Two},
		{"ar", 105, plural.Few},
		{"ar", 111, plural.Many},
		{"ar", 100, plural.Other},
		{"not a code", 1, plural.One},
		{"", 2, plural.Other},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.lang, tt.n), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, plural.RuleFor(tt.lang)(tt.n))
		})
	}
}

func TestForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang string
		want []string
	}{
		{"en", []string{plural.One, plural.Other}},
		{"uk", []string{plural.One, plural.Few, plural.Many}},
		{"pl", []string{plural.One, plural.Few, plural.Many}},
		{"cs", []string{plural.One, plural.Few, plural.Many, plural.Other}},
		{"fr", []string{plural.One, plural.Many, plural.Other}},
		{"es", []string{plural.One, plural.Many, plural.Other}},
		{"ja", []string{plural.Other}},
		{"ar", plural.Categories},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, plural.Forms(tt.lang))
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	require.True(t, plural.Valid("few"))
	require.False(t, plural.Valid("several"))
	require.False(t, plural.Valid("One"))
}
