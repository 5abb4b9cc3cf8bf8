package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Anéis":           "anéis",
		"Anéis Finos":     "anéis-finos",
		"  Colares   ":    "colares",
		"Pulseiras\tOuro": "pulseiras-ouro",
		"Brincos  de  Prata": "brincos-de-prata",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugifyStrict(t *testing.T) {
	cases := map[string]string{
		"Anéis":             "aneis",
		"Anéis Finos":       "aneis-finos",
		"Coração & Pingente": "coracao--pingente",
		"Ouro 18k":          "ouro-18k",
		"São João":          "sao-joao",
	}

	for in, want := range cases {
		assert.Equal(t, want, SlugifyStrict(in), "input %q", in)
	}
}

func TestSlugifyStrictAlreadyClean(t *testing.T) {
	assert.Equal(t, "colares", SlugifyStrict("colares"))
	assert.Equal(t, "", SlugifyStrict("   "))
}
