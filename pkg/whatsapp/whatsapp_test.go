package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLink(t *testing.T) {
	link := GenerateLink("Anel Solitário Ouro 18k", nil)

	u, err := url.Parse(link)
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/5538999196878", u.Path)

	text := u.Query().Get("text")
	assert.Contains(t, text, "Anel Solitário Ouro 18k")
	assert.Contains(t, text, "saber o preço")
}

func TestGenerateLinkEscapesMessage(t *testing.T) {
	link := GenerateLink("Colar & Pingente 50%", nil)

	// Raw product name must not leak unescaped into the query string.
	assert.False(t, strings.Contains(link, "Colar & Pingente"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)

	text := u.Query().Get("text")
	assert.Contains(t, text, "Colar & Pingente 50%")
}

func TestGenerateLinkIgnoresPrice(t *testing.T) {
	price := 450.0
	withPrice := GenerateLink("Brinco Argola", &price)
	withoutPrice := GenerateLink("Brinco Argola", nil)

	assert.Equal(t, withoutPrice, withPrice)
	assert.NotContains(t, withPrice, "450")
}

func TestFormatPrice(t *testing.T) {
	price := 1234.56
	assert.Equal(t, "R$ 1.234,56", FormatPrice(&price))

	small := 9.9
	assert.Equal(t, "R$ 9,90", FormatPrice(&small))

	assert.Equal(t, "Consultar preço", FormatPrice(nil))
}
