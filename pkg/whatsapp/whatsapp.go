// Package whatsapp builds the click-to-chat links the storefront uses for
// product inquiries.
package whatsapp

import (
	"fmt"
	"net/url"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aureajoias/aurea/config"
)

const inquiryTemplate = "Olá! Tenho interesse na joia: *%s*. Gostaria de mais informações e saber o preço."

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// GenerateLink returns a wa.me URL that opens a chat with the store's
// number, pre-filled with the inquiry message for the given product.
// The message always asks for the price, even when the catalog has one;
// the store quotes over chat, so price never changes the link.
func GenerateLink(productName string, price *float64) string {
	_ = price
	text := fmt.Sprintf(inquiryTemplate, productName)
	return "https://wa.me/" + config.WhatsAppPhone() + "?text=" + url.QueryEscape(text)
}

// FormatPrice renders a catalog price in Brazilian format, e.g. "R$ 1.234,56".
// A nil price means the product has no listed price and shows as
// "Consultar preço".
func FormatPrice(price *float64) string {
	if price == nil {
		return "Consultar preço"
	}
	return ptBR.Sprintf("R$ %.2f", *price)
}
